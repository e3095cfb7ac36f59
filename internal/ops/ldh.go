package ops

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/atomgraph/webalgebra/pkg/algebra"
	"github.com/atomgraph/webalgebra/pkg/rdfio"
	"github.com/atomgraph/webalgebra/pkg/registry"
	"github.com/atomgraph/webalgebra/pkg/shape"
)

const rdfSeqPrefix = "http://www.w3.org/1999/02/22-rdf-syntax-ns#_"

var ldhContext = map[string]any{
	"ldh":  "https://w3id.org/atomgraph/linkeddatahub#",
	"dh":   "https://www.w3.org/ns/ldt/document-hierarchy#",
	"rdf":  "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
	"dct":  "http://purl.org/dc/terms/",
	"sioc": "http://rdfs.org/sioc/ns#",
	"xsd":  "http://www.w3.org/2001/XMLSchema#",
	"ac":   "https://w3id.org/atomgraph/client#",
}

// RegisterLDH registers the LinkedDataHub document tools.
func RegisterLDH(reg *registry.Registry, deps Deps) {
	reg.MustRegister(createContainerDesc, opCreateDocument(deps, "dh:Container", true))
	reg.MustRegister(createItemDesc, opCreateDocument(deps, "dh:Item", false))
	reg.MustRegister(addObjectBlockDesc, opAddObjectBlock(deps))
}

var createContainerDesc = algebra.Descriptor{
	Name: "ldh-CreateContainer",
	Doc: "Creates a LinkedDataHub container document. The URL must end with a " +
		"trailing slash and be relative to an existing container.",
	Params: []algebra.Param{
		{Name: "url", Doc: "The URI for the container document.", Shape: shape.URI()},
		{Name: "title", Doc: "The title of the container.", Shape: shape.Text()},
		{Name: "description", Doc: "Optional description of the container.", Shape: shape.Text(), Optional: true},
	},
}

var createItemDesc = algebra.Descriptor{
	Name: "ldh-CreateItem",
	Doc:  "Creates a LinkedDataHub item document relative to an existing container.",
	Params: []algebra.Param{
		{Name: "url", Doc: "The URI for the item document.", Shape: shape.URI()},
		{Name: "title", Doc: "The title of the item.", Shape: shape.Text()},
		{Name: "description", Doc: "Optional description of the item.", Shape: shape.Text(), Optional: true},
	},
}

// opCreateDocument PUTs a document skeleton. Containers additionally get
// the default children-view content block.
func opCreateDocument(deps Deps, docType string, childrenView bool) algebra.OperationFunc {
	return func(ctx context.Context, call *algebra.Call) (any, error) {
		uri, err := rdfio.Lexical(call.Arg("url"))
		if err != nil {
			return nil, err
		}
		title, err := rdfio.Lexical(call.Arg("title"))
		if err != nil {
			return nil, err
		}
		doc := map[string]any{
			"@context":  ldhContext,
			"@id":       uri,
			"@type":     docType,
			"dct:title": title,
		}
		if childrenView {
			doc["rdf:_1"] = map[string]any{
				"@type":     "ldh:Object",
				"rdf:value": map[string]any{"@id": "ldh:ChildrenView"},
			}
		}
		if call.Has("description") {
			description, err := rdfio.Lexical(call.Arg("description"))
			if err != nil {
				return nil, err
			}
			doc["dct:description"] = description
		}

		g, err := rdfio.ParseJSONLD(doc)
		if err != nil {
			return nil, err
		}
		deps.logger().Info("creating document", "type", docType, "url", uri, "title", title)
		st, err := deps.LinkedData.Put(ctx, uri, g)
		if err != nil {
			return nil, err
		}
		return rdfio.StatusResult(st.Code, st.URL), nil
	}
}

var addObjectBlockDesc = algebra.Descriptor{
	Name: "ldh-AddObjectBlock",
	Doc: "Appends an object block to a LinkedDataHub document's content sequence. " +
		"The block references an external resource by URI and can carry a display mode.",
	Params: []algebra.Param{
		{Name: "url", Doc: "The URI of the document to append the block to.", Shape: shape.URI()},
		{Name: "value", Doc: "URI of the object resource to reference.", Shape: shape.URI()},
		{Name: "title", Doc: "Optional title for the block.", Shape: shape.Text(), Optional: true},
		{Name: "description", Doc: "Optional description for the block.", Shape: shape.Text(), Optional: true},
		{Name: "fragment", Doc: "Optional fragment identifier for the block URI.", Shape: shape.Text(), Optional: true},
		{Name: "mode", Doc: "Optional display mode URI, defaults to ac:ReadMode.", Shape: shape.URI(), Optional: true},
	},
}

// opAddObjectBlock dereferences the document to find the highest rdf:_N
// sequence property on it, then POSTs a new block under rdf:_(N+1).
func opAddObjectBlock(deps Deps) algebra.OperationFunc {
	return func(ctx context.Context, call *algebra.Call) (any, error) {
		uri, err := rdfio.Lexical(call.Arg("url"))
		if err != nil {
			return nil, err
		}
		value, err := rdfio.Lexical(call.Arg("value"))
		if err != nil {
			return nil, err
		}

		current, err := deps.LinkedData.Get(ctx, uri)
		if err != nil {
			return nil, fmt.Errorf("fetch document: %w", err)
		}
		next := nextSequenceNumber(current, uri)
		deps.logger().Debug("appending object block", "url", uri, "sequence", next)

		blockID := "_:object-block"
		if call.Has("fragment") {
			fragment, err := rdfio.Lexical(call.Arg("fragment"))
			if err != nil {
				return nil, err
			}
			blockID = uri + "#" + fragment
		}
		block := map[string]any{
			"@id":       blockID,
			"@type":     "ldh:Object",
			"rdf:value": map[string]any{"@id": value},
		}
		if call.Has("title") {
			title, err := rdfio.Lexical(call.Arg("title"))
			if err != nil {
				return nil, err
			}
			block["dct:title"] = title
		}
		if call.Has("description") {
			description, err := rdfio.Lexical(call.Arg("description"))
			if err != nil {
				return nil, err
			}
			block["dct:description"] = description
		}
		if call.Has("mode") {
			mode, err := rdfio.Lexical(call.Arg("mode"))
			if err != nil {
				return nil, err
			}
			block["ac:mode"] = map[string]any{"@id": mode}
		}

		doc := map[string]any{
			"@context": ldhContext,
			"@id":      uri,
			fmt.Sprintf("rdf:_%d", next): block,
		}
		g, err := rdfio.ParseJSONLD(doc)
		if err != nil {
			return nil, err
		}
		st, err := deps.LinkedData.Post(ctx, uri, g)
		if err != nil {
			return nil, err
		}
		return rdfio.StatusResult(st.Code, st.URL), nil
	}
}

// nextSequenceNumber scans the document's rdf:_N properties and returns
// the next free index, starting at 1.
func nextSequenceNumber(g *rdfio.Graph, uri string) int {
	max := 0
	for _, t := range g.Triples() {
		if t.Subj.String() != uri {
			continue
		}
		pred := t.Pred.String()
		if !strings.HasPrefix(pred, rdfSeqPrefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(pred, rdfSeqPrefix))
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max + 1
}
