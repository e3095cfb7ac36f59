package ops

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/atomgraph/webalgebra/pkg/algebra"
	"github.com/atomgraph/webalgebra/pkg/rdfio"
	"github.com/atomgraph/webalgebra/pkg/registry"
	"github.com/atomgraph/webalgebra/pkg/shape"
)

// RegisterStrings registers the string utilities.
func RegisterStrings(reg *registry.Registry) {
	reg.MustRegister(strDesc, opStr)
	reg.MustRegister(concatDesc, opConcat)
	reg.MustRegister(replaceDesc, opReplace)
	reg.MustRegister(encodeForURIDesc, opEncodeForURI)
	reg.MustRegister(struuidDesc, opSTRUUID)
}

var strDesc = algebra.Descriptor{
	Name: "Str",
	Doc:  "Returns the lexical form of a term or scalar.",
	Params: []algebra.Param{
		{Name: "value", Doc: "The value to convert.", Shape: shape.Any()},
	},
}

func opStr(ctx context.Context, call *algebra.Call) (any, error) {
	return rdfio.Lexical(call.Arg("value"))
}

var concatDesc = algebra.Descriptor{
	Name: "Concat",
	Doc:  "Concatenates the lexical forms of a sequence of values.",
	Params: []algebra.Param{
		{Name: "values", Doc: "The values to concatenate, in order.", Shape: shape.Sequence(shape.Text())},
	},
}

func opConcat(ctx context.Context, call *algebra.Call) (any, error) {
	items := call.Arg("values").([]any)
	var sb strings.Builder
	for _, item := range items {
		s, err := rdfio.Lexical(item)
		if err != nil {
			return nil, err
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}

var replaceDesc = algebra.Descriptor{
	Name: "Replace",
	Doc:  "Replaces every match of a regular expression, with SPARQL REPLACE semantics.",
	Params: []algebra.Param{
		{Name: "value", Doc: "The input string or term.", Shape: shape.Text()},
		{Name: "pattern", Doc: "The regular expression to match.", Shape: shape.String()},
		{Name: "replacement", Doc: "The replacement, with $N group references.", Shape: shape.String()},
		{Name: "flags", Doc: "Optional matching flags: i, s, m.", Shape: shape.String(), Optional: true},
	},
}

func opReplace(ctx context.Context, call *algebra.Call) (any, error) {
	value, err := rdfio.Lexical(call.Arg("value"))
	if err != nil {
		return nil, err
	}
	pattern := call.String("pattern", "")
	if flags := call.String("flags", ""); flags != "" {
		for _, f := range flags {
			switch f {
			case 'i', 's', 'm':
			default:
				return nil, fmt.Errorf("unsupported regex flag %q", string(f))
			}
		}
		pattern = "(?" + flags + ")" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile pattern: %w", err)
	}
	return re.ReplaceAllString(value, call.String("replacement", "")), nil
}

var encodeForURIDesc = algebra.Descriptor{
	Name: "EncodeForURI",
	Doc:  "Percent-encodes every character outside the RFC 3986 unreserved set.",
	Params: []algebra.Param{
		{Name: "value", Doc: "The string to encode.", Shape: shape.Text()},
	},
}

func opEncodeForURI(ctx context.Context, call *algebra.Call) (any, error) {
	value, err := rdfio.Lexical(call.Arg("value"))
	if err != nil {
		return nil, err
	}
	return encodeForURI(value), nil
}

// encodeForURI implements the XPath fn:encode-for-uri table: unreserved
// characters pass through, everything else is percent-encoded byte-wise.
// url.QueryEscape and url.PathEscape both leave sub-delimiters unescaped,
// so neither matches.
func encodeForURI(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
			c == '-', c == '.', c == '_', c == '~':
			sb.WriteByte(c)
		default:
			fmt.Fprintf(&sb, "%%%02X", c)
		}
	}
	return sb.String()
}

var struuidDesc = algebra.Descriptor{
	Name:   "STRUUID",
	Doc:    "Returns a fresh UUID string.",
	Params: nil,
}

func opSTRUUID(ctx context.Context, call *algebra.Call) (any, error) {
	return uuid.NewString(), nil
}
