package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/atomgraph/webalgebra"
	"github.com/atomgraph/webalgebra/pkg/rdfio"
)

// RunDocument loads a workflow document from a file (or stdin when path
// is "-"), evaluates it and renders the result. YAML documents are
// accepted alongside JSON, keyed off the file extension.
func RunDocument(ctx context.Context, engine *webalgebra.Engine, path, format string, out io.Writer) error {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	var result any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parse document: %w", err)
		}
		v, err := engine.Evaluate(ctx, doc)
		if err != nil {
			return err
		}
		result, err = rdfio.ToJSON(v)
		if err != nil {
			return err
		}
	default:
		result, err = engine.EvaluateDocument(ctx, data)
		if err != nil {
			return err
		}
	}
	return Render(out, format, result)
}

// RunAsk translates an instruction into a workflow, evaluates it and
// renders both the generated document and the result.
func RunAsk(ctx context.Context, engine *webalgebra.Engine, instruction, format string, out io.Writer) error {
	doc, result, err := engine.Ask(ctx, instruction)
	if doc != nil {
		fmt.Fprintln(out, "# generated workflow")
		if encErr := writeJSON(out, doc); encErr != nil {
			return encErr
		}
		fmt.Fprintln(out)
	}
	if err != nil {
		return err
	}
	return Render(out, format, result)
}

// Render writes an evaluation result in the requested format: "json"
// (the default) or "table" for tabular results.
func Render(out io.Writer, format string, v any) error {
	if format == "table" {
		if res, ok := v.(*rdfio.Result); ok {
			renderTable(out, res)
			return nil
		}
	}
	return writeJSON(out, v)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderTable(out io.Writer, res *rdfio.Result) {
	table := tablewriter.NewWriter(out)
	table.SetHeader(res.Vars)
	for _, row := range res.Rows {
		cells := make([]string, len(res.Vars))
		for i, name := range res.Vars {
			if b, ok := row[name]; ok {
				cells[i] = b.Value
			}
		}
		table.Append(cells)
	}
	table.Render()
}

// PrintOperations writes the operation catalog as a table.
func PrintOperations(out io.Writer, engine *webalgebra.Engine) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Operation", "Description"})
	table.SetColWidth(70)
	for _, desc := range engine.Operations() {
		doc := desc.Doc
		if i := strings.IndexByte(doc, '\n'); i >= 0 {
			doc = doc[:i]
		}
		table.Append([]string{desc.Name, doc})
	}
	table.Render()
}
