package webalgebra_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/atomgraph/webalgebra"
)

// ExampleEngine_EvaluateDocument demonstrates evaluating a workflow
// document that iterates over an inline solution table. Real workflows
// would produce the table with a SELECT operation instead.
func ExampleEngine_EvaluateDocument() {
	engine := webalgebra.New()

	doc := []byte(`{
		"@op": "ForEach",
		"args": {
			"result": {
				"head": {"vars": ["city"]},
				"results": {"bindings": [
					{"city": {"type": "uri", "value": "https://dbpedia.org/resource/Copenhagen"}},
					{"city": {"type": "uri", "value": "https://dbpedia.org/resource/Aarhus"}}
				]}
			},
			"operation": {"@op": "Str", "args": {
				"value": {"@op": "Value", "args": {"name": "city"}}
			}}
		}
	}`)

	out, err := engine.EvaluateDocument(context.Background(), doc)
	if err != nil {
		log.Fatal(err)
	}

	data, _ := json.Marshal(out)
	fmt.Println(string(data))
	// Output:
	// ["https://dbpedia.org/resource/Copenhagen","https://dbpedia.org/resource/Aarhus"]
}

// ExampleEngine_Call demonstrates invoking a single operation by name,
// the way the MCP and HTTP tool surfaces do.
func ExampleEngine_Call() {
	engine := webalgebra.New()

	out, err := engine.Call(context.Background(), "Replace", map[string]any{
		"value":       "Hello Data",
		"pattern":     "Data",
		"replacement": "Linked Data",
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(out)
	// Output:
	// Hello Linked Data
}
