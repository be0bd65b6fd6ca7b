package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled holds *jsonschema.Schema by Schema.Name.
var compiled sync.Map

// checkSchema returns an *InvalidResponseError unless raw is JSON that
// satisfies schema. A nil schema accepts anything.
func checkSchema(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &InvalidResponseError{Content: raw, Err: fmt.Errorf("not JSON: %w", err)}
	}
	sch, err := compile(schema)
	if err != nil {
		return &InvalidResponseError{Content: raw, Err: err}
	}
	if err := sch.Validate(doc); err != nil {
		return &InvalidResponseError{Content: raw, Err: fmt.Errorf("schema %s: %w", schema.Name, err)}
	}
	return nil
}

func compile(schema *Schema) (*jsonschema.Schema, error) {
	if v, ok := compiled.Load(schema.Name); ok {
		return v.(*jsonschema.Schema), nil
	}

	// The compiler wants decoded JSON values, not Go maps of arbitrary types.
	b, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %s: %w", schema.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode schema %s: %w", schema.Name, err)
	}

	c := jsonschema.NewCompiler()
	url := "mem://koko/" + schema.Name + ".json"
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", schema.Name, err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", schema.Name, err)
	}
	compiled.Store(schema.Name, sch)
	return sch, nil
}
