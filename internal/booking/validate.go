package booking

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var schemaJSON []byte

const (
	createSchemaURL = "mem://booking/create.json"
	patchSchemaURL  = "mem://booking/patch.json"
)

// ValidationError reports a request body that cannot be stored.
type ValidationError struct {
	Msg string
	Err error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ValidationError) Unwrap() error { return e.Err }

var (
	createSchema *jsonschema.Schema
	patchSchema  *jsonschema.Schema
)

func init() {
	createSchema = compile(createSchemaURL, schemaDoc())
	patch := schemaDoc()
	delete(patch, "required")
	patchSchema = compile(patchSchemaURL, patch)
}

// schemaDoc decodes the embedded schema the way the validator expects
// (numbers as json.Number).
func schemaDoc() map[string]any {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("booking schema: %v", err))
	}
	m, ok := doc.(map[string]any)
	if !ok {
		panic("booking schema: not an object")
	}
	return m
}

func compile(url string, doc map[string]any) *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		panic(fmt.Sprintf("booking schema %s: %v", url, err))
	}
	return c.MustCompile(url)
}

// Schema returns a fresh copy of the booking JSON Schema.
// The same document is published in the API description.
func Schema() map[string]any {
	var doc map[string]any
	if err := json.Unmarshal(schemaJSON, &doc); err != nil {
		panic(fmt.Sprintf("booking schema: %v", err))
	}
	return doc
}

// ValidateCreate checks a create body: name and email must be non-empty strings.
func ValidateCreate(fields map[string]any) error {
	return validate(createSchema, fields)
}

// ValidatePatch checks an update body: name and email, when present,
// must be non-empty strings.
func ValidatePatch(fields map[string]any) error {
	return validate(patchSchema, fields)
}

func validate(sch *jsonschema.Schema, fields map[string]any) error {
	if fields == nil {
		return &ValidationError{Msg: "body must be a JSON object"}
	}
	if err := sch.Validate(normalize(fields)); err != nil {
		return &ValidationError{Msg: "invalid booking", Err: flatten(err)}
	}
	return nil
}

// normalize converts named map types nested in the body back to map[string]any
// so the validator sees plain JSON values.
func normalize(v any) any {
	switch vv := v.(type) {
	case Booking:
		return normalize(map[string]any(vv))
	case map[string]any:
		out := make(map[string]any, len(vv))
		for k, x := range vv {
			out[k] = normalize(x)
		}
		return out
	case []any:
		out := make([]any, len(vv))
		for i, x := range vv {
			out[i] = normalize(x)
		}
		return out
	default:
		return v
	}
}

// flatten turns the validator's multi-line report into a single line.
func flatten(err error) error {
	lines := strings.Split(strings.TrimSpace(err.Error()), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return fmt.Errorf("%s", strings.Join(lines, "; "))
}
