package schema

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const manifestSchemaURL = "https://scoop-manifest-gen/manifest.schema.json"

//go:embed data/manifest.schema.json
var manifestSchemaJSON []byte

var compileManifestSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(manifestSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded manifest schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(manifestSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("failed to load embedded manifest schema: %w", err)
	}

	return c.Compile(manifestSchemaURL)
})

// ValidationError is returned when a manifest does not satisfy the schema
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("manifest failed schema validation: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateManifest checks an encoded manifest against the embedded schema
func ValidateManifest(data []byte) error {
	sch, err := compileManifestSchema()
	if err != nil {
		return err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return &ValidationError{Err: err}
	}

	if err := sch.Validate(inst); err != nil {
		return &ValidationError{Err: err}
	}

	return nil
}
