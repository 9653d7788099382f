package dataset

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed data/verbs.json schema.json
var files embed.FS

const schemaURL = "schema://conjugo/dataset.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// LoadError is returned when a dataset cannot be read, fails schema
// validation or cannot be decoded. It is fatal: no session can start.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dataset %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads the dataset at path. An empty path loads the embedded sample.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	return ds, nil
}

// Default returns the embedded sample dataset.
func Default() (*Dataset, error) {
	data, err := files.ReadFile("data/verbs.json")
	if err != nil {
		return nil, &LoadError{Source: "embedded", Err: err}
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, &LoadError{Source: "embedded", Err: err}
	}
	return ds, nil
}

// Parse validates raw JSON against the dataset schema and decodes it.
func Parse(data []byte) (*Dataset, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &ds, nil
}

// Validate checks raw JSON against the dataset schema without decoding it.
func Validate(data []byte) error {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := schema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		raw, err := files.ReadFile("schema.json")
		if err != nil {
			compileErr = err
			return
		}
		var def any
		if err := json.Unmarshal(raw, &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}
