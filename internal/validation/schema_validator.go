package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// SchemaValidator validates JSON data files against JSON schemas before they are decoded.
type SchemaValidator interface {
	ValidateBytes(data []byte, schemaPath string) error
	// LoadFile reads dataPath, validates it against schemaPath and decodes it into out.
	LoadFile(dataPath, schemaPath string, out any) error
}

type validator struct {
	mu       sync.Mutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
}

// NewSchemaValidator creates a new schema validator
func NewSchemaValidator() SchemaValidator {
	return &validator{
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
	}
}

func (v *validator) LoadFile(dataPath, schemaPath string, out any) error {
	data, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf(ErrMsgReadDataFmt, dataPath, err)
	}
	if err := v.ValidateBytes(data, schemaPath); err != nil {
		return fmt.Errorf(ErrMsgFileInvalidFmt, dataPath, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf(ErrMsgDecodeFmt, dataPath, err)
	}
	return nil
}

func (v *validator) ValidateBytes(data []byte, schemaPath string) error {
	schema, err := v.schema(schemaPath)
	if err != nil {
		return fmt.Errorf(ErrMsgLoadSchemaFmt, schemaPath, err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf(ErrMsgParseDataFmt, err)
	}

	if err := schema.Validate(doc); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// schema compiles a schema file once and caches it by path
func (v *validator) schema(schemaPath string) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if s, ok := v.schemas[schemaPath]; ok {
		return s, nil
	}

	f, err := os.Open(schemaPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := jsonschema.UnmarshalJSON(f)
	if err != nil {
		return nil, err
	}
	if err := v.compiler.AddResource(schemaPath, doc); err != nil {
		return nil, err
	}
	s, err := v.compiler.Compile(schemaPath)
	if err != nil {
		return nil, err
	}

	v.schemas[schemaPath] = s
	return s, nil
}

func formatValidationError(err error) error {
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf(ErrMsgValidationFmt, err)
	}
	var lines []string
	collect(verr, &lines)
	return fmt.Errorf(ErrMsgSchemaFailedFmt, strings.Join(lines, "\n"))
}

// collect flattens the cause tree, leaves last
func collect(err *jsonschema.ValidationError, lines *[]string) {
	location := "(root)"
	if len(err.InstanceLocation) > 0 {
		location = "/" + strings.Join(err.InstanceLocation, "/")
	}
	if err.ErrorKind != nil {
		if kw := err.ErrorKind.KeywordPath(); len(kw) > 0 {
			*lines = append(*lines, fmt.Sprintf("  - at %s: %s validation failed", location, strings.Join(kw, ".")))
		}
	}
	for _, cause := range err.Causes {
		collect(cause, lines)
	}
}
