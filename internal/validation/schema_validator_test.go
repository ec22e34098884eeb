package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const templateSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"_id": {"type": "string", "minLength": 1},
			"stack_max_size": {"type": "integer", "minimum": 1}
		},
		"required": ["_id"]
	}
}`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestSchemaValidator_ValidateBytes(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "items.schema.json", templateSchema)
	v := NewSchemaValidator()

	tests := []struct {
		name     string
		data     string
		errorMsg string
	}{
		{name: "valid array", data: `[{"_id":"a","stack_max_size":10}]`},
		{name: "empty array", data: `[]`},
		{name: "missing id", data: `[{"stack_max_size":1}]`, errorMsg: "required"},
		{name: "stack below one", data: `[{"_id":"a","stack_max_size":0}]`, errorMsg: "/0/stack_max_size"},
		{name: "wrong root type", data: `{"_id":"a"}`, errorMsg: "type"},
		{name: "invalid JSON", data: `[{"_id": }]`, errorMsg: "parse JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), schemaPath)
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestSchemaValidator_LoadFile(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "items.schema.json", templateSchema)
	v := NewSchemaValidator()

	t.Run("decodes valid file", func(t *testing.T) {
		dataPath := writeFile(t, dir, "ok.json", `[{"_id":"a","stack_max_size":5}]`)
		var out []struct {
			ID    string `json:"_id"`
			Stack int    `json:"stack_max_size"`
		}

		require.NoError(t, v.LoadFile(dataPath, schemaPath, &out))
		require.Len(t, out, 1)
		assert.Equal(t, 5, out[0].Stack)
	})

	t.Run("invalid file is not decoded", func(t *testing.T) {
		dataPath := writeFile(t, dir, "bad.json", `[{"stack_max_size":5}]`)
		var out []map[string]any

		err := v.LoadFile(dataPath, schemaPath, &out)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad.json")
		assert.Empty(t, out)
	})

	t.Run("missing schema", func(t *testing.T) {
		dataPath := writeFile(t, dir, "ok2.json", `[]`)
		err := v.LoadFile(dataPath, filepath.Join(dir, "none.json"), &[]any{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load schema")
	})
}
