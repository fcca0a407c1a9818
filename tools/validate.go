package tools

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonschema"
	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// SchemaError reports tool arguments that failed validation, or a tool name
// the registry does not know. It is always recoverable: the offending call
// is dropped, never executed.
type SchemaError struct {
	Tool   string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("tool %q: %s", e.Tool, e.Reason)
}

// Registry holds the tool vocabulary and a compiled JSON Schema validator
// per tool. Construct once at startup; read-only afterwards.
type Registry struct {
	defs    []mcptypes.Tool
	schemas map[string]*jsonschema.Schema
}

// NewRegistry compiles the parameter schema of every declared tool.
// The definitions are static, so an error here is a programming mistake,
// not a runtime condition.
func NewRegistry() (*Registry, error) {
	defs := definitions()
	compiler := jsonschema.NewCompiler()

	schemas := make(map[string]*jsonschema.Schema, len(defs))
	for _, def := range defs {
		raw, err := json.Marshal(def.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal schema for %s: %w", def.Name, err)
		}
		schema, err := compiler.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema for %s: %w", def.Name, err)
		}
		schemas[def.Name] = schema
	}

	return &Registry{defs: defs, schemas: schemas}, nil
}

// Definitions returns the tool vocabulary. The returned slice is a copy;
// callers cannot mutate the registry through it.
func (r *Registry) Definitions() []mcptypes.Tool {
	out := make([]mcptypes.Tool, len(r.defs))
	copy(out, r.defs)
	return out
}

// Has reports whether the registry declares a tool with the given name.
func (r *Registry) Has(name string) bool {
	_, ok := r.schemas[name]
	return ok
}

// Validate checks rawArgs against the named tool's parameter schema and
// returns the arguments unchanged on success. A nil argument map is treated
// as empty, which satisfies tools without required parameters.
//
// Validate never panics; every failure comes back as a *SchemaError.
func (r *Registry) Validate(name string, rawArgs map[string]any) (map[string]any, error) {
	schema, ok := r.schemas[name]
	if !ok {
		return nil, &SchemaError{Tool: name, Reason: "unknown tool"}
	}

	if rawArgs == nil {
		rawArgs = map[string]any{}
	}

	result := schema.Validate(rawArgs)
	if !result.IsValid() {
		return nil, &SchemaError{Tool: name, Reason: fmt.Sprintf("invalid arguments: %s", result.Error())}
	}

	return rawArgs, nil
}
