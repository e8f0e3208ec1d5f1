package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schematic is implemented by a plugin's settings struct that wants its
// melded values checked against a JSON Schema before the plugin starts
// (§4.7 "settings... may declare a validation schema"). Grounded on the
// teacher's SchemaValidator (schema_validation.go), narrowed from
// validating capability arguments/outputs to validating a single
// settings object.
type Schematic interface {
	SettingsSchema() []byte
}

// ValidationError reports one or more schema violations for a plugin's
// settings (§4.7, surfaced via SettingsDiagnostics).
type ValidationError struct {
	Kind   ErrorKind
	Plugin string
	Issues []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: plugin %s: settings invalid:\n%s", e.Plugin, strings.Join(e.Issues, "\n"))
}

// Validate checks settings (which must also implement Schematic) against
// its own declared schema. A settings struct that doesn't implement
// Schematic, or whose SettingsSchema returns nil, is considered to have
// no schema and always passes.
func Validate(plugin string, settings interface{}) error {
	schematic, ok := settings.(Schematic)
	if !ok {
		return nil
	}
	schemaBytes := schematic.SettingsSchema()
	if len(schemaBytes) == 0 {
		return nil
	}

	valueBytes, err := json.Marshal(settings)
	if err != nil {
		return &ValidationError{Kind: ErrorKindInvalidValue, Plugin: plugin, Issues: []string{fmt.Sprintf("marshal settings: %v", err)}}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(valueBytes),
	)
	if err != nil {
		return &ValidationError{Kind: ErrorKindInvalidValue, Plugin: plugin, Issues: []string{fmt.Sprintf("compile schema: %v", err)}}
	}
	if result.Valid() {
		return nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		issues = append(issues, "  - "+e.String())
	}
	return &ValidationError{Kind: ErrorKindSchemaViolation, Plugin: plugin, Issues: issues}
}
