package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type schematicSettings struct {
	Retries int `json:"retries"`
}

func (s schematicSettings) SettingsSchema() []byte {
	return []byte(`{"type":"object","properties":{"retries":{"type":"integer","minimum":0}},"required":["retries"]}`)
}

type bareSettings struct {
	Retries int `json:"retries"`
}

func TestValidatePassesConformingSettings(t *testing.T) {
	err := Validate("demo", schematicSettings{Retries: 3})
	assert.NoError(t, err)
}

func TestValidateRejectsNonConformingSettings(t *testing.T) {
	err := Validate("demo", schematicSettings{Retries: -1})
	assert.Error(t, err)
}

func TestValidateSkipsSettingsWithoutSchema(t *testing.T) {
	err := Validate("demo", bareSettings{Retries: -1})
	assert.NoError(t, err)
}
