package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnoseReportsUnknownKeysAsInvalid(t *testing.T) {
	doc, err := ParseString(`
[plugin]
prefix = !
nonsenseKey = 1
`)
	require.NoError(t, err)
	section, _ := doc.Lookup("plugin")

	_, invalid := Diagnose(section, &testSettings{})

	assert.Contains(t, invalid, "nonsenseKey", "a file key with no matching field must be reported invalid")
	assert.NotContains(t, invalid, "prefix")
}

func TestDiagnoseReportsAbsentFieldsAsMissing(t *testing.T) {
	doc, err := ParseString(`
[plugin]
prefix = !
`)
	require.NoError(t, err)
	section, _ := doc.Lookup("plugin")

	missing, _ := Diagnose(section, &testSettings{})

	assert.Contains(t, missing, "enabled")
	assert.Contains(t, missing, "retries")
	assert.Contains(t, missing, "homeChannels")
	assert.Contains(t, missing, "untouched")
	assert.NotContains(t, missing, "prefix", "a field the file did supply must not be reported missing")
}

func TestDiagnoseIsEmptyWhenFullyDeclared(t *testing.T) {
	doc, err := ParseString(`
[plugin]
prefix = !
enabled = true
retries = 3
homeChannels = #a
untouched = x
`)
	require.NoError(t, err)
	section, _ := doc.Lookup("plugin")

	missing, invalid := Diagnose(section, &testSettings{})

	assert.Empty(t, missing)
	assert.Empty(t, invalid)
}
