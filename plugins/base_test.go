package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSettingsMeldsValidatesAndDiagnoses(t *testing.T) {
	g := NewGreeter(testBot(), nil)

	diag, err := g.ReadSettings(map[string]string{
		"greeting":    "Hi, %s.",
		"nonsenseKey": "1",
	})

	require.NoError(t, err)
	assert.Equal(t, "Hi, %s.", g.Settings.Greeting, "ReadSettings must meld the file value into the live settings struct")
	assert.Contains(t, diag.Invalid, "nonsenseKey", "an unrecognised file key must be reported invalid")
	assert.Empty(t, diag.Missing, "greeting is the only declared field and the file supplied it")
}

func TestReadSettingsReportsMissingWhenFileOmitsAField(t *testing.T) {
	a := NewAdmin(testBot(), nil)

	diag, err := a.ReadSettings(map[string]string{})

	require.NoError(t, err)
	assert.Contains(t, diag.Missing, "redirectNotice")
	assert.Equal(t, "Redirected!", a.Settings.RedirectNotice, "a field the file omits must keep its constructed default")
}

func TestReadSettingsRejectsSchemaViolation(t *testing.T) {
	w := NewWhitelist(testBot(), nil, nil)

	_, err := w.ReadSettings(map[string]string{"addedNotice": ""})

	assert.Error(t, err, "an empty AddedNotice violates WhitelistSettings' JSON Schema (minLength 1)")
}

func TestReadSettingsIsNoopWithoutSettings(t *testing.T) {
	b := NewBase("bare", testBot(), nil)

	diag, err := b.ReadSettings(map[string]string{"anything": "x"})

	require.NoError(t, err)
	assert.Empty(t, diag.Missing)
	assert.Empty(t, diag.Invalid)
}
