package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSectionsAndKeys(t *testing.T) {
	doc, err := ParseString(`
# a comment
[core]
prefix = !
homeChannels = #chan1,#chan2

; another comment
[greeting]
message=hello there
`)
	require.NoError(t, err)
	require.Len(t, doc.Sections, 2)

	core, ok := doc.Lookup("core")
	require.True(t, ok)
	v, ok := core.Get("prefix")
	require.True(t, ok)
	assert.Equal(t, "!", v)

	greeting, ok := doc.Lookup("greeting")
	require.True(t, ok)
	v, ok = greeting.Get("message")
	require.True(t, ok)
	assert.Equal(t, "hello there", v)
}

func TestParseRejectsMalformedLine(t *testing.T) {
	_, err := ParseString("[core]\nnotakeyvalue\n")
	assert.Error(t, err)
}

func TestParsePreservesKeyOrder(t *testing.T) {
	doc, err := ParseString("[s]\nb=2\na=1\nc=3\n")
	require.NoError(t, err)
	s, _ := doc.Lookup("s")
	assert.Equal(t, []string{"b", "a", "c"}, s.Order)
}
