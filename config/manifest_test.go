package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommandManifestRoundTrip(t *testing.T) {
	m := &CommandManifest{
		Plugin: "greeter",
		Commands: []CommandManifestEntry{
			{Word: "hello", Aliases: []string{"hi"}, Description: "says hello", Usage: "hello [name]"},
		},
	}
	data, err := m.Marshal()
	require.NoError(t, err)

	parsed, err := ParseCommandManifest(data)
	require.NoError(t, err)
	assert.Equal(t, "greeter", parsed.Plugin)
	require.Len(t, parsed.Commands, 1)
	assert.Equal(t, "hello", parsed.Commands[0].Word)
	assert.Equal(t, []string{"hi"}, parsed.Commands[0].Aliases)
}

func TestParseCommandManifestRejectsInvalidYAML(t *testing.T) {
	_, err := ParseCommandManifest([]byte("not: [valid"))
	assert.Error(t, err)
}
