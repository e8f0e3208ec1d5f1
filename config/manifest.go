package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// CommandManifest describes the commands a plugin exposes, serialised as
// YAML rather than key=value lines because it is structured and nested
// (per-command aliases, descriptions, usage) — grounded on
// codeready-toolchain-tarsy's YAML-based resource loader
// (pkg/config/loader.go), repurposed here from agent/chain definitions
// to plugin command descriptors. The dispatcher's help index
// (dispatch.Engine.HelpIndex) does not read manifests; it aggregates each
// plugin's Commands map directly.
type CommandManifest struct {
	Plugin   string             `yaml:"plugin"`
	Commands []CommandManifestEntry `yaml:"commands"`
}

// CommandManifestEntry documents one command for the help aggregator.
type CommandManifestEntry struct {
	Word        string   `yaml:"word"`
	Aliases     []string `yaml:"aliases,omitempty"`
	Description string   `yaml:"description"`
	Usage       string   `yaml:"usage,omitempty"`
}

// ParseCommandManifest decodes a plugin's command manifest from YAML.
func ParseCommandManifest(data []byte) (*CommandManifest, error) {
	var m CommandManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("config: parse command manifest: %w", err)
	}
	return &m, nil
}

// Marshal serialises the manifest back to YAML.
func (m *CommandManifest) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}
