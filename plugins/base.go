// Package plugins holds small demonstration plugins exercising the
// dispatch core end to end: a greeting plugin (global-prefix,
// unprivileged), a home-channel admin plugin, and a whitelist plugin (WHOIS-gated, operator-only,
// wired to channel/user awareness). They play the role the teacher's
// examples/testplugin played for capns-go: a runnable demonstration of
// the framework rather than a component of it.
package plugins

import (
	"time"

	"github.com/gedaiu/kameloso-go/config"
	"github.com/gedaiu/kameloso-go/event"
	"github.com/gedaiu/kameloso-go/pluginapi"
)

// Base implements the parts of pluginapi.Plugin that a minimal
// demonstration plugin doesn't need to customise, so each toy plugin
// only overrides what makes it distinct (§4.7 lifecycle surface).
type Base struct {
	PluginName string
	state      *pluginapi.State
	enabled    bool
	// settings is a pointer to the embedding plugin's own settings
	// struct, supplied via NewBase. A nil settings means the plugin has
	// nothing to meld/validate and ReadSettings is a no-op.
	settings interface{}
}

// NewBase wires the embeddable lifecycle stub to its own State, enabled
// by default (§4.7 "is-enabled driven by a designated boolean"). settings
// is a pointer to the plugin's own settings struct (or nil if it has
// none); ReadSettings melds and validates into it.
func NewBase(name string, bot *pluginapi.BotConfig, settings interface{}) Base {
	return Base{PluginName: name, state: pluginapi.NewState(name, bot), enabled: true, settings: settings}
}

func (b *Base) Name() string { return b.PluginName }

// ReadSettings melds the decoded config-file section into the plugin's
// settings struct ("aggressive meld", §4.7) and, if it declares a JSON
// Schema, validates it afterward. Diagnostics (§6 unknown-key/absent-
// key enumeration) are computed from the section against the struct's
// declared fields regardless of whether the meld or validation itself
// failed, so a caller always sees what the file did and didn't supply.
func (b *Base) ReadSettings(section map[string]string) (pluginapi.SettingsDiagnostics, error) {
	if b.settings == nil {
		return pluginapi.SettingsDiagnostics{}, nil
	}
	sec := config.Section{Name: b.PluginName, Fields: section}
	missing, invalid := config.Diagnose(sec, b.settings)
	diag := pluginapi.SettingsDiagnostics{Missing: missing, Invalid: invalid}

	if err := config.Meld(sec, b.settings); err != nil {
		return diag, err
	}
	if err := config.Validate(b.PluginName, b.settings); err != nil {
		return diag, err
	}
	return diag, nil
}
func (b *Base) InitResources() error                             { return nil }
func (b *Base) Start() error                                      { return nil }
func (b *Base) SetSetting(name, value string) bool                { return false }
func (b *Base) SerialiseSettings() (map[string]string, error)     { return map[string]string{}, nil }
func (b *Base) PrintSettings() string                             { return "" }
func (b *Base) Reload() error                                     { return nil }
func (b *Base) Teardown() error                                   { return nil }
func (b *Base) IsEnabled() bool                                   { return b.enabled }
func (b *Base) Postprocess(*event.Event)                          {}
func (b *Base) Periodically(time.Time)                            {}
func (b *Base) OnBusMessage(header string, payload interface{})   {}
func (b *Base) State() *pluginapi.State                            { return b.state }
