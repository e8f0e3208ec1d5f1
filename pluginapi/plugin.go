package pluginapi

import (
	"time"

	"github.com/gedaiu/kameloso-go/event"
)

// Command describes one entry of a plugin's command surface (§4.7, §6):
// a trigger word or regex mapped to a human-facing description and
// syntax placeholder string (using "$command"/"$nickname" placeholders).
type Command struct {
	Trigger     string
	Description string
	Syntax      string
}

// SettingsDiagnostics is returned by ReadSettings: keys present in the
// config file that the plugin's settings struct doesn't recognise
// ("invalid"), and keys the struct expects that the file didn't supply
// ("missing") (§4.7, §7).
type SettingsDiagnostics struct {
	Missing []string
	Invalid []string
}

// Plugin is the lifecycle and handler-registration surface every
// plugin implements (§4.7). A plugin registers its HandlerDescriptors
// once, at construction, via Handlers(); the dispatcher stores and
// sorts them once per plugin (§9).
type Plugin interface {
	// Name is the plugin's unique identifier, used for bus addressing,
	// config sections, and diagnostics.
	Name() string

	// Handlers returns this plugin's declarative handler registrations,
	// including any awareness mixins it has imported (§4.4, §9).
	Handlers() []*HandlerDescriptor

	// ReadSettings melds the decoded config-file section for this
	// plugin into its in-memory settings. Fields the section does not
	// mention keep their in-memory value; a key the section does supply
	// replaces the field's value even when it was already set in memory.
	ReadSettings(section map[string]string) (SettingsDiagnostics, error)

	// InitResources resolves and opens any resource/config files the
	// plugin declared, after settings are loaded but before Start.
	InitResources() error

	// Start is called once, after all plugins have InitResources'd.
	Start() error

	// SetSetting sets a single named setting at runtime (the `set`
	// command, §4.7). Returns false if name is unknown.
	SetSetting(name, value string) bool

	// SerialiseSettings writes the current settings back out in the
	// config file's format, for `set`-triggered persistence.
	SerialiseSettings() (map[string]string, error)

	// PrintSettings renders the current settings for diagnostics.
	PrintSettings() string

	// Reload re-reads configuration/resources without a full restart.
	Reload() error

	// Teardown releases resources before the plugin is unloaded or the
	// process exits.
	Teardown() error

	// IsEnabled reflects the plugin's designated enabler setting
	// (§4.7). A disabled plugin's handlers are skipped entirely.
	IsEnabled() bool

	// Commands returns the plugin's command surface for help
	// aggregation (§6).
	Commands() map[string]Command

	// Postprocess may mutate the event before handlers run; it MUST
	// NOT itself re-dispatch (§4.1 step 1).
	Postprocess(ev *event.Event)

	// Periodically is invoked when the main loop observes
	// now >= State().NextPeriodical; the plugin is responsible for
	// advancing NextPeriodical (§4.5).
	Periodically(now time.Time)

	// OnBusMessage delivers a bus broadcast to the plugin (§4.6).
	OnBusMessage(header string, payload interface{})

	// State returns the plugin's own PluginState, so the dispatcher can
	// reach its awaiting-fiber/timed-fiber/trigger-request queues
	// without owning them.
	State() *State
}
