package pluginapi

import (
	"regexp"

	"github.com/gedaiu/kameloso-go/event"
)

// HandlerBuilder provides a fluent builder for HandlerDescriptor,
// mirroring the teacher's CapabilityIdBuilder/CapabilityKeyBuilder
// fluent builders (capability_id_builder.go, capability_key_builder.go)
// repurposed for assembling a plugin's declarative handler registration
// instead of a capability identifier.
type HandlerBuilder struct {
	h *HandlerDescriptor
}

// NewHandler starts a builder for a handler owned by the given plugin.
func NewHandler(plugin, label string) *HandlerBuilder {
	return &HandlerBuilder{h: &HandlerDescriptor{
		Plugin: plugin,
		Label:  label,
		Stage:  StageNormal,
		Chain:  ImplicitTerminating,
	}}
}

// Types sets the accepted event types.
func (b *HandlerBuilder) Types(types ...event.Type) *HandlerBuilder {
	b.h.EventTypes = append(b.h.EventTypes, types...)
	return b
}

// Channel sets the channel policy.
func (b *HandlerBuilder) Channel(p ChannelPolicy) *HandlerBuilder {
	b.h.ChannelPolicy = p
	return b
}

// Prefix sets the prefix policy.
func (b *HandlerBuilder) Prefix(p PrefixPolicy) *HandlerBuilder {
	b.h.PrefixPolicy = p
	return b
}

// Words sets the command words.
func (b *HandlerBuilder) Words(words ...string) *HandlerBuilder {
	b.h.CommandWords = append(b.h.CommandWords, words...)
	return b
}

// Regex adds a regular expression predicate.
func (b *HandlerBuilder) Regex(re *regexp.Regexp) *HandlerBuilder {
	b.h.Regexes = append(b.h.Regexes, re)
	return b
}

// Privilege sets the required privilege level.
func (b *HandlerBuilder) Privilege(p PrivilegeLevel) *HandlerBuilder {
	b.h.Privilege = p
	return b
}

// Chainable marks the handler as falling through to the next handler.
func (b *HandlerBuilder) Chainable() *HandlerBuilder {
	b.h.Chain = Chainable
	return b
}

// Terminating marks the handler as ending the plugin's traversal.
func (b *HandlerBuilder) Terminating() *HandlerBuilder {
	b.h.Chain = Terminating
	return b
}

// Awareness sets the awareness stage.
func (b *HandlerBuilder) Awareness(s AwarenessStage) *HandlerBuilder {
	b.h.Stage = s
	return b
}

// Verbose marks the handler as opting into verbose/debug logging.
func (b *HandlerBuilder) Verbose() *HandlerBuilder {
	b.h.Verbose = true
	return b
}

// Func0 attaches a no-argument handler function.
func (b *HandlerBuilder) Func0(fn HandlerFunc0) *HandlerDescriptor {
	b.h.Arity = ArityNone
	b.h.Func0 = fn
	return b.h
}

// FuncEvent attaches an event-argument handler function.
func (b *HandlerBuilder) FuncEvent(fn HandlerFuncEvent) *HandlerDescriptor {
	b.h.Arity = ArityEvent
	b.h.FuncEvent = fn
	return b.h
}

// FuncPlugin attaches a plugin-state-argument handler function.
func (b *HandlerBuilder) FuncPlugin(fn HandlerFuncPlugin) *HandlerDescriptor {
	b.h.Arity = ArityPlugin
	b.h.FuncPlugin = fn
	return b.h
}

// FuncBoth attaches a (plugin, event)-argument handler function.
func (b *HandlerBuilder) FuncBoth(fn HandlerFuncPluginEvent) *HandlerDescriptor {
	b.h.Arity = ArityPluginEvent
	b.h.FuncBoth = fn
	return b.h
}
