// Package pluginapi is the declarative registration surface plugins use
// to describe their handlers to the dispatcher (§3 HandlerDescriptor,
// §4.1). It mirrors the shape of the teacher's capability predicates
// (capability.go, capability_key.go) generalised from "does this cap
// URN match" to "does this event match this handler".
package pluginapi

import (
	"regexp"

	"github.com/gedaiu/kameloso-go/event"
)

// ChannelPolicy restricts which channels a handler may fire in.
type ChannelPolicy int

const (
	// ChannelAny allows the handler to fire for any channel (or none,
	// for non-channel events).
	ChannelAny ChannelPolicy = iota
	// ChannelHome restricts the handler to bot.HomeChannels.
	ChannelHome
)

// PrefixPolicy controls how message content is reduced to a command
// token (§4.2).
type PrefixPolicy int

const (
	// PrefixDirect matches always; content is unchanged.
	PrefixDirect PrefixPolicy = iota
	// PrefixPrefixed requires the configured global prefix, falling
	// back to PrefixNickname when the prefix is empty (§4.2, §9 Open
	// Questions — made an explicit policy here rather than a build flag).
	PrefixPrefixed
	// PrefixNickname requires the bot's own nickname followed by a
	// separator, except for QUERY events where it is not required.
	PrefixNickname
)

// PrivilegeLevel is the minimum sender classification required for a
// handler to run (§4.3). Ascending order.
type PrivilegeLevel int

const (
	PrivilegeIgnore PrivilegeLevel = iota
	PrivilegeAnyone
	PrivilegeRegistered
	PrivilegeWhitelist
	PrivilegeOperator
	PrivilegeAdmin
)

// Chainability controls whether a plugin's handler traversal continues
// after this handler runs (§4.1 step f).
type Chainability int

const (
	Chainable Chainability = iota
	Terminating
	// ImplicitTerminating behaves like Terminating but is the default
	// assigned to handlers that did not declare a chainability, so
	// load-time tooling can tell "explicitly chainable" apart from
	// "never considered it".
	ImplicitTerminating
)

// AwarenessStage orders handlers within a plugin's traversal of a single
// event (§4.1, §4.4).
type AwarenessStage int

const (
	StageSetup AwarenessStage = iota
	StageEarly
	StageNormal
	StageLate
	StageCleanup
)

var stageOrder = []AwarenessStage{StageSetup, StageEarly, StageNormal, StageLate, StageCleanup}

// Stages returns the five awareness stages in dispatch order.
func Stages() []AwarenessStage { return append([]AwarenessStage(nil), stageOrder...) }

// Outcome is the result of invoking a single handler (§4.1).
type Outcome int

const (
	OutcomeContinue Outcome = iota
	OutcomeReturn
	OutcomeRepeatOnce
)

// Arity identifies which of the four call signatures a handler function
// uses (§3 HandlerDescriptor, §9 "Trigger-request polymorphism over
// arities").
type Arity int

const (
	ArityNone Arity = iota
	ArityEvent
	ArityPlugin
	ArityPluginEvent
)

// HandlerFunc0 takes no arguments.
type HandlerFunc0 func() Outcome

// HandlerFuncEvent takes the event.
type HandlerFuncEvent func(*event.Event) Outcome

// HandlerFuncPlugin takes the plugin state.
type HandlerFuncPlugin func(*State) Outcome

// HandlerFuncPluginEvent takes both.
type HandlerFuncPluginEvent func(*State, *event.Event) Outcome

// HandlerDescriptor is a single registered handler together with its
// declarative predicates (§3).
type HandlerDescriptor struct {
	Plugin        string
	Label         string
	EventTypes    []event.Type
	ChannelPolicy ChannelPolicy
	PrefixPolicy  PrefixPolicy
	CommandWords  []string
	Regexes       []*regexp.Regexp
	Privilege     PrivilegeLevel
	Chain         Chainability
	Stage         AwarenessStage
	Verbose       bool

	Arity     Arity
	Func0     HandlerFunc0
	FuncEvent HandlerFuncEvent
	FuncPlugin HandlerFuncPlugin
	FuncBoth  HandlerFuncPluginEvent
}

// AcceptsType reports whether this handler's event-type predicate
// matches t. ANY matches anything (§4.1 "Wildcard note").
func (h *HandlerDescriptor) AcceptsType(t event.Type) bool {
	for _, want := range h.EventTypes {
		if want == event.ANY || want == t {
			return true
		}
	}
	return false
}

// IsWildcard reports whether this handler is registered against ANY.
func (h *HandlerDescriptor) IsWildcard() bool {
	for _, t := range h.EventTypes {
		if t == event.ANY {
			return true
		}
	}
	return false
}

// Invoke calls the handler with whichever arity it declared (§3, §9).
func (h *HandlerDescriptor) Invoke(state *State, ev *event.Event) Outcome {
	switch h.Arity {
	case ArityNone:
		return h.Func0()
	case ArityEvent:
		return h.FuncEvent(ev)
	case ArityPlugin:
		return h.FuncPlugin(state)
	case ArityPluginEvent:
		return h.FuncBoth(state, ev)
	default:
		return OutcomeContinue
	}
}

// IsChainable reports whether traversal should continue to the next
// handler after this one runs (§4.1 step f): a handler explicitly
// marked Chainable does, as does any awareness-stage handler that
// wasn't explicitly marked Terminating.
func (h *HandlerDescriptor) IsChainable() bool {
	if h.Chain == Chainable {
		return true
	}
	if h.Chain == Terminating {
		return false
	}
	// ImplicitTerminating: awareness handlers default to falling
	// through unless they are in the normal stage, matching §4.1's
	// description of ordinary (non-awareness) handlers terminating by
	// default and awareness handlers chaining by default.
	return h.Stage != StageNormal
}
