// Package dispatch composes event, pluginapi, match, privilege,
// scheduler, bus, and awareness into the dispatcher described in §4.1:
// the ordered traversal of plugins and their handlers, applying
// predicates in a fixed order, integrating the privilege filter's WHOIS
// replay queue and the cooperative scheduler's fiber wake-up. Grounded
// on the teacher's PluginHost (plugin_host.go), whose "enumerate
// registered plugins, route a request to the first that can handle it"
// shape generalises here to "enumerate registered plugins, route one
// event through each".
package dispatch

import (
	"fmt"
	"sort"
	"time"

	"github.com/gedaiu/kameloso-go/bus"
	"github.com/gedaiu/kameloso-go/event"
	internallog "github.com/gedaiu/kameloso-go/internal/log"
	"github.com/gedaiu/kameloso-go/ircwire"
	"github.com/gedaiu/kameloso-go/match"
	"github.com/gedaiu/kameloso-go/pluginapi"
	"github.com/gedaiu/kameloso-go/privilege"
	"github.com/gedaiu/kameloso-go/scheduler"
)

var log = internallog.WithComponent("dispatch")

// registeredPlugin bundles a plugin together with its handlers
// pre-sorted by awareness stage, so the per-event hot path never
// re-sorts (§9 "the dispatcher stores and sorts them once per plugin").
type registeredPlugin struct {
	plugin   pluginapi.Plugin
	byStage  map[pluginapi.AwarenessStage][]*pluginapi.HandlerDescriptor
}

// Engine is the dispatch core: it owns plugin registration order, the
// shared bus, and the matcher config, and drives one event at a time
// through every enabled plugin (§4.1).
type Engine struct {
	plugins []*registeredPlugin
	bus     *bus.Bus
	queue   ircwire.Queue
	cfg     match.Config
	bot     *pluginapi.BotConfig
	clock   func() time.Time
}

// New creates an Engine. queue receives any outbound wire commands the
// privilege filter issues (WHOIS lookups); clock defaults to time.Now
// when nil, overridable for deterministic tests.
func New(bot *pluginapi.BotConfig, queue ircwire.Queue, clock func() time.Time) *Engine {
	if clock == nil {
		clock = time.Now
	}
	return &Engine{
		bus:   bus.New(),
		queue: queue,
		bot:   bot,
		clock: clock,
	}
}

// Register adds a plugin in the order it should be dispatched (§4.1
// "deterministic registration order"). Handlers are partitioned by
// awareness stage immediately, once, matching §9's load-time sort.
func (e *Engine) Register(p pluginapi.Plugin) {
	rp := &registeredPlugin{
		plugin:  p,
		byStage: make(map[pluginapi.AwarenessStage][]*pluginapi.HandlerDescriptor),
	}
	for _, h := range p.Handlers() {
		if h.IsWildcard() && h.Chain == pluginapi.ImplicitTerminating && h.Stage == pluginapi.StageNormal {
			log.Warn("wildcard handler is neither chainable nor terminating",
				"plugin", p.Name(), "handler", h.Label)
		}
		rp.byStage[h.Stage] = append(rp.byStage[h.Stage], h)
	}
	e.plugins = append(e.plugins, rp)
	e.bus.Register(busAdapter{p})
}

// busAdapter satisfies bus.Recipient via a pluginapi.Plugin.
type busAdapter struct{ p pluginapi.Plugin }

func (a busAdapter) Name() string { return a.p.Name() }
func (a busAdapter) OnBusMessage(header string, payload interface{}) {
	a.p.OnBusMessage(header, payload)
}

// SendBus broadcasts header/payload to every registered plugin (§4.6).
func (e *Engine) SendBus(sender, header string, payload interface{}) {
	e.bus.Send(sender, header, payload)
}

// Dispatch routes a single parsed event through every enabled plugin in
// registration order (§4.1 contract steps 1-2), then wakes any
// continuations awaiting this event type (§4.5).
func (e *Engine) Dispatch(ev *event.Event) {
	for _, rp := range e.plugins {
		if !rp.plugin.IsEnabled() {
			continue
		}
		e.postprocessSafely(rp.plugin, ev)
	}
	for _, rp := range e.plugins {
		if !rp.plugin.IsEnabled() {
			continue
		}
		e.runPlugin(rp, ev)
	}
	for _, rp := range e.plugins {
		if !rp.plugin.IsEnabled() {
			continue
		}
		scheduler.WakeEvent(rp.plugin.State(), ev)
	}
}

// runPlugin processes one plugin's onEvent: the five awareness stages
// in order, each traversing its handlers in registration order (§4.1).
func (e *Engine) runPlugin(rp *registeredPlugin, ev *event.Event) {
	state := rp.plugin.State()
	for _, stage := range pluginapi.Stages() {
		handlers := rp.byStage[stage]
		if len(handlers) == 0 {
			continue
		}
		if !e.runStage(rp.plugin, state, handlers, ev) {
			return // a handler in this stage ended the plugin's traversal
		}
	}
}

// runStage traverses one stage's handlers, returning false if traversal
// of the whole plugin should stop (§4.1 step f).
func (e *Engine) runStage(p pluginapi.Plugin, state *pluginapi.State, handlers []*pluginapi.HandlerDescriptor, ev *event.Event) bool {
	for _, h := range handlers {
		keepGoing := e.runHandler(p, state, h, ev)
		if !keepGoing {
			return false
		}
	}
	return true
}

// runHandler applies predicates (a)-(f) from §4.1 to a single handler.
// It returns whether the plugin's traversal should continue to the next
// handler.
func (e *Engine) runHandler(p pluginapi.Plugin, state *pluginapi.State, h *pluginapi.HandlerDescriptor, ev *event.Event) bool {
	// (a) event-type predicate
	if !h.AcceptsType(ev.Type) {
		return true
	}
	// (b) channel policy
	if h.ChannelPolicy == pluginapi.ChannelHome && ev.Channel != "" && !e.bot.InHomeChannels(ev.Channel) {
		return true
	}

	// (c) mutable local copy + command matcher
	mutEvent := ev.Clone()
	if len(h.CommandWords) > 0 || len(h.Regexes) > 0 {
		result := match.MatchCommand(e.cfg, h, mutEvent)
		if !result.Matched {
			return true
		}
		mutEvent.Aux = result.Aux
		mutEvent.Content = result.Remainder
	}

	// (d) privilege filter
	if h.Privilege != pluginapi.PrivilegeIgnore {
		decision := privilege.Evaluate(h.Privilege, mutEvent.Sender, e.clock(), e.bot.WhoisRetry)
		switch decision {
		case privilege.Fail:
			return true
		case privilege.Whois:
			e.enqueueWhois(p, state, h, mutEvent)
			return true
		}
	}

	// (e) invoke, with the Unicode-retry-once failure semantics (§4.1
	// "Failure semantics", §7).
	outcome := e.invokeSafely(p, h, state, mutEvent)
	if outcome == pluginapi.OutcomeRepeatOnce {
		outcome = e.invokeSafely(p, h, state, mutEvent.Sanitize())
	}
	if outcome == pluginapi.OutcomeReturn {
		return false
	}

	// (f) chainability
	return h.IsChainable()
}

// postprocessSafely calls a plugin's Postprocess, catching any panic
// the same way invokeSafely does for handlers (§7: a postprocess
// failure is contained to its own plugin, never the connection).
func (e *Engine) postprocessSafely(p pluginapi.Plugin, ev *event.Event) {
	defer func() {
		if r := recover(); r != nil {
			herr := &HandlerError{Kind: ErrorKindPostprocess, Plugin: p.Name(), Handler: "Postprocess", Err: fmt.Errorf("%v", r)}
			log.Warn("postprocess panicked", "plugin", p.Name(), "event_type", ev.Type, "event_id", ev.ID, "error", herr)
		}
	}()
	p.Postprocess(ev)
}

// invokeSafely calls the handler, catching any panic as a logged
// handler exception that never aborts the plugin or connection (§4.1,
// §7 "Handler exception: log at warning level; continue with next
// handler").
func (e *Engine) invokeSafely(p pluginapi.Plugin, h *pluginapi.HandlerDescriptor, state *pluginapi.State, ev *event.Event) (outcome pluginapi.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			herr := &HandlerError{Kind: ErrorKindPanic, Plugin: p.Name(), Handler: h.Label, Err: fmt.Errorf("%v", r)}
			log.Warn("handler panicked", "plugin", p.Name(), "handler", h.Label, "event_type", ev.Type, "event_id", ev.ID, "error", herr)
			outcome = pluginapi.OutcomeContinue
		}
	}()
	return h.Invoke(state, ev)
}

// enqueueWhois wraps the current handler invocation as a TriggerRequest
// and issues an outbound WHOIS, unless the server doesn't support WHOIS
// at all (§4.3).
func (e *Engine) enqueueWhois(p pluginapi.Plugin, state *pluginapi.State, h *pluginapi.HandlerDescriptor, ev *event.Event) {
	nickname := ""
	if ev.Sender != nil {
		nickname = ev.Sender.Nickname
	}
	if nickname == "" {
		return
	}
	if !state.Server.SupportsWhois {
		privilege.DiscardUnsupported(state, nickname)
		return
	}

	req := &pluginapi.TriggerRequest{
		Event:      ev,
		Privilege:  h.Privilege,
		EnqueuedAt: e.clock(),
	}
	req.Replay = func() {
		e.invokeSafely(p, h, state, req.Event)
	}
	privilege.Enqueue(state, nickname, req)

	if e.queue != nil {
		e.queue.Post(ircwire.WhoisCmd(nickname))
	}
}

// DrainWhois replays state's trigger-request queue for nickname now
// that identity information has arrived; it is the closure awareness's
// MinimalAuthentication mixin calls on RPL_WHOISACCOUNT/RPL_WHOISREGNICK/
// RPL_ENDOFWHOIS (§4.3).
func (e *Engine) DrainWhois(state *pluginapi.State, nickname string) {
	privilege.Drain(state, nickname, e.clock(), e.bot.WhoisRetry)
}

// Tick advances the scheduler: sweeps timed fibers and runs any
// plugin's Periodically whose nextPeriodical has arrived (§4.5, "at
// least once per second").
func (e *Engine) Tick(now time.Time) {
	for _, rp := range e.plugins {
		scheduler.SweepTimed(rp.plugin.State(), now)
		scheduler.RunPeriodical(rp.plugin.State(), now, rp.plugin.Periodically)
	}
}

// SetMatchConfig installs the global prefix / nickname the matcher
// needs; callers update it after a NICK change to the bot's own nick.
func (e *Engine) SetMatchConfig(cfg match.Config) {
	e.cfg = cfg
}

// HelpIndex aggregates every enabled plugin's command surface for the
// help listing (§6 "the core aggregates these for help listing"),
// sorted by trigger for stable output.
func (e *Engine) HelpIndex() []HelpEntry {
	var entries []HelpEntry
	for _, rp := range e.plugins {
		if !rp.plugin.IsEnabled() {
			continue
		}
		for trigger, cmd := range rp.plugin.Commands() {
			entries = append(entries, HelpEntry{
				Plugin:      rp.plugin.Name(),
				Trigger:     trigger,
				Description: cmd.Description,
				Syntax:      cmd.Syntax,
			})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Trigger != entries[j].Trigger {
			return entries[i].Trigger < entries[j].Trigger
		}
		return entries[i].Plugin < entries[j].Plugin
	})
	return entries
}

// HelpEntry is one aggregated command-surface row (§6).
type HelpEntry struct {
	Plugin      string
	Trigger     string
	Description string
	Syntax      string
}
