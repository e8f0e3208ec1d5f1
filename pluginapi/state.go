package pluginapi

import (
	"time"

	"github.com/gedaiu/kameloso-go/event"
)

// Identity is the bot's own connection identity (§3 PluginState.client).
type Identity struct {
	Nickname string
	Ident    string
	Account  string
}

// ServerInfo carries capability and mode metadata for the connected
// server (§3 PluginState.server).
type ServerInfo struct {
	Daemon        string // e.g. "twitch", "" for a generic IRCd
	Capabilities  map[string]bool
	SupportsWhois bool
}

// BotConfig is the shared bot configuration a plugin's state references
// (§3 PluginState.bot).
type BotConfig struct {
	HomeChannels  []string
	GuestChannels []string
	Prefix        string
	WhoisRetry    time.Duration
}

// InHomeChannels reports whether ch is one of the configured home
// channels (§4.1 step b).
func (b *BotConfig) InHomeChannels(ch string) bool {
	for _, h := range b.HomeChannels {
		if h == ch {
			return true
		}
	}
	return false
}

// TriggerRequest is a deferred handler invocation awaiting WHOIS
// identity resolution (§3 TriggerRequest, §4.3).
type TriggerRequest struct {
	Event       *event.Event
	Privilege   PrivilegeLevel
	EnqueuedAt  time.Time
	// Replay invokes the original handler now that identity is known.
	// It is a closure binding the handler, plugin state, and event
	// captured at enqueue time (§9 "Trigger-request polymorphism").
	Replay func()
}

// Expired reports whether this request has outlived whoisRetry and
// should be garbage-collected rather than replayed (§3 TriggerRequest
// lifecycle, §8 "Timeout on WHOIS replay").
func (r *TriggerRequest) Expired(now time.Time, whoisRetry time.Duration) bool {
	return now.Sub(r.EnqueuedAt) > whoisRetry
}

// Payload is what a scheduler resumes a continuation with: either the
// event that woke it (event-awaited continuations) or the time it fired
// at (timed continuations) (§4.5).
type Payload struct {
	Event *event.Event
	Time  time.Time
}

// Continuation is a suspended cooperative task (§4.5, §9 "Fibers").
// Rather than model Fiber.yield with a goroutine, a continuation here
// is a plain closure the scheduler calls synchronously from the single
// dispatch loop; a continuation that needs to keep waiting re-registers
// itself (by calling the scheduler package with the State it captured
// by closure; only a Payload is passed to it) before returning, instead
// of blocking. See DESIGN.md for why this is the
// idiomatic Go rendering of the spec's fiber language.
type Continuation func(Payload)

// TimedFiber is a continuation scheduled to wake at a specific time
// (§3 PluginState.timedFibers, §4.5 delayFiber).
type TimedFiber struct {
	Continuation Continuation
	WakeAt       time.Time
}

// State is the per-plugin shared context (§3 PluginState). The
// dispatcher holds a non-owning reference while invoking handlers; each
// plugin exclusively owns its own State.
type State struct {
	Name   string
	Client Identity
	Server ServerInfo
	Bot    *BotConfig

	Users    map[string]*event.User
	Channels map[string]*event.Channel

	TriggerRequestQueue map[string][]*TriggerRequest
	AwaitingFibers      map[event.Type][]Continuation
	TimedFibers         []*TimedFiber
	NextPeriodical      time.Time

	// LastRehash records when user/channel awareness last rehashed its
	// lookup indexes, driving the periodic-rehash-on-PING handler
	// (§4.4 "every hoursBetweenRehashes").
	LastRehash time.Time

	// Epoch is bumped to invalidate outstanding timed continuations
	// without preemptive cancellation (§5 "business logic gates them on
	// an epoch counter").
	Epoch int
}

// NewState creates an empty plugin state container. NextPeriodical is
// seeded to now rather than left zero, so a plugin is first due at the
// next tick; from then on RunPeriodical advances NextPeriodical (by
// MainLoopPeriod when Periodically leaves it unchanged), so a no-op
// Periodically fires once per period rather than on every call (§4.5).
func NewState(name string, bot *BotConfig) *State {
	return &State{
		Name:                name,
		Bot:                 bot,
		Users:               make(map[string]*event.User),
		Channels:            make(map[string]*event.Channel),
		TriggerRequestQueue: make(map[string][]*TriggerRequest),
		AwaitingFibers:      make(map[event.Type][]Continuation),
		NextPeriodical:      time.Now(),
	}
}

// RemoveUserIfOrphaned deletes nick from Users if it is no longer a
// member of any tracked channel (§4.4 channel awareness, §8 "After
// SELFPART of channel C, no user appears in users whose membership was
// only through C").
func (s *State) RemoveUserIfOrphaned(nick string) {
	for _, ch := range s.Channels {
		if ch.HasUser(nick) {
			return
		}
	}
	delete(s.Users, nick)
}
