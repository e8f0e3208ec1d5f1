// Package scheduler implements the cooperative fiber scheduler (§4.5):
// continuations awaiting an event type or a future time. Continuations
// are plain closures (pluginapi.Continuation) invoked synchronously
// from the dispatch loop — see DESIGN.md for why this replaces the
// spec's "Fiber.yield" coroutine language without goroutines.
package scheduler

import (
	"time"

	"github.com/gedaiu/kameloso-go/event"
	"github.com/gedaiu/kameloso-go/pluginapi"
)

// AwaitEvent appends a continuation to be resumed the next time an
// event of type t is dispatched (§4.5).
func AwaitEvent(state *pluginapi.State, c pluginapi.Continuation, t event.Type) {
	state.AwaitingFibers[t] = append(state.AwaitingFibers[t], c)
}

// AwaitEvents fans a continuation out across several event types
// (§4.5 awaitEvents). Because a continuation is plain data here (not a
// stateful coroutine handle), fanning out registers the same closure
// under each type, so it is resumed once for each of those types that
// is dispatched, not only for the first; the closure
// itself is responsible for ignoring a wake it doesn't care about and
// re-registering if it must keep waiting.
func AwaitEvents(state *pluginapi.State, c pluginapi.Continuation, types []event.Type) {
	for _, t := range types {
		AwaitEvent(state, c, t)
	}
}

// DelayFiber schedules a continuation to be resumed at least `in` from
// now (§4.5 delayFiber).
func DelayFiber(state *pluginapi.State, c pluginapi.Continuation, in time.Duration, now time.Time) {
	state.TimedFibers = append(state.TimedFibers, &pluginapi.TimedFiber{
		Continuation: c,
		WakeAt:       now.Add(in),
	})
}

// WakeEvent drains and resumes every continuation awaiting ev.Type,
// passing it the event as payload. A continuation that yields again
// (by re-registering itself before returning) is not automatically
// re-enqueued under the old registration — each call to AwaitEvent
// starts a fresh wait (§4.5).
func WakeEvent(state *pluginapi.State, ev *event.Event) {
	pending := state.AwaitingFibers[ev.Type]
	if len(pending) == 0 {
		return
	}
	delete(state.AwaitingFibers, ev.Type)
	for _, c := range pending {
		c(pluginapi.Payload{Event: ev})
	}
}

// SweepTimed resumes and removes every timed continuation whose wake
// time has passed (§4.5, §8 "resumed at a time >= t+d and < t+d+1+ε").
func SweepTimed(state *pluginapi.State, now time.Time) {
	var remaining []*pluginapi.TimedFiber
	var due []*pluginapi.TimedFiber
	for _, tf := range state.TimedFibers {
		if !now.Before(tf.WakeAt) {
			due = append(due, tf)
		} else {
			remaining = append(remaining, tf)
		}
	}
	state.TimedFibers = remaining
	for _, tf := range due {
		tf.Continuation(pluginapi.Payload{Time: now})
	}
}

// MainLoopPeriod is the scheduler's minimum tick rate: timed
// continuations and plugin periodicals are swept at least this often
// (§4.5 "at least once per second").
const MainLoopPeriod = time.Second

// RunPeriodical invokes plugin.Periodically if now has reached the
// plugin's NextPeriodical (§4.5). The plugin is expected to advance
// NextPeriodical itself to set its own cadence; a plugin that leaves it
// unchanged (the common no-op Periodically) instead falls back to
// MainLoopPeriod here, so it fires at most once per MainLoopPeriod
// rather than on every call once it first becomes due.
func RunPeriodical(state *pluginapi.State, now time.Time, fn func(time.Time)) {
	if state.NextPeriodical.IsZero() || !now.Before(state.NextPeriodical) {
		before := state.NextPeriodical
		fn(now)
		if state.NextPeriodical == before {
			state.NextPeriodical = now.Add(MainLoopPeriod)
		}
	}
}
