// Package privilege implements the privilege filter and WHOIS replay
// queue (§4.3). The expiry check mirrors the teacher's CacheEntry TTL
// pattern (registry.go's isExpired), repurposed from "is this cached
// capability definition stale" to "is this cached WHOIS result stale".
package privilege

import (
	"time"

	"github.com/gedaiu/kameloso-go/event"
	"github.com/gedaiu/kameloso-go/pluginapi"
)

// Decision is the outcome of evaluating a privilege level against a
// sender (§4.3).
type Decision int

const (
	Pass Decision = iota
	Fail
	Whois
)

// Evaluate applies the §4.3 decision table.
func Evaluate(level pluginapi.PrivilegeLevel, sender *event.User, now time.Time, whoisRetry time.Duration) Decision {
	if level == pluginapi.PrivilegeIgnore {
		return Pass
	}
	if sender == nil {
		return Whois
	}
	if sender.Class == event.ClassBlacklist {
		return Fail
	}

	expired := now.Sub(sender.LastWhois) > whoisRetry

	if sender.Account != "" {
		if satisfiesWithAccount(level, sender.Class) {
			if level == pluginapi.PrivilegeAnyone && expired {
				return Whois
			}
			return Pass
		}
		// An account is known but doesn't (yet) satisfy the level; a
		// stale cache is worth refreshing, otherwise the sender truly
		// lacks the privilege.
		if expired {
			return Whois
		}
		return Fail
	}

	// No account known.
	switch level {
	case pluginapi.PrivilegeAnyone:
		if expired {
			return Whois
		}
		return Pass
	default:
		if expired {
			return Whois
		}
		return Fail
	}
}

// satisfiesWithAccount implements the class-based ladder: admin passes
// any level up to admin, operator up to operator, whitelist up to
// whitelist, a non-empty account satisfies registered, anyone passes
// anyone (§4.3).
func satisfiesWithAccount(level pluginapi.PrivilegeLevel, class event.Class) bool {
	switch level {
	case pluginapi.PrivilegeAdmin:
		return class == event.ClassAdmin
	case pluginapi.PrivilegeOperator:
		return class == event.ClassAdmin || class == event.ClassOperator
	case pluginapi.PrivilegeWhitelist:
		return class == event.ClassAdmin || class == event.ClassOperator || class == event.ClassWhitelist
	case pluginapi.PrivilegeRegistered:
		return true // a non-empty account always satisfies "registered"
	case pluginapi.PrivilegeAnyone:
		return true
	default:
		return false
	}
}

// Enqueue appends a TriggerRequest for nickname, per the
// §4.3 "wrap the current handler invocation... as a TriggerRequest"
// step. The caller supplies the replay closure; Enqueue only owns
// queue bookkeeping.
func Enqueue(state *pluginapi.State, nickname string, req *pluginapi.TriggerRequest) {
	state.TriggerRequestQueue[nickname] = append(state.TriggerRequestQueue[nickname], req)
}

// DiscardUnsupported clears nickname's pending requests on a platform
// that doesn't support WHOIS; other nicknames' requests are left queued
// (§4.3, §7 "Unsupported operation on platform").
func DiscardUnsupported(state *pluginapi.State, nickname string) {
	delete(state.TriggerRequestQueue, nickname)
}

// ClearAll drops the entire queue, used when the server signals WHOIS
// is unsupported via ERR_UNKNOWNCOMMAND for WHOIS (§4.3, §8 Scenario 6).
func ClearAll(state *pluginapi.State) {
	state.TriggerRequestQueue = make(map[string][]*pluginapi.TriggerRequest)
}

// Drain processes the pending requests for nickname against its
// now-known class, invoking Replay for any that pass and discarding
// expired or failing ones (§4.3, §8 "idempotence": a request is removed
// from the queue before/at the point it is invoked, so it can never be
// replayed twice).
func Drain(state *pluginapi.State, nickname string, now time.Time, whoisRetry time.Duration) {
	pending := state.TriggerRequestQueue[nickname]
	if len(pending) == 0 {
		return
	}
	delete(state.TriggerRequestQueue, nickname)

	sender := state.Users[nickname]
	for _, req := range pending {
		if req.Expired(now, whoisRetry) {
			continue
		}
		decision := Evaluate(req.Privilege, sender, now, whoisRetry)
		if decision == Pass {
			req.Replay()
		}
		// Fail or Whois-again: drop. A second WHOIS round-trip for an
		// already-deferred request is not re-queued automatically; the
		// handler's own predicate evaluation next time the event
		// recurs will re-enqueue if still relevant.
	}
}
