// Package awareness provides the three composable aspects of §4.4: user,
// channel, and platform-specific state tracking, each a pre-packaged
// set of HandlerDescriptors a plugin imports into its own registry. The
// handler bodies are grounded on lrstanley/girc's built-in state
// tracking (handlers.go, builtin.go): handleJOIN/handlePART/handleNICK/
// handleQUIT/handleWHO/handleNAMES/handleTOPIC there map directly onto
// the user- and channel-awareness handlers here, generalised from
// girc's single in-process Client.state to this core's per-plugin
// PluginState.
package awareness

import (
	"strings"
	"time"

	"github.com/gedaiu/kameloso-go/event"
	"github.com/gedaiu/kameloso-go/pluginapi"
)

// HoursBetweenRehashes is the default periodic rehash interval for user
// awareness (§4.4 "every hoursBetweenRehashes, default 12").
const HoursBetweenRehashes = 12

// User returns the user-awareness handler set (§4.4).
func User(plugin string) []*pluginapi.HandlerDescriptor {
	return []*pluginapi.HandlerDescriptor{
		pluginapi.NewHandler(plugin, "awareness.user.quit").
			Types(event.QUIT).
			Awareness(pluginapi.StageEarly).
			Chainable().
			FuncBoth(onUserQuit),

		pluginapi.NewHandler(plugin, "awareness.user.nick").
			Types(event.NICK).
			Awareness(pluginapi.StageEarly).
			Chainable().
			FuncBoth(onUserNick),

		pluginapi.NewHandler(plugin, "awareness.user.facts").
			Types(event.RPL_WHOISUSER, event.RPL_WHOREPLY, event.RPL_WHOSPCRPL, event.CHGHOST).
			Awareness(pluginapi.StageEarly).
			Chainable().
			FuncBoth(onUserFacts),

		pluginapi.NewHandler(plugin, "awareness.user.catch_sender").
			Types(event.JOIN, event.ACCOUNT).
			Awareness(pluginapi.StageEarly).
			Chainable().
			FuncBoth(onCatchSender),

		pluginapi.NewHandler(plugin, "awareness.user.names").
			Types(event.RPL_NAMREPLY).
			Awareness(pluginapi.StageEarly).
			Chainable().
			FuncBoth(onNamesReply),

		pluginapi.NewHandler(plugin, "awareness.user.rehash").
			Types(event.RPL_ENDOFNAMES, event.RPL_ENDOFWHO).
			Awareness(pluginapi.StageCleanup).
			Chainable().
			FuncBoth(onRehashTrigger),

		pluginapi.NewHandler(plugin, "awareness.user.periodic_rehash").
			Types(event.PING).
			Awareness(pluginapi.StageCleanup).
			Chainable().
			FuncBoth(onPeriodicRehash),
	}
}

func onUserQuit(s *pluginapi.State, ev *event.Event) pluginapi.Outcome {
	if ev.Sender == nil {
		return pluginapi.OutcomeContinue
	}
	delete(s.Users, ev.Sender.Nickname)
	return pluginapi.OutcomeContinue
}

func onUserNick(s *pluginapi.State, ev *event.Event) pluginapi.Outcome {
	if ev.Sender == nil || ev.Aux == "" {
		return pluginapi.OutcomeContinue
	}
	old := ev.Sender.Nickname
	u, ok := s.Users[old]
	if !ok {
		return pluginapi.OutcomeContinue
	}
	delete(s.Users, old)
	u.Nickname = ev.Aux
	s.Users[ev.Aux] = u
	for _, ch := range s.Channels {
		ch.RenameUser(old, ev.Aux)
	}
	return pluginapi.OutcomeContinue
}

// onUserFacts melds fresh WHOIS/WHO/CHGHOST facts into the stored user,
// grounded on girc's handleWHO (dd077ad9_lrstanley-girc__handlers.go.go).
func onUserFacts(s *pluginapi.State, ev *event.Event) pluginapi.Outcome {
	if ev.Target == nil {
		return pluginapi.OutcomeContinue
	}
	existing, ok := s.Users[ev.Target.Nickname]
	if !ok {
		existing = &event.User{Nickname: ev.Target.Nickname}
		s.Users[ev.Target.Nickname] = existing
	}
	existing.Meld(ev.Target)
	if ev.Type == event.RPL_WHOISUSER {
		existing.LastWhois = ev.Time
	}
	return pluginapi.OutcomeContinue
}

func onCatchSender(s *pluginapi.State, ev *event.Event) pluginapi.Outcome {
	if ev.Sender == nil {
		return pluginapi.OutcomeContinue
	}
	existing, ok := s.Users[ev.Sender.Nickname]
	if !ok {
		s.Users[ev.Sender.Nickname] = ev.Sender.Clone()
		return pluginapi.OutcomeContinue
	}
	existing.Meld(ev.Sender)
	return pluginapi.OutcomeContinue
}

// onNamesReply enumerates channel participants, supporting both the
// short ("nick1 nick2") and full ("@nick1 +nick2") NAMES forms (§4.4),
// grounded on girc's handleNAMES.
func onNamesReply(s *pluginapi.State, ev *event.Event) pluginapi.Outcome {
	if ev.Channel == "" {
		return pluginapi.OutcomeContinue
	}
	ch, ok := s.Channels[ev.Channel]
	if !ok {
		return pluginapi.OutcomeContinue
	}
	for _, raw := range strings.Fields(ev.Content) {
		nick := strings.TrimLeft(raw, "@+%&~!")
		if nick == "" {
			continue
		}
		ch.AddUser(nick)
		if _, ok := s.Users[nick]; !ok {
			s.Users[nick] = &event.User{Nickname: nick}
		}
	}
	return pluginapi.OutcomeContinue
}

func onRehashTrigger(s *pluginapi.State, ev *event.Event) pluginapi.Outcome {
	rehash(s, ev.Time)
	return pluginapi.OutcomeContinue
}

func onPeriodicRehash(s *pluginapi.State, ev *event.Event) pluginapi.Outcome {
	if ev.Time.Sub(s.LastRehash) >= HoursBetweenRehashes*time.Hour {
		rehash(s, ev.Time)
	}
	return pluginapi.OutcomeContinue
}

// rehash is a no-op placeholder for "rehash the users map for lookup
// efficiency" (§4.4): this implementation's Users map is already the
// lookup index, so rehashing is the point at which a real deployment
// would rebuild secondary indexes (e.g. by account). Kept as an
// explicit hook so plugins composing user awareness have a single place
// to add one.
func rehash(s *pluginapi.State, now time.Time) {
	s.LastRehash = now
}
