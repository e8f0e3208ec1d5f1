package awareness

import (
	"github.com/gedaiu/kameloso-go/event"
	"github.com/gedaiu/kameloso-go/pluginapi"
)

// Channel returns the channel-awareness handler set (§4.4), grounded on
// girc's handleJOIN/handlePART/handleTOPIC/handleMODE channel-state
// bookkeeping.
func Channel(plugin string) []*pluginapi.HandlerDescriptor {
	return []*pluginapi.HandlerDescriptor{
		pluginapi.NewHandler(plugin, "awareness.channel.selfjoin").
			Types(event.SELFJOIN).
			Awareness(pluginapi.StageEarly).
			Chainable().
			FuncBoth(onSelfJoin),

		pluginapi.NewHandler(plugin, "awareness.channel.selfpart").
			Types(event.SELFPART, event.SELFKICK).
			Awareness(pluginapi.StageEarly).
			Chainable().
			FuncBoth(onSelfPartOrKick),

		pluginapi.NewHandler(plugin, "awareness.channel.join").
			Types(event.JOIN).
			Awareness(pluginapi.StageEarly).
			Chainable().
			FuncBoth(onJoin),

		pluginapi.NewHandler(plugin, "awareness.channel.part_quit").
			Types(event.PART, event.QUIT, event.KICK).
			Awareness(pluginapi.StageEarly).
			Chainable().
			FuncBoth(onPartQuitKick),

		pluginapi.NewHandler(plugin, "awareness.channel.nick").
			Types(event.NICK).
			Awareness(pluginapi.StageLate).
			Chainable().
			FuncBoth(onChannelNick),

		pluginapi.NewHandler(plugin, "awareness.channel.topic").
			Types(event.TOPIC, event.RPL_TOPIC).
			Awareness(pluginapi.StageEarly).
			Chainable().
			FuncBoth(onTopic),

		pluginapi.NewHandler(plugin, "awareness.channel.creationtime").
			Types(event.RPL_CREATIONTIME).
			Awareness(pluginapi.StageEarly).
			Chainable().
			FuncBoth(onCreationTime),

		pluginapi.NewHandler(plugin, "awareness.channel.mode").
			Types(event.MODE, event.RPL_CHANNELMODEIS).
			Awareness(pluginapi.StageEarly).
			Chainable().
			FuncBoth(onMode),

		pluginapi.NewHandler(plugin, "awareness.channel.listmodes").
			Types(event.RPL_BANLIST, event.RPL_EXCEPTLIST, event.RPL_INVITELIST, event.RPL_REOPLIST, event.RPL_QUIETLIST).
			Awareness(pluginapi.StageEarly).
			Chainable().
			FuncBoth(onListMode),
	}
}

func onSelfJoin(s *pluginapi.State, ev *event.Event) pluginapi.Outcome {
	if ev.Channel == "" {
		return pluginapi.OutcomeContinue
	}
	if _, ok := s.Channels[ev.Channel]; !ok {
		s.Channels[ev.Channel] = event.NewChannel(ev.Channel)
	}
	return pluginapi.OutcomeContinue
}

func onSelfPartOrKick(s *pluginapi.State, ev *event.Event) pluginapi.Outcome {
	if ev.Channel == "" {
		return pluginapi.OutcomeContinue
	}
	ch, ok := s.Channels[ev.Channel]
	if !ok {
		return pluginapi.OutcomeContinue
	}
	members := make([]string, 0, len(ch.Users))
	for nick := range ch.Users {
		members = append(members, nick)
	}
	delete(s.Channels, ev.Channel)
	for _, nick := range members {
		s.RemoveUserIfOrphaned(nick)
	}
	return pluginapi.OutcomeContinue
}

func onJoin(s *pluginapi.State, ev *event.Event) pluginapi.Outcome {
	if ev.Channel == "" || ev.Sender == nil {
		return pluginapi.OutcomeContinue
	}
	ch, ok := s.Channels[ev.Channel]
	if !ok {
		return pluginapi.OutcomeContinue
	}
	ch.AddUser(ev.Sender.Nickname)
	return pluginapi.OutcomeContinue
}

func onPartQuitKick(s *pluginapi.State, ev *event.Event) pluginapi.Outcome {
	nick := ""
	if ev.Type == event.KICK {
		if ev.Target != nil {
			nick = ev.Target.Nickname
		}
	} else if ev.Sender != nil {
		nick = ev.Sender.Nickname
	}
	if nick == "" {
		return pluginapi.OutcomeContinue
	}
	if ev.Channel != "" {
		if ch, ok := s.Channels[ev.Channel]; ok {
			ch.RemoveUser(nick)
		}
	} else {
		// QUIT carries no channel; remove from every channel the user
		// was tracked in.
		for _, ch := range s.Channels {
			ch.RemoveUser(nick)
		}
	}
	s.RemoveUserIfOrphaned(nick)
	return pluginapi.OutcomeContinue
}

func onChannelNick(s *pluginapi.State, ev *event.Event) pluginapi.Outcome {
	if ev.Sender == nil || ev.Aux == "" {
		return pluginapi.OutcomeContinue
	}
	for _, ch := range s.Channels {
		ch.RenameUser(ev.Sender.Nickname, ev.Aux)
	}
	return pluginapi.OutcomeContinue
}

func onTopic(s *pluginapi.State, ev *event.Event) pluginapi.Outcome {
	if ev.Channel == "" {
		return pluginapi.OutcomeContinue
	}
	if ch, ok := s.Channels[ev.Channel]; ok {
		ch.Topic = ev.Content
	}
	return pluginapi.OutcomeContinue
}

func onCreationTime(s *pluginapi.State, ev *event.Event) pluginapi.Outcome {
	if ev.Channel == "" {
		return pluginapi.OutcomeContinue
	}
	ch, ok := s.Channels[ev.Channel]
	if !ok {
		return pluginapi.OutcomeContinue
	}
	ch.Created = ev.Time
	return pluginapi.OutcomeContinue
}

// listModeLetters are the mode letters §4.4 treats as list-valued
// (values accumulate rather than replace) when they arrive on a live
// MODE line — the same letters onListMode's RPL_*LIST replies report.
var listModeLetters = map[byte]bool{'b': true, 'e': true, 'I': true, 'R': true, 'q': true}

// onMode applies a mode change: list-valued mode letters (bans,
// exceptions, invex, quiets) append their value, everything else is a
// scalar mode whose value replaces whatever was set before (§4.4 "on
// MODE, list-valued modes append, scalar modes replace"). The event's Aux
// is expected to hold a single "<letter><value>" pair, already split out
// by whatever parser produced the event; this package does no MODE-line
// parsing of its own.
func onMode(s *pluginapi.State, ev *event.Event) pluginapi.Outcome {
	if ev.Channel == "" || ev.Aux == "" {
		return pluginapi.OutcomeContinue
	}
	ch, ok := s.Channels[ev.Channel]
	if !ok {
		return pluginapi.OutcomeContinue
	}
	mode := ev.Aux[0]
	value := ""
	if len(ev.Aux) > 1 {
		value = ev.Aux[1:]
	}
	if listModeLetters[mode] {
		if value != "" {
			ch.AppendListMode(mode, value)
		}
		return pluginapi.OutcomeContinue
	}
	if value == "" {
		ch.UnsetMode(mode)
		return pluginapi.OutcomeContinue
	}
	ch.SetScalarMode(mode, value)
	return pluginapi.OutcomeContinue
}

func onListMode(s *pluginapi.State, ev *event.Event) pluginapi.Outcome {
	if ev.Channel == "" || ev.Content == "" {
		return pluginapi.OutcomeContinue
	}
	ch, ok := s.Channels[ev.Channel]
	if !ok {
		return pluginapi.OutcomeContinue
	}
	mode := listModeLetter(ev.Type)
	ch.AppendListMode(mode, ev.Content)
	return pluginapi.OutcomeContinue
}

func listModeLetter(t event.Type) byte {
	switch t {
	case event.RPL_BANLIST:
		return 'b'
	case event.RPL_EXCEPTLIST:
		return 'e'
	case event.RPL_INVITELIST:
		return 'I'
	case event.RPL_REOPLIST:
		return 'R'
	case event.RPL_QUIETLIST:
		return 'q'
	default:
		return 0
	}
}
