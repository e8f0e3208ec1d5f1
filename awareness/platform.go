package awareness

import (
	"github.com/gedaiu/kameloso-go/event"
	"github.com/gedaiu/kameloso-go/pluginapi"
)

// Platform returns handlers that catch the sender of chat-bearing events
// into the channel/user maps the same way Channel/User awareness does,
// but gated on the connected server's daemon string matching daemon
// (§4.4 "platform-specific awareness... active only when the server's
// daemon identifies as that platform"). Twitch is the concrete platform
// named in §1's scope; other daemons can reuse this by passing their own
// daemon string.
func Platform(plugin, daemon string) []*pluginapi.HandlerDescriptor {
	return []*pluginapi.HandlerDescriptor{
		pluginapi.NewHandler(plugin, "awareness.platform.catch_chat").
			Types(event.CHAN, event.TwitchSub, event.TwitchCheer, event.TwitchRaid).
			Awareness(pluginapi.StageEarly).
			Chainable().
			FuncBoth(guardedCatchSender(daemon)),
	}
}

func guardedCatchSender(daemon string) pluginapi.HandlerFuncPluginEvent {
	return func(s *pluginapi.State, ev *event.Event) pluginapi.Outcome {
		if s.Server.Daemon != daemon {
			return pluginapi.OutcomeContinue
		}
		if ev.Sender == nil {
			return pluginapi.OutcomeContinue
		}
		if ev.Channel != "" {
			if ch, ok := s.Channels[ev.Channel]; ok {
				ch.AddUser(ev.Sender.Nickname)
			}
		}
		return onCatchSender(s, ev)
	}
}
