package plugins

import (
	"strings"

	"github.com/gedaiu/kameloso-go/event"
	"github.com/gedaiu/kameloso-go/ircwire"
	"github.com/gedaiu/kameloso-go/pluginapi"
	"github.com/gedaiu/kameloso-go/scheduler"
)

// AdminSettings is Admin's melded/validated settings (§4.7).
// RedirectNotice is the message posted back once an ERR_LINKCHANNEL
// redirect has been applied.
type AdminSettings struct {
	RedirectNotice string `ini:"redirectNotice"`
}

// Admin demonstrates the "home add" + ERR_LINKCHANNEL redirect scenario
// (spec §8 scenario 1): adding a home channel optimistically, then
// correcting via a continuation if the server redirects it.
type Admin struct {
	Base
	Settings *AdminSettings
	queue    ircwire.Queue
}

// NewAdmin constructs the plugin. bot is shared with the engine so
// home-channel mutations made here are visible to the matcher/dispatch
// core immediately.
func NewAdmin(bot *pluginapi.BotConfig, queue ircwire.Queue) *Admin {
	settings := &AdminSettings{RedirectNotice: "Redirected!"}
	return &Admin{Base: NewBase("admin", bot, settings), Settings: settings, queue: queue}
}

func (a *Admin) Handlers() []*pluginapi.HandlerDescriptor {
	return []*pluginapi.HandlerDescriptor{
		pluginapi.NewHandler("admin", "home_add").
			Types(event.CHAN).
			Channel(pluginapi.ChannelHome).
			Prefix(pluginapi.PrefixPrefixed).
			Words("home").
			Privilege(pluginapi.PrivilegeOperator).
			Terminating().
			FuncBoth(a.onHomeAdd),
	}
}

// onHomeAdd handles "home add #channel": it appends the channel
// optimistically and awaits one ERR_LINKCHANNEL naming this channel to
// correct the add if the server redirects it. Nothing is posted until
// such a redirect arrives.
func (a *Admin) onHomeAdd(s *pluginapi.State, ev *event.Event) pluginapi.Outcome {
	words := strings.Fields(ev.Content)
	if len(words) < 2 || words[0] != "add" {
		return pluginapi.OutcomeContinue
	}
	channel := words[1]
	s.Bot.HomeChannels = append(s.Bot.HomeChannels, channel)

	s.AwaitingFibers[event.ERR_LINKCHANNEL] = append(s.AwaitingFibers[event.ERR_LINKCHANNEL],
		a.awaitRedirect(s, ev.Channel, channel))

	return pluginapi.OutcomeContinue
}

// awaitRedirect builds the continuation that corrects homeChannels if
// the server redirects `channel` elsewhere (§8 scenario 1). Aux on the
// redirect event is assumed to carry "<old> <new>"; an event whose Aux
// has another shape is treated as not about this channel.
func (a *Admin) awaitRedirect(s *pluginapi.State, replyTo, channel string) pluginapi.Continuation {
	var step pluginapi.Continuation
	step = func(p pluginapi.Payload) {
		if p.Event == nil || p.Event.Type != event.ERR_LINKCHANNEL {
			return
		}
		parts := strings.Fields(p.Event.Aux)
		if len(parts) != 2 || parts[0] != channel {
			// Not about our channel: keep waiting for the right one.
			scheduler.AwaitEvent(s, step, event.ERR_LINKCHANNEL)
			return
		}
		redirectedFrom, redirectedTo := parts[0], parts[1]
		s.Bot.HomeChannels = removeChannel(s.Bot.HomeChannels, redirectedFrom)
		s.Bot.HomeChannels = append(s.Bot.HomeChannels, redirectedTo)
		if a.queue != nil {
			a.queue.Post(ircwire.ChanMsg(replyTo, a.Settings.RedirectNotice))
		}
	}
	return step
}

func (a *Admin) Commands() map[string]pluginapi.Command {
	return map[string]pluginapi.Command{
		"home": {Trigger: "home", Description: "Manages home channels", Syntax: "$command home add #channel"},
	}
}

func removeChannel(channels []string, target string) []string {
	out := make([]string, 0, len(channels))
	for _, c := range channels {
		if c != target {
			out = append(out, c)
		}
	}
	return out
}

