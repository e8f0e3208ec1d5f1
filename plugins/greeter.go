package plugins

import (
	"fmt"

	"github.com/gedaiu/kameloso-go/event"
	"github.com/gedaiu/kameloso-go/ircwire"
	"github.com/gedaiu/kameloso-go/pluginapi"
)

// GreeterSettings is Greeter's melded/validated settings (§4.7).
// Greeting is a fmt.Sprintf template taking the sender's nickname.
type GreeterSettings struct {
	Greeting string `ini:"greeting"`
}

// Greeter replies to anyone who says "hello" in a home channel,
// per Settings.Greeting. It carries no privilege requirement and no
// awareness mixins — the smallest possible plugin, demonstrating the
// direct path through the dispatcher.
type Greeter struct {
	Base
	Settings *GreeterSettings
	queue    ircwire.Queue
}

// NewGreeter constructs the plugin, wired to post replies to queue.
func NewGreeter(bot *pluginapi.BotConfig, queue ircwire.Queue) *Greeter {
	settings := &GreeterSettings{Greeting: "Hello, %s!"}
	g := &Greeter{Base: NewBase("greeter", bot, settings), Settings: settings, queue: queue}
	return g
}

func (g *Greeter) Handlers() []*pluginapi.HandlerDescriptor {
	return []*pluginapi.HandlerDescriptor{
		pluginapi.NewHandler("greeter", "hello").
			Types(event.CHAN, event.QUERY).
			Channel(pluginapi.ChannelHome).
			Prefix(pluginapi.PrefixPrefixed).
			Words("hello").
			Privilege(pluginapi.PrivilegeIgnore).
			Terminating().
			FuncBoth(g.onHello),
	}
}

func (g *Greeter) onHello(s *pluginapi.State, ev *event.Event) pluginapi.Outcome {
	if ev.Sender == nil {
		return pluginapi.OutcomeContinue
	}
	target := ev.Channel
	if ev.Type == event.QUERY {
		target = ev.Sender.Nickname
	}
	text := fmt.Sprintf(g.Settings.Greeting, ev.Sender.Nickname)
	if g.queue != nil {
		g.queue.Post(ircwire.ChanMsg(target, text))
	}
	return pluginapi.OutcomeContinue
}

func (g *Greeter) Commands() map[string]pluginapi.Command {
	return map[string]pluginapi.Command{
		"hello": {Trigger: "hello", Description: "Greets you back", Syntax: "$command hello"},
	}
}
