// Command ircbot is a small composition root demonstrating the dispatch
// core wired to a handful of toy plugins. It does not connect to a real
// IRC network: outbound commands are logged rather than written to a
// socket, since wire I/O is explicitly out of scope (§1) for this
// repository.
package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gedaiu/kameloso-go/dispatch"
	"github.com/gedaiu/kameloso-go/event"
	internallog "github.com/gedaiu/kameloso-go/internal/log"
	"github.com/gedaiu/kameloso-go/ircwire"
	"github.com/gedaiu/kameloso-go/match"
	"github.com/gedaiu/kameloso-go/pluginapi"
	"github.com/gedaiu/kameloso-go/plugins"
)

// loggingQueue stands in for a real outbound writer: every posted
// command is logged at info level instead of written to a socket.
type loggingQueue struct {
	logger *slog.Logger
}

func (q *loggingQueue) Post(c ircwire.Command) {
	q.logger.Info("outbound", "kind", c.Kind, "target", c.Target, "text", c.Text, "reason", c.Reason)
}

func main() {
	internallog.SetBase(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))
	logger := internallog.WithComponent("ircbot")

	bot := &pluginapi.BotConfig{
		HomeChannels: []string{"#home"},
		Prefix:       "!",
		WhoisRetry:   5 * time.Minute,
	}
	queue := &loggingQueue{logger: logger}

	eng := dispatch.New(bot, queue, nil)
	eng.SetMatchConfig(match.Config{GlobalPrefix: bot.Prefix, Nickname: "ircbot"})

	greeter := plugins.NewGreeter(bot, queue)
	admin := plugins.NewAdmin(bot, queue)
	whitelist := plugins.NewWhitelist(bot, queue, eng.DrainWhois)
	whitelist.State().Server.SupportsWhois = true

	eng.Register(greeter)
	eng.Register(admin)
	eng.Register(whitelist)

	logger.Info("registered plugins", "count", 3)
	for _, entry := range eng.HelpIndex() {
		logger.Info("command", "plugin", entry.Plugin, "trigger", entry.Trigger, "description", entry.Description)
	}

	// A single illustrative event, standing in for a live connection's
	// event stream.
	eng.Dispatch(&event.Event{
		Type:    event.CHAN,
		Channel: "#home",
		Content: "!hello",
		Sender:  &event.User{Nickname: "demo-user"},
		Time:    time.Now(),
	})

	eng.Tick(time.Now())
}
