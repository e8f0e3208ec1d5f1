package plugins

import (
	"fmt"
	"strings"

	"github.com/gedaiu/kameloso-go/awareness"
	"github.com/gedaiu/kameloso-go/event"
	"github.com/gedaiu/kameloso-go/ircwire"
	"github.com/gedaiu/kameloso-go/pluginapi"
)

// WhitelistSettings is Whitelist's melded/validated settings (§4.7).
// AddedNotice is a fmt.Sprintf template taking the accepted account
// name, posted back to the channel once an add resolves.
type WhitelistSettings struct {
	AddedNotice string `ini:"addedNotice"`
}

// SettingsSchema declares AddedNotice as required and non-empty,
// exercising config.Validate's gojsonschema path (§4.7).
func (s *WhitelistSettings) SettingsSchema() []byte {
	return []byte(`{
		"type": "object",
		"properties": {"AddedNotice": {"type": "string", "minLength": 1}},
		"required": ["AddedNotice"]
	}`)
}

// Whitelist demonstrates the WHOIS-gated privilege scenario (spec §8
// scenario 2): "whitelist add <nick>" requires PrivilegeLevel.operator
// from the invoker, and records the *target* nick's services account
// once a follow-up WHOIS resolves it. It composes user and channel
// awareness plus the minimal-authentication mixin so its own state stays
// current without hand-rolling that bookkeeping again.
type Whitelist struct {
	Base
	Settings   *WhitelistSettings
	queue      ircwire.Queue
	drain      awareness.DrainFunc
	accounts   map[string][]string // channel -> accepted services accounts
	pendingAdd map[string]string   // nickname -> channel, awaiting its WHOIS account
}

// NewWhitelist constructs the plugin. drain is normally
// engine.DrainWhois, supplied by the composition root so the plugin
// doesn't need a direct dependency on the dispatch package.
func NewWhitelist(bot *pluginapi.BotConfig, queue ircwire.Queue, drain awareness.DrainFunc) *Whitelist {
	settings := &WhitelistSettings{AddedNotice: "Added %s to the whitelist."}
	return &Whitelist{
		Base:       NewBase("whitelist", bot, settings),
		Settings:   settings,
		queue:      queue,
		drain:      drain,
		accounts:   make(map[string][]string),
		pendingAdd: make(map[string]string),
	}
}

func (w *Whitelist) Handlers() []*pluginapi.HandlerDescriptor {
	handlers := []*pluginapi.HandlerDescriptor{
		pluginapi.NewHandler("whitelist", "add").
			Types(event.CHAN).
			Channel(pluginapi.ChannelHome).
			Prefix(pluginapi.PrefixPrefixed).
			Words("whitelist").
			Privilege(pluginapi.PrivilegeOperator).
			Terminating().
			FuncBoth(w.onWhitelistAdd),
	}
	handlers = append(handlers, pluginapi.NewHandler("whitelist", "account_resolved").
		Types(event.RPL_WHOISACCOUNT).
		Awareness(pluginapi.StageLate).
		Chainable().
		FuncBoth(w.onAccountResolved))
	handlers = append(handlers, awareness.User("whitelist")...)
	handlers = append(handlers, awareness.Channel("whitelist")...)
	handlers = append(handlers, awareness.MinimalAuthentication("whitelist", w.drain)...)
	return handlers
}

// onAccountResolved finalises a pending "whitelist add" once the
// target's services account arrives via RPL_WHOISACCOUNT (the event's
// Aux is taken to carry the account name).
func (w *Whitelist) onAccountResolved(s *pluginapi.State, ev *event.Event) pluginapi.Outcome {
	if ev.Target == nil {
		return pluginapi.OutcomeContinue
	}
	channel, pending := w.pendingAdd[ev.Target.Nickname]
	if !pending || ev.Aux == "" {
		return pluginapi.OutcomeContinue
	}
	delete(w.pendingAdd, ev.Target.Nickname)
	w.accounts[channel] = append(w.accounts[channel], ev.Aux)
	if w.queue != nil {
		w.queue.Post(ircwire.ChanMsg(channel, fmt.Sprintf(w.Settings.AddedNotice, ev.Aux)))
	}
	return pluginapi.OutcomeContinue
}

func (w *Whitelist) onWhitelistAdd(s *pluginapi.State, ev *event.Event) pluginapi.Outcome {
	words := strings.Fields(ev.Content)
	if len(words) < 2 || words[0] != "add" {
		return pluginapi.OutcomeContinue
	}
	targetNick := words[1]

	target, ok := s.Users[targetNick]
	if !ok || target.Account == "" {
		// The dispatcher's own privilege gate only protects this
		// handler's *invoker*; the target's identity is resolved by a
		// second, explicit WHOIS this plugin issues itself.
		w.pendingAdd[targetNick] = ev.Channel
		if w.queue != nil {
			w.queue.Post(ircwire.WhoisCmd(targetNick))
		}
		return pluginapi.OutcomeContinue
	}

	w.accounts[ev.Channel] = append(w.accounts[ev.Channel], target.Account)
	if w.queue != nil {
		w.queue.Post(ircwire.ChanMsg(ev.Channel, fmt.Sprintf(w.Settings.AddedNotice, target.Account)))
	}
	return pluginapi.OutcomeContinue
}

func (w *Whitelist) Commands() map[string]pluginapi.Command {
	return map[string]pluginapi.Command{
		"whitelist": {Trigger: "whitelist", Description: "Manages the channel whitelist", Syntax: "$command whitelist add $nickname"},
	}
}

// Accounts exposes the accepted accounts for a channel, used by tests
// and by other plugins that prefer direct access over the bus.
func (w *Whitelist) Accounts(channel string) []string {
	return append([]string(nil), w.accounts[channel]...)
}
