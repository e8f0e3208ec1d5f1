package awareness

import (
	"github.com/gedaiu/kameloso-go/event"
	"github.com/gedaiu/kameloso-go/pluginapi"
	"github.com/gedaiu/kameloso-go/privilege"
)

// DrainFunc replays a nickname's deferred trigger-request queue; the
// dispatcher supplies the closure so awareness stays free of a direct
// dependency on dispatch's configured whoisRetry and clock.
type DrainFunc func(state *pluginapi.State, nickname string)

// MinimalAuthentication returns the smallest handler set a plugin needs
// to participate in WHOIS-gated privilege resolution (§4.3, §4.4
// "minimal authentication"): it drains the trigger-request queue when
// identity resolves, and clears it outright when the server signals
// WHOIS is unsupported.
func MinimalAuthentication(plugin string, drain DrainFunc) []*pluginapi.HandlerDescriptor {
	return []*pluginapi.HandlerDescriptor{
		pluginapi.NewHandler(plugin, "awareness.auth.resolved").
			Types(event.RPL_WHOISACCOUNT, event.RPL_WHOISREGNICK, event.RPL_ENDOFWHOIS).
			Awareness(pluginapi.StageLate).
			Chainable().
			FuncBoth(func(s *pluginapi.State, ev *event.Event) pluginapi.Outcome {
				if ev.Target == nil {
					return pluginapi.OutcomeContinue
				}
				drain(s, ev.Target.Nickname)
				return pluginapi.OutcomeContinue
			}),

		pluginapi.NewHandler(plugin, "awareness.auth.unsupported").
			Types(event.ERR_UNKNOWNCOMMAND).
			Awareness(pluginapi.StageLate).
			Chainable().
			FuncBoth(func(s *pluginapi.State, ev *event.Event) pluginapi.Outcome {
				if ev.Aux != "WHOIS" {
					return pluginapi.OutcomeContinue
				}
				s.Server.SupportsWhois = false
				privilege.ClearAll(s)
				return pluginapi.OutcomeContinue
			}),
	}
}
