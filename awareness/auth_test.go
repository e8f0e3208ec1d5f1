package awareness

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gedaiu/kameloso-go/event"
	"github.com/gedaiu/kameloso-go/pluginapi"
)

func TestMinimalAuthenticationDrainsOnResolution(t *testing.T) {
	s := newTestState()
	var drained string
	handlers := MinimalAuthentication("demo", func(state *pluginapi.State, nickname string) {
		drained = nickname
	})

	var resolved *pluginapi.HandlerDescriptor
	for _, h := range handlers {
		if h.Label == "awareness.auth.resolved" {
			resolved = h
		}
	}
	resolved.Invoke(s, &event.Event{Type: event.RPL_WHOISACCOUNT, Target: &event.User{Nickname: "eve"}})

	assert.Equal(t, "eve", drained)
}

func TestMinimalAuthenticationClearsQueueWhenUnsupported(t *testing.T) {
	s := newTestState()
	s.Server.SupportsWhois = true
	s.TriggerRequestQueue["eve"] = []*pluginapi.TriggerRequest{{}}

	handlers := MinimalAuthentication("demo", func(state *pluginapi.State, nickname string) {})
	var unsupported *pluginapi.HandlerDescriptor
	for _, h := range handlers {
		if h.Label == "awareness.auth.unsupported" {
			unsupported = h
		}
	}
	unsupported.Invoke(s, &event.Event{Type: event.ERR_UNKNOWNCOMMAND, Aux: "WHOIS"})

	assert.False(t, s.Server.SupportsWhois)
	assert.Empty(t, s.TriggerRequestQueue)
}
