package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gedaiu/kameloso-go/event"
	"github.com/gedaiu/kameloso-go/pluginapi"
)

func TestHomeAddAppendsChannelOptimistically(t *testing.T) {
	bot := testBot()
	a := NewAdmin(bot, nil)

	a.onHomeAdd(a.State(), &event.Event{Type: event.CHAN, Channel: "#a", Content: "add #b"})

	assert.Contains(t, bot.HomeChannels, "#b")
	require.Len(t, a.State().AwaitingFibers[event.ERR_LINKCHANNEL], 1)
}

func TestHomeAddRedirectsOnLinkChannel(t *testing.T) {
	bot := testBot()
	q := &recordingQueue{}
	a := NewAdmin(bot, q)

	a.onHomeAdd(a.State(), &event.Event{Type: event.CHAN, Channel: "#a", Content: "add #b"})
	require.Contains(t, bot.HomeChannels, "#b")

	fibers := a.State().AwaitingFibers[event.ERR_LINKCHANNEL]
	require.Len(t, fibers, 1)
	fibers[0](pluginapi.Payload{Event: &event.Event{Type: event.ERR_LINKCHANNEL, Aux: "#b #b-redir"}})

	assert.NotContains(t, bot.HomeChannels, "#b")
	assert.Contains(t, bot.HomeChannels, "#b-redir")
	require.Len(t, q.posted, 1)
	assert.Equal(t, "Redirected!", q.posted[0].Text)
	assert.Equal(t, "#a", q.posted[0].Target)
}

func TestHomeAddIgnoresUnrelatedLinkChannelAndReRegisters(t *testing.T) {
	bot := testBot()
	a := NewAdmin(bot, nil)

	a.onHomeAdd(a.State(), &event.Event{Type: event.CHAN, Channel: "#a", Content: "add #b"})
	fibers := a.State().AwaitingFibers[event.ERR_LINKCHANNEL]
	require.Len(t, fibers, 1)

	delete(a.State().AwaitingFibers, event.ERR_LINKCHANNEL) // simulate scheduler draining
	fibers[0](pluginapi.Payload{Event: &event.Event{Type: event.ERR_LINKCHANNEL, Aux: "#other #other-redir"}})

	assert.Contains(t, bot.HomeChannels, "#b", "unrelated redirect must not touch #b")
	assert.Len(t, a.State().AwaitingFibers[event.ERR_LINKCHANNEL], 1, "continuation must re-register itself")
}
