package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gedaiu/kameloso-go/event"
	"github.com/gedaiu/kameloso-go/ircwire"
	"github.com/gedaiu/kameloso-go/pluginapi"
)

type recordingQueue struct {
	posted []ircwire.Command
}

func (q *recordingQueue) Post(c ircwire.Command) { q.posted = append(q.posted, c) }

func testBot() *pluginapi.BotConfig {
	return &pluginapi.BotConfig{HomeChannels: []string{"#a"}, Prefix: "!"}
}

func TestGreeterRepliesInChannel(t *testing.T) {
	q := &recordingQueue{}
	g := NewGreeter(testBot(), q)

	outcome := g.onHello(g.State(), &event.Event{
		Type: event.CHAN, Channel: "#a", Sender: &event.User{Nickname: "alice"},
	})

	assert.Equal(t, pluginapi.OutcomeContinue, outcome)
	require.Len(t, q.posted, 1)
	assert.Equal(t, "#a", q.posted[0].Target)
	assert.Equal(t, "Hello, alice!", q.posted[0].Text)
}

func TestGreeterRepliesToQueryDirectly(t *testing.T) {
	q := &recordingQueue{}
	g := NewGreeter(testBot(), q)

	g.onHello(g.State(), &event.Event{Type: event.QUERY, Sender: &event.User{Nickname: "bob"}})

	require.Len(t, q.posted, 1)
	assert.Equal(t, "bob", q.posted[0].Target)
}

func TestGreeterHasHelloCommand(t *testing.T) {
	g := NewGreeter(testBot(), nil)
	cmds := g.Commands()
	_, ok := cmds["hello"]
	assert.True(t, ok)
}
