package awareness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gedaiu/kameloso-go/event"
)

func TestPlatformCatchesSenderWhenDaemonMatches(t *testing.T) {
	s := newTestState()
	s.Server.Daemon = "twitch"
	s.Channels["#chan"] = event.NewChannel("#chan")

	handlers := Platform("demo", "twitch")
	require.Len(t, handlers, 1)

	handlers[0].Invoke(s, &event.Event{Type: event.CHAN, Channel: "#chan", Sender: &event.User{Nickname: "viewer"}})

	assert.True(t, s.Channels["#chan"].HasUser("viewer"))
	assert.Contains(t, s.Users, "viewer")
}

func TestPlatformIgnoresOtherDaemons(t *testing.T) {
	s := newTestState()
	s.Server.Daemon = "unrealircd"
	s.Channels["#chan"] = event.NewChannel("#chan")

	handlers := Platform("demo", "twitch")
	handlers[0].Invoke(s, &event.Event{Type: event.CHAN, Channel: "#chan", Sender: &event.User{Nickname: "viewer"}})

	assert.False(t, s.Channels["#chan"].HasUser("viewer"))
}
