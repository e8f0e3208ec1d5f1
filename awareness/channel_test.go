package awareness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gedaiu/kameloso-go/event"
	"github.com/gedaiu/kameloso-go/pluginapi"
)

func TestSelfJoinCreatesChannel(t *testing.T) {
	s := newTestState()
	onSelfJoin(s, &event.Event{Type: event.SELFJOIN, Channel: "#new"})

	_, ok := s.Channels["#new"]
	assert.True(t, ok)
}

func TestSelfPartRemovesChannelAndOrphanedUsers(t *testing.T) {
	s := newTestState()
	s.Channels["#chan"] = event.NewChannel("#chan")
	s.Channels["#chan"].AddUser("alice")
	s.Channels["#other"] = event.NewChannel("#other")
	s.Channels["#other"].AddUser("alice")
	s.Users["alice"] = &event.User{Nickname: "alice"}

	onSelfPartOrKick(s, &event.Event{Type: event.SELFPART, Channel: "#chan"})

	_, chanGone := s.Channels["#chan"]
	assert.False(t, chanGone)
	// alice is still a member of #other, so she must not be orphaned.
	_, stillThere := s.Users["alice"]
	assert.True(t, stillThere)

	onSelfPartOrKick(s, &event.Event{Type: event.SELFPART, Channel: "#other"})
	_, goneNow := s.Users["alice"]
	assert.False(t, goneNow, "alice had no remaining channel membership and should be orphaned")
}

func TestJoinAddsUserToChannel(t *testing.T) {
	s := newTestState()
	s.Channels["#chan"] = event.NewChannel("#chan")

	onJoin(s, &event.Event{Type: event.JOIN, Channel: "#chan", Sender: &event.User{Nickname: "bob"}})

	assert.True(t, s.Channels["#chan"].HasUser("bob"))
}

func TestPartRemovesUserAndOrphanChecks(t *testing.T) {
	s := newTestState()
	s.Channels["#chan"] = event.NewChannel("#chan")
	s.Channels["#chan"].AddUser("bob")
	s.Users["bob"] = &event.User{Nickname: "bob"}

	onPartQuitKick(s, &event.Event{Type: event.PART, Channel: "#chan", Sender: &event.User{Nickname: "bob"}})

	assert.False(t, s.Channels["#chan"].HasUser("bob"))
	_, ok := s.Users["bob"]
	assert.False(t, ok)
}

func TestKickRemovesTarget(t *testing.T) {
	s := newTestState()
	s.Channels["#chan"] = event.NewChannel("#chan")
	s.Channels["#chan"].AddUser("bob")
	s.Users["bob"] = &event.User{Nickname: "bob"}

	onPartQuitKick(s, &event.Event{Type: event.KICK, Channel: "#chan", Target: &event.User{Nickname: "bob"}})

	assert.False(t, s.Channels["#chan"].HasUser("bob"))
}

func TestChannelNickRekeysWithinChannels(t *testing.T) {
	s := newTestState()
	s.Channels["#chan"] = event.NewChannel("#chan")
	s.Channels["#chan"].AddUser("bob")

	onChannelNick(s, &event.Event{Type: event.NICK, Sender: &event.User{Nickname: "bob"}, Aux: "bobby"})

	assert.True(t, s.Channels["#chan"].HasUser("bobby"))
	assert.False(t, s.Channels["#chan"].HasUser("bob"))
}

func TestTopicUpdatesChannelTopic(t *testing.T) {
	s := newTestState()
	s.Channels["#chan"] = event.NewChannel("#chan")

	onTopic(s, &event.Event{Type: event.TOPIC, Channel: "#chan", Content: "new topic"})

	assert.Equal(t, "new topic", s.Channels["#chan"].Topic)
}

func TestModeUpdatesScalarAndUnsets(t *testing.T) {
	s := newTestState()
	s.Channels["#chan"] = event.NewChannel("#chan")

	onMode(s, &event.Event{Type: event.MODE, Channel: "#chan", Aux: "ksecret"})
	mv, ok := s.Channels["#chan"].Modes['k']
	require.True(t, ok)
	assert.Equal(t, "secret", mv.Scalar)

	onMode(s, &event.Event{Type: event.MODE, Channel: "#chan", Aux: "k"})
	_, stillSet := s.Channels["#chan"].Modes['k']
	assert.False(t, stillSet)
}

func TestModeAppendsListValuedLettersInsteadOfReplacing(t *testing.T) {
	s := newTestState()
	s.Channels["#chan"] = event.NewChannel("#chan")

	onMode(s, &event.Event{Type: event.MODE, Channel: "#chan", Aux: "bnick1!*@*"})
	onMode(s, &event.Event{Type: event.MODE, Channel: "#chan", Aux: "bnick2!*@*"})

	mv := s.Channels["#chan"].Modes['b']
	require.NotNil(t, mv)
	assert.True(t, mv.IsList, "a live MODE for a list-valued letter must produce a list mode, not a scalar one")
	assert.Equal(t, []string{"nick1!*@*", "nick2!*@*"}, mv.List, "a second ban must append, not overwrite the first")
}

func TestListModeAppends(t *testing.T) {
	s := newTestState()
	s.Channels["#chan"] = event.NewChannel("#chan")

	onListMode(s, &event.Event{Type: event.RPL_BANLIST, Channel: "#chan", Content: "nick!*@*"})

	mv := s.Channels["#chan"].Modes['b']
	require.NotNil(t, mv)
	assert.True(t, mv.IsList)
	assert.Equal(t, []string{"nick!*@*"}, mv.List)
}

func TestUserHandlersSliceHasExpectedLabels(t *testing.T) {
	handlers := User("demo")
	require.Len(t, handlers, 7)
	labels := make(map[string]bool)
	for _, h := range handlers {
		labels[h.Label] = true
	}
	assert.True(t, labels["awareness.user.quit"])
	assert.True(t, labels["awareness.user.periodic_rehash"])
}

func TestChannelHandlersSliceHasExpectedLabels(t *testing.T) {
	handlers := Channel("demo")
	require.Len(t, handlers, 9)
}
