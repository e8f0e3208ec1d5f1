package awareness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gedaiu/kameloso-go/event"
	"github.com/gedaiu/kameloso-go/pluginapi"
)

func newTestState() *pluginapi.State {
	return pluginapi.NewState("test-plugin", &pluginapi.BotConfig{})
}

func TestUserQuitRemovesUser(t *testing.T) {
	s := newTestState()
	s.Users["alice"] = &event.User{Nickname: "alice"}

	ev := &event.Event{Type: event.QUIT, Sender: &event.User{Nickname: "alice"}}
	outcome := onUserQuit(s, ev)

	assert.Equal(t, pluginapi.OutcomeContinue, outcome)
	_, ok := s.Users["alice"]
	assert.False(t, ok)
}

func TestUserNickRekeysEverywhere(t *testing.T) {
	s := newTestState()
	s.Users["alice"] = &event.User{Nickname: "alice"}
	s.Channels["#chan"] = event.NewChannel("#chan")
	s.Channels["#chan"].AddUser("alice")

	ev := &event.Event{Type: event.NICK, Sender: &event.User{Nickname: "alice"}, Aux: "alice2"}
	onUserNick(s, ev)

	_, stillOld := s.Users["alice"]
	assert.False(t, stillOld)
	u, ok := s.Users["alice2"]
	require.True(t, ok)
	assert.Equal(t, "alice2", u.Nickname)
	assert.True(t, s.Channels["#chan"].HasUser("alice2"))
	assert.False(t, s.Channels["#chan"].HasUser("alice"))
}

func TestUserFactsMeldsWhoisData(t *testing.T) {
	s := newTestState()
	s.Users["bob"] = &event.User{Nickname: "bob"}

	ev := &event.Event{
		Type:   event.RPL_WHOISUSER,
		Target: &event.User{Nickname: "bob", Ident: "bobident", Account: "bobacct"},
		Time:   time.Now(),
	}
	onUserFacts(s, ev)

	u := s.Users["bob"]
	assert.Equal(t, "bobident", u.Ident)
	assert.Equal(t, "bobacct", u.Account)
	assert.False(t, u.LastWhois.IsZero())
}

func TestUserFactsCreatesMissingUser(t *testing.T) {
	s := newTestState()

	ev := &event.Event{
		Type:   event.RPL_WHOREPLY,
		Target: &event.User{Nickname: "carol", Ident: "c"},
	}
	onUserFacts(s, ev)

	u, ok := s.Users["carol"]
	require.True(t, ok)
	assert.Equal(t, "c", u.Ident)
}

func TestCatchSenderAddsNewUser(t *testing.T) {
	s := newTestState()

	ev := &event.Event{Type: event.JOIN, Sender: &event.User{Nickname: "dave", Account: "daveacct"}}
	onCatchSender(s, ev)

	u, ok := s.Users["dave"]
	require.True(t, ok)
	assert.Equal(t, "daveacct", u.Account)
}

func TestNamesReplyEnumeratesParticipantsShortAndFullForm(t *testing.T) {
	s := newTestState()
	s.Channels["#chan"] = event.NewChannel("#chan")

	ev := &event.Event{Type: event.RPL_NAMREPLY, Channel: "#chan", Content: "@op +voiced plain"}
	onNamesReply(s, ev)

	ch := s.Channels["#chan"]
	assert.True(t, ch.HasUser("op"))
	assert.True(t, ch.HasUser("voiced"))
	assert.True(t, ch.HasUser("plain"))
	assert.Contains(t, s.Users, "op")
	assert.Contains(t, s.Users, "voiced")
	assert.Contains(t, s.Users, "plain")
}

func TestPeriodicRehashRespectsInterval(t *testing.T) {
	s := newTestState()
	base := time.Now()
	s.LastRehash = base

	onPeriodicRehash(s, &event.Event{Type: event.PING, Time: base.Add(time.Hour)})
	assert.Equal(t, base, s.LastRehash, "should not rehash before the interval elapses")

	onPeriodicRehash(s, &event.Event{Type: event.PING, Time: base.Add(HoursBetweenRehashes * time.Hour)})
	assert.True(t, s.LastRehash.After(base))
}
