package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gedaiu/kameloso-go/event"
	"github.com/gedaiu/kameloso-go/pluginapi"
)

func TestWhitelistAddKnownAccountRecordsImmediately(t *testing.T) {
	bot := testBot()
	w := NewWhitelist(bot, nil, func(s *pluginapi.State, nick string) {})
	w.State().Users["alice"] = &event.User{Nickname: "alice", Account: "alice_acct"}

	w.onWhitelistAdd(w.State(), &event.Event{Type: event.CHAN, Channel: "#a", Content: "add alice extra"})

	assert.Equal(t, []string{"alice_acct"}, w.Accounts("#a"))
}

func TestWhitelistAddUnknownAccountIssuesWhoisAndDefers(t *testing.T) {
	bot := testBot()
	q := &recordingQueue{}
	w := NewWhitelist(bot, q, nil)

	w.onWhitelistAdd(w.State(), &event.Event{Type: event.CHAN, Channel: "#a", Content: "add bob extra"})

	assert.Empty(t, w.Accounts("#a"))
	require.Len(t, q.posted, 1)
	assert.Equal(t, "bob", q.posted[0].Target)

	w.onAccountResolved(w.State(), &event.Event{Type: event.RPL_WHOISACCOUNT, Target: &event.User{Nickname: "bob"}, Aux: "bob_acct"})
	assert.Equal(t, []string{"bob_acct"}, w.Accounts("#a"))

	require.Len(t, q.posted, 2, "resolving the account must post the added-notice alongside the earlier WHOIS")
	assert.Equal(t, "#a", q.posted[1].Target)
	assert.Contains(t, q.posted[1].Text, "bob_acct")
}
