// Package event defines the parsed IRC event, user, and channel records
// that flow through the dispatcher.
package event

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Type enumerates the kinds of event the dispatcher routes.
type Type string

const (
	// ANY is the wildcard event type; a handler registered for ANY is
	// offered every event regardless of its concrete type.
	ANY Type = "ANY"

	CHAN  Type = "CHAN"
	QUERY Type = "QUERY"
	JOIN  Type = "JOIN"
	PART  Type = "PART"
	NICK  Type = "NICK"
	QUIT  Type = "QUIT"
	PING  Type = "PING"
	MODE  Type = "MODE"
	TOPIC Type = "TOPIC"
	KICK  Type = "KICK"
	ACCOUNT Type = "ACCOUNT"
	CHGHOST Type = "CHGHOST"

	SELFJOIN Type = "SELFJOIN"
	SELFPART Type = "SELFPART"
	SELFKICK Type = "SELFKICK"

	// Numeric replies used by awareness/privilege (§4.3, §4.4).
	RPL_WHOISUSER     Type = "RPL_WHOISUSER"
	RPL_WHOISACCOUNT  Type = "RPL_WHOISACCOUNT"
	RPL_WHOISREGNICK  Type = "RPL_WHOISREGNICK"
	RPL_ENDOFWHOIS    Type = "RPL_ENDOFWHOIS"
	RPL_WHOREPLY      Type = "RPL_WHOREPLY"
	RPL_WHOSPCRPL     Type = "RPL_WHOSPCRPL"
	RPL_ENDOFWHO      Type = "RPL_ENDOFWHO"
	RPL_NAMREPLY      Type = "RPL_NAMREPLY"
	RPL_ENDOFNAMES    Type = "RPL_ENDOFNAMES"
	RPL_TOPIC         Type = "RPL_TOPIC"
	RPL_CREATIONTIME  Type = "RPL_CREATIONTIME"
	RPL_CHANNELMODEIS Type = "RPL_CHANNELMODEIS"
	RPL_BANLIST       Type = "RPL_BANLIST"
	RPL_EXCEPTLIST    Type = "RPL_EXCEPTLIST"
	RPL_INVITELIST    Type = "RPL_INVITELIST"
	RPL_REOPLIST      Type = "RPL_REOPLIST"
	RPL_QUIETLIST     Type = "RPL_QUIETLIST"

	ERR_LINKCHANNEL      Type = "ERR_LINKCHANNEL"
	ERR_UNKNOWNCOMMAND   Type = "ERR_UNKNOWNCOMMAND"
	ERR_NICKNAMEINUSE    Type = "ERR_NICKNAMEINUSE"

	// CTCP subtypes (§1 names CTCP support as in-scope plugin domain).
	CTCPVersion      Type = "CTCP_VERSION"
	CTCPPing         Type = "CTCP_PING"
	CTCPAction       Type = "CTCP_ACTION"
	CTCPSourceQuery  Type = "CTCP_SOURCE"

	// Platform-specific subtypes (e.g. Twitch) are additional Type values
	// a platform awareness layer may register against; the core treats
	// them opaquely.
	TwitchSub     Type = "TWITCH_SUB"
	TwitchCheer   Type = "TWITCH_CHEER"
	TwitchRaid    Type = "TWITCH_RAID"
)

// Event is a parsed IRC event record (§3). It is mutable only during
// postprocess (§4.1 step 1) and within the matcher's local copy (§4.2).
type Event struct {
	Type    Type
	Sender  *User
	Target  *User
	Channel string
	Content string
	Raw     string
	Tags    map[string]string
	Aux     string
	ID      string
	Time    time.Time
	Count   int
}

// New creates an Event stamped with a fresh id and the current time.
func New(t Type, content string) *Event {
	return &Event{
		Type:    t,
		Content: content,
		Tags:    make(map[string]string),
		ID:      uuid.NewString(),
		Time:    time.Now(),
	}
}

// Clone returns a shallow copy of the event suitable for the matcher's
// "mutable local copy" (§4.1 step c) or for a Unicode-sanitise retry
// (§4.1 Failure semantics). Tags are copied so mutation of the clone's
// map never leaks back into the original.
func (e *Event) Clone() *Event {
	clone := *e
	clone.Tags = make(map[string]string, len(e.Tags))
	for k, v := range e.Tags {
		clone.Tags[k] = v
	}
	return &clone
}

// Sanitize replaces invalid UTF-8 sequences in Content with the Unicode
// replacement character, used for the single decode-error retry (§4.1,
// §5, §7).
func (e *Event) Sanitize() *Event {
	clone := e.Clone()
	clone.Content = sanitizeUTF8(clone.Content)
	clone.Raw = sanitizeUTF8(clone.Raw)
	return clone
}

func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	out := make([]rune, 0, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			out = append(out, utf8.RuneError)
			i++
			continue
		}
		out = append(out, r)
		i += size
	}
	return string(out)
}
