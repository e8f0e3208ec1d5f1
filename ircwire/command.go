// Package ircwire defines the outbound wire-command vocabulary the
// dispatcher's handlers post to the writer's queue, and the inbound
// event-shape assumptions the parser is expected to uphold (§6).
// Handlers never write to the socket directly; they build a Command and
// hand it to a Queue, mirroring §5's "outbound wire messages
// are posted to the main thread's outbound queue".
package ircwire

// Kind enumerates the named outbound message types (§6).
type Kind string

const (
	Chan      Kind = "chan"
	Query     Kind = "query"
	Privmsg   Kind = "privmsg"
	Emote     Kind = "emote"
	Mode      Kind = "mode"
	Topic     Kind = "topic"
	Invite    Kind = "invite"
	Join      Kind = "join"
	Kick      Kind = "kick"
	Part      Kind = "part"
	Quit      Kind = "quit"
	Whois     Kind = "whois"
	Raw       Kind = "raw"
	Immediate Kind = "immediate"
)

// Command is a single outbound wire message (§6). Priority requests the
// writer schedule it ahead of non-priority traffic in the same queue;
// Quiet suppresses any local echo/logging of the message; Immediate
// (Kind == Immediate, or the Bypass flag on another kind) skips
// throttling entirely.
type Command struct {
	Kind     Kind
	Target   string // channel or nickname, kind-dependent
	Text     string
	Reason   string // PART/KICK/QUIT reason, KICK comment
	Priority bool
	Quiet    bool
	Bypass   bool // bypasses throttling even for a non-Immediate kind
}

// Queue is the outbound sink a dispatcher/plugin posts Commands to.
// cmd/ircbot's composition root supplies the concrete writer; the core
// never depends on a network connection directly.
type Queue interface {
	Post(Command)
}

// ChanMsg builds a channel PRIVMSG.
func ChanMsg(channel, text string) Command {
	return Command{Kind: Chan, Target: channel, Text: text}
}

// QueryMsg builds a private-message PRIVMSG.
func QueryMsg(nickname, text string) Command {
	return Command{Kind: Query, Target: nickname, Text: text}
}

// EmoteMsg builds a CTCP ACTION.
func EmoteMsg(target, text string) Command {
	return Command{Kind: Emote, Target: target, Text: text}
}

// ModeCmd builds a MODE change.
func ModeCmd(channel, modeString string) Command {
	return Command{Kind: Mode, Target: channel, Text: modeString}
}

// TopicCmd builds a TOPIC change.
func TopicCmd(channel, topic string) Command {
	return Command{Kind: Topic, Target: channel, Text: topic}
}

// InviteCmd builds an INVITE.
func InviteCmd(nickname, channel string) Command {
	return Command{Kind: Invite, Target: nickname, Text: channel}
}

// JoinCmd builds a JOIN, optionally with a key.
func JoinCmd(channel, key string) Command {
	return Command{Kind: Join, Target: channel, Text: key}
}

// KickCmd builds a KICK.
func KickCmd(channel, nickname, reason string) Command {
	return Command{Kind: Kick, Target: channel, Text: nickname, Reason: reason}
}

// PartCmd builds a PART.
func PartCmd(channel, reason string) Command {
	return Command{Kind: Part, Target: channel, Reason: reason}
}

// QuitCmd builds a QUIT.
func QuitCmd(reason string) Command {
	return Command{Kind: Quit, Reason: reason}
}

// WhoisCmd requests WHOIS information for a nickname (§4.3's privilege
// resolution is the primary caller).
func WhoisCmd(nickname string) Command {
	return Command{Kind: Whois, Target: nickname}
}

// RawCmd posts a raw wire line verbatim.
func RawCmd(line string) Command {
	return Command{Kind: Raw, Text: line}
}

// ImmediateCmd wraps an existing Command so it bypasses throttling
// (§6 "immediate bypasses throttling").
func ImmediateCmd(c Command) Command {
	c.Bypass = true
	return c
}
