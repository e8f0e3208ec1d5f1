package event

import "time"

// ModeValue is the value associated with a channel mode character. A
// mode is either scalar (the latest value replaces the old one, e.g.
// "+k secret") or list-valued (values accumulate, e.g. "+b nick!*@*")
// per §4.4.
type ModeValue struct {
	Scalar string
	List   []string
	IsList bool
}

// Channel is a tracked channel record (§3). Invariant: every nickname
// in Users must also have an entry in the owning plugin's Users map
// while the channel is tracked (maintained by the awareness package's
// User and Channel handler sets; nothing checks it at runtime).
type Channel struct {
	Name    string
	Topic   string
	Created time.Time
	Users   map[string]struct{}
	Modes   map[byte]*ModeValue
}

// NewChannel creates an empty tracked channel.
func NewChannel(name string) *Channel {
	return &Channel{
		Name:  name,
		Users: make(map[string]struct{}),
		Modes: make(map[byte]*ModeValue),
	}
}

// AddUser adds a nickname to the channel's user set.
func (c *Channel) AddUser(nick string) {
	c.Users[nick] = struct{}{}
}

// RemoveUser removes a nickname from the channel's user set.
func (c *Channel) RemoveUser(nick string) {
	delete(c.Users, nick)
}

// HasUser reports whether nick is currently tracked as present.
func (c *Channel) HasUser(nick string) bool {
	_, ok := c.Users[nick]
	return ok
}

// RenameUser rekeys a nickname within the channel's user set (NICK, §4.4).
func (c *Channel) RenameUser(from, to string) {
	if _, ok := c.Users[from]; ok {
		delete(c.Users, from)
		c.Users[to] = struct{}{}
	}
}

// SetScalarMode replaces the value of a scalar-valued mode.
func (c *Channel) SetScalarMode(mode byte, value string) {
	c.Modes[mode] = &ModeValue{Scalar: value}
}

// AppendListMode appends a value to a list-valued mode (bans, excepts,
// invex, and the RPL_BANLIST/EXCEPTLIST/INVITELIST/REOPLIST/QUIETLIST
// families, §4.4).
func (c *Channel) AppendListMode(mode byte, value string) {
	mv, ok := c.Modes[mode]
	if !ok || !mv.IsList {
		mv = &ModeValue{IsList: true}
		c.Modes[mode] = mv
	}
	mv.List = append(mv.List, value)
}

// UnsetMode removes a mode entirely (e.g. "-k").
func (c *Channel) UnsetMode(mode byte) {
	delete(c.Modes, mode)
}
