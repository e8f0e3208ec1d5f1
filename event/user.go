package event

import "time"

// Class is a sender's classification (§3). It is authoritative: the
// persistence collaborator (out of scope, §1) is expected to stamp it
// before the event reaches handlers.
type Class int

const (
	ClassUnset Class = iota
	ClassBlacklist
	ClassAnyone
	ClassRegistered
	ClassWhitelist
	ClassOperator
	ClassAdmin
)

func (c Class) String() string {
	switch c {
	case ClassBlacklist:
		return "blacklist"
	case ClassAnyone:
		return "anyone"
	case ClassRegistered:
		return "registered"
	case ClassWhitelist:
		return "whitelist"
	case ClassOperator:
		return "operator"
	case ClassAdmin:
		return "admin"
	default:
		return "unset"
	}
}

// User is a per-server user record (§3). Nickname uniquely indexes the
// plugin's users map.
type User struct {
	Nickname   string
	Ident      string
	Address    string
	Account    string
	Alias      string
	Class      Class
	LastWhois  time.Time
	Badges     []string
	Colour     string
}

// Clone returns a deep-enough copy for safe mutation (badges re-sliced).
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Badges = append([]string(nil), u.Badges...)
	return &clone
}

// Meld copies non-zero fields of fresh into u, used by user awareness
// when fresh facts arrive from RPL_WHOISUSER / RPL_WHOREPLY / CHGHOST
// (§4.4). Existing non-empty fields are not overwritten by empty ones.
func (u *User) Meld(fresh *User) {
	if fresh == nil {
		return
	}
	if fresh.Ident != "" {
		u.Ident = fresh.Ident
	}
	if fresh.Address != "" {
		u.Address = fresh.Address
	}
	if fresh.Account != "" {
		u.Account = fresh.Account
	}
	if fresh.Alias != "" {
		u.Alias = fresh.Alias
	}
	if len(fresh.Badges) > 0 {
		u.Badges = fresh.Badges
	}
	if fresh.Colour != "" {
		u.Colour = fresh.Colour
	}
}
