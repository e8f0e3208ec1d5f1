// Package match implements the prefix/command matcher (§4.2): reducing
// raw message content to a command token according to a plugin's
// prefix policy, then comparing it against declared command words or
// regular expressions. Grounded on the teacher's CapabilityMatcher
// (capability_matcher.go), whose CanHandle/FindAllMatches shape is
// repurposed here from "does this cap URN satisfy that request" to
// "does this message satisfy this handler's command predicate".
package match

import (
	"strings"

	"github.com/gedaiu/kameloso-go/event"
	"github.com/gedaiu/kameloso-go/pluginapi"
)

// Config carries the pieces of bot configuration the matcher needs:
// the global command prefix and the bot's own nickname.
type Config struct {
	GlobalPrefix string
	Nickname     string
}

// ApplyPrefix reduces content according to policy, returning the
// remainder and whether the policy matched at all (§4.2 table).
func ApplyPrefix(cfg Config, policy pluginapi.PrefixPolicy, isQuery bool, content string) (string, bool) {
	switch policy {
	case pluginapi.PrefixDirect:
		return content, true

	case pluginapi.PrefixPrefixed:
		if cfg.GlobalPrefix == "" {
			// Empty configured prefix falls through to nickname policy
			// (§8 "Laws and boundaries").
			return ApplyPrefix(cfg, pluginapi.PrefixNickname, isQuery, content)
		}
		if strings.HasPrefix(content, cfg.GlobalPrefix) {
			return content[len(cfg.GlobalPrefix):], true
		}
		return content, false

	case pluginapi.PrefixNickname:
		if isQuery {
			return content, true
		}
		rest := content
		rest = strings.TrimPrefix(rest, "@")
		if cfg.Nickname == "" || !strings.HasPrefix(rest, cfg.Nickname) {
			return content, false
		}
		rest = rest[len(cfg.Nickname):]
		if rest == "" {
			return rest, true
		}
		switch rest[0] {
		case ':', ',':
			return strings.TrimLeft(rest[1:], " \t"), true
		case ' ', '\t':
			return strings.TrimLeft(rest, " \t"), true
		default:
			return content, false
		}

	default:
		return content, false
	}
}

// Result is the outcome of matching a handler's command words/regexes
// against the prefix-reduced content (§4.2). Remainder is what's left
// of the content after the prefix and, for a command-word match, the
// matched word itself have been stripped — the argument text a
// handler's own parsing typically operates on.
type Result struct {
	Matched   bool
	Aux       string
	Remainder string
}

// MatchCommand applies prefix reduction and then compares the first
// whitespace-delimited token case-insensitively against words, setting
// Aux to the matched token with its original casing preserved (§4.2).
// If no command word matches (or none are declared), regexes are tried
// against the full prefix-reduced content instead; a match sets Aux to
// the first capture group, or the full match if there is none.
func MatchCommand(cfg Config, h *pluginapi.HandlerDescriptor, ev *event.Event) Result {
	isQuery := ev.Type == event.QUERY
	rest, ok := ApplyPrefix(cfg, h.PrefixPolicy, isQuery, ev.Content)
	if !ok {
		return Result{}
	}

	if len(h.CommandWords) > 0 {
		token, remainder := firstToken(rest)
		for _, word := range h.CommandWords {
			if strings.EqualFold(token, word) {
				return Result{Matched: true, Aux: token, Remainder: remainder}
			}
		}
		// Command words declared but none matched: regexes are only
		// evaluated "if command words did not already match" — since
		// they didn't match here, fall through to regex evaluation.
	}

	for _, re := range h.Regexes {
		if re == nil {
			continue
		}
		groups := safeFindSubmatch(re, rest)
		if groups == nil {
			continue
		}
		if len(groups) > 1 {
			return Result{Matched: true, Aux: groups[1], Remainder: rest}
		}
		return Result{Matched: true, Aux: groups[0], Remainder: rest}
	}

	if len(h.CommandWords) == 0 && len(h.Regexes) == 0 {
		// No command predicate declared at all: a direct/nickname
		// handler with no words/regex matches on prefix alone.
		return Result{Matched: true, Aux: "", Remainder: rest}
	}

	return Result{}
}

func firstToken(s string) (string, string) {
	s = strings.TrimLeft(s, " \t")
	idx := strings.IndexAny(s, " \t")
	if idx < 0 {
		return s, ""
	}
	return s[:idx], s[idx+1:]
}

// safeFindSubmatch guards against a panicking regex engine the way
// §4.1 step c requires ("on exceptions, skip that expression") — the
// stdlib regexp package does not panic on well-formed *regexp.Regexp,
// but a nil receiver or empty pattern list is guarded explicitly so a
// misconfigured handler never aborts the dispatcher.
func safeFindSubmatch(re interface{ FindStringSubmatch(string) []string }, s string) []string {
	defer func() { recover() }()
	return re.FindStringSubmatch(s)
}
