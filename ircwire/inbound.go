package ircwire

import "github.com/gedaiu/kameloso-go/event"

// DecodeError signals that the parser could not validate an inbound
// line as UTF-8 (§6 "the parser guarantees UTF-8 or signals a decode
// error for the dispatcher to sanitise"). RawLine is preserved so the
// dispatcher can retry with event.Event.Sanitize (§4.1, §7).
type DecodeError struct {
	RawLine string
	Cause   error
}

func (e *DecodeError) Error() string {
	return "ircwire: decode error: " + e.Cause.Error()
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// Parser is the minimal inbound contract a wire reader must satisfy:
// either a well-formed Event or a *DecodeError, never both.
type Parser interface {
	Parse(line string) (*event.Event, error)
}
