// Package bus implements named, typed point-to-multipoint messaging
// between plugins (§4.6). Grounded on the teacher-adjacent event bus
// (leeforge-framework's runtime/event_bus.go), but simplified to match
// this domain's single-threaded cooperative model (§5): delivery is
// synchronous and in registration order, with no worker goroutines.
package bus

// Recipient is anything that can receive a bus broadcast; pluginapi.Plugin
// satisfies this directly via its OnBusMessage method.
type Recipient interface {
	Name() string
	OnBusMessage(header string, payload interface{})
}

// Bus fans a message out to every registered recipient in registration
// order, preserving per-sender order (§4.6: "Order is preserved per
// sender").
type Bus struct {
	recipients []Recipient
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{}
}

// Register adds a recipient. Plugins are registered once, in the same
// order the dispatcher enumerates them.
func (b *Bus) Register(r Recipient) {
	b.recipients = append(b.recipients, r)
}

// Send broadcasts header/payload to every registered recipient except
// the sender (a plugin does not receive its own broadcast back).
// Delivery is synchronous from the sender's perspective (§4.6).
func (b *Bus) Send(sender string, header string, payload interface{}) {
	for _, r := range b.recipients {
		if r.Name() == sender {
			continue
		}
		r.OnBusMessage(header, payload)
	}
}
