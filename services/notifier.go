package services

import "log"

// Notification audiences
const (
	AudienceGuest = "guest"
	AudienceStaff = "staff"
)

// Notifier delivers best-effort guest/staff notifications. Implementations
// must not block; delivery failure never affects the state change that
// triggered it. ws.Hub is the production implementation, tests inject fakes.
type Notifier interface {
	Notify(audience, event string, payload any)
}

// notify guards service code against a nil or panicking gateway. A lost
// notification is logged and swallowed.
func notify(n Notifier, audience, event string, payload any) {
	if n == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("notify %s/%s failed: %v", audience, event, r)
		}
	}()
	n.Notify(audience, event, payload)
}
