package model

// Registration records one attendee for one event.  Registrations are
// created by the public registration endpoint, never updated, and deleted
// only as a cascade effect of deleting their event.
//
// Fields:
//
//	ID           – primary key identifier.
//	EventID      – event being attended.
//	Name         – attendee name.
//	Email        – attendee email.
//	RegisteredAt – creation timestamp, UTC RFC3339, immutable.
type Registration struct {
	ID           uint64 `json:"id"`            // registrations.id
	EventID      uint64 `json:"event_id"`      // registrations.event_id
	Name         string `json:"name"`          // registrations.name
	Email        string `json:"email"`         // registrations.email
	RegisteredAt string `json:"registered_at"` // registrations.registered_at
}
