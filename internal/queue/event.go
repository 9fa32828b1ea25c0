// Package queue defines message payloads exchanged over the message broker.
package queue

// RegistrationConfirmedEvent is published when a public registration is
// accepted.  It carries enough for downstream consumers to log or notify
// without querying the primary database.
type RegistrationConfirmedEvent struct {
	RegistrationID uint64 `json:"registration_id"`
	EventID        uint64 `json:"event_id"`
	EventName      string `json:"event_name"`
	AttendeeName   string `json:"attendee_name"`
	AttendeeEmail  string `json:"attendee_email"`
	RegisteredAt   string `json:"registered_at"`
}

// EventApprovedEvent is published when an admin approves a pending event
// request and it is materialized into the catalog.
type EventApprovedEvent struct {
	RequestID  uint64 `json:"request_id"`
	EventID    uint64 `json:"event_id"`
	EventName  string `json:"event_name"`
	UserEmail  string `json:"user_email"`
	ApprovedAt string `json:"approved_at"`
}
