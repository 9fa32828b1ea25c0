package model

// PendingEvent is a public "create event" proposal awaiting admin review.
// Its status moves exactly once, from pending to approved or rejected, and
// never again.  Approval copies the fields into a new catalog Event;
// rejection is terminal without materializing anything.
//
// Fields mirror Event minus status/registration data, plus:
//
//	CreatedBy – free-text submitter name, defaults to a placeholder.
//	UserEmail – free-text submitter email, defaults to a placeholder.
//	Status    – pending | approved | rejected.
type PendingEvent struct {
	ID            uint64  `json:"id"`            // pending_events.id
	Name          string  `json:"name"`          // pending_events.name
	Date          string  `json:"date"`          // pending_events.date
	Time          *string `json:"time"`          // pending_events.time (nullable)
	Location      string  `json:"location"`      // pending_events.location
	Category      string  `json:"category"`      // pending_events.category
	Description   string  `json:"description"`   // pending_events.description
	ImageFilename *string `json:"-"`             // pending_events.image_filename (nullable)
	ImageURL      *string `json:"image_url"`     // derived, not persisted
	MaxAttendees  int     `json:"max_attendees"` // pending_events.max_attendees
	TicketPrice   float64 `json:"ticket_price"`  // pending_events.ticket_price
	CreatedBy     string  `json:"created_by"`    // pending_events.created_by
	UserEmail     string  `json:"user_email"`    // pending_events.user_email
	Status        string  `json:"status"`        // pending_events.status
	CreatedAt     string  `json:"created_at"`    // pending_events.created_at
}

// Pending event statuses.  approved and rejected are terminal.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Placeholder identity used when a public submission omits the optional
// submitter fields.
const (
	DefaultCreatedBy = "User"
	DefaultUserEmail = "user@example.com"
)
