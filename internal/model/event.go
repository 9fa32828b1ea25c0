package model

// Event is a published catalog entry.  Events only ever exist
// post-approval: the pending/approved/rejected lifecycle lives on
// PendingEvent, so the status column here always holds StatusUpcoming.
//
// Fields:
//
//	ID                – primary key identifier.
//	Name              – display name of the event.
//	Date              – calendar date in YYYY-MM-DD form.
//	Time              – optional time-of-day text.
//	Location          – venue.
//	Category          – free-form category label.
//	Description       – long description.
//	ImageFilename     – blob object name, nil when no image was uploaded.
//	ImageURL          – fetchable URL derived from ImageFilename at
//	                    response-formatting time; never stored.
//	MaxAttendees      – capacity limit, positive, defaults to 100.
//	TicketPrice       – non-negative price, defaults to 0.
//	Status            – always "upcoming".
//	RegistrationCount – live count of registrations, computed per query.
//	CreatedAt         – creation timestamp, UTC RFC3339.
//	UpdatedAt         – last admin update, nil until the first update.
type Event struct {
	ID                uint64  `json:"id"`                 // events.id
	Name              string  `json:"name"`               // events.name
	Date              string  `json:"date"`               // events.date
	Time              *string `json:"time"`               // events.time (nullable)
	Location          string  `json:"location"`           // events.location
	Category          string  `json:"category"`           // events.category
	Description       string  `json:"description"`        // events.description
	ImageFilename     *string `json:"-"`                  // events.image_filename (nullable)
	ImageURL          *string `json:"image_url"`          // derived, not persisted
	MaxAttendees      int     `json:"max_attendees"`      // events.max_attendees
	TicketPrice       float64 `json:"ticket_price"`       // events.ticket_price
	Status            string  `json:"status"`             // events.status
	RegistrationCount int     `json:"registration_count"` // derived, not persisted
	CreatedAt         string  `json:"created_at"`         // events.created_at
	UpdatedAt         *string `json:"updated_at,omitempty"`
}

// StatusUpcoming is the only status a catalog event carries.
const StatusUpcoming = "upcoming"

// DefaultMaxAttendees applies when a submission omits the capacity.
const DefaultMaxAttendees = 100
