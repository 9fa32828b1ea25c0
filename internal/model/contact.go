package model

// ContactMessage is a public contact-form submission.  Pure intake: rows
// are inserted and only ever read back by admins.
type ContactMessage struct {
	ID      uint64 `json:"id"`      // contact_messages.id
	Name    string `json:"name"`    // contact_messages.name
	Email   string `json:"email"`   // contact_messages.email
	Message string `json:"message"` // contact_messages.message
	SentAt  string `json:"sent_at"` // contact_messages.sent_at
}

// AdminUser is the single stored admin credential.  The password is kept
// only as a bcrypt hash, seeded from configuration at startup.
type AdminUser struct {
	ID           uint64 // admin_users.id
	Email        string // admin_users.email
	PasswordHash string // admin_users.password_hash
}

// Stats aggregates the admin dashboard counters.  Revenue is the sum over
// all events of ticket price times the live registration count.
type Stats struct {
	TotalEvents        int     `json:"total_events"`
	TotalRegistrations int     `json:"total_registrations"`
	PendingRequests    int     `json:"pending_requests"`
	ContactMessages    int     `json:"contact_messages"`
	TotalRevenue       float64 `json:"total_revenue"`
}
