package utils // package utils provides helpers for admin session tokens and hashing

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminToken is a signed JWT session token along with its expiry.  Admin
// sessions are single tokens with a 24-hour default lifetime; there is no
// refresh flow.
type AdminToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAdminToken builds and signs an HS256 JWT for the admin identity.  The
// claims carry the admin email as subject, the admin role, expiration and
// issued-at.  ttlHours controls the token lifetime.
func NewAdminToken(secret, email string, ttlHours int) (AdminToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlHours) * time.Hour)
	claims := jwt.MapClaims{
		"sub":  email,
		"role": "admin",
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AdminToken{}, err
	}
	return AdminToken{Token: signed, Exp: exp}, nil
}
