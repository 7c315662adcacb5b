package models

import (
	"time"

	"github.com/google/uuid"
)

// Operator is the authenticated admin descriptor the console works as
type Operator struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session binds an issued access token to an operator. Sessions are the only
// durable state in the system; everything else lives in memory.
type Session struct {
	ID        uuid.UUID `json:"id"`
	Operator  Operator  `json:"operator"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IssuedToken is a signed access token together with its expiry
type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}
