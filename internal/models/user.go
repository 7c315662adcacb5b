package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is a single roster record. The record set stores values, not pointers:
// a snapshot handed to a caller stays intact after the record is replaced.
type User struct {
	ID         uuid.UUID
	Name       string
	Phone      string
	Email      string
	Balance    decimal.Decimal
	Blocked    bool
	CreatedAt  time.Time
	LastActive time.Time
}
