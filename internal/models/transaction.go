package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind is a closed enumeration. Every switch over it must list all
// four kinds explicitly so a new kind fails loudly instead of falling through.
type TransactionKind string

const (
	KindDeposit    TransactionKind = "deposit"
	KindWithdrawal TransactionKind = "withdrawal"
	KindTransfer   TransactionKind = "transfer"
	KindReward     TransactionKind = "reward"
)

// Kinds lists every transaction kind in a stable order
func Kinds() []TransactionKind {
	return []TransactionKind{KindDeposit, KindWithdrawal, KindTransfer, KindReward}
}

func (k TransactionKind) Valid() bool {
	switch k {
	case KindDeposit, KindWithdrawal, KindTransfer, KindReward:
		return true
	}
	return false
}

// Label returns the operator-facing description for the kind.
// Texts are the French strings the console has always shown.
func (k TransactionKind) Label() string {
	switch k {
	case KindDeposit:
		return "Dépôt sur compte"
	case KindWithdrawal:
		return "Retrait depuis compte"
	case KindTransfer:
		return "Transfert entre comptes"
	case KindReward:
		return "Récompense promotionnelle"
	}
	return ""
}

type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "completed"
	StatusPending   TransactionStatus = "pending"
	StatusFailed    TransactionStatus = "failed"
)

// Statuses lists every transaction status in a stable order
func Statuses() []TransactionStatus {
	return []TransactionStatus{StatusCompleted, StatusPending, StatusFailed}
}

func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusCompleted, StatusPending, StatusFailed:
		return true
	}
	return false
}

type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Kind        TransactionKind
	Status      TransactionStatus
	Description string
	Date        time.Time
}
