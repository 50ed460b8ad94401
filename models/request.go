package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// PaymentRequest is a debtor-initiated claim of repayment awaiting
// admin adjudication. DebtorName is a snapshot taken at creation time
// and is deliberately not kept in sync with later renames.
type PaymentRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DebtorID   uuid.UUID `gorm:"type:uuid;index" json:"debtor_id"`
	DebtorName string    `gorm:"not null;size:100" json:"debtor_name"`
	Status     string    `gorm:"not null;default:pending;size:20" json:"status"` // pending, approved, rejected
	Timestamp  time.Time `gorm:"column:timestamp" json:"timestamp"`
}

func (r *PaymentRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Terminal reports whether the request has left pending. Once terminal,
// no ledger operation may change its status again.
func (r PaymentRequest) Terminal() bool {
	return r.Status != RequestPending
}

// Request structs
type CreatePaymentRequest struct {
	DebtorID string `json:"debtor_id" binding:"required"`
}

type ProcessRequestInput struct {
	Approved *bool `json:"approved" binding:"required"`
}
