package models

import (
	"fmt"
	"math/rand"
	"time"
)

// ApplicationStatus tracks a submitted loan application through its lifecycle.
// The engine only ever produces StatusSubmitted; the later stages belong to
// the lender's processing pipeline.
type ApplicationStatus string

const (
	StatusSubmitted    ApplicationStatus = "submitted"
	StatusVerification ApplicationStatus = "verification"
	StatusApproved     ApplicationStatus = "approved"
	StatusDisbursed    ApplicationStatus = "disbursed"
)

// IsValid reports whether the status is one of the supported values.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusSubmitted, StatusVerification, StatusApproved, StatusDisbursed:
		return true
	}
	return false
}

// LoanApplication is the record produced by a completed wizard run. It is
// appended to the session's application list and never mutated afterwards.
type LoanApplication struct {
	ID       string            `json:"id"`
	BankName string            `json:"bank_name"`
	Amount   float64           `json:"amount"`
	Status   ApplicationStatus `json:"status"`
	Date     string            `json:"date"`
}

// NewApplicationID generates a human-readable application reference of the
// form LN-NNNN.
func NewApplicationID() string {
	return fmt.Sprintf("LN-%04d", rand.Intn(10000))
}

// ApplicationDate formats the given time the way applications record it.
func ApplicationDate(t time.Time) string {
	return t.Format("02/01/2006")
}
