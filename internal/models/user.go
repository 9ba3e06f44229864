// Package models defines the data structures for the FinScoreAI engine.
package models

import "strings"

// EmploymentType represents the applicant's employment category.
type EmploymentType string

const (
	EmploymentSalaried     EmploymentType = "salaried"
	EmploymentSelfEmployed EmploymentType = "self-employed"
)

// IsValid reports whether the employment type is one of the supported values.
func (e EmploymentType) IsValid() bool {
	return e == EmploymentSalaried || e == EmploymentSelfEmployed
}

// UserProfile holds the session user's identity and credit standing.
// A zero CibilScore means the user has not been verified yet.
type UserProfile struct {
	Mobile     string `json:"mobile"`
	PAN        string `json:"pan"`
	Name       string `json:"name"`
	CibilScore int    `json:"cibil_score"`
}

// Verified reports whether the profile has gone through OTP verification.
func (u *UserProfile) Verified() bool {
	return u.CibilScore > 0
}

// FirstName returns the leading word of the display name, used in greetings.
func (u *UserProfile) FirstName() string {
	if u.Name == "" {
		return ""
	}
	return strings.Fields(u.Name)[0]
}

// ValidateMobile performs the basic format check applied at session start:
// exactly ten digits.
func ValidateMobile(mobile string) error {
	if len(mobile) != 10 {
		return ErrInvalidMobile
	}
	for _, r := range mobile {
		if r < '0' || r > '9' {
			return ErrInvalidMobile
		}
	}
	return nil
}

// ValidatePAN performs the basic format check applied at session start:
// ten uppercase alphanumeric characters.
func ValidatePAN(pan string) error {
	if len(pan) != 10 {
		return ErrInvalidPAN
	}
	for _, r := range pan {
		isDigit := r >= '0' && r <= '9'
		isUpper := r >= 'A' && r <= 'Z'
		if !isDigit && !isUpper {
			return ErrInvalidPAN
		}
	}
	return nil
}
