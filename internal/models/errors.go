package models

import "errors"

// Common errors
var (
	ErrInvalidMobile      = errors.New("mobile number must be 10 digits")
	ErrInvalidPAN         = errors.New("PAN must be 10 uppercase alphanumeric characters")
	ErrLoanNotFound       = errors.New("loan not found")
	ErrOfferNotFound      = errors.New("offer not found")
	ErrNotSwitchable      = errors.New("loan has no switch offer")
	ErrNoOffers           = errors.New("eligibility cannot be computed with zero offers")
	ErrInvalidTenure      = errors.New("tenure must be positive")
	ErrInvalidRate        = errors.New("interest rate cannot be negative")
	ErrAmountOutOfRange   = errors.New("loan amount must be between 50,000 and 50,00,000")
	ErrTenureOutOfRange   = errors.New("tenure must be between 12 and 60 months")
	ErrIncomeRequired     = errors.New("monthly income is required")
	ErrInvalidEmployment  = errors.New("invalid employment type")
	ErrInvalidPurpose     = errors.New("invalid loan purpose")
	ErrUnknownDocument    = errors.New("unknown document id")
	ErrNoOfferSelected    = errors.New("an offer must be selected")
	ErrConsentRequired    = errors.New("consent is required to submit the application")
	ErrInvalidTransition  = errors.New("transition not allowed from current state")
	ErrTransitionPending  = errors.New("a transition is already in progress")
	ErrSessionNotVerified = errors.New("session is not verified")
)
