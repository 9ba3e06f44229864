package models

// LoanCategory represents the type of an existing loan account.
type LoanCategory string

const (
	LoanCategoryPersonal   LoanCategory = "Personal Loan"
	LoanCategoryHome       LoanCategory = "Home Loan"
	LoanCategoryCreditCard LoanCategory = "Credit Card"
	LoanCategoryGold       LoanCategory = "Gold Loan"
	LoanCategoryCar        LoanCategory = "Car Loan"
)

// IsValid reports whether the category is one of the supported values.
func (c LoanCategory) IsValid() bool {
	switch c {
	case LoanCategoryPersonal, LoanCategoryHome, LoanCategoryCreditCard,
		LoanCategoryGold, LoanCategoryCar:
		return true
	}
	return false
}

// SwitchOffer is a proposed refinance of an existing loan to a new lender
// at a lower rate.
type SwitchOffer struct {
	NewRate        float64 `json:"new_rate"`
	NewBankName    string  `json:"new_bank_name"`
	MonthlySavings int64   `json:"monthly_savings"`
	ProcessingFee  int64   `json:"processing_fee"`
	TenureYears    int     `json:"tenure_years"`
}

// Loan represents one of the user's existing loan accounts. A loan is
// switchable exactly when it carries a SwitchOffer; there is no separate
// flag to drift out of sync.
type Loan struct {
	ID                    string       `json:"id"`
	BankName              string       `json:"bank_name"`
	Category              LoanCategory `json:"category"`
	OutstandingAmount     float64      `json:"outstanding_amount"`
	Rate                  float64      `json:"rate"`
	EMI                   int64        `json:"emi"`
	TenureMonthsRemaining int          `json:"tenure_months_remaining"`
	NextEMIDate           string       `json:"next_emi_date"`
	ReminderSet           bool         `json:"reminder_set"`
	SwitchOffer           *SwitchOffer `json:"switch_offer,omitempty"`
}

// CanSwitch reports whether a refinance offer is available for this loan.
func (l *Loan) CanSwitch() bool {
	return l.SwitchOffer != nil
}
