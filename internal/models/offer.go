package models

// LenderOffer is an immutable catalog entry describing a lender's loan
// product terms. Catalog entries are read-only to the core.
type LenderOffer struct {
	ID            string   `json:"id"`
	BankName      string   `json:"bank_name"`
	InterestRate  float64  `json:"interest_rate"`
	MaxAmount     float64  `json:"max_amount"`
	TenureMonths  int      `json:"tenure_months"`
	Features      []string `json:"features"`
	LogoColor     string   `json:"logo_color"`
	Rating        float64  `json:"rating"`
	ProcessingFee int64    `json:"processing_fee"`
}

// RankedOffer pairs a catalog offer with the EMI computed for a specific
// loan request, with amount and tenure capped to the offer's limits.
type RankedOffer struct {
	Offer LenderOffer `json:"offer"`
	EMI   int64       `json:"emi"`
}
