package registry

import "github.com/meghamaniyar/credisage101-finscoreai/internal/models"

// SeedLoans returns the demo loan portfolio a fresh session starts with.
// All financial outcomes in the product are simulated, so the portfolio is
// fixed rather than fetched.
func SeedLoans() []*models.Loan {
	return []*models.Loan{
		{
			ID:                    "1",
			BankName:              "HDFC Bank",
			Category:              models.LoanCategoryPersonal,
			OutstandingAmount:     320000,
			Rate:                  15.5,
			EMI:                   12400,
			TenureMonthsRemaining: 36,
			NextEMIDate:           "5th Oct",
			ReminderSet:           false,
			SwitchOffer: &models.SwitchOffer{
				NewRate:        10.4,
				NewBankName:    "IDFC First",
				MonthlySavings: 5600,
				ProcessingFee:  0,
				TenureYears:    3,
			},
		},
		{
			ID:                    "2",
			BankName:              "SBI Home Loans",
			Category:              models.LoanCategoryHome,
			OutstandingAmount:     2450000,
			Rate:                  8.9,
			EMI:                   22100,
			TenureMonthsRemaining: 180,
			NextEMIDate:           "1st Oct",
			ReminderSet:           true,
			SwitchOffer: &models.SwitchOffer{
				NewRate:        8.4,
				NewBankName:    "Kotak Mahindra",
				MonthlySavings: 3200,
				ProcessingFee:  5000,
				TenureYears:    15,
			},
		},
		{
			ID:                    "3",
			BankName:              "ICICI Bank",
			Category:              models.LoanCategoryCar,
			OutstandingAmount:     420000,
			Rate:                  9.5,
			EMI:                   9800,
			TenureMonthsRemaining: 42,
			NextEMIDate:           "10th Oct",
			ReminderSet:           false,
		},
		{
			ID:                    "4",
			BankName:              "Manappuram Gold",
			Category:              models.LoanCategoryGold,
			OutstandingAmount:     150000,
			Rate:                  12.0,
			EMI:                   0,
			TenureMonthsRemaining: 6,
			NextEMIDate:           "15th Oct",
			ReminderSet:           false,
		},
		{
			ID:                    "5",
			BankName:              "SBI Card",
			Category:              models.LoanCategoryCreditCard,
			OutstandingAmount:     45000,
			Rate:                  42.0,
			EMI:                   4500,
			TenureMonthsRemaining: 0,
			NextEMIDate:           "12th Oct",
			ReminderSet:           true,
		},
	}
}

// NewLoanOffers returns the lender catalog shown inside the new-loan wizard.
func NewLoanOffers() []models.LenderOffer {
	return []models.LenderOffer{
		{
			ID:            "o1",
			BankName:      "HDFC Bank",
			InterestRate:  10.75,
			MaxAmount:     1500000,
			TenureMonths:  60,
			Features:      []string{"Pre-approved", "24hr Disbursal"},
			LogoColor:     "bg-blue-800",
			Rating:        4.9,
			ProcessingFee: 999,
		},
		{
			ID:            "o2",
			BankName:      "ICICI Bank",
			InterestRate:  11.25,
			MaxAmount:     1200000,
			TenureMonths:  60,
			Features:      []string{"Minimal Documentation"},
			LogoColor:     "bg-orange-600",
			Rating:        4.7,
			ProcessingFee: 499,
		},
		{
			ID:            "o3",
			BankName:      "KreditBee",
			InterestRate:  12.50,
			MaxAmount:     500000,
			TenureMonths:  36,
			Features:      []string{"Instant Transfer"},
			LogoColor:     "bg-yellow-600",
			Rating:        4.5,
			ProcessingFee: 0,
		},
	}
}

// RefinanceLenders returns the lender catalog shown on the switch-offer page.
func RefinanceLenders() []models.LenderOffer {
	return []models.LenderOffer{
		{
			ID:            "l1",
			BankName:      "HDFC Bank",
			InterestRate:  10.40,
			MaxAmount:     1000000,
			TenureMonths:  60,
			Features:      []string{"Zero Foreclosure", "Instant Transfer"},
			LogoColor:     "bg-[#004c8f]",
			Rating:        4.8,
			ProcessingFee: 0,
		},
		{
			ID:            "l2",
			BankName:      "Kotak Mahindra Bank",
			InterestRate:  10.52,
			MaxAmount:     1500000,
			TenureMonths:  60,
			Features:      []string{"Minimal Docs", "Flexible Tenure"},
			LogoColor:     "bg-[#ed1b24]",
			Rating:        4.7,
			ProcessingFee: 499,
		},
		{
			ID:            "l3",
			BankName:      "ICICI Bank",
			InterestRate:  10.60,
			MaxAmount:     1200000,
			TenureMonths:  60,
			Features:      []string{"Paperless", "Pre-approved"},
			LogoColor:     "bg-[#f37e20]",
			Rating:        4.6,
			ProcessingFee: 999,
		},
	}
}
