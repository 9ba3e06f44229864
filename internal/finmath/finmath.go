// Package finmath implements the financial computations shared by the
// dashboard, offer ranking and application wizard. All functions are pure
// and safe for concurrent use.
package finmath

import (
	"math"

	"github.com/meghamaniyar/credisage101-finscoreai/internal/models"
)

// DefaultAnnualRate is assumed when a request does not specify a rate.
const DefaultAnnualRate = 12.0

// EMI computes the equated monthly installment for a reducing-balance loan,
// rounded to the nearest rupee. A zero rate degenerates to straight principal
// division. Non-positive tenure and negative rates are validation errors.
func EMI(principal float64, tenureMonths int, annualRate float64) (int64, error) {
	if tenureMonths <= 0 {
		return 0, models.ErrInvalidTenure
	}
	if annualRate < 0 {
		return 0, models.ErrInvalidRate
	}
	if annualRate == 0 {
		return int64(math.Round(principal / float64(tenureMonths))), nil
	}

	monthlyRate := annualRate / 12 / 100
	factor := math.Pow(1+monthlyRate, float64(tenureMonths))
	emi := principal * monthlyRate * factor / (factor - 1)
	return int64(math.Round(emi)), nil
}

// DefaultEMI computes the EMI at the default annual rate.
func DefaultEMI(principal float64, tenureMonths int) (int64, error) {
	return EMI(principal, tenureMonths, DefaultAnnualRate)
}

// TotalInterest returns the interest paid over the full tenure. A negative
// result indicates the EMI was computed inconsistently with the principal
// and is a programming error on the caller's side.
func TotalInterest(emi int64, tenureMonths int, principal float64) int64 {
	return emi*int64(tenureMonths) - int64(math.Round(principal))
}

// MonthlySavings returns the monthly EMI reduction from refinancing.
func MonthlySavings(oldEMI, newEMI int64) int64 {
	return oldEMI - newEMI
}

// AnnualSavings returns the yearly EMI reduction from refinancing.
func AnnualSavings(oldEMI, newEMI int64) int64 {
	return MonthlySavings(oldEMI, newEMI) * 12
}

// MaxEligibleAmount returns the largest loan amount available across the
// given offers. Eligibility cannot be computed with zero offers.
func MaxEligibleAmount(offers []models.LenderOffer) (float64, error) {
	if len(offers) == 0 {
		return 0, models.ErrNoOffers
	}
	max := offers[0].MaxAmount
	for _, o := range offers[1:] {
		if o.MaxAmount > max {
			max = o.MaxAmount
		}
	}
	return max, nil
}
