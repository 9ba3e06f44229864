// Package registry holds the session's loan accounts and the lender offer
// catalogs, and provides the derived aggregates the dashboard and wizard
// are built on.
package registry

import (
	"sort"
	"sync"

	"github.com/meghamaniyar/credisage101-finscoreai/internal/finmath"
	"github.com/meghamaniyar/credisage101-finscoreai/internal/models"
)

// LoanFilter selects which loan accounts a listing includes.
type LoanFilter string

const (
	FilterAll  LoanFilter = "ALL"
	FilterLoan LoanFilter = "LOAN" // everything except credit cards
	FilterCard LoanFilter = "CARD" // credit cards only
)

// IsValid reports whether the filter is one of the supported values.
func (f LoanFilter) IsValid() bool {
	return f == FilterAll || f == FilterLoan || f == FilterCard
}

// Registry is the in-memory collection of a session's loan accounts.
// Loans are seeded at construction and mutated only via reminder toggling.
type Registry struct {
	mu    sync.Mutex
	loans []*models.Loan
}

// New creates a registry seeded with the given loan accounts. Insertion
// order is preserved for the lifetime of the session.
func New(loans []*models.Loan) *Registry {
	return &Registry{loans: loans}
}

// NewDemo creates a registry seeded with the demo loan portfolio.
func NewDemo() *Registry {
	return New(SeedLoans())
}

// ListLoans returns the loan accounts matching the filter, in insertion order.
func (r *Registry) ListLoans(filter LoanFilter) []*models.Loan {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*models.Loan, 0, len(r.loans))
	for _, l := range r.loans {
		switch filter {
		case FilterCard:
			if l.Category != models.LoanCategoryCreditCard {
				continue
			}
		case FilterLoan:
			if l.Category == models.LoanCategoryCreditCard {
				continue
			}
		}
		out = append(out, l)
	}
	return out
}

// GetLoan returns the loan with the given id.
func (r *Registry) GetLoan(id string) (*models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findLocked(id)
}

// ToggleReminder flips the EMI reminder flag on the given loan and returns
// the updated loan. No other field changes.
func (r *Registry) ToggleReminder(id string) (*models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	loan, err := r.findLocked(id)
	if err != nil {
		return nil, err
	}
	loan.ReminderSet = !loan.ReminderSet
	return loan, nil
}

// TotalPotentialMonthlySavings sums the switch-offer monthly savings across
// all loans, for the dashboard's aggregate savings callout.
func (r *Registry) TotalPotentialMonthlySavings() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	var total int64
	for _, l := range r.loans {
		if l.SwitchOffer != nil {
			total += l.SwitchOffer.MonthlySavings
		}
	}
	return total
}

func (r *Registry) findLocked(id string) (*models.Loan, error) {
	for _, l := range r.loans {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, models.ErrLoanNotFound
}

// RankOffers computes the EMI each offer would charge for the requested
// amount and tenure, capping both to the offer's limits, and returns the
// offers sorted by ascending EMI. Ties preserve catalog order.
func RankOffers(offers []models.LenderOffer, requestedAmount float64, requestedTenureMonths int) ([]models.RankedOffer, error) {
	if len(offers) == 0 {
		return nil, models.ErrNoOffers
	}

	ranked := make([]models.RankedOffer, 0, len(offers))
	for _, offer := range offers {
		amount := requestedAmount
		if offer.MaxAmount < amount {
			amount = offer.MaxAmount
		}
		tenure := requestedTenureMonths
		if offer.TenureMonths < tenure {
			tenure = offer.TenureMonths
		}

		emi, err := finmath.EMI(amount, tenure, offer.InterestRate)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, models.RankedOffer{Offer: offer, EMI: emi})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].EMI < ranked[j].EMI
	})
	return ranked, nil
}
