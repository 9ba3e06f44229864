package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meghamaniyar/credisage101-finscoreai/internal/finmath"
	"github.com/meghamaniyar/credisage101-finscoreai/internal/models"
)

func TestListLoansFilters(t *testing.T) {
	r := NewDemo()

	all := r.ListLoans(FilterAll)
	require.Len(t, all, 5)
	// Insertion order preserved
	assert.Equal(t, "1", all[0].ID)
	assert.Equal(t, "5", all[4].ID)

	cards := r.ListLoans(FilterCard)
	require.Len(t, cards, 1)
	assert.Equal(t, models.LoanCategoryCreditCard, cards[0].Category)

	loans := r.ListLoans(FilterLoan)
	require.Len(t, loans, 4)
	for _, l := range loans {
		assert.NotEqual(t, models.LoanCategoryCreditCard, l.Category)
	}
}

func TestListLoansEmpty(t *testing.T) {
	r := New(nil)
	assert.Empty(t, r.ListLoans(FilterAll))
}

func TestToggleReminderInvolution(t *testing.T) {
	r := NewDemo()

	before, err := r.GetLoan("1")
	require.NoError(t, err)
	original := before.ReminderSet

	updated, err := r.ToggleReminder("1")
	require.NoError(t, err)
	assert.Equal(t, !original, updated.ReminderSet)

	updated, err = r.ToggleReminder("1")
	require.NoError(t, err)
	assert.Equal(t, original, updated.ReminderSet)
}

func TestToggleReminderUnknownID(t *testing.T) {
	r := NewDemo()

	snapshot := make([]bool, 0, 5)
	for _, l := range r.ListLoans(FilterAll) {
		snapshot = append(snapshot, l.ReminderSet)
	}

	_, err := r.ToggleReminder("nope")
	assert.ErrorIs(t, err, models.ErrLoanNotFound)

	for i, l := range r.ListLoans(FilterAll) {
		assert.Equal(t, snapshot[i], l.ReminderSet, "loan list must be unchanged")
	}
}

func TestTotalPotentialMonthlySavings(t *testing.T) {
	r := NewDemo()
	// 5600 (HDFC personal) + 3200 (SBI home)
	assert.Equal(t, int64(8800), r.TotalPotentialMonthlySavings())
}

func TestRankOffersSortedByEMI(t *testing.T) {
	offers := NewLoanOffers()

	ranked, err := RankOffers(offers, 800000, 48)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	for i := 1; i < len(ranked); i++ {
		assert.LessOrEqual(t, ranked[i-1].EMI, ranked[i].EMI, "offers must be sorted by ascending EMI")
	}
}

func TestRankOffersCapsAmountAndTenure(t *testing.T) {
	offers := NewLoanOffers()

	ranked, err := RankOffers(offers, 800000, 48)
	require.NoError(t, err)

	for _, ro := range ranked {
		amount := 800000.0
		if ro.Offer.MaxAmount < amount {
			amount = ro.Offer.MaxAmount
		}
		tenure := 48
		if ro.Offer.TenureMonths < tenure {
			tenure = ro.Offer.TenureMonths
		}
		want, err := finmath.EMI(amount, tenure, ro.Offer.InterestRate)
		require.NoError(t, err)
		assert.Equal(t, want, ro.EMI, "EMI must reflect capped request for %s", ro.Offer.ID)
	}
}

func TestRankOffersIdempotent(t *testing.T) {
	offers := NewLoanOffers()

	first, err := RankOffers(offers, 200000, 24)
	require.NoError(t, err)

	reordered := make([]models.LenderOffer, 0, len(first))
	for _, ro := range first {
		reordered = append(reordered, ro.Offer)
	}
	second, err := RankOffers(reordered, 200000, 24)
	require.NoError(t, err)

	for i := range first {
		assert.Equal(t, first[i].Offer.ID, second[i].Offer.ID, "re-ranking must preserve order")
	}
}

func TestRankOffersStableOnTies(t *testing.T) {
	offers := []models.LenderOffer{
		{ID: "a", BankName: "A", InterestRate: 11, MaxAmount: 1000000, TenureMonths: 60},
		{ID: "b", BankName: "B", InterestRate: 11, MaxAmount: 1000000, TenureMonths: 60},
	}
	ranked, err := RankOffers(offers, 300000, 36)
	require.NoError(t, err)
	assert.Equal(t, "a", ranked[0].Offer.ID)
	assert.Equal(t, "b", ranked[1].Offer.ID)
}

func TestRankOffersEmpty(t *testing.T) {
	_, err := RankOffers(nil, 200000, 24)
	assert.ErrorIs(t, err, models.ErrNoOffers)
}
