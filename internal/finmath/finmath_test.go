package finmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meghamaniyar/credisage101-finscoreai/internal/models"
)

func TestEMIKnownScenario(t *testing.T) {
	// 200000 over 24 months at 12% annual
	emi, err := EMI(200000, 24, 12)
	require.NoError(t, err)
	assert.Equal(t, int64(9415), emi)
	assert.Equal(t, int64(25960), TotalInterest(emi, 24, 200000))
}

func TestEMIDefaultRate(t *testing.T) {
	emi, err := DefaultEMI(200000, 24)
	require.NoError(t, err)
	assert.Equal(t, int64(9415), emi)
}

func TestEMIZeroRate(t *testing.T) {
	emi, err := EMI(120000, 12, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), emi)
}

func TestEMIInvalidInputs(t *testing.T) {
	_, err := EMI(100000, 0, 12)
	assert.ErrorIs(t, err, models.ErrInvalidTenure)

	_, err = EMI(100000, -6, 12)
	assert.ErrorIs(t, err, models.ErrInvalidTenure)

	_, err = EMI(100000, 12, -1)
	assert.ErrorIs(t, err, models.ErrInvalidRate)
}

func TestEMITotalPaymentsCoverPrincipal(t *testing.T) {
	principals := []float64{50000, 200000, 1500000, 5000000}
	tenures := []int{12, 24, 36, 60}
	rates := []float64{8.4, 10.75, 12, 15.5, 42}

	for _, p := range principals {
		for _, n := range tenures {
			for _, r := range rates {
				emi, err := EMI(p, n, r)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, float64(emi)*float64(n), p,
					"total payments must cover principal for P=%.0f N=%d R=%.2f", p, n, r)
			}
		}
	}
}

func TestEMIMonotonicInRate(t *testing.T) {
	prev := int64(0)
	for _, r := range []float64{6, 8, 10, 12, 16, 24, 42} {
		emi, err := EMI(500000, 36, r)
		require.NoError(t, err)
		assert.Greater(t, emi, prev, "EMI must increase with rate")
		prev = emi
	}
}

func TestEMIMonotonicInTenure(t *testing.T) {
	prev := int64(1 << 62)
	for _, n := range []int{12, 18, 24, 36, 48, 60} {
		emi, err := EMI(500000, n, 12)
		require.NoError(t, err)
		assert.Less(t, emi, prev, "EMI must decrease with tenure")
		prev = emi
	}
}

func TestSavings(t *testing.T) {
	assert.Equal(t, int64(5600), MonthlySavings(12400, 6800))
	assert.Equal(t, int64(67200), AnnualSavings(12400, 6800))
}

func TestMaxEligibleAmount(t *testing.T) {
	offers := []models.LenderOffer{
		{ID: "o1", MaxAmount: 1500000},
		{ID: "o2", MaxAmount: 1200000},
		{ID: "o3", MaxAmount: 500000},
	}
	max, err := MaxEligibleAmount(offers)
	require.NoError(t, err)
	assert.Equal(t, float64(1500000), max)
}

func TestMaxEligibleAmountEmpty(t *testing.T) {
	_, err := MaxEligibleAmount(nil)
	assert.ErrorIs(t, err, models.ErrNoOffers)
}
