package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meghamaniyar/credisage101-finscoreai/internal/models"
	"github.com/meghamaniyar/credisage101-finscoreai/internal/wizard"
)

func instantSession() *Orchestrator {
	return New(MockBureau{}, Config{
		Wizard: wizard.Config{
			Now: func() time.Time { return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC) },
		},
	})
}

func loggedInSession(t *testing.T, pan string) *Orchestrator {
	t.Helper()
	o := instantSession()
	require.NoError(t, o.Start("9876543210", pan))
	require.NoError(t, o.VerifyOTP(context.Background()))
	require.Equal(t, ViewDashboard, o.View())
	return o
}

func TestStartValidation(t *testing.T) {
	o := instantSession()

	assert.ErrorIs(t, o.Start("12345", "ABCDE1234F"), models.ErrInvalidMobile)
	assert.ErrorIs(t, o.Start("98765432100", "ABCDE1234F"), models.ErrInvalidMobile)
	assert.ErrorIs(t, o.Start("9876543abc", "ABCDE1234F"), models.ErrInvalidMobile)
	assert.ErrorIs(t, o.Start("9876543210", "ABC"), models.ErrInvalidPAN)
	assert.ErrorIs(t, o.Start("9876543210", "abcde1234f"), models.ErrInvalidPAN)
	assert.Equal(t, ViewHome, o.View(), "failed validation must not leave HOME")

	require.NoError(t, o.Start("9876543210", "ABCDE1234F"))
	assert.Equal(t, ViewOTP, o.View())

	assert.ErrorIs(t, o.Start("9876543210", "ABCDE1234F"), models.ErrInvalidTransition)
}

func TestVerifyOTPScoresByPANSuffix(t *testing.T) {
	cases := []struct {
		pan  string
		want int
	}{
		{"ABCDE1234F", 780},
		{"ABCDE1234A", 780},
		{"ABCDE1234Z", 680},
		{"ABCDE12345", 680},
	}
	for _, tc := range cases {
		o := loggedInSession(t, tc.pan)
		user := o.User()
		assert.Equal(t, tc.want, user.CibilScore, "pan %s", tc.pan)
		assert.Equal(t, "Rahul Sharma", user.Name)
		assert.True(t, user.Verified())
		assert.Equal(t, "Rahul", user.FirstName())
	}
}

func TestVerifyOTPRequiresOTPView(t *testing.T) {
	o := instantSession()
	assert.ErrorIs(t, o.VerifyOTP(context.Background()), models.ErrInvalidTransition)
}

func TestSelectLoanForSwitch(t *testing.T) {
	o := loggedInSession(t, "ABCDE1234F")

	loan, err := o.SelectLoanForSwitch("1")
	require.NoError(t, err)
	assert.Equal(t, ViewSwitchOffer, o.View())
	assert.Same(t, loan, o.SelectedLoan())
	require.NotNil(t, loan.SwitchOffer)
	assert.Equal(t, int64(5600), loan.SwitchOffer.MonthlySavings)
}

func TestSelectLoanForSwitchRejectsNonSwitchable(t *testing.T) {
	o := loggedInSession(t, "ABCDE1234F")

	// Loan 3 (car loan) carries no switch offer.
	_, err := o.SelectLoanForSwitch("3")
	assert.ErrorIs(t, err, models.ErrNotSwitchable)
	assert.Equal(t, ViewDashboard, o.View(), "rejection must keep the dashboard")
	assert.Nil(t, o.SelectedLoan())

	_, err = o.SelectLoanForSwitch("missing")
	assert.ErrorIs(t, err, models.ErrLoanNotFound)
}

func TestConfirmSwitchAndReturn(t *testing.T) {
	ctx := context.Background()
	o := loggedInSession(t, "ABCDE1234F")

	_, err := o.SelectLoanForSwitch("1")
	require.NoError(t, err)

	_, err = o.ConfirmSwitch(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrOfferNotFound)

	lender, err := o.ConfirmSwitch(ctx, "l2")
	require.NoError(t, err)
	assert.Equal(t, "Kotak Mahindra", lender.BankName)
	assert.InDelta(t, 10.52, lender.InterestRate, 1e-9)

	require.NoError(t, o.ReturnFromSwitch(true))
	assert.Equal(t, ViewDashboard, o.View())
	assert.Nil(t, o.SelectedLoan())
	assert.True(t, o.SkipIntro(), "successful switch skips the intro animation")
	assert.False(t, o.SkipIntro(), "flag reads once and clears")
}

func TestReturnFromSwitchWithoutSuccess(t *testing.T) {
	o := loggedInSession(t, "ABCDE1234F")
	_, err := o.SelectLoanForSwitch("2")
	require.NoError(t, err)

	require.NoError(t, o.ReturnFromSwitch(false))
	assert.False(t, o.SkipIntro())
}

func TestConfirmSwitchPending(t *testing.T) {
	o := New(MockBureau{}, Config{SwitchDelay: 150 * time.Millisecond})
	require.NoError(t, o.Start("9876543210", "ABCDE1234F"))
	require.NoError(t, o.VerifyOTP(context.Background()))
	_, err := o.SelectLoanForSwitch("1")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := o.ConfirmSwitch(context.Background(), "l1")
		done <- err
	}()

	require.Eventually(t, func() bool {
		o.mu.Lock()
		defer o.mu.Unlock()
		return o.switchPending
	}, time.Second, 5*time.Millisecond)

	_, err = o.ConfirmSwitch(context.Background(), "l1")
	assert.ErrorIs(t, err, models.ErrTransitionPending)
	require.NoError(t, <-done)
}

func TestNewLoanEndToEnd(t *testing.T) {
	ctx := context.Background()
	o := loggedInSession(t, "ABCDE1234F")

	wiz, err := o.StartNewLoan()
	require.NoError(t, err)
	assert.Equal(t, ViewNewLoan, o.View())
	assert.Same(t, wiz, o.Wizard())

	// Completion before the wizard finishes is rejected.
	_, err = o.CompleteNewLoan()
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	require.NoError(t, wiz.SubmitGoal(ctx, wizard.GoalInput{
		Amount:        300000,
		TenureMonths:  36,
		Purpose:       "Home Renovation",
		Employment:    models.EmploymentSalaried,
		MonthlyIncome: "90000",
	}))
	require.NoError(t, wiz.UploadDocument("aadhaar"))
	require.NoError(t, wiz.SubmitDocuments(ctx))
	require.NoError(t, wiz.SelectOffer("o1"))
	require.NoError(t, wiz.ProceedToConfirm(ctx))
	require.NoError(t, wiz.SetConsent(true))
	_, err = wiz.Submit(ctx)
	require.NoError(t, err)

	app, err := o.CompleteNewLoan()
	require.NoError(t, err)
	assert.Equal(t, "HDFC Bank", app.BankName)
	assert.Equal(t, float64(300000), app.Amount)

	assert.Equal(t, ViewDashboard, o.View())
	assert.Nil(t, o.Wizard(), "finished wizard is discarded")
	assert.True(t, o.SkipIntro())

	apps := o.Applications()
	require.Len(t, apps, 1)
	assert.Equal(t, app.ID, apps[0].ID)
}

func TestApplicationsNewestFirst(t *testing.T) {
	ctx := context.Background()
	o := loggedInSession(t, "ABCDE1234F")

	submit := func(offerID string) models.LoanApplication {
		wiz, err := o.StartNewLoan()
		require.NoError(t, err)
		require.NoError(t, wiz.SubmitGoal(ctx, wizard.GoalInput{
			Amount:        200000,
			TenureMonths:  24,
			Purpose:       "Travel",
			Employment:    models.EmploymentSalaried,
			MonthlyIncome: "70000",
		}))
		require.NoError(t, wiz.SubmitDocuments(ctx))
		require.NoError(t, wiz.SelectOffer(offerID))
		require.NoError(t, wiz.ProceedToConfirm(ctx))
		require.NoError(t, wiz.SetConsent(true))
		_, err = wiz.Submit(ctx)
		require.NoError(t, err)
		app, err := o.CompleteNewLoan()
		require.NoError(t, err)
		return *app
	}

	first := submit("o1")
	second := submit("o2")

	apps := o.Applications()
	require.Len(t, apps, 2)
	assert.Equal(t, second.ID, apps[0].ID)
	assert.Equal(t, first.ID, apps[1].ID)
}

func TestAbandonNewLoan(t *testing.T) {
	o := loggedInSession(t, "ABCDE1234F")

	_, err := o.StartNewLoan()
	require.NoError(t, err)

	require.NoError(t, o.AbandonNewLoan())
	assert.Equal(t, ViewDashboard, o.View())
	assert.Nil(t, o.Wizard())
	assert.Empty(t, o.Applications())
	assert.True(t, o.SkipIntro())
}

func TestLogoClick(t *testing.T) {
	t.Run("unverified lands on home", func(t *testing.T) {
		o := instantSession()
		require.NoError(t, o.Start("9876543210", "ABCDE1234F"))
		assert.Equal(t, ViewHome, o.LogoClick())
	})

	t.Run("verified jumps to dashboard and discards wizard", func(t *testing.T) {
		o := loggedInSession(t, "ABCDE1234F")
		_, err := o.StartNewLoan()
		require.NoError(t, err)

		assert.Equal(t, ViewDashboard, o.LogoClick())
		assert.Nil(t, o.Wizard())
		assert.True(t, o.SkipIntro())
	})

	t.Run("verified on dashboard stays", func(t *testing.T) {
		o := loggedInSession(t, "ABCDE1234F")
		assert.Equal(t, ViewDashboard, o.LogoClick())
	})
}

func TestStartNewLoanRequiresDashboard(t *testing.T) {
	o := instantSession()
	_, err := o.StartNewLoan()
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}
