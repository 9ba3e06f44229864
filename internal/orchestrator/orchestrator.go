// Package orchestrator implements the top-level view state machine and owns
// the session state: user profile, loan accounts and submitted applications.
// All session mutations flow through the orchestrator, so collaborators never
// need locks of their own.
package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/meghamaniyar/credisage101-finscoreai/internal/models"
	"github.com/meghamaniyar/credisage101-finscoreai/internal/registry"
	"github.com/meghamaniyar/credisage101-finscoreai/internal/wizard"
)

// View identifies the active top-level screen.
type View string

const (
	ViewHome        View = "HOME"
	ViewOTP         View = "OTP"
	ViewDashboard   View = "DASHBOARD"
	ViewSwitchOffer View = "SWITCH_OFFER"
	ViewNewLoan     View = "NEW_LOAN"
)

// Config tunes the orchestrator's simulated delays and the wizard it spawns.
type Config struct {
	Wizard      wizard.Config
	SwitchDelay time.Duration
}

// Orchestrator runs one user session from first visit until teardown. The
// machine has no terminal state; it can always return to HOME or DASHBOARD.
type Orchestrator struct {
	cfg    Config
	bureau CreditBureau

	mu            sync.Mutex
	view          View
	user          models.UserProfile
	loans         *registry.Registry
	applications  []models.LoanApplication
	selectedLoan  *models.Loan
	skipIntro     bool
	wiz           *wizard.Wizard
	offers        []models.LenderOffer
	lenders       []models.LenderOffer
	switchPending bool
}

// New creates a session at the HOME view with the demo loan portfolio and
// offer catalogs.
func New(bureau CreditBureau, cfg Config) *Orchestrator {
	if bureau == nil {
		bureau = MockBureau{}
	}
	return &Orchestrator{
		cfg:     cfg,
		bureau:  bureau,
		view:    ViewHome,
		loans:   registry.NewDemo(),
		offers:  registry.NewLoanOffers(),
		lenders: registry.RefinanceLenders(),
	}
}

// View returns the active screen.
func (o *Orchestrator) View() View {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.view
}

// User returns a copy of the session's profile.
func (o *Orchestrator) User() models.UserProfile {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.user
}

// Loans exposes the session's loan registry.
func (o *Orchestrator) Loans() *registry.Registry {
	return o.loans
}

// Applications returns the submitted applications, newest first.
func (o *Orchestrator) Applications() []models.LoanApplication {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]models.LoanApplication, len(o.applications))
	copy(out, o.applications)
	return out
}

// SkipIntro reports whether the dashboard should skip its intro animation on
// the next render, and clears the flag.
func (o *Orchestrator) SkipIntro() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	v := o.skipIntro
	o.skipIntro = false
	return v
}

// Start stores the identifiers from the landing form and moves HOME -> OTP.
func (o *Orchestrator) Start(mobile, pan string) error {
	if err := models.ValidateMobile(mobile); err != nil {
		return err
	}
	if err := models.ValidatePAN(pan); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.view != ViewHome {
		return models.ErrInvalidTransition
	}
	o.user.Mobile = mobile
	o.user.PAN = pan
	o.view = ViewOTP
	return nil
}

// VerifyOTP completes the mock verification and moves OTP -> DASHBOARD,
// filling in the name and credit score from the bureau.
func (o *Orchestrator) VerifyOTP(ctx context.Context) error {
	o.mu.Lock()
	if o.view != ViewOTP {
		o.mu.Unlock()
		return models.ErrInvalidTransition
	}
	pan := o.user.PAN
	o.mu.Unlock()

	name, score, err := o.bureau.Verify(ctx, pan)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.user.Name = name
	o.user.CibilScore = score
	o.view = ViewDashboard
	return nil
}

// SelectLoanForSwitch opens the switch-offer screen for the given loan.
// Loans without a switch offer are rejected before leaving the dashboard.
func (o *Orchestrator) SelectLoanForSwitch(loanID string) (*models.Loan, error) {
	loan, err := o.loans.GetLoan(loanID)
	if err != nil {
		return nil, err
	}
	if !loan.CanSwitch() {
		return nil, models.ErrNotSwitchable
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.view != ViewDashboard {
		return nil, models.ErrInvalidTransition
	}
	o.selectedLoan = loan
	o.view = ViewSwitchOffer
	return loan, nil
}

// SelectedLoan returns the loan carried into the switch-offer screen.
func (o *Orchestrator) SelectedLoan() *models.Loan {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.selectedLoan
}

// RefinanceLenders returns the lender catalog for the switch-offer screen.
func (o *Orchestrator) RefinanceLenders() []models.LenderOffer {
	return o.lenders
}

// ConfirmSwitch simulates the refinance handover to the chosen lender. It
// resolves after the processing delay; a second confirmation while one is in
// flight is rejected.
func (o *Orchestrator) ConfirmSwitch(ctx context.Context, lenderID string) (*models.LenderOffer, error) {
	o.mu.Lock()
	if o.view != ViewSwitchOffer {
		o.mu.Unlock()
		return nil, models.ErrInvalidTransition
	}
	if o.switchPending {
		o.mu.Unlock()
		return nil, models.ErrTransitionPending
	}
	var lender *models.LenderOffer
	for i := range o.lenders {
		if o.lenders[i].ID == lenderID {
			l := o.lenders[i]
			lender = &l
			break
		}
	}
	if lender == nil {
		o.mu.Unlock()
		return nil, models.ErrOfferNotFound
	}
	o.switchPending = true
	o.mu.Unlock()

	if err := wait(ctx, o.cfg.SwitchDelay); err != nil {
		o.mu.Lock()
		o.switchPending = false
		o.mu.Unlock()
		return nil, err
	}

	o.mu.Lock()
	o.switchPending = false
	o.mu.Unlock()
	return lender, nil
}

// ReturnFromSwitch moves back to the dashboard. On a successful switch the
// intro animation is skipped on the next render.
func (o *Orchestrator) ReturnFromSwitch(success bool) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.view != ViewSwitchOffer {
		return models.ErrInvalidTransition
	}
	if success {
		o.skipIntro = true
	}
	o.selectedLoan = nil
	o.view = ViewDashboard
	return nil
}

// StartNewLoan opens the application wizard at its first step.
func (o *Orchestrator) StartNewLoan() (*wizard.Wizard, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.view != ViewDashboard {
		return nil, models.ErrInvalidTransition
	}
	o.wiz = wizard.New(o.offers, o.cfg.Wizard)
	o.view = ViewNewLoan
	return o.wiz, nil
}

// Wizard returns the in-progress application wizard, or nil.
func (o *Orchestrator) Wizard() *wizard.Wizard {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.wiz
}

// CompleteNewLoan folds the wizard's finished application into the session
// and returns to the dashboard. The wizard itself is discarded.
func (o *Orchestrator) CompleteNewLoan() (*models.LoanApplication, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.view != ViewNewLoan || o.wiz == nil {
		return nil, models.ErrInvalidTransition
	}
	app := o.wiz.Application()
	if app == nil {
		return nil, models.ErrInvalidTransition
	}
	o.applications = append([]models.LoanApplication{*app}, o.applications...)
	o.wiz = nil
	o.skipIntro = true
	o.view = ViewDashboard
	return app, nil
}

// AbandonNewLoan discards an in-progress wizard and returns to the
// dashboard. No application is produced.
func (o *Orchestrator) AbandonNewLoan() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.view != ViewNewLoan {
		return models.ErrInvalidTransition
	}
	o.wiz = nil
	o.skipIntro = true
	o.view = ViewDashboard
	return nil
}

// LogoClick is the navbar shortcut. Verified users outside HOME/OTP jump to
// the dashboard; everyone else lands on HOME. Any in-progress wizard state
// is discarded without warning.
func (o *Orchestrator) LogoClick() View {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.user.Verified() && o.view != ViewHome && o.view != ViewOTP {
		o.wiz = nil
		o.selectedLoan = nil
		o.skipIntro = true
		o.view = ViewDashboard
	} else {
		o.view = ViewHome
	}
	return o.view
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
