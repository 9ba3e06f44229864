// Package wizard implements the four-step loan application flow:
// goal capture, KYC documents, offer selection and final confirmation.
// The machine is forward-only; cancelling means abandoning the wizard
// value without producing an application.
package wizard

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/meghamaniyar/credisage101-finscoreai/internal/finmath"
	"github.com/meghamaniyar/credisage101-finscoreai/internal/models"
	"github.com/meghamaniyar/credisage101-finscoreai/internal/registry"
)

// Step identifies the wizard's current position in the flow.
type Step int

const (
	StepGoal Step = iota + 1
	StepDocs
	StepOffers
	StepConfirm
	StepDone
)

// String returns the display label for a step.
func (s Step) String() string {
	switch s {
	case StepGoal:
		return "Loan Goal"
	case StepDocs:
		return "KYC & Docs"
	case StepOffers:
		return "Offers"
	case StepConfirm:
		return "Confirm"
	case StepDone:
		return "Done"
	}
	return "Unknown"
}

// Loan amount and tenure bounds enforced at the goal step.
const (
	MinAmount       = 50000
	MaxAmount       = 5000000
	MinTenureMonths = 12
	MaxTenureMonths = 60
)

// Purposes lists the accepted loan purposes.
var Purposes = []string{
	"Personal Use",
	"Debt Consolidation",
	"Medical Emergency",
	"Wedding",
	"Home Renovation",
	"Travel",
}

// ValidPurpose reports whether the purpose is one of the accepted values.
func ValidPurpose(p string) bool {
	for _, v := range Purposes {
		if v == p {
			return true
		}
	}
	return false
}

// RequiredDocuments returns the KYC document ids requested for the given
// employment type. Uploads are advisory: progression never gates on them.
func RequiredDocuments(e models.EmploymentType) []string {
	if e == models.EmploymentSelfEmployed {
		return []string{"aadhaar", "business", "financials"}
	}
	return []string{"aadhaar", "salary", "employment"}
}

// GoalInput carries the raw step-1 form values.
type GoalInput struct {
	Amount        float64
	TenureMonths  int
	Purpose       string
	Employment    models.EmploymentType
	MonthlyIncome string
}

// Goal is the validated, immutable record produced by the goal step.
type Goal struct {
	Amount        float64
	TenureMonths  int
	Purpose       string
	Employment    models.EmploymentType
	MonthlyIncome string
}

// Config tunes the wizard's simulated verification delays. Zero delays make
// transitions resolve immediately, which tests rely on.
type Config struct {
	StepDelay   time.Duration // goal and document verification
	SubmitDelay time.Duration // final application submission
	Now         func() time.Time
}

// Wizard drives one loan application run. It owns its state exclusively and
// hands back only the finished LoanApplication; the caller folds that into
// the session.
type Wizard struct {
	cfg    Config
	offers []models.LenderOffer

	mu       sync.Mutex
	step     Step
	pending  bool
	goal     *Goal
	uploaded map[string]bool
	selected *models.LenderOffer
	consent  bool
	result   *models.LoanApplication
}

// New creates a wizard at the goal step, bound to the given offer catalog.
func New(offers []models.LenderOffer, cfg Config) *Wizard {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Wizard{
		cfg:    cfg,
		offers: offers,
		step:   StepGoal,
	}
}

// Step returns the wizard's current step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Pending reports whether a simulated verification is in flight. While
// pending, further transitions are rejected so a double submission cannot
// race the one in progress.
func (w *Wizard) Pending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending
}

// Goal returns the validated goal record, or nil before the goal step
// completes.
func (w *Wizard) Goal() *Goal {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.goal
}

// SubmitGoal validates the step-1 form and, after the eligibility
// verification delay, advances to the documents step.
func (w *Wizard) SubmitGoal(ctx context.Context, in GoalInput) error {
	if err := validateGoal(in); err != nil {
		return err
	}

	if err := w.begin(StepGoal); err != nil {
		return err
	}
	if err := w.wait(ctx, w.cfg.StepDelay); err != nil {
		w.abort()
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.goal = &Goal{
		Amount:        in.Amount,
		TenureMonths:  in.TenureMonths,
		Purpose:       in.Purpose,
		Employment:    in.Employment,
		MonthlyIncome: strings.TrimSpace(in.MonthlyIncome),
	}
	w.uploaded = make(map[string]bool, 3)
	for _, id := range RequiredDocuments(in.Employment) {
		w.uploaded[id] = false
	}
	w.step = StepDocs
	w.pending = false
	return nil
}

func validateGoal(in GoalInput) error {
	if strings.TrimSpace(in.MonthlyIncome) == "" {
		return models.ErrIncomeRequired
	}
	if in.Amount < MinAmount || in.Amount > MaxAmount {
		return models.ErrAmountOutOfRange
	}
	if in.TenureMonths < MinTenureMonths || in.TenureMonths > MaxTenureMonths {
		return models.ErrTenureOutOfRange
	}
	if !ValidPurpose(in.Purpose) {
		return models.ErrInvalidPurpose
	}
	if !in.Employment.IsValid() {
		return models.ErrInvalidEmployment
	}
	return nil
}

// UploadDocument marks a KYC document as uploaded. Only document ids
// requested for the chosen employment type are accepted.
func (w *Wizard) UploadDocument(docID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepDocs {
		return models.ErrInvalidTransition
	}
	if _, ok := w.uploaded[docID]; !ok {
		return models.ErrUnknownDocument
	}
	w.uploaded[docID] = true
	return nil
}

// UploadedDocuments returns a copy of the per-document upload flags.
func (w *Wizard) UploadedDocuments() map[string]bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make(map[string]bool, len(w.uploaded))
	for k, v := range w.uploaded {
		out[k] = v
	}
	return out
}

// SubmitDocuments advances from the documents step to the offers step after
// the document verification delay. Upload completeness is not required.
func (w *Wizard) SubmitDocuments(ctx context.Context) error {
	if err := w.begin(StepDocs); err != nil {
		return err
	}
	if err := w.wait(ctx, w.cfg.StepDelay); err != nil {
		w.abort()
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = StepOffers
	w.pending = false
	return nil
}

// RankedOffers returns the catalog ranked by the EMI each offer would
// charge for the requested amount and tenure. Available once the offers
// step is reached.
func (w *Wizard) RankedOffers() ([]models.RankedOffer, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step < StepOffers || w.goal == nil {
		return nil, models.ErrInvalidTransition
	}
	return registry.RankOffers(w.offers, w.goal.Amount, w.goal.TenureMonths)
}

// MaxEligibleAmount returns the eligibility headline for the offers step.
func (w *Wizard) MaxEligibleAmount() (float64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step < StepOffers {
		return 0, models.ErrInvalidTransition
	}
	return finmath.MaxEligibleAmount(w.offers)
}

// SelectOffer records the offer the user picked from the ranked list.
func (w *Wizard) SelectOffer(offerID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepOffers {
		return models.ErrInvalidTransition
	}
	for i := range w.offers {
		if w.offers[i].ID == offerID {
			offer := w.offers[i]
			w.selected = &offer
			return nil
		}
	}
	return models.ErrOfferNotFound
}

// SelectedOffer returns the currently selected offer, or nil.
func (w *Wizard) SelectedOffer() *models.LenderOffer {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selected
}

// ProceedToConfirm advances to the confirmation step. Exactly one offer
// must be selected.
func (w *Wizard) ProceedToConfirm(ctx context.Context) error {
	w.mu.Lock()
	if w.step != StepOffers {
		w.mu.Unlock()
		return models.ErrInvalidTransition
	}
	if w.selected == nil {
		w.mu.Unlock()
		return models.ErrNoOfferSelected
	}
	if w.pending {
		w.mu.Unlock()
		return models.ErrTransitionPending
	}
	w.pending = true
	w.mu.Unlock()

	if err := w.wait(ctx, w.cfg.StepDelay); err != nil {
		w.abort()
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = StepConfirm
	w.pending = false
	return nil
}

// SetConsent records the data-sharing consent checkbox.
func (w *Wizard) SetConsent(consent bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepConfirm {
		return models.ErrInvalidTransition
	}
	w.consent = consent
	return nil
}

// Submit finalizes the application after the submission delay. Consent is
// required; the approved amount is capped to the selected offer's limit.
// The produced application is the wizard's only output.
func (w *Wizard) Submit(ctx context.Context) (*models.LoanApplication, error) {
	w.mu.Lock()
	if w.step != StepConfirm {
		w.mu.Unlock()
		return nil, models.ErrInvalidTransition
	}
	if !w.consent {
		w.mu.Unlock()
		return nil, models.ErrConsentRequired
	}
	if w.pending {
		w.mu.Unlock()
		return nil, models.ErrTransitionPending
	}
	w.pending = true
	w.mu.Unlock()

	if err := w.wait(ctx, w.cfg.SubmitDelay); err != nil {
		w.abort()
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	amount := w.goal.Amount
	if w.selected.MaxAmount < amount {
		amount = w.selected.MaxAmount
	}
	w.result = &models.LoanApplication{
		ID:       models.NewApplicationID(),
		BankName: w.selected.BankName,
		Amount:   amount,
		Status:   models.StatusSubmitted,
		Date:     models.ApplicationDate(w.cfg.Now()),
	}
	w.step = StepDone
	w.pending = false
	return w.result, nil
}

// Application returns the finished application once the wizard is done.
func (w *Wizard) Application() *models.LoanApplication {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result
}

// begin guards an advancing transition: the wizard must sit at the expected
// step with no verification in flight.
func (w *Wizard) begin(expected Step) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != expected {
		return models.ErrInvalidTransition
	}
	if w.pending {
		return models.ErrTransitionPending
	}
	w.pending = true
	return nil
}

// abort clears the pending flag after a cancelled transition, leaving the
// wizard at its current step.
func (w *Wizard) abort() {
	w.mu.Lock()
	w.pending = false
	w.mu.Unlock()
}

// wait blocks for the simulated verification delay, honouring cancellation.
func (w *Wizard) wait(ctx context.Context, d time.Duration) error {
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
