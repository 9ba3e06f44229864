// Package advisory provides the AI guidance boundary: dashboard insights,
// refinance analysis and chat replies. Calls are best-effort text-in/text-out
// with canned fallbacks; a failure here never interrupts dashboard or wizard
// flows.
package advisory

import (
	"context"

	"github.com/meghamaniyar/credisage101-finscoreai/internal/models"
)

// Service is the narrow interface the rest of the engine depends on. All
// methods return usable text: implementations fall back to fixed guidance on
// any error or timeout.
type Service interface {
	DashboardInsights(ctx context.Context, user *models.UserProfile, loans []*models.Loan) string
	RefinanceAnalysis(ctx context.Context, loan *models.Loan, newRate float64) string
	ChatReply(ctx context.Context, user *models.UserProfile, loans []*models.Loan, message string) string
}

// Canned responses returned when the upstream model is unreachable.
const (
	FallbackInsights = "Reduce your Credit Card utilization to below 30% to see a quick score jump. " +
		"Your Personal Loan interest is high; consider refinancing to save money. " +
		"Avoid missing any EMI payments as this has the highest impact on CIBIL."

	FallbackRefinance = "Switching to this lower interest rate will reduce your monthly EMI " +
		"and total interest payable significantly."

	FallbackChat = "Your financial future looks brighter than my polished spectacles!"
)

// Stub is a deterministic Service for tests and offline development.
type Stub struct {
	Insights  string
	Refinance string
	Chat      string
}

// NewStub returns a stub that answers with the canned fallback strings.
func NewStub() *Stub {
	return &Stub{
		Insights:  FallbackInsights,
		Refinance: FallbackRefinance,
		Chat:      FallbackChat,
	}
}

func (s *Stub) DashboardInsights(context.Context, *models.UserProfile, []*models.Loan) string {
	return s.Insights
}

func (s *Stub) RefinanceAnalysis(context.Context, *models.Loan, float64) string {
	return s.Refinance
}

func (s *Stub) ChatReply(context.Context, *models.UserProfile, []*models.Loan, string) string {
	return s.Chat
}
