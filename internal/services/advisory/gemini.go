package advisory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/meghamaniyar/credisage101-finscoreai/internal/models"
	"github.com/meghamaniyar/credisage101-finscoreai/internal/utils"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiClient calls the Gemini generateContent API. Every public method
// degrades to its canned fallback on failure, so callers never see an error.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGeminiClient creates an advisory client with a mandatory per-call
// timeout. An empty API key yields a client that always falls back.
func NewGeminiClient(apiKey, model string, timeout time.Duration) *GeminiClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: geminiBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// DashboardInsights generates three short financial pointers for the user.
func (c *GeminiClient) DashboardInsights(ctx context.Context, user *models.UserProfile, loans []*models.Loan) string {
	summaries := make([]string, 0, len(loans))
	for _, l := range loans {
		summaries = append(summaries, fmt.Sprintf("%s with %s at %.1f%% interest (EMI: ₹%d)", l.Category, l.BankName, l.Rate, l.EMI))
	}

	prompt := fmt.Sprintf(`The user has a CIBIL score of %d.
They have the following active loans: %s.

Generate 3 short, actionable, bullet-point financial insights for this user.
If the score is below 750, focus on credit repair.
If the score is above 750, focus on leveraging credit for wealth or lower rates.
Keep it encouraging and professional.`, user.CibilScore, strings.Join(summaries, ", "))

	return c.generate(ctx, prompt, FallbackInsights)
}

// RefinanceAnalysis summarizes why switching the loan to the new rate is
// worthwhile.
func (c *GeminiClient) RefinanceAnalysis(ctx context.Context, loan *models.Loan, newRate float64) string {
	prompt := fmt.Sprintf(`Analyze switching a %s of ₹%.0f from %.2f%% to %.2f%%.
Calculate the potential interest savings over %d months.
Provide a 2-sentence persuasive summary on why they should switch now.`,
		loan.Category, loan.OutstandingAmount, loan.Rate, newRate, loan.TenureMonthsRemaining)

	return c.generate(ctx, prompt, FallbackRefinance)
}

// ChatReply answers a user message in the Gyani sage persona.
func (c *GeminiClient) ChatReply(ctx context.Context, user *models.UserProfile, loans []*models.Loan, message string) string {
	contexts := make([]string, 0, len(loans))
	for _, l := range loans {
		contexts = append(contexts, fmt.Sprintf("%s %s (₹%.0f)", l.BankName, l.Category, l.OutstandingAmount))
	}

	prompt := fmt.Sprintf(`System: You are Gyani, a funny and wise financial sage mascot with round spectacles, a high top-knot, and saffron robes.
Personality: Witty, energetic, and extremely encouraging.
User CIBIL: %d. Loans: %s.
User asked: %q.
Answer as a witty sage mascot: provide 2 sentences of wise and funny financial guidance.`,
		user.CibilScore, strings.Join(contexts, ", "), message)

	return c.generate(ctx, prompt, FallbackChat)
}

// generate performs one generateContent round-trip, returning fallback on
// any failure.
func (c *GeminiClient) generate(ctx context.Context, prompt, fallback string) string {
	text, err := c.generateText(ctx, prompt)
	if err != nil {
		utils.GetLogger().Warn("Advisory call failed, using fallback", zap.Error(err))
		return fallback
	}
	return text
}

func (c *GeminiClient) generateText(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("no API key configured")
	}

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, strings.NewReader(string(jsonBody)))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return parseGeminiText(result)
}

// parseGeminiText extracts the first candidate's text from the API response.
func parseGeminiText(result map[string]interface{}) (string, error) {
	candidates, ok := result["candidates"].([]interface{})
	if !ok || len(candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate, ok := candidates[0].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("malformed candidate")
	}

	content, ok := candidate["content"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("malformed content")
	}

	parts, ok := content["parts"].([]interface{})
	if !ok || len(parts) == 0 {
		return "", fmt.Errorf("no parts in content")
	}

	part, ok := parts[0].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("malformed part")
	}

	text, ok := part["text"].(string)
	if !ok || strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty text in response")
	}

	return text, nil
}
