// Package ses provides email notification services via AWS SES.
package ses

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	"github.com/meghamaniyar/credisage101-finscoreai/internal/models"
	"github.com/meghamaniyar/credisage101-finscoreai/internal/utils"
)

// Service handles SES email operations. A nil Service is valid and sends
// nothing, so callers don't need to branch on configuration.
type Service struct {
	client    *ses.Client
	fromEmail string
	opsEmail  string
}

// SendEmailResult contains the result of sending an email.
type SendEmailResult struct {
	MessageID string
	SentAt    time.Time
}

// NewService creates a new SES service. Returns nil (disabled) when no
// sender address is configured.
func NewService(ctx context.Context, fromEmail, opsEmail string) (*Service, error) {
	if fromEmail == "" || opsEmail == "" {
		return nil, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Service{
		client:    ses.NewFromConfig(cfg),
		fromEmail: fromEmail,
		opsEmail:  opsEmail,
	}, nil
}

const applicationTemplate = `
<html>
<body>
  <h2>New loan application received</h2>
  <p>Application <strong>{{.App.ID}}</strong> was submitted for <strong>{{.App.BankName}}</strong>.</p>
  <table border="0" cellpadding="4">
    <tr><td>Amount</td><td>₹{{printf "%.0f" .App.Amount}}</td></tr>
    <tr><td>Status</td><td>{{.App.Status}}</td></tr>
    <tr><td>Date</td><td>{{.App.Date}}</td></tr>
    <tr><td>Applicant</td><td>{{.User.Name}} ({{.User.Mobile}})</td></tr>
    <tr><td>CIBIL</td><td>{{.User.CibilScore}}</td></tr>
  </table>
</body>
</html>`

// NotifyApplicationSubmitted emails the operations mailbox about a freshly
// submitted application. Intended to run fire-and-forget; the caller should
// not block a user flow on it.
func (s *Service) NotifyApplicationSubmitted(ctx context.Context, app *models.LoanApplication, user models.UserProfile) (*SendEmailResult, error) {
	if s == nil {
		return nil, nil
	}

	tmpl, err := template.New("application").Parse(applicationTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	var body bytes.Buffer
	data := struct {
		App  *models.LoanApplication
		User models.UserProfile
	}{app, user}
	if err := tmpl.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to render template: %w", err)
	}

	subject := fmt.Sprintf("Loan application %s (%s)", app.ID, app.BankName)
	out, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(s.fromEmail),
		Destination: &types.Destination{
			ToAddresses: []string{s.opsEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(body.String())},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send email: %w", err)
	}

	utils.GetLogger().Info("Application notification sent",
		zap.String("application_id", app.ID),
		zap.String("message_id", aws.ToString(out.MessageId)),
	)

	return &SendEmailResult{
		MessageID: aws.ToString(out.MessageId),
		SentAt:    time.Now().UTC(),
	}, nil
}
