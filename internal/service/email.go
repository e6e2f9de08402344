package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"rentloop-payments-backend/internal/logger"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

// NewEmailService creates a SendGrid-backed EmailService for payment
// receipts and failure notices.
func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) SendPaymentReceipt(ctx context.Context, toEmail, propertyTitle string, amountCents int64, currency string) error {
	subject := fmt.Sprintf("Payment receipt: %s", propertyTitle)
	amount := formatAmount(amountCents, currency)
	plainText := fmt.Sprintf("Your payment of %s for %s was successful.", amount, propertyTitle)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Payment Confirmed</h2>
				<p>Your payment of <strong>%s</strong> for <strong>%s</strong> was successful.</p>
				<p>You can review your booking in the app at any time.</p>
			</body>
		</html>
	`, amount, propertyTitle)

	return s.send(toEmail, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendPaymentFailureNotice(ctx context.Context, toEmail, propertyTitle, reason string) error {
	subject := fmt.Sprintf("Payment issue: %s", propertyTitle)
	plainText := fmt.Sprintf("Your payment for %s did not go through. %s.", propertyTitle, reason)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Payment Not Completed</h2>
				<p>Your payment for <strong>%s</strong> did not go through.</p>
				<p>%s.</p>
			</body>
		</html>
	`, propertyTitle, reason)

	return s.send(toEmail, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) send(toEmail, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	logger.ExternalServiceCall("sendgrid", "Send", "subject", subject)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "Send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d", response.StatusCode)
		logger.ExternalServiceResult("sendgrid", "Send", err)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "Send", nil)
	return nil
}

func formatAmount(amountCents int64, currency string) string {
	return fmt.Sprintf("%.2f %s", float64(amountCents)/100, strings.ToUpper(currency))
}
