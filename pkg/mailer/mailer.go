package mailer

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/sportsconnect/api/config"
	"github.com/sportsconnect/api/pkg/logger"
)

// Message is a rendered outbound email.
type Message struct {
	ToName  string
	ToEmail string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers a message through a mail provider.
type Sender interface {
	Send(msg Message) error
}

// SendGridSender delivers mail through the SendGrid v3 API.
type SendGridSender struct {
	apiKey      string
	fromName    string
	fromAddress string
}

func NewSendGridSender(cfg *config.Config) (*SendGridSender, error) {
	if cfg.Mail.SendGridAPIKey == "" {
		return nil, fmt.Errorf("SENDGRID_API_KEY is not set")
	}
	return &SendGridSender{
		apiKey:      cfg.Mail.SendGridAPIKey,
		fromName:    cfg.Mail.FromName,
		fromAddress: cfg.Mail.FromAddress,
	}, nil
}

func (s *SendGridSender) Send(msg Message) error {
	from := mail.NewEmail(s.fromName, s.fromAddress)
	to := mail.NewEmail(msg.ToName, msg.ToEmail)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Text, msg.HTML)
	client := sendgrid.NewSendClient(s.apiKey)

	response, err := client.Send(message)
	if err != nil {
		logger.GetLogger().Error("Failed to send email",
			zap.String("to", msg.ToEmail),
			zap.String("subject", msg.Subject),
			zap.Error(err),
		)
		return err
	}

	if response.StatusCode >= 400 {
		logger.GetLogger().Error("Mail provider rejected message",
			zap.String("to", msg.ToEmail),
			zap.Int("status_code", response.StatusCode),
			zap.String("body", response.Body),
		)
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	logger.GetLogger().Debug("Email sent",
		zap.String("to", msg.ToEmail),
		zap.Int("status_code", response.StatusCode),
	)
	return nil
}
