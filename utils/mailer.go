package utils

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Cristiano-Arias/Portal-Proposta/config"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Initialize the SMTP mailer once and store it in a global variable
var mailer *gomail.Dialer

// InitializeMailer sets up the mailer using environment variables. When the
// SMTP credentials are absent the mailer stays nil and every send becomes a
// logged no-op: proposal submission never depends on email.
func InitializeMailer() {
	mailHost := os.Getenv("SMTP_HOST")
	mailPort := os.Getenv("SMTP_PORT")
	mailUser := os.Getenv("SMTP_USER")
	mailPassword := os.Getenv("SMTP_PASSWORD")

	if mailHost == "" || mailUser == "" {
		config.Logger.Warn("SMTP not configured, proposal emails disabled",
			zap.Bool("has_host", mailHost != ""),
			zap.Bool("has_user", mailUser != ""),
		)
		return
	}

	port, err := strconv.Atoi(mailPort)
	if err != nil {
		config.Logger.Error("Invalid SMTP_PORT value, defaulting to port 587",
			zap.String("provided_port", mailPort),
			zap.Error(err),
		)
		port = 587
	}

	mailer = gomail.NewDialer(mailHost, port, mailUser, mailPassword)
	config.Logger.Info("Mailer initialized successfully")
}

// GetMailer returns the initialized mailer, nil when SMTP is not configured.
func GetMailer() *gomail.Dialer {
	return mailer
}

// EmailAttachment is an in-memory file to attach to an outgoing message.
type EmailAttachment struct {
	Name    string
	Content []byte
}

// SendEmail sends a plain-text email with optional file paths and in-memory
// attachments, returning an error if dispatch fails.
func SendEmail(to, subject, body string, filePaths []string, inline []EmailAttachment) error {
	if mailer == nil {
		err := fmt.Errorf("mailer is not initialized")
		config.Logger.Error("Email send failed: mailer is not initialized",
			zap.String("to_email", to),
			zap.String("subject", subject),
		)
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	for _, path := range filePaths {
		if _, err := os.Stat(path); err == nil {
			m.Attach(path)
		} else {
			config.Logger.Warn("Attachment file not found for email",
				zap.String("filepath", path),
				zap.String("to_email", to),
				zap.Error(err),
			)
			// Don't fail the send because an optional attachment is missing
		}
	}

	for _, att := range inline {
		content := att.Content
		m.Attach(att.Name, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}

	if err := mailer.DialAndSend(m); err != nil {
		config.Logger.Error("Failed to send email via SMTP",
			zap.String("to_email", to),
			zap.String("subject", subject),
			zap.Int("file_attachments", len(filePaths)),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	config.Logger.Info("Email sent successfully",
		zap.String("to_email", to),
		zap.String("subject", subject),
	)
	return nil
}
