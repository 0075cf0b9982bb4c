package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"inmoportal/internal/storage"
)

// Sender delivers lead notifications to the sales inbox.
type Sender interface {
	// SendLeadNotification emails one contact-form submission.
	SendLeadNotification(lead storage.Lead) error
}

// SMTPSender implements Sender over SMTP.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewSMTPSender creates a new SMTPSender.
func NewSMTPSender(host string, port int, username, password, from, to string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		to:     to,
	}
}

// SendLeadNotification emails one contact-form submission.
func (s *SMTPSender) SendLeadNotification(lead storage.Lead) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.to)
	m.SetHeader("Subject", fmt.Sprintf("Nuevo contacto: %s", lead.Name))
	m.SetBody("text/plain", leadBody(lead))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send lead notification: %w", err)
	}
	return nil
}

func leadBody(lead storage.Lead) string {
	body := fmt.Sprintf("Nombre: %s\nEmail: %s\n", lead.Name, lead.Email)
	if lead.Phone != "" {
		body += fmt.Sprintf("Teléfono: %s\n", lead.Phone)
	}
	if lead.ProjectSlug != "" {
		body += fmt.Sprintf("Proyecto: %s\n", lead.ProjectSlug)
	}
	if lead.Message != "" {
		body += fmt.Sprintf("\nMensaje:\n%s\n", lead.Message)
	}
	return body
}
