package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/salusclinic/booking-api/internal/config"
)

type smtpService struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
}

// NewSMTPService builds the gomail-backed sender. baseURL is the public
// address the verification and reset links point back to.
func NewSMTPService(cfg config.SMTPConfig, baseURL string) Service {
	return &smtpService{
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:    cfg.From,
		baseURL: baseURL,
	}
}

func (s *smtpService) SendVerification(_ context.Context, email, token string) error {
	link := fmt.Sprintf("%s/verifica-email?token=%s", s.baseURL, token)
	body := fmt.Sprintf(
		"<p>Grazie per esserti registrato.</p>"+
			"<p>Per completare la registrazione, <a href=%q>verifica il tuo indirizzo email</a>.</p>"+
			"<p>Il link scade tra 48 ore.</p>", link)

	return s.send(email, "Verifica il tuo indirizzo email", body)
}

func (s *smtpService) SendPasswordReset(_ context.Context, email, token string) error {
	link := fmt.Sprintf("%s/reimposta-password?token=%s", s.baseURL, token)
	body := fmt.Sprintf(
		"<p>Abbiamo ricevuto una richiesta di recupero password.</p>"+
			"<p><a href=%q>Reimposta la tua password</a>. Il link scade tra 1 ora.</p>"+
			"<p>Se non hai richiesto il recupero, ignora questa email.</p>", link)

	return s.send(email, "Recupero password", body)
}

func (s *smtpService) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
