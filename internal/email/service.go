package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/globalhospital/portal-api/config"
	"github.com/globalhospital/portal-api/pkg/metrics"
)

type Service interface {
	SendWelcome(ctx context.Context, to string, name string) error
	SendCustom(ctx context.Context, to string, subject string, body string) error
}

type smtpService struct {
	cfg     config.SMTPConfig
	dialer  *gomail.Dialer
	metrics *metrics.Metrics
}

// NewService returns a gomail-backed sender. When SMTP is disabled in
// config, sends are silently dropped so local environments work without
// a mail server.
func NewService(cfg config.SMTPConfig, m *metrics.Metrics) Service {
	return &smtpService{
		cfg:     cfg,
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		metrics: m,
	}
}

func (s *smtpService) SendWelcome(ctx context.Context, to string, name string) error {
	body := fmt.Sprintf(
		"Dear %s,\n\nWelcome to Global Hospital. Your account has been created.\n\nGlobal Hospital",
		name,
	)
	return s.send(ctx, "welcome", to, "Welcome to Global Hospital", body)
}

func (s *smtpService) SendCustom(ctx context.Context, to string, subject string, body string) error {
	return s.send(ctx, "custom", to, subject, body)
}

func (s *smtpService) send(_ context.Context, kind, to, subject, body string) error {
	if !s.cfg.Enabled {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.metrics.EmailsSent.WithLabelValues(kind, "error").Inc()
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.metrics.EmailsSent.WithLabelValues(kind, "ok").Inc()
	return nil
}
