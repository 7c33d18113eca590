package clients

import (
	"context"
	"log/slog"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/sello-market/sello-backend/internal/config"
)

// CodeSender dispatches verification codes over a contact channel.
type CodeSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
	SendSMS(ctx context.Context, phone, body string) error
}

// SMTPSender sends email over SMTP. SMS delivery has no real transport
// yet and is logged instead.
type SMTPSender struct {
	dialer  *gomail.Dialer
	from    string
	timeout time.Duration
	logger  *slog.Logger
}

var _ CodeSender = (*SMTPSender)(nil)

// NewSMTPSender creates a sender backed by the configured SMTP relay.
func NewSMTPSender(cfg config.MailConfig, logger *slog.Logger) *SMTPSender {
	return &SMTPSender{
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:    cfg.From,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

// SendEmail delivers one message. The send is bounded by the configured
// timeout; the caller's order/user row is already durable, so a slow
// relay fails this call rather than hanging the request.
func (s *SMTPSender) SendEmail(ctx context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(m) }()

	select {
	case err := <-done:
		if err != nil {
			s.logger.Error("email send failed", "to", to, "error", err)
			return err
		}
		s.logger.Info("email sent", "to", to, "subject", subject)
		return nil
	case <-ctx.Done():
		s.logger.Error("email send timed out", "to", to)
		return ctx.Err()
	}
}

// SendSMS is a stub: real SMS delivery is out of scope.
func (s *SMTPSender) SendSMS(ctx context.Context, phone, body string) error {
	s.logger.Info("sms dispatch (stub)", "phone", phone)
	return nil
}

// LogSender logs instead of sending. Used when no SMTP relay is
// configured, and in tests.
type LogSender struct {
	logger *slog.Logger
}

var _ CodeSender = (*LogSender)(nil)

// NewLogSender creates a log-only sender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendEmail(ctx context.Context, to, subject, body string) error {
	s.logger.Info("email dispatch (log only)", "to", to, "subject", subject)
	return nil
}

func (s *LogSender) SendSMS(ctx context.Context, phone, body string) error {
	s.logger.Info("sms dispatch (log only)", "phone", phone)
	return nil
}
