package smtp

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/mkoval24/printflow/config"
	"github.com/mkoval24/printflow/internal/ports"
	"github.com/mkoval24/printflow/pkg/retry"
	"github.com/mkoval24/printflow/pkg/validate"
)

// Sender отправляет уведомления через SMTP поверх неявного TLS
// (порт 465, как у Gmail). Ошибки валидации письма помечаются как
// неустранимые, чтобы обёртка повторов не ретраила заведомо битый запрос.
type Sender struct {
	log ports.Logger
	cfg config.Mail
}

var _ ports.EmailSender = (*Sender)(nil)

func NewSender(cfg config.Mail, log ports.Logger) *Sender {
	return &Sender{log: log, cfg: cfg}
}

func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	if err := validate.Message(to, subject, body); err != nil {
		return retry.Permanent(err)
	}

	client, err := s.dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(s.cfg.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(buildMessage(s.cfg.From, to, subject, body)); err != nil {
		_ = w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}

	if err := client.Quit(); err != nil {
		s.log.Warnf(ctx, "smtp: quit failed: %v", err)
	}

	s.log.Infof(ctx, "smtp: message %q sent to %s", subject, to)
	return nil
}

// Health устанавливает и сразу закрывает TLS-соединение с сервером.
func (s *Sender) Health(ctx context.Context) error {
	client, err := s.dial(ctx)
	if err != nil {
		return err
	}
	return client.Quit()
}

func (s *Sender) dial(ctx context.Context) (*smtp.Client, error) {
	addr := net.JoinHostPort(s.cfg.SMTPHost, fmt.Sprintf("%d", s.cfg.SMTPPort))

	dialer := &net.Dialer{}
	if deadline, ok := ctx.Deadline(); ok {
		dialer.Timeout = time.Until(deadline)
	}

	conn, err := tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{ServerName: s.cfg.SMTPHost})
	if err != nil {
		return nil, fmt.Errorf("smtp dial %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, s.cfg.SMTPHost)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("smtp handshake: %w", err)
	}
	return client, nil
}

// buildMessage собирает письмо: заголовки, UTF-8 тело, CRLF-переводы.
func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}
