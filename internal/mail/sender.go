// Package mail delivers plain-text quote emails over SMTP.
package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/freightservices/quote-api/internal/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotConfigured is returned when SMTP is disabled or has no host
var ErrNotConfigured = errors.New("smtp is not configured")

const messageStream = "quote-tool"

// Message is a single plain-text email
type Message struct {
	To      string
	Subject string
	Body    string
	// Feature labels the caller for dispatch logging, e.g. "quote_copy"
	Feature string
	Headers map[string]string
}

// Sender delivers messages. Send returns an error when delivery fails.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
	Enabled() bool
}

// SMTPSender sends mail through the configured SMTP relay
type SMTPSender struct {
	cfg         *config.MailConfig
	logger      *zap.Logger
	dialTimeout time.Duration
	now         func() time.Time
}

func NewSMTPSender(cfg *config.MailConfig, logger *zap.Logger) *SMTPSender {
	return &SMTPSender{
		cfg:         cfg,
		logger:      logger,
		dialTimeout: 10 * time.Second,
		now:         time.Now,
	}
}

// Enabled reports whether SMTP delivery is switched on and has a host
func (s *SMTPSender) Enabled() bool {
	return s.cfg != nil && s.cfg.Enabled && strings.TrimSpace(s.cfg.Host) != ""
}

func (s *SMTPSender) Send(ctx context.Context, msg *Message) error {
	if !s.Enabled() {
		return ErrNotConfigured
	}
	if strings.TrimSpace(msg.To) == "" {
		return errors.New("recipient is required")
	}

	from := s.cfg.DefaultSender
	if err := ValidateSenderDomain(from); err != nil {
		return err
	}
	raw := BuildMessage(from, msg, s.now())

	host := s.cfg.Host
	port := s.cfg.Port
	if port == 0 {
		port = 587
	}
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	dialer := &net.Dialer{Timeout: s.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to smtp server: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	implicitTLS := port == 465
	if implicitTLS {
		conn = tls.Client(conn, &tls.Config{ServerName: host, MinVersion: tls.VersionTLS12})
	}

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to start smtp session: %w", err)
	}
	defer client.Close()

	if !implicitTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: host, MinVersion: tls.VersionTLS12}); err != nil {
				return fmt.Errorf("failed to start tls: %w", err)
			}
		} else if s.cfg.UseTLS {
			return errors.New("smtp server does not support STARTTLS")
		}
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		if err := client.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, host)); err != nil {
			return fmt.Errorf("smtp authentication failed: %w", err)
		}
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("smtp MAIL FROM rejected: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("smtp RCPT TO rejected: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA rejected: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish message: %w", err)
	}

	s.logger.Info("Email sent",
		zap.String("feature", msg.Feature),
		zap.String("recipient", msg.To),
	)
	return client.Quit()
}

// ValidateSenderDomain rejects sender addresses without a domain part
func ValidateSenderDomain(sender string) error {
	at := strings.LastIndex(sender, "@")
	if at <= 0 || at == len(sender)-1 {
		return fmt.Errorf("sender %q is missing a domain", sender)
	}
	return nil
}

// BuildMessage renders msg as an RFC 5322 plain-text message with CRLF line endings
func BuildMessage(from string, msg *Message, now time.Time) []byte {
	var buf bytes.Buffer
	writeHeader := func(name, value string) {
		buf.WriteString(name)
		buf.WriteString(": ")
		buf.WriteString(sanitizeHeader(value))
		buf.WriteString("\r\n")
	}

	writeHeader("From", from)
	writeHeader("To", msg.To)
	writeHeader("Subject", msg.Subject)
	writeHeader("Date", now.Format(time.RFC1123Z))
	writeHeader("Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), senderDomain(from)))
	writeHeader("MIME-Version", "1.0")
	writeHeader("Content-Type", "text/plain; charset=UTF-8")
	writeHeader("Content-Transfer-Encoding", "8bit")
	writeHeader("X-PM-Message-Stream", messageStream)

	names := make([]string, 0, len(msg.Headers))
	for name := range msg.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		writeHeader(sanitizeHeader(name), msg.Headers[name])
	}

	buf.WriteString("\r\n")
	body := strings.ReplaceAll(msg.Body, "\r\n", "\n")
	buf.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	if !strings.HasSuffix(body, "\n") {
		buf.WriteString("\r\n")
	}
	return buf.Bytes()
}

func sanitizeHeader(value string) string {
	value = strings.ReplaceAll(value, "\r", " ")
	return strings.ReplaceAll(value, "\n", " ")
}

func senderDomain(from string) string {
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		return from[at+1:]
	}
	return "localhost"
}
