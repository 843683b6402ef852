package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	gomail "github.com/emersion/go-message/mail"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"

	"application-tracker-api/internal/config"
)

// SMTP connection security modes.
const (
	SecurityStartTLS = "starttls"
	SecurityTLS      = "tls"
	SecurityNone     = "none"
)

type SMTPMailer struct {
	addr     string
	security string
	auth     sasl.Client
	tls      *tls.Config
	dialer   net.Dialer
}

// NewSMTPMailer uses PLAIN auth when a username is set. Security defaults to
// STARTTLS.
func NewSMTPMailer(cfg config.SMTPConfig) (*SMTPMailer, error) {
	security := strings.ToLower(cfg.Security)
	switch security {
	case "":
		security = SecurityStartTLS
	case SecurityStartTLS, SecurityTLS, SecurityNone:
	default:
		return nil, fmt.Errorf("unknown smtp security %q", cfg.Security)
	}
	m := &SMTPMailer{
		addr:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		security: security,
		tls:      &tls.Config{ServerName: cfg.Host},
	}
	if cfg.Username != "" {
		m.auth = sasl.NewPlainClient("", cfg.Username, cfg.Password)
	}
	return m, nil
}

// Send delivers one message per connection. ctx bounds the whole exchange:
// its deadline becomes the dial and per-command timeouts, and cancelling it
// closes the connection.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	raw, err := Compose(msg, time.Now())
	if err != nil {
		return err
	}

	conn, err := m.dialer.DialContext(ctx, "tcp", m.addr)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", cause(ctx, err))
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()
	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline {
		// covers the greeting and STARTTLS handshake
		_ = conn.SetDeadline(deadline)
	}

	c, err := m.client(conn)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp connect: %w", cause(ctx, err))
	}
	defer c.Close()
	if hasDeadline {
		left := time.Until(deadline)
		c.CommandTimeout = left
		c.SubmissionTimeout = left
	}

	if m.auth != nil {
		if err := c.Auth(m.auth); err != nil {
			return fmt.Errorf("smtp auth: %w", cause(ctx, err))
		}
	}
	if err := c.SendMail(msg.From, []string{msg.To}, bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("smtp send: %w", cause(ctx, err))
	}
	if err := c.Quit(); err != nil && ctx.Err() != nil {
		return fmt.Errorf("smtp quit: %w", ctx.Err())
	}
	return nil
}

func (m *SMTPMailer) client(conn net.Conn) (*smtp.Client, error) {
	switch m.security {
	case SecurityTLS:
		return smtp.NewClient(tls.Client(conn, m.tls)), nil
	case SecurityStartTLS:
		return smtp.NewClientStartTLS(conn, m.tls)
	default:
		return smtp.NewClient(conn), nil
	}
}

// cause reports the context error when the connection died because ctx ended.
// The socket deadline can trip a moment before ctx notices.
func cause(ctx context.Context, err error) error {
	ctxErr := ctx.Err()
	if d, ok := ctx.Deadline(); ok && ctxErr == nil && !time.Now().Before(d) {
		ctxErr = context.DeadlineExceeded
	}
	if ctxErr != nil {
		return fmt.Errorf("%w (%v)", ctxErr, err)
	}
	return err
}

// Compose renders msg as a single-part text/plain RFC 5322 message.
func Compose(msg Message, date time.Time) ([]byte, error) {
	from, err := gomail.ParseAddress(msg.From)
	if err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	to, err := gomail.ParseAddress(msg.To)
	if err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}

	var h gomail.Header
	h.SetDate(date)
	h.SetAddressList("From", []*gomail.Address{from})
	h.SetAddressList("To", []*gomail.Address{to})
	h.SetSubject(msg.Subject)
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	if err := h.GenerateMessageID(); err != nil {
		return nil, fmt.Errorf("message id: %w", err)
	}

	var buf bytes.Buffer
	w, err := gomail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(w, msg.Text); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
