package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"vahcare-api/internal/config"
)

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender abstracts the mail transport so tests can substitute it.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender delivers mail over SMTP. Connections are dialed per send
// with a fixed timeout so a stalled mail server cannot hold a submission
// open indefinitely.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
	secure   bool
	timeout  time.Duration
}

// NewSMTPSender creates an SMTP transport from configuration.
func NewSMTPSender(cfg *config.Config) *SMTPSender {
	timeout := cfg.SMTP.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SMTPSender{
		host:     cfg.SMTP.Host,
		port:     cfg.SMTP.Port,
		username: cfg.SMTP.Username,
		password: cfg.SMTP.Password,
		from:     cfg.SMTP.From,
		fromName: cfg.SMTP.FromName,
		secure:   cfg.SMTP.Secure,
		timeout:  timeout,
	}
}

// Send delivers a single HTML message.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	client, err := s.dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := s.handshake(client); err != nil {
		return err
	}

	if err := client.Mail(s.from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write([]byte(s.buildMessage(msg))); err != nil {
		return fmt.Errorf("smtp write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close body: %w", err)
	}

	return client.Quit()
}

// Verify dials and handshakes with the server without sending anything.
func (s *SMTPSender) Verify(ctx context.Context) error {
	client, err := s.dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := s.handshake(client); err != nil {
		return err
	}
	return client.Quit()
}

func (s *SMTPSender) dial(ctx context.Context) (*smtp.Client, error) {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	var conn net.Conn
	var err error
	if s.secure {
		dialer := &net.Dialer{Timeout: timeout}
		conn, err = tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{ServerName: s.host})
	} else {
		conn, err = net.DialTimeout("tcp", addr, timeout)
	}
	if err != nil {
		return nil, fmt.Errorf("smtp dial %s: %w", addr, err)
	}

	// Bound the whole exchange, not only the dial.
	_ = conn.SetDeadline(time.Now().Add(timeout))

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return client, nil
}

func (s *SMTPSender) handshake(client *smtp.Client) error {
	if !s.secure {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
				return fmt.Errorf("smtp starttls: %w", err)
			}
		}
	}

	if s.username != "" && s.password != "" {
		auth := smtp.PlainAuth("", s.username, s.password, s.host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	return nil
}

func (s *SMTPSender) buildMessage(msg Message) string {
	from := s.from
	if s.fromName != "" {
		from = fmt.Sprintf("%s <%s>", s.fromName, s.from)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s\r\n", from))
	b.WriteString(fmt.Sprintf("To: %s\r\n", msg.To))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(msg.HTML)
	return b.String()
}
