package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strconv"
	"time"

	"github.com/hireloop/jobboard/internal/core/domain"
)

// SMTPConfig holds the relay settings for SMTPSender.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender mails notifications as HTML through an SMTP relay.
type SMTPSender struct {
	cfg  SMTPConfig
	tmpl *template.Template
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

const notificationTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Subject}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #1f6feb; color: white; padding: 16px; }
        .content { padding: 20px; background: #f6f8fa; }
        .footer { text-align: center; padding: 16px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h2>{{.Subject}}</h2></div>
        <div class="content"><p>{{.Message}}</p></div>
        <div class="footer"><p>JobBoard &middot; {{.Sent}}</p></div>
    </div>
</body>
</html>`

func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	tmpl, err := template.New("notification").Parse(notificationTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse email template: %w", err)
	}
	return &SMTPSender{cfg: cfg, tmpl: tmpl, send: smtp.SendMail}, nil
}

// Send renders n and hands it to the relay. net/smtp has no context support,
// so ctx is only checked before dialing.
func (s *SMTPSender) Send(ctx context.Context, n domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := s.render(n)
	if err != nil {
		return err
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	addr := s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port)
	if err := s.send(addr, auth, s.cfg.From, []string{n.To}, msg); err != nil {
		return fmt.Errorf("send email to %s: %w", n.To, err)
	}
	return nil
}

func (s *SMTPSender) render(n domain.Notification) ([]byte, error) {
	sent := n.CreatedAt
	if sent.IsZero() {
		sent = time.Now().UTC()
	}

	var body bytes.Buffer
	if err := s.tmpl.Execute(&body, struct {
		Subject, Message, Sent string
	}{n.Subject, n.Message, sent.Format(time.RFC1123)}); err != nil {
		return nil, fmt.Errorf("render email: %w", err)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", n.To)
	fmt.Fprintf(&msg, "Subject: %s\r\n", n.Subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}
