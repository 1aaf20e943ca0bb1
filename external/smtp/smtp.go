package smtp

import (
	"context"

	"gopkg.in/gomail.v2"
)

// SMTPMailer delivers transactional mail over plain SMTP.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, toEmail, subject, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	// gomail has no context support; the dial timeout bounds the call.
	return m.dialer.DialAndSend(msg)
}
