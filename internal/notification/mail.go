package notification

import (
	"context"
	"errors"

	"gopkg.in/gomail.v2"
)

type MailSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailSender(host string, port int, username, password, from string) *MailSender {
	if from == "" {
		from = username
	}
	return &MailSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *MailSender) Channel() string { return ChannelEmail }

func (s *MailSender) Send(ctx context.Context, msg Message) error {
	if s.dialer.Host == "" || s.from == "" {
		return errors.New("SMTP belum dikonfigurasi")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.Destination)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.Body)
	return s.dialer.DialAndSend(m)
}
