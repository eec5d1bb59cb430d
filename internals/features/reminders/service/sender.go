package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

type Sender interface {
	Send(ctx context.Context, to, toName, subject, html string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender mengirim email HTML lewat gomail.
type SMTPSender struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg, dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)}
}

func (s *SMTPSender) Send(ctx context.Context, to, toName, subject, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.cfg.From)
	msg.SetAddressHeader("To", to, toName)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)
	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// LogSender: mode tanpa SMTP, email hanya dicatat di log.
type LogSender struct{ Log *logrus.Logger }

func (s LogSender) Send(_ context.Context, to, _ string, subject, _ string) error {
	s.Log.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("[REMINDER] SMTP tidak dikonfigurasi, email tidak dikirim")
	return nil
}
