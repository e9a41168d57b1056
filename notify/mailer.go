// Package notify mengirim email pemberitahuan keputusan verifikasi kepada
// pemilik pengajuan atau laporan. Pengiriman bersifat best effort.
package notify

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Sender   string
}

type SMTPMailer struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.To == "" {
		return fmt.Errorf("notify: empty recipient")
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.cfg.Sender)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.Body)

	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("notify: send to %s: %w", msg.To, err)
	}
	return nil
}

// NopMailer dipakai bila SMTP tidak dikonfigurasi.
type NopMailer struct{}

func (NopMailer) Send(context.Context, Message) error { return nil }

// New memilih SMTPMailer bila host terisi, selain itu NopMailer.
func New(cfg SMTPConfig) Mailer {
	if cfg.Host == "" {
		return NopMailer{}
	}
	return NewSMTPMailer(cfg)
}
