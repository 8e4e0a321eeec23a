package mail

import (
	"fmt"
	"time"

	gomail "gopkg.in/gomail.v2"

	"github.com/bidancare/bidan-backend/config"
)

// Mailer mengirim email keluar. Diabstraksikan supaya service auth
// dapat diuji tanpa server SMTP.
type Mailer interface {
	SendOTP(to, kode string, berlaku time.Duration) error
	SendResetLink(to, token string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	sender string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		sender: cfg.MailSender,
	}
}

func (m *SMTPMailer) SendOTP(to, kode string, berlaku time.Duration) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Kode Verifikasi Login")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Kode verifikasi Anda: %s\nKode berlaku selama %d menit.",
		kode, int(berlaku.Minutes())))
	return m.dialer.DialAndSend(msg)
}

func (m *SMTPMailer) SendResetLink(to, token string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Reset Password")
	msg.SetBody("text/plain",
		"Gunakan token berikut untuk mengatur ulang password Anda:\n\n"+token)
	return m.dialer.DialAndSend(msg)
}
