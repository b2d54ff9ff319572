// internal/app/system/mailer/mailer.go

// Package mailer delivers transactional email. The only message the
// service sends today is the OTP verification code.
package mailer

import (
	"fmt"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// Sender delivers OTP codes. The auth feature depends on this interface
// so tests can substitute a capture implementation.
type Sender interface {
	SendOTP(to, code string) error
}

// SMTPSender sends mail through a plain SMTP relay (Mailpit locally,
// SES or similar in production).
type SMTPSender struct {
	host     string
	port     int
	user     string
	pass     string
	from     string
	fromName string
	log      *zap.Logger
}

// NewSMTPSender constructs an SMTPSender from config values.
func NewSMTPSender(host string, port int, user, pass, from, fromName string, logger *zap.Logger) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		user:     user,
		pass:     pass,
		from:     from,
		fromName: fromName,
		log:      logger,
	}
}

// SendOTP emails a verification code to the given address.
func (s *SMTPSender) SendOTP(to, code string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your verification code")
	m.SetBody("text/plain", fmt.Sprintf("Your verification code is: %s\n\nIt expires shortly. If you did not request it, ignore this email.", code))

	d := gomail.NewDialer(s.host, s.port, s.user, s.pass)
	if err := d.DialAndSend(m); err != nil {
		s.log.Error("otp mail delivery failed", zap.String("to", to), zap.Error(err))
		return fmt.Errorf("send otp mail: %w", err)
	}
	return nil
}
