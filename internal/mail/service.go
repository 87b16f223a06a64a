package mail

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/smtp"
	"strings"
	"time"
)

const otpTemplate = `<html>
  <body style="font-family: sans-serif;">
    <p>Your one-time passcode is:</p>
    <h2 style="letter-spacing: 4px;">{{.OTP}}</h2>
    <p>It expires at {{.ExpiresAt}}. If you did not register, ignore this mail.</p>
  </body>
</html>`

var otpTmpl = template.Must(template.New("otp-email").Parse(otpTemplate))

type Sender interface {
	SendOTPEmail(to, otp, expiresAt string) error
}

type MailService struct {
	host     string
	port     string
	user     string
	pass     string
	from     string
	fromName string
	subject  string
}

func NewMailService(host, port, user, pass, from, fromName, subject string) *MailService {
	return &MailService{
		host:     host,
		port:     port,
		user:     user,
		pass:     pass,
		from:     from,
		fromName: fromName,
		subject:  subject,
	}
}

func (s *MailService) SendOTPEmail(to, otp, expiresAt string) error {
	htmlBody, err := s.renderOTPTemplate(otp, expiresAt)
	if err != nil {
		return err
	}

	fromHeader := fmt.Sprintf("%s <%s>", s.fromName, s.from)

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", s.subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		htmlBody,
	}, "\r\n")

	addr := net.JoinHostPort(s.host, s.port)
	log.Printf("[MAIL] smtp sending to=%s via=%s", to, addr)

	if err := s.sendSMTPWithTimeout(to, []byte(msg)); err != nil {
		return err
	}

	log.Printf("[MAIL] sent to=%s", to)
	return nil
}

func (s *MailService) renderOTPTemplate(otp, expiresAt string) (string, error) {
	var buf bytes.Buffer
	err := otpTmpl.Execute(&buf, map[string]string{
		"OTP":       otp,
		"ExpiresAt": expiresAt,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *MailService) sendSMTPWithTimeout(to string, msg []byte) error {
	addr := net.JoinHostPort(s.host, s.port)

	conn, err := net.DialTimeout("tcp", addr, 8*time.Second)
	if err != nil {
		return err
	}
	// deadline covers the whole session
	_ = conn.SetDeadline(time.Now().Add(15 * time.Second))

	c, err := smtp.NewClient(conn, s.host)
	if err != nil {
		return err
	}
	defer func() { _ = c.Quit() }()

	// STARTTLS
	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
			return err
		}
	}
	// Auth
	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	if err := c.Auth(auth); err != nil {
		return err
	}

	// From/To
	if err := c.Mail(s.from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	// Data
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
