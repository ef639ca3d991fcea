package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendWelcomeEmail(email, firstName string) error
	SendResetOTP(email, otp string) error
	SendResetLink(email, link string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendWelcomeEmail(email, firstName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to Grip Invest!")

	body := fmt.Sprintf(`
		<h2>Welcome to Grip Invest, %s!</h2>
		<p>Your account has been successfully created.</p>
		<p>Browse our investment products and start building your portfolio.</p>
		<p>Best regards,<br>The Grip Invest Team</p>
	`, firstName)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

func (s *emailService) SendResetOTP(email, otp string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Grip Invest Password Reset OTP")

	m.SetBody("text/plain",
		fmt.Sprintf("Your OTP for password reset is: %s (valid for 10 minutes)", otp))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reset OTP: %w", err)
	}
	return nil
}

func (s *emailService) SendResetLink(email, link string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Grip Invest Password Reset Link")

	m.SetBody("text/plain",
		fmt.Sprintf("Click this link to reset your password:\n\n%s\n\nValid for 1 hour.", link))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reset link: %w", err)
	}
	return nil
}
