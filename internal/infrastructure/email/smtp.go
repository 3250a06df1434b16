package email

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

type SMTPEmailService struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPEmailService{
		config: config,
		dialer: dialer,
	}
}

// SendLicenseExpiryWarning sends the expiry warning to the company's billing
// contact. The ctx parameter satisfies the usecase interface; gomail has no
// context-aware dial, so cancellation is checked before dialing only.
func (s *SMTPEmailService) SendLicenseExpiryWarning(ctx context.Context, to, companyName string, daysUntilExpiry int, endDate time.Time, licenseID uint) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var subject string
	if daysUntilExpiry == 0 {
		subject = "Your license expires today"
	} else {
		subject = fmt.Sprintf("Your license expires in %d days", daysUntilExpiry)
	}

	expiresOn := endDate.UTC().Format("2006-01-02")
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>License expiry notice</h2>
			<p>Hello %s,</p>
			<p>Your license (#%d) expires on <strong>%s</strong>.</p>
			<p>Renew before the expiry date to keep uninterrupted access for your company.</p>
			<p>If you already renewed, you can ignore this message.</p>
		</body>
		</html>
	`, companyName, licenseID, expiresOn)

	plainBody := fmt.Sprintf(`
Hello %s,

Your license (#%d) expires on %s.

Renew before the expiry date to keep uninterrupted access for your company.

If you already renewed, you can ignore this message.
	`, companyName, licenseID, expiresOn)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.config.FromAddress, s.config.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return nil
}
