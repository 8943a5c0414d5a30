package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/bmarinov/gym_go_server/config"
	"github.com/bmarinov/gym_go_server/internal/pkg/i18n"
)

type Service struct {
	cfg *config.EmailConfig
}

func NewService(cfg *config.EmailConfig) *Service {
	return &Service{cfg: cfg}
}

// Enabled reports whether SMTP delivery is configured.
func (s *Service) Enabled() bool {
	return s.cfg.SMTPHost != "" && s.cfg.From != ""
}

// SendExpiryDigest mails the list of freshly created expiry notifications to
// the configured recipients.
func (s *Service) SendExpiryDigest(to []string, messages []string) error {
	if len(to) == 0 || len(messages) == 0 {
		return nil
	}

	items := make([]string, 0, len(messages))
	for _, m := range messages {
		items = append(items, fmt.Sprintf("<li style=\"margin: 6px 0;\">%s</li>", m))
	}

	subject := i18n.T("email.digest_subject")
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2563eb;">%s</h2>
        <ul style="background-color: #f3f4f6; padding: 15px 30px;">
            %s
        </ul>
    </div>
</body>
</html>
`, subject, strings.Join(items, "\n            "))

	return s.sendHTML(to, subject, body)
}

func (s *Service) sendHTML(to []string, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	headers := []string{
		fmt.Sprintf("From: %s", s.cfg.From),
		fmt.Sprintf("To: %s", strings.Join(to, ", ")),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	}
	msg := strings.Join(headers, "\r\n") + "\r\n\r\n" + body

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, s.cfg.From, to, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
