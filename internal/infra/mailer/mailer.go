package mailer

import (
	"fmt"

	"github.com/busitron/workhub/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer formats and dispatches HTML notification mail. One configured client
// is constructed at startup and handed to services through the container; there
// is no package-level transporter.
type Mailer interface {
	SendTaskEmail(to, subject, message, taskID string, includeLink bool) error
	SendOTPEmail(to, code string) error
	SendPasswordChangedEmail(to string) error
}

type smtpMailer struct {
	dialer          *gomail.Dialer
	from            string
	frontendBaseURL string
}

func New(cfg *config.Config) Mailer {
	d := gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
	return &smtpMailer{
		dialer:          d,
		from:            cfg.SMTP.From,
		frontendBaseURL: cfg.Frontend.BaseURL,
	}
}

func (m *smtpMailer) send(to, subject, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// SendTaskEmail dispatches a task notification. When includeLink is true the
// body embeds a button linking to the task on the frontend.
func (m *smtpMailer) SendTaskEmail(to, subject, message, taskID string, includeLink bool) error {
	var html string
	if includeLink {
		html = fmt.Sprintf(`
            <p>%s</p>
            <a href="%s/tasks/%s" style="display:inline-block;padding:10px 20px;background-color:#007bff;color:white;text-decoration:none;border-radius:5px;">View Task</a>
            <p>Regards,<br>Team Busitron</p>
        `, message, m.frontendBaseURL, taskID)
	} else {
		html = fmt.Sprintf(`<p>%s</p>
            <p>Regards,<br>Team Busitron</p>
        `, message)
	}
	return m.send(to, subject, html)
}

func (m *smtpMailer) SendOTPEmail(to, code string) error {
	html := fmt.Sprintf(`
              <h2>Hello,</h2>
              <p>Your one-time passcode is <b>%s</b>. It expires in 10 minutes.</p>
              <p>If you did not request a password reset, you can ignore this mail.</p>
              <br>
              <p>Regards,<br>Team Busitron</p>
            `, code)
	return m.send(to, "Password Reset Code", html)
}

func (m *smtpMailer) SendPasswordChangedEmail(to string) error {
	html := `
              <h2>Hello,</h2>
              <p>Your password has been changed successfully.</p>
              <p>If you did not make this change, please contact our support team immediately.</p>
              <br>
              <p>Regards,<br>Team Busitron</p>
            `
	return m.send(to, "Password Changed Successfully", html)
}
