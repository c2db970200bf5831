package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// EmailConfig holds email configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func loadEmailConfig() EmailConfig {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	return EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// SendEmail sends an HTML email
func SendEmail(to, subject, body string) error {
	config := loadEmailConfig()
	if config.Host == "" {
		return fmt.Errorf("SMTP is not configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", config.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}

// SendApplicationStatusEmail notifies a candidate that an application moved
// to a new status
func SendApplicationStatusEmail(to, jobTitle, status string) error {
	subject := fmt.Sprintf("Update on your application for %s", jobTitle)
	body := fmt.Sprintf(`
		<h2>Application update</h2>
		<p>Your application for <strong>%s</strong> is now <strong>%s</strong>.</p>
		<p>Log in to your dashboard for details.</p>
	`, jobTitle, status)
	return SendEmail(to, subject, body)
}
