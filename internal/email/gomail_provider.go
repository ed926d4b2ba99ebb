package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// GomailProvider реализует Provider поверх gomail/SMTP
type GomailProvider struct {
	config   *SMTPConfig
	dialer   *gomail.Dialer
	renderer TemplateRenderer
}

// NewGomailProvider создает SMTP провайдер
func NewGomailProvider(config *SMTPConfig, renderer TemplateRenderer) *GomailProvider {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &GomailProvider{
		config:   config,
		dialer:   dialer,
		renderer: renderer,
	}
}

// Send отправляет email сообщение
func (p *GomailProvider) Send(email *Email) error {
	if err := p.Validate(); err != nil {
		return err
	}

	from := email.From
	if from == "" {
		from = p.config.FromEmail
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", from, p.config.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	if email.HTMLBody != "" {
		m.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			m.AddAlternative("text/plain", email.Body)
		}
	} else {
		m.SetBody("text/plain", email.Body)
	}

	return p.dialer.DialAndSend(m)
}

// SendTemplate отправляет email по шаблону
func (p *GomailProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	if p.renderer == nil {
		return fmt.Errorf("template renderer is not configured")
	}

	htmlBody, err := p.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	return p.Send(&Email{
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
	})
}

// SendWelcome отправляет приветственное письмо
func (p *GomailProvider) SendWelcome(to, name string) error {
	return p.SendTemplate([]string{to}, "Welcome to WorkRate", "welcome", TemplateData{
		"Name": name,
	})
}

// SendVerification отправляет письмо подтверждения email
func (p *GomailProvider) SendVerification(to, name, token string) error {
	return p.SendTemplate([]string{to}, "Confirm your email", "verification", TemplateData{
		"Name":      name,
		"ActionURL": fmt.Sprintf("%s/verify-email/%s", p.config.BaseURL, token),
	})
}

// SendPasswordReset отправляет письмо сброса пароля
func (p *GomailProvider) SendPasswordReset(to, name, token string) error {
	return p.SendTemplate([]string{to}, "Password reset", "password_reset", TemplateData{
		"Name":      name,
		"ActionURL": fmt.Sprintf("%s/reset-password/%s", p.config.BaseURL, token),
	})
}

// SendEmploymentRequested уведомляет админа компании о новом запросе
func (p *GomailProvider) SendEmploymentRequested(to, employeeName, companyName string) error {
	return p.SendTemplate([]string{to}, "New employment verification request", "employment_requested", TemplateData{
		"EmployeeName": employeeName,
		"CompanyName":  companyName,
	})
}

// SendEmploymentDecision уведомляет сотрудника о решении
func (p *GomailProvider) SendEmploymentDecision(to, companyName, status, note string) error {
	return p.SendTemplate([]string{to}, "Employment request "+status, "employment_decision", TemplateData{
		"CompanyName": companyName,
		"Status":      status,
		"Note":        note,
	})
}

// Validate проверяет конфигурацию SMTP
func (p *GomailProvider) Validate() error {
	if p.config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if p.config.Port <= 0 || p.config.Port > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", p.config.Port)
	}
	return nil
}

// Close закрывает соединение (gomail держит соединение только на время отправки)
func (p *GomailProvider) Close() error {
	return nil
}
