package app

import "workrate_backend/internal/email"

// MockEmailProvider используется для тестов и локальной разработки.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(msg *email.Email) error { return nil }
func (m *MockEmailProvider) SendTemplate(to []string, subject string, templateName string, data email.TemplateData) error {
	return nil
}
func (m *MockEmailProvider) SendWelcome(to, name string) error                  { return nil }
func (m *MockEmailProvider) SendVerification(to, name, token string) error      { return nil }
func (m *MockEmailProvider) SendPasswordReset(to, name, token string) error     { return nil }
func (m *MockEmailProvider) SendEmploymentRequested(to, e, c string) error      { return nil }
func (m *MockEmailProvider) SendEmploymentDecision(to, c, status, n string) error { return nil }
func (m *MockEmailProvider) Validate() error                                    { return nil }
func (m *MockEmailProvider) Close() error                                       { return nil }
