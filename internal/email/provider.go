package email

// Provider определяет интерфейс для отправки email.
// Все вызовы из сервисов - best-effort: ошибка отправки логируется
// и никогда не откатывает основную запись.
type Provider interface {
	// Send отправляет простое email сообщение
	Send(email *Email) error

	// SendTemplate отправляет email по шаблону
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	// SendWelcome отправляет приветственное письмо
	SendWelcome(to, name string) error

	// SendVerification отправляет письмо подтверждения email
	SendVerification(to, name, token string) error

	// SendPasswordReset отправляет письмо сброса пароля
	SendPasswordReset(to, name, token string) error

	// SendEmploymentRequested уведомляет админа компании о новом запросе
	SendEmploymentRequested(to, employeeName, companyName string) error

	// SendEmploymentDecision уведомляет сотрудника о решении (approved/rejected)
	SendEmploymentDecision(to, companyName, status, note string) error

	// Validate проверяет конфигурацию провайдера
	Validate() error

	// Close закрывает соединение с провайдером
	Close() error
}

// TemplateRenderer определяет интерфейс для рендеринга шаблонов
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
}
