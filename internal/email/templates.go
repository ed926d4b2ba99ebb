package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateManager реализует TemplateRenderer
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер с набором встроенных шаблонов
func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}

	for name, body := range defaultTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			return nil, fmt.Errorf("failed to load default template %s: %w", name, err)
		}
	}
	return tm, nil
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// AddTemplate добавляет шаблон в менеджер
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}

var defaultTemplates = map[string]string{
	"welcome": `<html><body>
<h2>Welcome to WorkRate, {{.Name}}!</h2>
<p>Your account has been created. Verify your email to start using the platform.</p>
</body></html>`,

	"verification": `<html><body>
<h2>Confirm your email</h2>
<p>Hi {{.Name}},</p>
<p>Click the link below to verify your email address. The link is valid for 24 hours.</p>
<p><a href="{{.ActionURL}}">Verify Email</a></p>
</body></html>`,

	"password_reset": `<html><body>
<h2>Password reset</h2>
<p>Hi {{.Name}},</p>
<p>Click the link below to set a new password. The link is valid for 1 hour.</p>
<p><a href="{{.ActionURL}}">Reset Password</a></p>
<p>If you did not request this, ignore this email.</p>
</body></html>`,

	"employment_requested": `<html><body>
<h2>New employment verification request</h2>
<p>{{.EmployeeName}} requested employment verification at {{.CompanyName}}.</p>
<p>Review the request in your company dashboard.</p>
</body></html>`,

	"employment_decision": `<html><body>
<h2>Your employment request was {{.Status}}</h2>
<p>Company: {{.CompanyName}}</p>
{{if .Note}}<p>Note: {{.Note}}</p>{{end}}
</body></html>`,
}
