package email

// Provider доставляет служебные письма: подтверждение адреса и смену email.
// Реализации: SMTPProvider и app.MockEmailProvider.
type Provider interface {
	Send(email *Email) error
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error
	Validate() error
	Close() error
}

// Renderer превращает именованный шаблон письма в HTML
type Renderer interface {
	Render(templateName string, data TemplateData) (string, error)
}
