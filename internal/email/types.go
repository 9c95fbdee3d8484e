package email

// Имена встроенных шаблонов.
const (
	TemplateVerifyEmail = "verify_email"
	TemplateChangeEmail = "change_email"
)

// Email представляет структуру email сообщения
type Email struct {
	From     string
	To       []string
	Cc       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData представляет данные для шаблонов писем
type TemplateData map[string]interface{}
