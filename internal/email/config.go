package email

import "gopkg.in/gomail.v2"

// SMTPConfig - параметры gomail.Dialer и адрес отправителя
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
}

// DefaultConfig: порт 587 со STARTTLS, отправитель "Taskify".
func DefaultConfig() *SMTPConfig {
	return &SMTPConfig{
		Host:     "localhost",
		Port:     587,
		FromName: "Taskify",
		UseTLS:   true,
	}
}

// Sender - значение заголовка From.
func (c *SMTPConfig) Sender() string {
	return gomail.NewMessage().FormatAddress(c.FromEmail, c.FromName)
}
