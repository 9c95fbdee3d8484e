package app

import (
	"errors"
	"sync"

	"taskify_backend/internal/email"
	"taskify_backend/internal/logger"
)

// SentEmail - письмо, принятое моком.
type SentEmail struct {
	To       []string
	Subject  string
	Template string
	Data     email.TemplateData
}

// MockEmailProvider используется для тестов и локальной разработки.
// Письма не уходят наружу, а складываются в память.
type MockEmailProvider struct {
	mu   sync.Mutex
	sent []SentEmail
	fail bool
}

func NewMockEmailProvider() *MockEmailProvider {
	return &MockEmailProvider{}
}

// SetFailing переключает мок в режим ошибок доставки
func (m *MockEmailProvider) SetFailing(fail bool) {
	m.mu.Lock()
	m.fail = fail
	m.mu.Unlock()
}

func (m *MockEmailProvider) Send(msg *email.Email) error {
	return m.record(SentEmail{To: msg.To, Subject: msg.Subject})
}

func (m *MockEmailProvider) SendTemplate(to []string, subject string, templateName string, data email.TemplateData) error {
	return m.record(SentEmail{To: to, Subject: subject, Template: templateName, Data: data})
}

func (m *MockEmailProvider) Validate() error { return nil }
func (m *MockEmailProvider) Close() error    { return nil }

// LastTo возвращает последнее письмо на адрес
func (m *MockEmailProvider) LastTo(address string) (SentEmail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(m.sent) - 1; i >= 0; i-- {
		for _, to := range m.sent[i].To {
			if to == address {
				return m.sent[i], true
			}
		}
	}
	return SentEmail{}, false
}

func (m *MockEmailProvider) record(e SentEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail {
		return errors.New("mock smtp: delivery failed")
	}
	m.sent = append(m.sent, e)
	logger.Debug("Mock email accepted", "to", e.To, "subject", e.Subject, "template", e.Template)
	return nil
}
