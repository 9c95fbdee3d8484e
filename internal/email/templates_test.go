package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateManager_LoadDefaults(t *testing.T) {
	tm := NewTemplateManager()
	require.NoError(t, tm.LoadDefaults())

	assert.ElementsMatch(t, []string{TemplateVerifyEmail, TemplateChangeEmail}, tm.TemplateNames())

	html, err := tm.Render(TemplateVerifyEmail, TemplateData{
		"FirstName":  "Ada",
		"VerifyLink": "http://localhost/verify?token=abc",
		"ExpiresIn":  "1h0m0s",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Hi Ada")
	assert.Contains(t, html, "token=abc")
}

func TestTemplateManager_UnknownTemplate(t *testing.T) {
	_, err := NewTemplateManager().Render("missing", nil)
	assert.Error(t, err)
}

func TestSMTPProvider_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FromEmail = "noreply@taskify.test"
	assert.NoError(t, NewSMTPProvider(cfg, nil).Validate())

	cfg.Host = ""
	assert.Error(t, NewSMTPProvider(cfg, nil).Validate())
}

func TestSMTPConfig_Sender(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FromEmail = "noreply@taskify.test"
	assert.Equal(t, `"Taskify" <noreply@taskify.test>`, cfg.Sender())

	cfg.FromName = ""
	assert.Equal(t, "noreply@taskify.test", cfg.Sender())
}
