package integration_test

import (
	"net/url"
	"os"
	"testing"

	"taskify_backend/internal/email"
	"taskify_backend/internal/logger"
	"taskify_backend/test/helpers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	os.Exit(m.Run())
}

// verifyTokenFromMail достает токен подтверждения из последнего письма на адрес
func verifyTokenFromMail(t *testing.T, ts *helpers.TestServer, address string) string {
	t.Helper()
	mail, ok := ts.Mailer.LastTo(address)
	require.True(t, ok, "Письмо на %s не отправлено", address)
	require.Equal(t, email.TemplateVerifyEmail, mail.Template)

	link, ok := mail.Data["VerifyLink"].(string)
	require.True(t, ok, "В письме нет ссылки подтверждения")

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	token := parsed.Query().Get("token")
	require.NotEmpty(t, token)
	return token
}

func registerBody(emailAddr string) map[string]interface{} {
	return map[string]interface{}{
		"email":      emailAddr,
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"password":   helpers.DefaultPassword,
		"password2":  helpers.DefaultPassword,
	}
}
