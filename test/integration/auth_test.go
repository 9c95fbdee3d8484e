package integration_test

import (
	"net/http"
	"testing"

	"taskify_backend/internal/models"
	"taskify_backend/internal/services/dto"
	"taskify_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAuthFlow - регистрация, отказ во входе до подтверждения, подтверждение и вход
func TestAuthFlow(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	address := helpers.UniqueEmail("ada")

	regRes, regBody := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", registerBody(address))
	require.Equal(t, http.StatusCreated, regRes.StatusCode, regBody)
	assert.Contains(t, regBody, "Registration successful")

	loginBody := map[string]interface{}{"email": address, "password": helpers.DefaultPassword}
	logRes, logBody := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusForbidden, logRes.StatusCode)
	assert.Contains(t, logBody, "Email is not verified")

	token := verifyTokenFromMail(t, ts, address)
	verRes, verBody := ts.SendRequest(t, http.MethodGet, "/api/v1/auth/verify-email?token="+token, "", nil)
	require.Equal(t, http.StatusOK, verRes.StatusCode, verBody)

	// повторное подтверждение
	againRes, againBody := ts.SendRequest(t, http.MethodGet, "/api/v1/auth/verify-email?token="+token, "", nil)
	assert.Equal(t, http.StatusBadRequest, againRes.StatusCode)
	assert.Contains(t, againBody, "verified already")

	logRes, logBody = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	require.Equal(t, http.StatusOK, logRes.StatusCode, logBody)

	var auth dto.AuthResponse
	helpers.DecodeJSON(t, logBody, &auth)
	assert.NotEmpty(t, auth.AccessToken)
	assert.NotEmpty(t, auth.RefreshToken)
	assert.Equal(t, address, auth.User.Email)
	assert.True(t, auth.User.IsVerified)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	address := helpers.UniqueEmail("duplicate")
	require.NoError(t, helpers.CreateUser(t, ts.DB, &models.User{Email: address, PasswordHash: "pass12345"}))

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", registerBody(address))
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Contains(t, body, "Email already exists")
}

func TestRegister_PasswordsDoNotMatch(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	req := registerBody(helpers.UniqueEmail("mismatch"))
	req["password2"] = "something_else"

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", req)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "Your passwords do not match")
}

// TestRegister_EmailDeliveryFails - письмо не ушло: 502, аккаунт остается
func TestRegister_EmailDeliveryFails(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	ts.Mailer.SetFailing(true)
	address := helpers.UniqueEmail("undeliverable")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", registerBody(address))
	assert.Equal(t, http.StatusBadGateway, res.StatusCode)
	assert.Equal(t, "DELIVERY_FAILED", helpers.ErrorCode(t, body))

	var count int64
	require.NoError(t, ts.DB.Model(&models.User{}).Where("email = ?", address).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	ts.Mailer.SetFailing(false)
	resendRes, resendBody := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/resend-verification", "",
		map[string]interface{}{"email": address})
	assert.Equal(t, http.StatusOK, resendRes.StatusCode, resendBody)
	verifyTokenFromMail(t, ts, address)
}

func TestLogin_BadPassword(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	address := helpers.UniqueEmail("user")
	require.NoError(t, helpers.CreateUser(t, ts.DB, &models.User{Email: address, PasswordHash: "correct-password"}))

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    address,
		"password": "WRONG-password",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, body, "Invalid email or password")
}

// TestRefresh_RotatesToken - старый refresh-токен после ротации не принимается
func TestRefresh_RotatesToken(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	address := helpers.UniqueEmail("rotate")
	require.NoError(t, helpers.CreateUser(t, ts.DB, &models.User{Email: address, PasswordHash: helpers.DefaultPassword}))

	_, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    address,
		"password": helpers.DefaultPassword,
	})
	var first dto.AuthResponse
	helpers.DecodeJSON(t, body, &first)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "",
		map[string]interface{}{"refresh_token": first.RefreshToken})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var second dto.AuthResponse
	helpers.DecodeJSON(t, body, &second)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "",
		map[string]interface{}{"refresh_token": first.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

// TestLogout_BlacklistsAccessToken - после выхода access-токен отклоняется
func TestLogout_BlacklistsAccessToken(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	token, user := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("logout"))

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, user.Email)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, body, "Token is blacklisted")
}

func TestProtectedRoute_RequiresToken(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", helpers.ErrorCode(t, body))
}
