package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskify_backend/database"
	"taskify_backend/internal/app"
	"taskify_backend/internal/config"
	"taskify_backend/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const TestJWTSecret = "my_super_secret_key_for_tests_12345"

type TestServer struct {
	Server   *httptest.Server
	DB       *gorm.DB
	Mailer   *app.MockEmailProvider
	Services *services.ServiceContainer
	Config   *config.Config
	cancel   context.CancelFunc
}

// TestConfig - конфигурация для тестов без файла и переменных окружения
func TestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Server.Port = 4001
	cfg.Database.Driver = database.DriverSQLite
	cfg.JWT.Secret = TestJWTSecret
	cfg.JWT.AccessTTLMinutes = 60
	cfg.JWT.RefreshTTLHours = 24
	cfg.JWT.VerifyTTLMinutes = 60
	cfg.Email.VerifyURL = "http://localhost:4001/api/v1/auth/verify-email"
	cfg.CORS.AllowedOrigins = []string{"*"}
	return cfg
}

// NewTestServer поднимает приложение на httptest поверх отдельной
// in-memory SQLite базы. Каждый тест получает чистую БД.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	cfg := TestConfig()
	cfg.Database.DSN = "file:" + uuid.NewString() + "?mode=memory&cache=shared"

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN, gormlogger.Default.LogMode(gormlogger.Silent))
	require.NoError(t, err, "Не удалось открыть тестовую БД")
	require.NoError(t, database.Migrate(db), "Не удалось применить миграции")

	ctx, cancel := context.WithCancel(context.Background())
	mailer := app.NewMockEmailProvider()
	router, sc := app.SetupRouter(ctx, cfg, db, mailer)

	ts := &TestServer{
		Server:   httptest.NewServer(router),
		DB:       db,
		Mailer:   mailer,
		Services: sc,
		Config:   cfg,
		cancel:   cancel,
	}
	t.Cleanup(ts.Close)
	return ts
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	ts.cancel()
	if sqlDB, err := ts.DB.DB(); err == nil {
		sqlDB.Close()
	}
}

// SendRequest отправляет JSON-запрос и возвращает ответ с телом в виде строки
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()
	url := ts.Server.URL + path

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Ошибка кодирования JSON для запроса: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("Ошибка создания HTTP-запроса: %v", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("Ошибка отправки HTTP-запроса: %v", err)
	}
	defer res.Body.Close()

	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Ошибка чтения тела ответа: %v", err)
	}

	return res, string(resBodyBytes)
}

// DecodeJSON разбирает тело ответа в v
func DecodeJSON(t *testing.T, body string, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), v), "Не удалось распарсить JSON: %s", body)
}

// ErrorCode достает error.code из стандартного ответа об ошибке
func ErrorCode(t *testing.T, body string) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	DecodeJSON(t, body, &resp)
	return resp.Error.Code
}
