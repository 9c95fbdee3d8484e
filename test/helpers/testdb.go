package helpers

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"taskify_backend/internal/auth"
	"taskify_backend/internal/models"
	"taskify_backend/internal/services/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const DefaultPassword = "password123"

// CreateUser создает пользователя напрямую в БД. Сырой пароль
// в PasswordHash хешируется, пользователь активен и подтвержден.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) error {
	t.Helper()
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashed, err := auth.HashPassword(user.PasswordHash)
		if err != nil {
			t.Fatalf("Не удалось хешировать пароль: %v", err)
		}
		user.PasswordHash = hashed
	}
	if user.FirstName == "" {
		user.FirstName = "Test"
	}
	if user.LastName == "" {
		user.LastName = "User"
	}
	if user.SubscriptionPlan == "" {
		user.SubscriptionPlan = models.PlanBasic
	}
	user.IsVerified = true
	user.IsActive = true

	if err := db.Create(user).Error; err != nil {
		t.Logf("ОШИБКА: не удалось создать пользователя %s: %v", user.Email, err)
		return err
	}
	return nil
}

// UniqueEmail - email, не пересекающийся с другими тестами
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%s@test.com", prefix, uuid.NewString()[:8])
}

// CreateAndLoginUser создает подтвержденного пользователя и логинит его через API
func CreateAndLoginUser(t *testing.T, ts *TestServer, email string) (string, *models.User) {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: DefaultPassword}
	require.NoError(t, CreateUser(t, ts.DB, user))

	return Login(t, ts, email, DefaultPassword), user
}

// Login возвращает access-токен
func Login(t *testing.T, ts *TestServer, email, password string) string {
	t.Helper()
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "Логин должен быть успешным. Ответ: "+body)

	var resp dto.AuthResponse
	DecodeJSON(t, body, &resp)
	require.NotEmpty(t, resp.AccessToken, "Токен не должен быть пустым")
	return resp.AccessToken
}

// CreateWorkspace создает рабочее пространство от имени владельца токена
func CreateWorkspace(t *testing.T, ts *TestServer, token, name string, capacity int, plan models.SubscriptionPlan) dto.WorkspaceResponse {
	t.Helper()
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/workspaces", token, map[string]interface{}{
		"name":            name,
		"company_email":   UniqueEmail("company"),
		"member_capacity": capacity,
		"plan":            string(plan),
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var ws dto.WorkspaceResponse
	DecodeJSON(t, body, &ws)
	return ws
}

// AddWorkspaceMember добавляет пользователя в пространство с ролью
func AddWorkspaceMember(t *testing.T, ts *TestServer, token, workspaceID, userID string, role models.MemberRole) dto.MemberResponse {
	t.Helper()
	res, body := ts.SendRequest(t, http.MethodPost,
		fmt.Sprintf("/api/v1/workspaces/%s/members/%s", workspaceID, userID), token,
		map[string]interface{}{"role": string(role)})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var member dto.MemberResponse
	DecodeJSON(t, body, &member)
	return member
}

// ProjectBody - тело создания проекта с датами в будущем
func ProjectBody(name string, startInDays, endInDays int) map[string]interface{} {
	now := time.Now()
	return map[string]interface{}{
		"name":        name,
		"description": "Test project",
		"start_date":  now.AddDate(0, 0, startInDays).Format(time.RFC3339),
		"end_date":    now.AddDate(0, 0, endInDays).Format(time.RFC3339),
	}
}

// CreateProject создает проект в пространстве
func CreateProject(t *testing.T, ts *TestServer, token, workspaceID, name string) dto.ProjectResponse {
	t.Helper()
	res, body := ts.SendRequest(t, http.MethodPost,
		fmt.Sprintf("/api/v1/workspaces/%s/projects", workspaceID), token, ProjectBody(name, 1, 30))
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var project dto.ProjectResponse
	DecodeJSON(t, body, &project)
	return project
}
