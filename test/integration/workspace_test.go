package integration_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"taskify_backend/internal/models"
	"taskify_backend/internal/services/dto"
	"taskify_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspace_CreateAndMembership(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	token, user := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("creator"))

	ws := helpers.CreateWorkspace(t, ts, token, "Globex", 5, models.PlanPremium)
	assert.Equal(t, 1, ws.CurrentMemberCount)
	assert.Equal(t, 7, ws.ProjectLimit)
	assert.Equal(t, user.ID, ws.CreatorID)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/workspaces/me", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var member dto.MemberResponse
	helpers.DecodeJSON(t, body, &member)
	assert.Equal(t, ws.ID, member.WorkspaceID)
	assert.Equal(t, models.RoleEditor, member.Role)

	// второе пространство запрещено
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/workspaces", token, map[string]interface{}{
		"name":            "Initech",
		"company_email":   helpers.UniqueEmail("initech"),
		"member_capacity": 3,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "one workspace at a time")
}

func TestWorkspace_NameTaken(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	first, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("first"))
	second, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("second"))

	helpers.CreateWorkspace(t, ts, first, "Umbrella", 3, models.PlanBasic)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/workspaces", second, map[string]interface{}{
		"name":            "Umbrella",
		"company_email":   helpers.UniqueEmail("umbrella"),
		"member_capacity": 3,
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Equal(t, "CONFLICT", helpers.ErrorCode(t, body))
}

func TestWorkspace_MemberRules(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("owner"))
	viewerToken, viewer := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("viewer"))

	ws := helpers.CreateWorkspace(t, ts, ownerToken, "Hooli", 3, models.PlanBasic)
	helpers.AddWorkspaceMember(t, ts, ownerToken, ws.ID, viewer.ID, models.RoleViewer)

	// повторное добавление
	res, body := ts.SendRequest(t, http.MethodPost,
		fmt.Sprintf("/api/v1/workspaces/%s/members/%s", ws.ID, viewer.ID), ownerToken, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "already in a workspace")

	// viewer не может менять пространство
	res, body = ts.SendRequest(t, http.MethodPatch, "/api/v1/workspaces/"+ws.ID, viewerToken,
		map[string]interface{}{"name": "Pied Piper"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, "FORBIDDEN", helpers.ErrorCode(t, body))

	// вместимость ниже текущего числа участников
	res, body = ts.SendRequest(t, http.MethodPatch, "/api/v1/workspaces/"+ws.ID, ownerToken,
		map[string]interface{}{"member_capacity": 1})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "CAPACITY_EXCEEDED", helpers.ErrorCode(t, body))

	// себя удалить нельзя
	res, _ = ts.SendRequest(t, http.MethodDelete,
		fmt.Sprintf("/api/v1/workspaces/%s/members/%s", ws.ID, owner.ID), ownerToken, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	// свою роль менять нельзя
	res, _ = ts.SendRequest(t, http.MethodPut,
		fmt.Sprintf("/api/v1/workspaces/%s/members/%s/role", ws.ID, owner.ID), ownerToken,
		map[string]interface{}{"role": "viewer"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodDelete,
		fmt.Sprintf("/api/v1/workspaces/%s/members/%s", ws.ID, viewer.ID), ownerToken, nil)
	require.Equal(t, http.StatusNoContent, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/workspaces/"+ws.ID, ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var updated dto.WorkspaceResponse
	helpers.DecodeJSON(t, body, &updated)
	assert.Equal(t, 1, updated.CurrentMemberCount)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/workspaces/me", viewerToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestWorkspace_DeleteRemovesMembers(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("owner"))

	ws := helpers.CreateWorkspace(t, ts, token, "Vandelay", 3, models.PlanBasic)
	helpers.CreateProject(t, ts, token, ws.ID, "Latex")

	res, body := ts.SendRequest(t, http.MethodDelete, "/api/v1/workspaces/"+ws.ID, token, nil)
	require.Equal(t, http.StatusNoContent, res.StatusCode, body)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/workspaces/me", token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	var projects int64
	require.NoError(t, ts.DB.Model(&models.Project{}).Where("workspace_id = ?", ws.ID).Count(&projects).Error)
	assert.Zero(t, projects)

	// можно создать новое пространство
	helpers.CreateWorkspace(t, ts, token, "Vandelay Industries", 3, models.PlanBasic)
}

// TestWorkspace_ConcurrentAddsRespectCapacity - параллельные добавления не
// превышают вместимость, счетчик совпадает с числом участников.
func TestWorkspace_ConcurrentAddsRespectCapacity(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("creator"))
	ws := helpers.CreateWorkspace(t, ts, token, "Hooli", 3, models.PlanBasic)

	const candidates = 8
	users := make([]*models.User, candidates)
	for i := range users {
		users[i] = &models.User{Email: helpers.UniqueEmail(fmt.Sprintf("candidate%d", i)), PasswordHash: helpers.DefaultPassword}
		require.NoError(t, helpers.CreateUser(t, ts.DB, users[i]))
	}

	codes := make([]int, candidates)
	bodies := make([]string, candidates)
	var wg sync.WaitGroup
	for i, user := range users {
		wg.Add(1)
		go func(i int, userID string) {
			defer wg.Done()
			res, body := ts.SendRequest(t, http.MethodPost,
				fmt.Sprintf("/api/v1/workspaces/%s/members/%s", ws.ID, userID), token, nil)
			codes[i], bodies[i] = res.StatusCode, body
		}(i, user.ID)
	}
	wg.Wait()

	created := 0
	for i, code := range codes {
		if code == http.StatusCreated {
			created++
			continue
		}
		assert.Equal(t, http.StatusBadRequest, code, bodies[i])
		assert.Equal(t, "CAPACITY_EXCEEDED", helpers.ErrorCode(t, bodies[i]))
	}
	assert.Equal(t, 2, created)

	var workspace models.Workspace
	require.NoError(t, ts.DB.First(&workspace, "id = ?", ws.ID).Error)
	var members int64
	require.NoError(t, ts.DB.Model(&models.Member{}).Where("workspace_id = ?", ws.ID).Count(&members).Error)
	assert.Equal(t, 3, workspace.CurrentMemberCount)
	assert.Equal(t, int64(3), members)
}
