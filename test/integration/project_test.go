package integration_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"taskify_backend/internal/models"
	"taskify_backend/internal/services/dto"
	"taskify_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAcmeScenario - вместимость 2, тариф basic: третий участник и
// четвертый проект отклоняются, viewer получает право на изменение
// только после повышения до editor.
func TestAcmeScenario(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	creatorToken, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("creator"))
	viewerToken, viewer := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("viewer"))
	_, outsider := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("outsider"))

	ws := helpers.CreateWorkspace(t, ts, creatorToken, "Acme", 2, models.PlanBasic)
	helpers.AddWorkspaceMember(t, ts, creatorToken, ws.ID, viewer.ID, models.RoleViewer)

	res, body := ts.SendRequest(t, http.MethodPost,
		fmt.Sprintf("/api/v1/workspaces/%s/members/%s", ws.ID, outsider.ID), creatorToken, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "CAPACITY_EXCEEDED", helpers.ErrorCode(t, body))

	var projects []dto.ProjectResponse
	for i := 1; i <= 3; i++ {
		projects = append(projects, helpers.CreateProject(t, ts, creatorToken, ws.ID, fmt.Sprintf("Acme Project %d", i)))
	}

	res, body = ts.SendRequest(t, http.MethodPost,
		fmt.Sprintf("/api/v1/workspaces/%s/projects", ws.ID), creatorToken, helpers.ProjectBody("Acme Project 4", 1, 30))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "PLAN_LIMIT_EXCEEDED", helpers.ErrorCode(t, body))
	assert.Contains(t, body, "maximum of 3 projects")

	update := map[string]interface{}{"description": "Updated by the viewer"}
	res, body = ts.SendRequest(t, http.MethodPatch, "/api/v1/projects/"+projects[0].ID, viewerToken, update)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, "FORBIDDEN", helpers.ErrorCode(t, body))

	res, body = ts.SendRequest(t, http.MethodPut,
		fmt.Sprintf("/api/v1/workspaces/%s/members/%s/role", ws.ID, viewer.ID), creatorToken,
		map[string]interface{}{"role": "editor"})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPatch, "/api/v1/projects/"+projects[0].ID, viewerToken, update)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var updated dto.ProjectResponse
	helpers.DecodeJSON(t, body, &updated)
	assert.Equal(t, "Updated by the viewer", updated.Description)
}

func TestProject_DateValidation(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("owner"))
	ws := helpers.CreateWorkspace(t, ts, token, "Stark", 3, models.PlanEnterprise)
	path := fmt.Sprintf("/api/v1/workspaces/%s/projects", ws.ID)

	res, body := ts.SendRequest(t, http.MethodPost, path, token, helpers.ProjectBody("Backwards", 10, 5))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "Start date cannot be greater than end date")

	res, body = ts.SendRequest(t, http.MethodPost, path, token, helpers.ProjectBody("Yesterday", -2, 5))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "Date cannot be in the past")

	project := helpers.CreateProject(t, ts, token, ws.ID, "Arc Reactor")

	// частичное изменение: новая дата окончания раньше существующего начала
	res, body = ts.SendRequest(t, http.MethodPatch, "/api/v1/projects/"+project.ID, token, map[string]interface{}{
		"end_date": project.StartDate.Add(-time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "INVALID_DATE_RANGE", helpers.ErrorCode(t, body))
}

func TestProject_MembersAndCompletion(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	ownerToken, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("owner"))
	editorToken, editor := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("editor"))

	ws := helpers.CreateWorkspace(t, ts, ownerToken, "Wayne", 3, models.PlanBasic)
	editorMember := helpers.AddWorkspaceMember(t, ts, ownerToken, ws.ID, editor.ID, models.RoleEditor)
	project := helpers.CreateProject(t, ts, ownerToken, ws.ID, "Batcave")
	require.Len(t, project.Members, 1)

	// editor, но не участник проекта
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/projects/"+project.ID+"/complete", editorToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost,
		fmt.Sprintf("/api/v1/projects/%s/members/%s", project.ID, editorMember.ID), ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost,
		fmt.Sprintf("/api/v1/projects/%s/members/%s", project.ID, editorMember.ID), ownerToken, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "already exists in this project")

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/projects/"+project.ID+"/complete", editorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var completed dto.ProjectResponse
	helpers.DecodeJSON(t, body, &completed)
	assert.True(t, completed.IsComplete)
	assert.Len(t, completed.Members, 2)
}

func TestTask_CreateWithinProjectRange(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("owner"))
	ws := helpers.CreateWorkspace(t, ts, token, "Tyrell", 3, models.PlanBasic)
	project := helpers.CreateProject(t, ts, token, ws.ID, "Nexus")
	path := fmt.Sprintf("/api/v1/projects/%s/tasks", project.ID)

	now := time.Now()
	outOfRange := map[string]interface{}{
		"name":       "Too late",
		"start_date": now.AddDate(0, 0, 2).Format(time.RFC3339),
		"end_date":   now.AddDate(0, 0, 60).Format(time.RFC3339),
	}
	res, body := ts.SendRequest(t, http.MethodPost, path, token, outOfRange)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "OUT_OF_PARENT_RANGE", helpers.ErrorCode(t, body))

	res, body = ts.SendRequest(t, http.MethodPost, path, token, map[string]interface{}{
		"name":       "Replicant design",
		"start_date": now.AddDate(0, 0, 2).Format(time.RFC3339),
		"end_date":   now.AddDate(0, 0, 10).Format(time.RFC3339),
		"member_ids": []string{project.Members[0].ID},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var task dto.TaskResponse
	helpers.DecodeJSON(t, body, &task)
	assert.False(t, task.IsTeamTask)
	assert.Len(t, task.Members, 1)
	assert.Equal(t, models.DefaultLabelColor, task.LabelColor)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/tasks/"+task.ID+"/complete", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, path+"?is_complete=true", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var tasks []dto.TaskResponse
	helpers.DecodeJSON(t, body, &tasks)
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].IsComplete)
}

func TestTeam_TaskForTeam(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("owner"))
	ws := helpers.CreateWorkspace(t, ts, token, "Cyberdyne", 3, models.PlanBasic)
	project := helpers.CreateProject(t, ts, token, ws.ID, "Skynet")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/projects/"+project.ID+"/teams", token,
		map[string]interface{}{"name": "T-800", "description": "Field team"})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var team dto.TeamResponse
	helpers.DecodeJSON(t, body, &team)
	require.Len(t, team.Members, 1)

	now := time.Now()
	res, body = ts.SendRequest(t, http.MethodPost,
		fmt.Sprintf("/api/v1/projects/%s/teams/%s/tasks", project.ID, team.ID), token, map[string]interface{}{
			"name":       "Time travel",
			"start_date": now.AddDate(0, 0, 1).Format(time.RFC3339),
			"end_date":   now.AddDate(0, 0, 3).Format(time.RFC3339),
			"member_ids": []string{team.Members[0].ID},
		})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var task dto.TaskResponse
	helpers.DecodeJSON(t, body, &task)
	assert.True(t, task.IsTeamTask)
	require.NotNil(t, task.TeamID)
	assert.Equal(t, team.ID, *task.TeamID)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/teams/"+team.ID+"/tasks", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var tasks []dto.TaskResponse
	helpers.DecodeJSON(t, body, &tasks)
	assert.Len(t, tasks, 1)

	res, body = ts.SendRequest(t, http.MethodDelete, "/api/v1/tasks/"+task.ID, token, nil)
	require.Equal(t, http.StatusNoContent, res.StatusCode, body)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/tasks/"+task.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestProject_PremiumPlanLimit(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("owner"))
	ws := helpers.CreateWorkspace(t, ts, token, "Pied Piper", 2, models.PlanPremium)

	for i := 1; i <= 7; i++ {
		helpers.CreateProject(t, ts, token, ws.ID, fmt.Sprintf("Compression %d", i))
	}

	res, body := ts.SendRequest(t, http.MethodPost,
		fmt.Sprintf("/api/v1/workspaces/%s/projects", ws.ID), token, helpers.ProjectBody("Compression 8", 1, 30))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "PLAN_LIMIT_EXCEEDED", helpers.ErrorCode(t, body))
	assert.Contains(t, body, "maximum of 7 projects")
}
