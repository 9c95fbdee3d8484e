package integration_test

import (
	"fmt"
	"net/http"
	"testing"

	"taskify_backend/internal/models"
	"taskify_backend/internal/services/dto"
	"taskify_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComment_OnlyProjectMembersAndOwners(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	ownerToken, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("owner"))
	editorToken, editor := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("editor"))

	ws := helpers.CreateWorkspace(t, ts, ownerToken, "Umbrella", 3, models.PlanBasic)
	editorMember := helpers.AddWorkspaceMember(t, ts, ownerToken, ws.ID, editor.ID, models.RoleEditor)
	project := helpers.CreateProject(t, ts, ownerToken, ws.ID, "Hive")
	commentsPath := "/api/v1/projects/" + project.ID + "/comments"

	// в рабочем пространстве, но не в проекте
	res, body := ts.SendRequest(t, http.MethodPost, commentsPath, editorToken,
		map[string]interface{}{"content": "Can I join?"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, "FORBIDDEN", helpers.ErrorCode(t, body))

	res, body = ts.SendRequest(t, http.MethodPost,
		fmt.Sprintf("/api/v1/projects/%s/members/%s", project.ID, editorMember.ID), ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, commentsPath, editorToken,
		map[string]interface{}{"content": "Thanks for adding me"})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var comment dto.CommentResponse
	helpers.DecodeJSON(t, body, &comment)
	require.NotNil(t, comment.CommenterID)
	assert.Equal(t, editorMember.ID, *comment.CommenterID)

	res, body = ts.SendRequest(t, http.MethodPatch, "/api/v1/comments/"+comment.ID, ownerToken,
		map[string]interface{}{"content": "Rewritten by someone else"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, "FORBIDDEN", helpers.ErrorCode(t, body))

	res, body = ts.SendRequest(t, http.MethodPatch, "/api/v1/comments/"+comment.ID, editorToken,
		map[string]interface{}{"content": "Thanks for adding me!"})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/comments/"+comment.ID+"/replies", ownerToken,
		map[string]interface{}{"content": "Welcome aboard"})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var reply dto.CommentResponse
	helpers.DecodeJSON(t, body, &reply)
	assert.Equal(t, comment.ID, reply.CommentID)

	res, body = ts.SendRequest(t, http.MethodDelete, "/api/v1/replies/"+reply.ID, editorToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, commentsPath, editorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var comments []dto.CommentResponse
	helpers.DecodeJSON(t, body, &comments)
	require.Len(t, comments, 1)
	assert.Equal(t, "Thanks for adding me!", comments[0].Content)
	assert.Len(t, comments[0].Replies, 1)

	// удаление комментария удаляет и ответы
	res, body = ts.SendRequest(t, http.MethodDelete, "/api/v1/comments/"+comment.ID, editorToken, nil)
	require.Equal(t, http.StatusNoContent, res.StatusCode, body)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/replies/"+reply.ID, ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestComment_EmptyContentRejected(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("owner"))
	ws := helpers.CreateWorkspace(t, ts, token, "Aperture", 2, models.PlanBasic)
	project := helpers.CreateProject(t, ts, token, ws.ID, "Portal")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/projects/"+project.ID+"/comments", token,
		map[string]interface{}{"content": ""})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", helpers.ErrorCode(t, body))
}
