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

func TestNotifications_InviteAndReadFlow(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("owner"))
	viewerToken, viewer := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("viewer"))

	ws := helpers.CreateWorkspace(t, ts, ownerToken, "Initech", 3, models.PlanBasic)
	helpers.AddWorkspaceMember(t, ts, ownerToken, ws.ID, viewer.ID, models.RoleViewer)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/notifications/users/"+viewer.ID, ownerToken,
		map[string]interface{}{"message": "Welcome to Initech"})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var direct dto.NotificationResponse
	helpers.DecodeJSON(t, body, &direct)
	assert.Equal(t, models.NotificationTypeDirect, direct.Type)
	require.NotNil(t, direct.SenderID)
	assert.Equal(t, owner.ID, *direct.SenderID)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/notifications/unread-count", viewerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var count dto.CountResponse
	helpers.DecodeJSON(t, body, &count)
	assert.Equal(t, int64(2), count.Count)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/notifications?type=workspace_invite", viewerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var invites dto.NotificationListResponse
	helpers.DecodeJSON(t, body, &invites)
	require.Len(t, invites.Notifications, 1)
	assert.Equal(t, int64(1), invites.Total)
	invite := invites.Notifications[0]
	assert.Equal(t, ws.ID, invite.Data["workspace_id"])

	// чужое уведомление
	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/notifications/"+invite.ID+"/read", ownerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, "FORBIDDEN", helpers.ErrorCode(t, body))

	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/notifications/"+invite.ID+"/read", viewerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/notifications?unread_only=true", viewerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var unread dto.NotificationListResponse
	helpers.DecodeJSON(t, body, &unread)
	require.Len(t, unread.Notifications, 1)
	assert.Equal(t, direct.ID, unread.Notifications[0].ID)

	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/notifications/read-all", viewerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	helpers.DecodeJSON(t, body, &count)
	assert.Equal(t, int64(1), count.Count)

	res, body = ts.SendRequest(t, http.MethodDelete, "/api/v1/notifications/"+direct.ID, ownerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodDelete, "/api/v1/notifications/"+direct.ID, viewerToken, nil)
	require.Equal(t, http.StatusNoContent, res.StatusCode, body)

	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/notifications/"+direct.ID+"/read", viewerToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestNotifications_SendToUnknownUser(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("sender"))

	res, body := ts.SendRequest(t, http.MethodPost,
		"/api/v1/notifications/users/00000000-0000-0000-0000-000000000000", token,
		map[string]interface{}{"message": "Anyone there?"})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "NOT_FOUND", helpers.ErrorCode(t, body))
}
