package integration_test

import (
	"net/http"
	"testing"

	"taskify_backend/internal/services/dto"
	"taskify_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_CRUD(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts, helpers.UniqueEmail("owner"))

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/categories", token, map[string]interface{}{
		"name":             "Design",
		"is_team_category": true,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	var design dto.CategoryResponse
	helpers.DecodeJSON(t, body, &design)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/categories", token,
		map[string]interface{}{"name": "Backend"})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/categories", token,
		map[string]interface{}{"name": "Design"})
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Equal(t, "CONFLICT", helpers.ErrorCode(t, body))

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/categories?team_only=true", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var teamCategories []dto.CategoryResponse
	helpers.DecodeJSON(t, body, &teamCategories)
	require.Len(t, teamCategories, 1)
	assert.Equal(t, design.ID, teamCategories[0].ID)

	res, body = ts.SendRequest(t, http.MethodPatch, "/api/v1/categories/"+design.ID, token,
		map[string]interface{}{"label_color": "#FF8800"})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	helpers.DecodeJSON(t, body, &design)
	assert.Equal(t, "#FF8800", design.LabelColor)

	res, body = ts.SendRequest(t, http.MethodDelete, "/api/v1/categories/"+design.ID, token, nil)
	require.Equal(t, http.StatusNoContent, res.StatusCode, body)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/categories/"+design.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
