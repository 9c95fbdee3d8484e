package handlers

import (
	"net/http"

	"taskify_backend/internal/services"
	"taskify_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	*BaseHandler
	teamService services.TeamService
}

func NewTeamHandler(base *BaseHandler, teamService services.TeamService) *TeamHandler {
	return &TeamHandler{
		BaseHandler: base,
		teamService: teamService,
	}
}

func (h *TeamHandler) RegisterRoutes(rg *gin.RouterGroup) {
	scoped := rg.Group("/projects/:id/teams")
	scoped.Use(h.RequireAuth)
	{
		scoped.POST("", h.Create)
		scoped.GET("", h.ListByProject)
	}

	teams := rg.Group("/teams")
	teams.Use(h.RequireAuth)
	{
		teams.GET("/:id", h.Get)
		teams.PATCH("/:id", h.Update)
		teams.DELETE("/:id", h.Delete)
		teams.POST("/:id/members/:member_id", h.AddMember)
		teams.DELETE("/:id/members/:member_id", h.RemoveMember)
	}
}

// Create godoc
// @Summary Создание команды в проекте
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID проекта"
// @Param request body dto.CreateTeamRequest true "Данные команды"
// @Success 201 {object} dto.TeamResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /projects/{id}/teams [post]
func (h *TeamHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTeamRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	team, err := h.teamService.Create(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, team)
}

// ListByProject godoc
// @Summary Команды проекта
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID проекта"
// @Success 200 {array} dto.TeamResponse
// @Router /projects/{id}/teams [get]
func (h *TeamHandler) ListByProject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	teams, err := h.teamService.ListByProject(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, teams)
}

// Get godoc
// @Summary Команда
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID команды"
// @Success 200 {object} dto.TeamResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /teams/{id} [get]
func (h *TeamHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	team, err := h.teamService.Get(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, team)
}

// Update godoc
// @Summary Изменение команды
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID команды"
// @Param request body dto.UpdateTeamRequest true "Изменяемые поля"
// @Success 200 {object} dto.TeamResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /teams/{id} [patch]
func (h *TeamHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTeamRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	team, err := h.teamService.Update(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, team)
}

// Delete godoc
// @Summary Удаление команды
// @Tags teams
// @Security BearerAuth
// @Param id path string true "ID команды"
// @Success 204
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /teams/{id} [delete]
func (h *TeamHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.teamService.Delete(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddMember godoc
// @Summary Добавление участника проекта в команду
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID команды"
// @Param member_id path string true "ID участника"
// @Success 200 {object} dto.TeamResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /teams/{id}/members/{member_id} [post]
func (h *TeamHandler) AddMember(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	team, err := h.teamService.AddMember(h.GetDB(c), userID, c.Param("id"), c.Param("member_id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, team)
}

// RemoveMember godoc
// @Summary Удаление участника из команды
// @Tags teams
// @Security BearerAuth
// @Param id path string true "ID команды"
// @Param member_id path string true "ID участника"
// @Success 204
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /teams/{id}/members/{member_id} [delete]
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.teamService.RemoveMember(h.GetDB(c), userID, c.Param("id"), c.Param("member_id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
