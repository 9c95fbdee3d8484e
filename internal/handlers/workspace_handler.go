package handlers

import (
	"net/http"

	"taskify_backend/internal/services"
	"taskify_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type WorkspaceHandler struct {
	*BaseHandler
	workspaceService services.WorkspaceService
}

func NewWorkspaceHandler(base *BaseHandler, workspaceService services.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{
		BaseHandler:      base,
		workspaceService: workspaceService,
	}
}

func (h *WorkspaceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	workspaces := rg.Group("/workspaces")
	workspaces.Use(h.RequireAuth)
	{
		workspaces.POST("", h.Create)
		workspaces.GET("/me", h.GetMyMembership)
		workspaces.GET("/:id", h.Get)
		workspaces.PATCH("/:id", h.Update)
		workspaces.DELETE("/:id", h.Delete)

		workspaces.GET("/:id/members", h.ListMembers)
		workspaces.POST("/:id/members/:user_id", h.AddMember)
		workspaces.DELETE("/:id/members/:user_id", h.RemoveMember)
		workspaces.PUT("/:id/members/:user_id/role", h.UpdateMemberRole)
	}
}

// Create godoc
// @Summary Создание рабочего пространства
// @Description Создатель становится участником с ролью owner
// @Tags workspaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateWorkspaceRequest true "Данные пространства"
// @Success 201 {object} dto.WorkspaceResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /workspaces [post]
func (h *WorkspaceHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateWorkspaceRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	ws, err := h.workspaceService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ws)
}

// GetMyMembership godoc
// @Summary Мое членство
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MemberResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /workspaces/me [get]
func (h *WorkspaceHandler) GetMyMembership(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	member, err := h.workspaceService.GetMyMembership(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// Get godoc
// @Summary Рабочее пространство
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пространства"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /workspaces/{id} [get]
func (h *WorkspaceHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	ws, err := h.workspaceService.Get(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ws)
}

// Update godoc
// @Summary Изменение рабочего пространства
// @Tags workspaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пространства"
// @Param request body dto.UpdateWorkspaceRequest true "Изменяемые поля"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /workspaces/{id} [patch]
func (h *WorkspaceHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateWorkspaceRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	ws, err := h.workspaceService.Update(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ws)
}

// Delete godoc
// @Summary Удаление рабочего пространства
// @Tags workspaces
// @Security BearerAuth
// @Param id path string true "ID пространства"
// @Success 204
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /workspaces/{id} [delete]
func (h *WorkspaceHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.workspaceService.Delete(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListMembers godoc
// @Summary Участники пространства
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пространства"
// @Success 200 {array} dto.MemberResponse
// @Router /workspaces/{id}/members [get]
func (h *WorkspaceHandler) ListMembers(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	members, err := h.workspaceService.ListMembers(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

// AddMember godoc
// @Summary Добавление пользователя в пространство
// @Tags workspaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пространства"
// @Param user_id path string true "ID пользователя"
// @Param request body dto.AddMemberRequest false "Роль, по умолчанию viewer"
// @Success 201 {object} dto.MemberResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /workspaces/{id}/members/{user_id} [post]
func (h *WorkspaceHandler) AddMember(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if c.Request.ContentLength > 0 && !h.BindAndValidate_JSON(c, &req) {
		return
	}

	member, err := h.workspaceService.AddMember(h.GetDB(c), userID, c.Param("id"), c.Param("user_id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, member)
}

// RemoveMember godoc
// @Summary Удаление участника из пространства
// @Tags workspaces
// @Security BearerAuth
// @Param id path string true "ID пространства"
// @Param user_id path string true "ID пользователя"
// @Success 204
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /workspaces/{id}/members/{user_id} [delete]
func (h *WorkspaceHandler) RemoveMember(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.workspaceService.RemoveMember(h.GetDB(c), userID, c.Param("id"), c.Param("user_id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateMemberRole godoc
// @Summary Смена роли участника
// @Tags workspaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пространства"
// @Param user_id path string true "ID пользователя"
// @Param request body dto.UpdateMemberRoleRequest true "Новая роль"
// @Success 200 {object} dto.MemberResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /workspaces/{id}/members/{user_id}/role [put]
func (h *WorkspaceHandler) UpdateMemberRole(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateMemberRoleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	member, err := h.workspaceService.UpdateMemberRole(h.GetDB(c), userID, c.Param("id"), c.Param("user_id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}
