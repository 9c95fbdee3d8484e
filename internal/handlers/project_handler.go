package handlers

import (
	"net/http"

	"taskify_backend/internal/services"
	"taskify_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	*BaseHandler
	projectService services.ProjectService
}

func NewProjectHandler(base *BaseHandler, projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		BaseHandler:    base,
		projectService: projectService,
	}
}

func (h *ProjectHandler) RegisterRoutes(rg *gin.RouterGroup) {
	scoped := rg.Group("/workspaces/:id/projects")
	scoped.Use(h.RequireAuth)
	{
		scoped.POST("", h.Create)
		scoped.GET("", h.ListByWorkspace)
	}

	projects := rg.Group("/projects")
	projects.Use(h.RequireAuth)
	{
		projects.GET("/:id", h.Get)
		projects.PATCH("/:id", h.Update)
		projects.DELETE("/:id", h.Delete)
		projects.POST("/:id/complete", h.Complete)
		projects.POST("/:id/members/:member_id", h.AddMember)
		projects.DELETE("/:id/members/:member_id", h.RemoveMember)
	}
}

// Create godoc
// @Summary Создание проекта
// @Description Проверяет роль, даты и лимит проектов тарифа пространства
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пространства"
// @Param request body dto.CreateProjectRequest true "Данные проекта"
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /workspaces/{id}/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	project, err := h.projectService.Create(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// ListByWorkspace godoc
// @Summary Проекты пространства
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пространства"
// @Success 200 {array} dto.ProjectResponse
// @Router /workspaces/{id}/projects [get]
func (h *ProjectHandler) ListByWorkspace(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	projects, err := h.projectService.ListByWorkspace(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

// Get godoc
// @Summary Проект
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID проекта"
// @Success 200 {object} dto.ProjectResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	project, err := h.projectService.Get(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// Update godoc
// @Summary Изменение проекта
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID проекта"
// @Param request body dto.UpdateProjectRequest true "Изменяемые поля"
// @Success 200 {object} dto.ProjectResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /projects/{id} [patch]
func (h *ProjectHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	project, err := h.projectService.Update(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// Delete godoc
// @Summary Удаление проекта
// @Tags projects
// @Security BearerAuth
// @Param id path string true "ID проекта"
// @Success 204
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.projectService.Delete(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Complete godoc
// @Summary Завершение проекта
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID проекта"
// @Success 200 {object} dto.ProjectResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /projects/{id}/complete [post]
func (h *ProjectHandler) Complete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	project, err := h.projectService.Complete(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// AddMember godoc
// @Summary Добавление участника в проект
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID проекта"
// @Param member_id path string true "ID участника пространства"
// @Success 200 {object} dto.ProjectResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /projects/{id}/members/{member_id} [post]
func (h *ProjectHandler) AddMember(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	project, err := h.projectService.AddMember(h.GetDB(c), userID, c.Param("id"), c.Param("member_id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// RemoveMember godoc
// @Summary Удаление участника из проекта
// @Tags projects
// @Security BearerAuth
// @Param id path string true "ID проекта"
// @Param member_id path string true "ID участника пространства"
// @Success 204
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /projects/{id}/members/{member_id} [delete]
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.projectService.RemoveMember(h.GetDB(c), userID, c.Param("id"), c.Param("member_id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
