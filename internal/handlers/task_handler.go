package handlers

import (
	"net/http"

	"taskify_backend/internal/services"
	"taskify_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	*BaseHandler
	taskService services.TaskService
}

func NewTaskHandler(base *BaseHandler, taskService services.TaskService) *TaskHandler {
	return &TaskHandler{
		BaseHandler: base,
		taskService: taskService,
	}
}

func (h *TaskHandler) RegisterRoutes(rg *gin.RouterGroup) {
	byProject := rg.Group("/projects/:id")
	byProject.Use(h.RequireAuth)
	{
		byProject.POST("/tasks", h.CreateForProject)
		byProject.GET("/tasks", h.ListByProject)
		byProject.POST("/teams/:team_id/tasks", h.CreateForTeam)
	}

	byTeam := rg.Group("/teams/:id")
	byTeam.Use(h.RequireAuth)
	{
		byTeam.GET("/tasks", h.ListByTeam)
	}

	tasks := rg.Group("/tasks")
	tasks.Use(h.RequireAuth)
	{
		tasks.GET("/:id", h.Get)
		tasks.PATCH("/:id", h.Update)
		tasks.DELETE("/:id", h.Delete)
		tasks.POST("/:id/complete", h.Complete)
		tasks.POST("/:id/members/:member_id", h.AddMember)
		tasks.DELETE("/:id/members/:member_id", h.RemoveMember)
	}
}

// CreateForProject godoc
// @Summary Создание общей задачи проекта
// @Description Даты задачи должны укладываться в даты проекта
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID проекта"
// @Param request body dto.CreateTaskRequest true "Данные задачи"
// @Success 201 {object} dto.TaskResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /projects/{id}/tasks [post]
func (h *TaskHandler) CreateForProject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	task, err := h.taskService.CreateForProject(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// CreateForTeam godoc
// @Summary Создание задачи команды
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID проекта"
// @Param team_id path string true "ID команды"
// @Param request body dto.CreateTaskRequest true "Данные задачи"
// @Success 201 {object} dto.TaskResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /projects/{id}/teams/{team_id}/tasks [post]
func (h *TaskHandler) CreateForTeam(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	task, err := h.taskService.CreateForTeam(h.GetDB(c), userID, c.Param("id"), c.Param("team_id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// ListByProject godoc
// @Summary Задачи проекта
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID проекта"
// @Param category_id query string false "Фильтр по категории"
// @Param is_complete query bool false "Фильтр по статусу"
// @Success 200 {array} dto.TaskResponse
// @Router /projects/{id}/tasks [get]
func (h *TaskHandler) ListByProject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.TaskListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	tasks, err := h.taskService.ListByProject(h.GetDB(c), userID, c.Param("id"), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// ListByTeam godoc
// @Summary Задачи команды
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID команды"
// @Param category_id query string false "Фильтр по категории"
// @Param is_complete query bool false "Фильтр по статусу"
// @Success 200 {array} dto.TaskResponse
// @Router /teams/{id}/tasks [get]
func (h *TaskHandler) ListByTeam(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.TaskListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	tasks, err := h.taskService.ListByTeam(h.GetDB(c), userID, c.Param("id"), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// Get godoc
// @Summary Задача
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID задачи"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	task, err := h.taskService.Get(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Update godoc
// @Summary Изменение задачи
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID задачи"
// @Param request body dto.UpdateTaskRequest true "Изменяемые поля"
// @Success 200 {object} dto.TaskResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /tasks/{id} [patch]
func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	task, err := h.taskService.Update(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Delete godoc
// @Summary Удаление задачи
// @Tags tasks
// @Security BearerAuth
// @Param id path string true "ID задачи"
// @Success 204
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.taskService.Delete(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Complete godoc
// @Summary Завершение задачи
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID задачи"
// @Success 200 {object} dto.TaskResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /tasks/{id}/complete [post]
func (h *TaskHandler) Complete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	task, err := h.taskService.Complete(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// AddMember godoc
// @Summary Назначение исполнителя
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID задачи"
// @Param member_id path string true "ID участника"
// @Success 200 {object} dto.TaskResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /tasks/{id}/members/{member_id} [post]
func (h *TaskHandler) AddMember(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	task, err := h.taskService.AddMember(h.GetDB(c), userID, c.Param("id"), c.Param("member_id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// RemoveMember godoc
// @Summary Снятие исполнителя
// @Tags tasks
// @Security BearerAuth
// @Param id path string true "ID задачи"
// @Param member_id path string true "ID участника"
// @Success 204
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /tasks/{id}/members/{member_id} [delete]
func (h *TaskHandler) RemoveMember(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.taskService.RemoveMember(h.GetDB(c), userID, c.Param("id"), c.Param("member_id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
