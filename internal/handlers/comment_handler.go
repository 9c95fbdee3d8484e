package handlers

import (
	"net/http"

	"taskify_backend/internal/services"
	"taskify_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	*BaseHandler
	commentService services.CommentService
}

func NewCommentHandler(base *BaseHandler, commentService services.CommentService) *CommentHandler {
	return &CommentHandler{
		BaseHandler:    base,
		commentService: commentService,
	}
}

func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	scoped := rg.Group("/projects/:id/comments")
	scoped.Use(h.RequireAuth)
	{
		scoped.POST("", h.Create)
		scoped.GET("", h.ListByProject)
	}

	comments := rg.Group("/comments")
	comments.Use(h.RequireAuth)
	{
		comments.GET("/:id", h.Get)
		comments.PATCH("/:id", h.Update)
		comments.DELETE("/:id", h.Delete)
		comments.POST("/:id/replies", h.CreateReply)
		comments.GET("/:id/replies", h.ListReplies)
	}

	replies := rg.Group("/replies")
	replies.Use(h.RequireAuth)
	{
		replies.GET("/:id", h.GetReply)
		replies.PATCH("/:id", h.UpdateReply)
		replies.DELETE("/:id", h.DeleteReply)
	}
}

// Create godoc
// @Summary Комментарий к проекту
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID проекта"
// @Param request body dto.CommentRequest true "Текст"
// @Success 201 {object} dto.CommentResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /projects/{id}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CommentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	comment, err := h.commentService.Create(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ListByProject godoc
// @Summary Комментарии проекта
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID проекта"
// @Success 200 {array} dto.CommentResponse
// @Router /projects/{id}/comments [get]
func (h *CommentHandler) ListByProject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	comments, err := h.commentService.ListByProject(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// Get godoc
// @Summary Комментарий
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID комментария"
// @Success 200 {object} dto.CommentResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /comments/{id} [get]
func (h *CommentHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	comment, err := h.commentService.Get(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// Update godoc
// @Summary Изменение комментария
// @Description Только автор
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID комментария"
// @Param request body dto.CommentRequest true "Текст"
// @Success 200 {object} dto.CommentResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /comments/{id} [patch]
func (h *CommentHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CommentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	comment, err := h.commentService.Update(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// Delete godoc
// @Summary Удаление комментария
// @Tags comments
// @Security BearerAuth
// @Param id path string true "ID комментария"
// @Success 204
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.commentService.Delete(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateReply godoc
// @Summary Ответ на комментарий
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID комментария"
// @Param request body dto.CommentRequest true "Текст"
// @Success 201 {object} dto.CommentResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /comments/{id}/replies [post]
func (h *CommentHandler) CreateReply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CommentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	reply, err := h.commentService.CreateReply(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reply)
}

// ListReplies godoc
// @Summary Ответы на комментарий
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID комментария"
// @Success 200 {array} dto.CommentResponse
// @Router /comments/{id}/replies [get]
func (h *CommentHandler) ListReplies(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	replies, err := h.commentService.ListReplies(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, replies)
}

// GetReply godoc
// @Summary Ответ
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID ответа"
// @Success 200 {object} dto.CommentResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /replies/{id} [get]
func (h *CommentHandler) GetReply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	reply, err := h.commentService.GetReply(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reply)
}

// UpdateReply godoc
// @Summary Изменение ответа
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID ответа"
// @Param request body dto.CommentRequest true "Текст"
// @Success 200 {object} dto.CommentResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /replies/{id} [patch]
func (h *CommentHandler) UpdateReply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CommentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	reply, err := h.commentService.UpdateReply(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reply)
}

// DeleteReply godoc
// @Summary Удаление ответа
// @Tags comments
// @Security BearerAuth
// @Param id path string true "ID ответа"
// @Success 204
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /replies/{id} [delete]
func (h *CommentHandler) DeleteReply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.commentService.DeleteReply(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
