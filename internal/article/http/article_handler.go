// Package http provides HTTP handlers for article operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/articles/internal/article/http/dto"
	"github.com/allisson/articles/internal/article/usecase"
	authHTTP "github.com/allisson/articles/internal/auth/http"
	"github.com/allisson/articles/internal/httputil"
	customValidation "github.com/allisson/articles/internal/validation"
)

// ArticleHandler handles HTTP requests for article operations. Capability checks run in the
// router middleware and again in the use case, which also enforces ownership.
type ArticleHandler struct {
	articleUseCase usecase.UseCase
	logger         *slog.Logger
}

// NewArticleHandler creates a new article handler with required dependencies.
func NewArticleHandler(articleUseCase usecase.UseCase, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{
		articleUseCase: articleUseCase,
		logger:         logger,
	}
}

// CreateHandler writes an article authored by the caller.
// POST /v1/articles - Requires create:articles.
// Returns 201 Created with the article.
func (h *ArticleHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateArticleRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	identity, _ := authHTTP.GetIdentity(c.Request.Context())

	article, err := h.articleUseCase.Create(c.Request.Context(), identity, req.ToCreateArticleInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapArticleToResponse(article))
}

// ListHandler lists articles newest first.
// GET /v1/articles?offset=0&limit=50 - Requires read:articles.
func (h *ArticleHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	identity, _ := authHTTP.GetIdentity(c.Request.Context())

	articles, err := h.articleUseCase.List(c.Request.Context(), identity, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapArticlesToListResponse(articles))
}

// GetHandler retrieves an article by ID.
// GET /v1/articles/:id - Requires read:articles.
func (h *ArticleHandler) GetHandler(c *gin.Context) {
	articleID, ok := h.parseArticleID(c)
	if !ok {
		return
	}

	identity, _ := authHTTP.GetIdentity(c.Request.Context())

	article, err := h.articleUseCase.Get(c.Request.Context(), identity, articleID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapArticleToResponse(article))
}

// UpdateHandler applies a partial update to an article owned by the caller.
// PUT /v1/articles/:id - Requires update:articles and ownership.
func (h *ArticleHandler) UpdateHandler(c *gin.Context) {
	articleID, ok := h.parseArticleID(c)
	if !ok {
		return
	}

	var req dto.UpdateArticleRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	identity, _ := authHTTP.GetIdentity(c.Request.Context())

	article, err := h.articleUseCase.Update(c.Request.Context(), identity, articleID, req.ToUpdateArticleInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapArticleToResponse(article))
}

// DeleteHandler removes an article owned by the caller.
// DELETE /v1/articles/:id - Requires delete:articles and ownership.
// Returns 204 No Content.
func (h *ArticleHandler) DeleteHandler(c *gin.Context) {
	articleID, ok := h.parseArticleID(c)
	if !ok {
		return
	}

	identity, _ := authHTTP.GetIdentity(c.Request.Context())

	if err := h.articleUseCase.Delete(c.Request.Context(), identity, articleID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

func (h *ArticleHandler) parseArticleID(c *gin.Context) (uuid.UUID, bool) {
	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid article ID format: must be a valid UUID"),
			h.logger)
		return uuid.Nil, false
	}
	return articleID, true
}
