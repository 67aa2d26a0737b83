package http

import (
	"net/http"
	"strconv"

	"topline/internal/curator/dto"
	"topline/internal/curator/service"
	"topline/pkg/logger"

	"github.com/labstack/echo/v4"
)

const (
	defaultArticleLimit = 20
	maxArticleLimit     = 100
)

// ArticleHandler handles HTTP requests for articles.
type ArticleHandler struct {
	articleService service.ArticleService
	logger         *logger.Logger
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articleService service.ArticleService, logger *logger.Logger) *ArticleHandler {
	return &ArticleHandler{articleService: articleService, logger: logger}
}

// RegisterRoutes registers the article routes to the Echo group.
func (h *ArticleHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListArticles)
	g.POST("/:id/engagement", h.RecordEngagement)
	g.POST("/reclassify", h.Reclassify)
}

// ListArticles godoc
// @Summary List published articles
// @Description Published articles ordered by priority then publish date, optionally filtered by vertical
// @Tags articles
// @Produce  json
// @Param   vertical  query  string  false  "Vertical filter"
// @Param   limit     query  int     false  "Max articles to return"
// @Success 200 {array} dto.ArticleResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /articles [get]
func (h *ArticleHandler) ListArticles(c echo.Context) error {
	vertical := c.QueryParam("vertical")

	limit := defaultArticleLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid limit"})
		}
		limit = parsed
	}
	if limit > maxArticleLimit {
		limit = maxArticleLimit
	}

	articles, err := h.articleService.List(c.Request().Context(), vertical, limit)
	if err != nil {
		h.logger.Error("Failed to list articles", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list articles"})
	}
	return c.JSON(http.StatusOK, articles)
}

// RecordEngagement godoc
// @Summary Record an engagement event
// @Description Increments the view, click or share counter of an article
// @Tags articles
// @Accept  json
// @Produce  json
// @Param   id          path  int                    true  "Article ID"
// @Param   engagement  body  dto.EngagementRequest  true  "Engagement event"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /articles/{id}/engagement [post]
func (h *ArticleHandler) RecordEngagement(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid article ID"})
	}

	var req dto.EngagementRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	if err := h.articleService.RecordEngagement(c.Request().Context(), uint(id), req.Type); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

// Reclassify godoc
// @Summary Re-run vertical classification
// @Description Re-runs the keyword classifier over stored articles and fixes drifted verticals
// @Tags articles
// @Produce  json
// @Success 200 {object} map[string]int
// @Failure 500 {object} dto.ErrorResponse
// @Router /articles/reclassify [post]
func (h *ArticleHandler) Reclassify(c echo.Context) error {
	updated, err := h.articleService.ReclassifyVerticals(c.Request().Context())
	if err != nil {
		h.logger.Error("Reclassification failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Reclassification failed"})
	}
	return c.JSON(http.StatusOK, map[string]int{"updated": updated})
}
