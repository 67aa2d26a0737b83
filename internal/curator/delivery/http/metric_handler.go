package http

import (
	"errors"
	"net/http"
	"strconv"

	"topline/internal/curator/dto"
	"topline/internal/curator/service"
	"topline/pkg/logger"

	"github.com/labstack/echo/v4"
)

const defaultMetricLimit = 10

// MetricHandler handles HTTP requests for metrics.
type MetricHandler struct {
	metricService service.MetricService
	logger        *logger.Logger
}

// NewMetricHandler creates a new MetricHandler.
func NewMetricHandler(metricService service.MetricService, logger *logger.Logger) *MetricHandler {
	return &MetricHandler{metricService: metricService, logger: logger}
}

// RegisterRoutes registers the metric routes to the Echo group.
func (h *MetricHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListMetrics)
	g.POST("", h.CreateMetric)
	g.POST("/rotate", h.RotateMetrics)
}

// ListMetrics godoc
// @Summary List today's published metrics
// @Description Published metrics within the lookback window not yet viewed today, paginated; marks returned metrics viewed
// @Tags metrics
// @Produce  json
// @Param   vertical  query  string  false  "Vertical filter"
// @Param   page      query  int     false  "Page number"
// @Param   limit     query  int     false  "Page size"
// @Success 200 {object} dto.MetricListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /metrics [get]
func (h *MetricHandler) ListMetrics(c echo.Context) error {
	vertical := c.QueryParam("vertical")

	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid page"})
		}
		page = parsed
	}

	limit := defaultMetricLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid limit"})
		}
		limit = parsed
	}

	metrics, err := h.metricService.List(c.Request().Context(), vertical, page, limit)
	if err != nil {
		h.logger.Error("Failed to list metrics", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list metrics"})
	}
	return c.JSON(http.StatusOK, metrics)
}

// CreateMetric godoc
// @Summary Create a metric
// @Description Creates a metric with server-stamped timestamps
// @Tags metrics
// @Accept  json
// @Produce  json
// @Param   metric  body  dto.CreateMetricRequest  true  "Metric to create"
// @Success 201 {object} dto.MetricResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /metrics [post]
func (h *MetricHandler) CreateMetric(c echo.Context) error {
	var req dto.CreateMetricRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	if req.Title == "" || req.Value == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "title and value are required"})
	}

	metric, err := h.metricService.Create(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrMetricExists) {
			return c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
		}
		h.logger.Error("Failed to create metric", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create metric"})
	}
	return c.JSON(http.StatusCreated, metric)
}

// RotateMetrics godoc
// @Summary Rotate published metrics
// @Description Archives currently published metrics and publishes the next eligible one
// @Tags metrics
// @Produce  json
// @Success 200 {object} dto.RotateMetricsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /metrics/rotate [post]
func (h *MetricHandler) RotateMetrics(c echo.Context) error {
	result, err := h.metricService.PublishNext(c.Request().Context())
	if err != nil {
		h.logger.Error("Metric rotation failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Metric rotation failed"})
	}
	return c.JSON(http.StatusOK, result)
}
