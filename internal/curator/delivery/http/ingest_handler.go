package http

import (
	"net/http"

	"topline/internal/curator/dto"
	"topline/internal/curator/service"
	"topline/pkg/logger"

	"github.com/labstack/echo/v4"
)

// IngestHandler handles HTTP requests that trigger ingestion runs.
type IngestHandler struct {
	ingestService service.IngestionService
	logger        *logger.Logger
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(ingestService service.IngestionService, logger *logger.Logger) *IngestHandler {
	return &IngestHandler{ingestService: ingestService, logger: logger}
}

// RegisterRoutes registers the ingest routes on the Echo instance.
func (h *IngestHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/ingest", h.Ingest)
}

// Ingest godoc
// @Summary Run one ingestion pass
// @Description Fetches all configured sources, classifies and inserts new articles
// @Tags ingest
// @Produce  json
// @Success 200 {object} dto.IngestionResult
// @Failure 500 {object} dto.ErrorResponse
// @Router /ingest [post]
func (h *IngestHandler) Ingest(c echo.Context) error {
	result, err := h.ingestService.Ingest(c.Request().Context())
	if err != nil {
		h.logger.Error("Ingestion run failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}
