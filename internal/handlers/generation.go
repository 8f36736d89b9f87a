package handlers

import (
	"net/http"

	"github.com/codelancer/api/internal/eventbus"
	"github.com/codelancer/api/internal/metrics"
	"github.com/codelancer/api/internal/middleware"
	"github.com/codelancer/api/internal/models"
	"github.com/codelancer/api/internal/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// Generator renders code from descriptions
type Generator interface {
	Generate(description string) (models.GenerationResult, error)
}

// GenerationHandler handles code generation endpoints
type GenerationHandler struct {
	generator Generator
	metrics   *metrics.Metrics
	publisher eventbus.Publisher
	logger    *zap.Logger
}

// NewGenerationHandler creates a new generation handler
func NewGenerationHandler(generator Generator, m *metrics.Metrics, publisher eventbus.Publisher, logger *zap.Logger) *GenerationHandler {
	return &GenerationHandler{generator: generator, metrics: m, publisher: publisher, logger: logger}
}

// GenerationRequest is the request body for generation. Language and
// Context are accepted for compatibility; only Python templates exist.
type GenerationRequest struct {
	Description *string `json:"description" binding:"required"`
	Language    *string `json:"language"`
	Context     *string `json:"context"`
}

// Generate renders a code template from a natural-language description
//
//	@Summary	Generate code
//	@Tags		engines
//	@Accept		json
//	@Produce	json
//	@Param		request	body		GenerationRequest	true	"Description of the code"
//	@Success	200		{object}	models.GenerationResult
//	@Failure	422		{object}	middleware.APIError
//	@Failure	500		{object}	middleware.APIError
//	@Router		/generate [post]
func (h *GenerationHandler) Generate(c *gin.Context) {
	var req GenerationRequest
	if err := bindJSON(c, &req, "language"); err != nil {
		middleware.UnprocessableEntity(c, err)
		return
	}
	language := stringOr(req.Language, defaultLanguage)

	ctx, span := telemetry.StartSpan(c.Request.Context(), "engine.generate",
		attribute.String("code.language", language),
		attribute.Bool("generation.has_context", req.Context != nil),
	)
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	result, err := h.generator.Generate(*req.Description)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.logger.Error("failed to generate code", zap.Error(err))
		middleware.InternalError(c, err)
		return
	}
	span.SetAttributes(
		attribute.String("generation.template", string(result.Template)),
		attribute.String("generation.function_name", result.FunctionName),
	)

	h.metrics.ObserveGeneration(result)
	publishEvent(h.publisher, h.logger, eventbus.SubjectGenerated, result)

	h.logger.Info("code generated",
		zap.String("template", string(result.Template)),
		zap.String("function_name", result.FunctionName),
		zap.String("language", language),
	)

	c.JSON(http.StatusOK, result)
}
