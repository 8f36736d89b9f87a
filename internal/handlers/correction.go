package handlers

import (
	"net/http"

	"github.com/codelancer/api/internal/engine"
	"github.com/codelancer/api/internal/eventbus"
	"github.com/codelancer/api/internal/metrics"
	"github.com/codelancer/api/internal/middleware"
	"github.com/codelancer/api/internal/models"
	"github.com/codelancer/api/internal/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Corrector applies heuristic fixes to source text
type Corrector interface {
	CorrectWithOptions(code string, opts engine.CorrectOptions) models.CorrectionResult
}

// CorrectionHandler handles the auto-correction endpoint
type CorrectionHandler struct {
	corrector Corrector
	metrics   *metrics.Metrics
	publisher eventbus.Publisher
	logger    *zap.Logger
}

// NewCorrectionHandler creates a new correction handler
func NewCorrectionHandler(corrector Corrector, m *metrics.Metrics, publisher eventbus.Publisher, logger *zap.Logger) *CorrectionHandler {
	return &CorrectionHandler{corrector: corrector, metrics: m, publisher: publisher, logger: logger}
}

// CorrectionRequest is the request body for correction
type CorrectionRequest struct {
	Code      *string `json:"code" binding:"required"`
	Language  *string `json:"language"`
	FixStyle  *bool   `json:"fix_style"`
	FixSyntax *bool   `json:"fix_syntax"`
}

// Correct fixes common typos and missing punctuation
//
//	@Summary	Auto-correct code
//	@Tags		engines
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CorrectionRequest	true	"Code to correct"
//	@Success	200		{object}	models.CorrectionResult
//	@Failure	422		{object}	middleware.APIError
//	@Failure	500		{object}	middleware.APIError
//	@Router		/correct [post]
func (h *CorrectionHandler) Correct(c *gin.Context) {
	var req CorrectionRequest
	if err := bindJSON(c, &req, "language", "fix_style", "fix_syntax"); err != nil {
		middleware.UnprocessableEntity(c, err)
		return
	}
	opts := engine.CorrectOptions{
		FixStyle:  boolOr(req.FixStyle, true),
		FixSyntax: boolOr(req.FixSyntax, true),
	}

	ctx, span := telemetry.StartSpan(c.Request.Context(), "engine.correct",
		attribute.String("code.language", stringOr(req.Language, defaultLanguage)),
		attribute.Int("code.length", len(*req.Code)),
	)
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	result := h.corrector.CorrectWithOptions(*req.Code, opts)
	span.SetAttributes(attribute.Int("correction.total_fixes", result.TotalFixes))

	h.metrics.ObserveCorrection(result)
	publishEvent(h.publisher, h.logger, eventbus.SubjectCorrected, result)

	c.JSON(http.StatusOK, result)
}
