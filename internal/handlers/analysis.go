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

const defaultLanguage = "python"

// Analyzer computes statistics for source text
type Analyzer interface {
	Analyze(code, language string) (models.AnalysisResponse, error)
}

// AnalysisHandler handles the code analysis endpoint
type AnalysisHandler struct {
	analyzer  Analyzer
	metrics   *metrics.Metrics
	publisher eventbus.Publisher
	logger    *zap.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analyzer Analyzer, m *metrics.Metrics, publisher eventbus.Publisher, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer, metrics: m, publisher: publisher, logger: logger}
}

// CodeRequest is the request body for analysis
type CodeRequest struct {
	Code     *string `json:"code" binding:"required"`
	Language *string `json:"language"`
}

// Analyze returns statistics and syntax validity for the submitted code
//
//	@Summary	Analyze code
//	@Tags		engines
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CodeRequest	true	"Code to analyze"
//	@Success	200		{object}	models.AnalysisResponse
//	@Failure	422		{object}	middleware.APIError
//	@Failure	500		{object}	middleware.APIError
//	@Router		/analyze [post]
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req CodeRequest
	if err := bindJSON(c, &req, "language"); err != nil {
		middleware.UnprocessableEntity(c, err)
		return
	}
	language := stringOr(req.Language, defaultLanguage)

	ctx, span := telemetry.StartSpan(c.Request.Context(), "engine.analyze",
		attribute.String("code.language", language),
		attribute.Int("code.length", len(*req.Code)),
	)
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	resp, err := h.analyzer.Analyze(*req.Code, language)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.logger.Error("failed to analyze code", zap.Error(err))
		middleware.InternalError(c, err)
		return
	}
	span.SetAttributes(attribute.Bool("code.syntax_valid", resp.Analysis.SyntaxValid))

	h.metrics.ObserveAnalysis(resp.Analysis)
	publishEvent(h.publisher, h.logger, eventbus.SubjectAnalyzed, resp.Analysis)

	c.JSON(http.StatusOK, resp)
}

func stringOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

func boolOr(b *bool, fallback bool) bool {
	if b == nil {
		return fallback
	}
	return *b
}
