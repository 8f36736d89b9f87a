package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/codelancer/api/internal/engine"
	"github.com/codelancer/api/internal/eventbus"
	"github.com/codelancer/api/internal/metrics"
	"github.com/codelancer/api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

type recordingPublisher struct {
	mu       sync.Mutex
	subjects []string
	err      error
}

func (p *recordingPublisher) Publish(subject string, data interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	return p.err
}

func (p *recordingPublisher) Close() {}

type failingGenerator struct{}

func (failingGenerator) Generate(string) (models.GenerationResult, error) {
	return models.GenerationResult{}, errors.New("template exploded")
}

type failingAnalyzer struct{}

func (failingAnalyzer) Analyze(string, string) (models.AnalysisResponse, error) {
	return models.AnalysisResponse{}, errors.New("parser unavailable")
}

type staticAnalyzer struct {
	language string
}

func (a *staticAnalyzer) Analyze(code, language string) (models.AnalysisResponse, error) {
	a.language = language
	return models.AnalysisResponse{Analysis: models.Analysis{Language: language, SyntaxValid: true}}, nil
}

type optionsCorrector struct {
	opts engine.CorrectOptions
}

func (c *optionsCorrector) CorrectWithOptions(code string, opts engine.CorrectOptions) models.CorrectionResult {
	c.opts = opts
	return models.CorrectionResult{Original: code, Corrected: code, Corrections: []string{}}
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["detail"]
}

func TestHealthHandler(t *testing.T) {
	fixed := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	h := &HealthHandler{now: func() time.Time { return fixed }}
	r := gin.New()
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/features", h.ListFeatures)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"CODELANCER AI","status":"running","version":"0.1.0","timestamp":"2024-05-06T07:08:09Z"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","timestamp":"2024-05-06T07:08:09Z"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/features", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"features":[
		{"name":"Code Analysis","endpoint":"POST /analyze"},
		{"name":"Code Generation","endpoint":"POST /generate"},
		{"name":"Auto-Correction","endpoint":"POST /correct"}
	]}`, rec.Body.String())
}

func TestGenerationHandler(t *testing.T) {
	pub := &recordingPublisher{}
	h := NewGenerationHandler(engine.NewGenerator(), metrics.New(), pub, zap.NewNop())
	r := gin.New()
	r.POST("/generate", h.Generate)

	rec := postJSON(r, "/generate", map[string]string{"description": "Build a REST endpoint for orders"})

	require.Equal(t, http.StatusOK, rec.Code)
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "process_data", result["function_name"])
	assert.Equal(t, "Build a REST endpoint for orders", result["description"])
	assert.Contains(t, result["generated_code"], "from fastapi import FastAPI")
	assert.NotEmpty(t, result["timestamp"])
	assert.NotContains(t, result, "Template")
	assert.Equal(t, []string{eventbus.SubjectGenerated}, pub.subjects)
}

func TestGenerationHandler_Failure(t *testing.T) {
	pub := &recordingPublisher{}
	h := NewGenerationHandler(failingGenerator{}, metrics.New(), pub, zap.NewNop())
	r := gin.New()
	r.POST("/generate", h.Generate)

	rec := postJSON(r, "/generate", map[string]string{"description": "anything"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "template exploded", decodeDetail(t, rec))
	assert.Empty(t, pub.subjects)
}

func TestGenerationHandler_MissingDescription(t *testing.T) {
	h := NewGenerationHandler(engine.NewGenerator(), metrics.New(), eventbus.NopPublisher{}, zap.NewNop())
	r := gin.New()
	r.POST("/generate", h.Generate)

	rec := postJSON(r, "/generate", map[string]string{"language": "python"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.NotEmpty(t, decodeDetail(t, rec))
}

func TestAnalysisHandler_DefaultsLanguage(t *testing.T) {
	analyzer := &staticAnalyzer{}
	h := NewAnalysisHandler(analyzer, metrics.New(), eventbus.NopPublisher{}, zap.NewNop())
	r := gin.New()
	r.POST("/analyze", h.Analyze)

	rec := postJSON(r, "/analyze", map[string]string{"code": "x = 1"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "python", analyzer.language)
}

func TestAnalysisHandler_Failure(t *testing.T) {
	h := NewAnalysisHandler(failingAnalyzer{}, metrics.New(), eventbus.NopPublisher{}, zap.NewNop())
	r := gin.New()
	r.POST("/analyze", h.Analyze)

	rec := postJSON(r, "/analyze", map[string]string{"code": "x = 1"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "parser unavailable", decodeDetail(t, rec))
}

func TestAnalysisHandler_MalformedJSON(t *testing.T) {
	h := NewAnalysisHandler(&staticAnalyzer{}, metrics.New(), eventbus.NopPublisher{}, zap.NewNop())
	r := gin.New()
	r.POST("/analyze", h.Analyze)

	rec := postJSON(r, "/analyze", `{"code": `)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCorrectionHandler(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("nats down")}
	h := NewCorrectionHandler(engine.NewCorrector(), metrics.New(), pub, zap.NewNop())
	r := gin.New()
	r.POST("/correct", h.Correct)

	rec := postJSON(r, "/correct", map[string]string{"code": "def add(a, b)\n    retrun a + b", "language": "python"})

	require.Equal(t, http.StatusOK, rec.Code)
	var result models.CorrectionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "def add(a, b):\n    return a + b", result.Corrected)
	assert.Equal(t, []string{"Fixed 'retrun' -> 'return' (1 times)", "Added missing colon on line 1"}, result.Corrections)
	assert.Equal(t, 2, result.TotalFixes)
	// a failing publisher does not fail the request
	assert.Equal(t, []string{eventbus.SubjectCorrected}, pub.subjects)
}

func TestCorrectionHandler_Flags(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected engine.CorrectOptions
	}{
		{"defaults", `{"code": "x"}`, engine.CorrectOptions{FixStyle: true, FixSyntax: true}},
		{"style off", `{"code": "x", "fix_style": false}`, engine.CorrectOptions{FixStyle: false, FixSyntax: true}},
		{"syntax off", `{"code": "x", "fix_syntax": false}`, engine.CorrectOptions{FixStyle: true, FixSyntax: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			corrector := &optionsCorrector{}
			h := NewCorrectionHandler(corrector, metrics.New(), eventbus.NopPublisher{}, zap.NewNop())
			r := gin.New()
			r.POST("/correct", h.Correct)

			rec := postJSON(r, "/correct", tt.body)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.expected, corrector.opts)
		})
	}
}

func TestCorrectionHandler_EmptyCodeIsAccepted(t *testing.T) {
	h := NewCorrectionHandler(engine.NewCorrector(), metrics.New(), eventbus.NopPublisher{}, zap.NewNop())
	r := gin.New()
	r.POST("/correct", h.Correct)

	rec := postJSON(r, "/correct", `{"code": ""}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"original":"","corrected":"","corrections":[],"total_fixes":0}`, rec.Body.String())
}

func TestHandlers_RejectExplicitNull(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		detail string
	}{
		{"analyze language", "/analyze", `{"code": "x", "language": null}`, "field 'language' must not be null"},
		{"generate language", "/generate", `{"description": "make it", "language": null}`, "field 'language' must not be null"},
		{"correct language", "/correct", `{"code": "x", "language": null}`, "field 'language' must not be null"},
		{"correct fix_style", "/correct", `{"code": "x", "fix_style": null}`, "field 'fix_style' must not be null"},
		{"correct fix_syntax", "/correct", `{"code": "x", "fix_syntax": null}`, "field 'fix_syntax' must not be null"},
		{"analyze code", "/analyze", `{"code": null}`, ""},
	}

	r := gin.New()
	r.POST("/analyze", NewAnalysisHandler(&staticAnalyzer{}, metrics.New(), eventbus.NopPublisher{}, zap.NewNop()).Analyze)
	r.POST("/generate", NewGenerationHandler(engine.NewGenerator(), metrics.New(), eventbus.NopPublisher{}, zap.NewNop()).Generate)
	r.POST("/correct", NewCorrectionHandler(&optionsCorrector{}, metrics.New(), eventbus.NopPublisher{}, zap.NewNop()).Correct)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(r, tt.path, tt.body)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			if tt.detail != "" {
				assert.Equal(t, tt.detail, decodeDetail(t, rec))
			}
		})
	}
}

func TestGenerationHandler_NullContextAccepted(t *testing.T) {
	h := NewGenerationHandler(engine.NewGenerator(), metrics.New(), eventbus.NopPublisher{}, zap.NewNop())
	r := gin.New()
	r.POST("/generate", h.Generate)

	rec := postJSON(r, "/generate", `{"description": "make it", "context": null}`)

	assert.Equal(t, http.StatusOK, rec.Code)
}
