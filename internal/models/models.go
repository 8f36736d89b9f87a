package models

import (
	"time"
)

// TemplateKind identifies which code template the generator rendered
type TemplateKind string

const (
	TemplateFunction TemplateKind = "function"
	TemplateClass    TemplateKind = "class"
	TemplateAPI      TemplateKind = "api"
	TemplateTest     TemplateKind = "test"
)

// CorrectionResult is the outcome of a single auto-correction run
type CorrectionResult struct {
	Original    string   `json:"original"`
	Corrected   string   `json:"corrected"`
	Corrections []string `json:"corrections"`
	TotalFixes  int      `json:"total_fixes"`
}

// GenerationResult is the outcome of a single code generation run
type GenerationResult struct {
	Description   string    `json:"description"`
	GeneratedCode string    `json:"generated_code"`
	FunctionName  string    `json:"function_name"`
	Timestamp     time.Time `json:"timestamp"`

	// Template is not part of the wire format
	Template TemplateKind `json:"-"`
}

// Analysis holds the statistics computed for a piece of source text
type Analysis struct {
	Lines               int     `json:"lines"`
	Characters          int     `json:"characters"`
	Words               int     `json:"words"`
	Language            string  `json:"language"`
	SyntaxValid         bool    `json:"syntax_valid"`
	SyntaxError         *string `json:"syntax_error"`
	EstimatedComplexity int     `json:"estimated_complexity"`
	Density             float64 `json:"density"`
}

// AnalysisResponse is the body returned by the analyze endpoint
type AnalysisResponse struct {
	Analysis    Analysis `json:"analysis"`
	Suggestions []string `json:"suggestions"`
}

// Feature describes one capability exposed by the service
type Feature struct {
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
}
