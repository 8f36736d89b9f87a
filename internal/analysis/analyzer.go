package analysis

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/codelancer/api/internal/engine"
	"github.com/codelancer/api/internal/models"
)

const (
	maxComplexity = 10
	// longCodeLines is the line count above which generic suggestions are given
	longCodeLines = 10
)

// Analyzer computes statistics for source text and, for languages with a
// registered checker, reports syntax validity
type Analyzer struct {
	checkers map[string]SyntaxChecker
}

// NewAnalyzer creates an analyzer with the given syntax checkers
func NewAnalyzer(checkers ...SyntaxChecker) *Analyzer {
	a := &Analyzer{checkers: make(map[string]SyntaxChecker)}
	for _, c := range checkers {
		a.RegisterChecker(c)
	}
	return a
}

// RegisterChecker adds or replaces the checker for its language.
// Must not be called once the analyzer is serving requests.
func (a *Analyzer) RegisterChecker(c SyntaxChecker) {
	a.checkers[c.Language()] = c
}

// Analyze returns statistics and suggestions for code
func (a *Analyzer) Analyze(code, language string) (models.AnalysisResponse, error) {
	lines := CountLines(code)
	words := len(strings.Fields(code))

	analysis := models.Analysis{
		Lines:               lines,
		Characters:          utf8.RuneCountInString(code),
		Words:               words,
		Language:            language,
		SyntaxValid:         true,
		EstimatedComplexity: min(maxComplexity, lines/3),
		Density:             round2(float64(words) / float64(max(1, lines))),
	}

	if checker, ok := a.checkers[language]; ok {
		if err := checker.Check(code); err != nil {
			var synErr *SyntaxError
			if !errors.As(err, &synErr) {
				return models.AnalysisResponse{}, fmt.Errorf("syntax check failed: %w", err)
			}
			msg := synErr.Error()
			analysis.SyntaxValid = false
			analysis.SyntaxError = &msg
		}
	}

	suggestions := []string{"Code looks good!"}
	if lines > longCodeLines {
		suggestions = []string{"Consider adding docstrings", "Add error handling"}
	}

	return models.AnalysisResponse{
		Analysis:    analysis,
		Suggestions: suggestions,
	}, nil
}

// Summary is the short report printed by the command line analyzer
type Summary struct {
	Lines         int
	Characters    int
	AvgLineLength int
	Issues        []string
}

// Summarize reports line statistics and any known typos present in code
func Summarize(code string, fixes []engine.Fix) Summary {
	lines := CountLines(code)
	chars := utf8.RuneCountInString(code)

	var issues []string
	for _, f := range fixes {
		if strings.Contains(code, f.Wrong) {
			issues = append(issues, fmt.Sprintf("Found '%s' (should be '%s')", f.Wrong, f.Right))
		}
	}

	return Summary{
		Lines:         lines,
		Characters:    chars,
		AvgLineLength: chars / max(1, lines),
		Issues:        issues,
	}
}

// CountLines counts newline separated lines; empty text is one line
func CountLines(code string) int {
	return strings.Count(code, "\n") + 1
}

// round2 rounds the exact binary value to two decimals, ties to even
func round2(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return r
}
