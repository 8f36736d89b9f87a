package engine

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/codelancer/api/internal/models"
)

// DefaultFunctionName is used when no naming keyword is present
const DefaultFunctionName = "process_data"

// Layouts for the timestamp embedded by the class template; the fraction is
// dropped when the microsecond part is zero
const (
	createdAtLayout        = "2006-01-02T15:04:05.000000"
	createdAtSecondsLayout = "2006-01-02T15:04:05"
)

type nameRule struct {
	keywords []string
	name     string
}

// nameRules are checked in order against the lower-cased description; first match wins
var nameRules = []nameRule{
	{keywords: []string{"calculate"}, name: "calculate"},
	{keywords: []string{"validate"}, name: "validate"},
	{keywords: []string{"create", "make"}, name: "create"},
	{keywords: []string{"get"}, name: "get"},
}

type templateRule struct {
	keywords []string
	kind     models.TemplateKind
}

// templateRules are checked in order against the lower-cased description; first match wins
var templateRules = []templateRule{
	{keywords: []string{"api", "endpoint", "rest"}, kind: models.TemplateAPI},
	{keywords: []string{"class", "object"}, kind: models.TemplateClass},
	{keywords: []string{"test", "unit test"}, kind: models.TemplateTest},
}

// Generator renders code templates from free-text descriptions
type Generator struct {
	now func() time.Time
}

// NewGenerator creates a generator using the wall clock
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// NewGeneratorWithClock creates a generator with a fixed time source
func NewGeneratorWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Generate classifies description, derives a name and renders the matching template
func (g *Generator) Generate(description string) (models.GenerationResult, error) {
	now := g.now()
	name := SuggestName(description)
	kind := SelectTemplate(description)

	tmpl, ok := codeTemplates[kind]
	if !ok {
		return models.GenerationResult{}, fmt.Errorf("no template registered for %q", kind)
	}

	var sb strings.Builder
	err := tmpl.Execute(&sb, templateData{
		Name:        name,
		ClassName:   capitalize(name),
		Description: description,
		CreatedAt:   formatCreatedAt(now),
	})
	if err != nil {
		return models.GenerationResult{}, fmt.Errorf("failed to render %s template: %w", kind, err)
	}

	return models.GenerationResult{
		Description:   description,
		GeneratedCode: sb.String(),
		FunctionName:  name,
		Timestamp:     now,
		Template:      kind,
	}, nil
}

// SuggestName derives an identifier from the keywords in description
func SuggestName(description string) string {
	desc := strings.ToLower(description)
	for _, rule := range nameRules {
		if containsAny(desc, rule.keywords) {
			return rule.name
		}
	}
	return DefaultFunctionName
}

// SelectTemplate picks the template kind for description
func SelectTemplate(description string) models.TemplateKind {
	desc := strings.ToLower(description)
	for _, rule := range templateRules {
		if containsAny(desc, rule.keywords) {
			return rule.kind
		}
	}
	return models.TemplateFunction
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// capitalize upper-cases the first rune and lower-cases the rest
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func formatCreatedAt(t time.Time) string {
	if t.Nanosecond()/int(time.Microsecond) == 0 {
		return t.Format(createdAtSecondsLayout)
	}
	return t.Format(createdAtLayout)
}
