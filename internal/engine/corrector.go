package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/codelancer/api/internal/models"
)

// Fix is a single misspelled token and its replacement
type Fix struct {
	Wrong string
	Right string
}

// FixDictionary is the ordered table of typo substitutions. Matching is
// substring based, so a token inside a longer identifier is replaced too.
var FixDictionary = []Fix{
	{Wrong: "retrun", Right: "return"},
	{Wrong: "prinnt", Right: "print"},
	{Wrong: "flase", Right: "False"},
	{Wrong: "ture", Right: "True"},
	{Wrong: "improt", Right: "import"},
	{Wrong: "frmo", Right: "from"},
	{Wrong: "whiel", Right: "while"},
}

// colonPrefixes are statement headers that must end with a colon
var colonPrefixes = []string{"def ", "class ", "if ", "for ", "while ", "elif "}

var printArgPattern = regexp.MustCompile(`print\s+(.+)`)

// CorrectOptions selects which correction passes run
type CorrectOptions struct {
	// FixStyle enables the dictionary pass
	FixStyle bool
	// FixSyntax enables the colon and print passes
	FixSyntax bool
}

// DefaultCorrectOptions runs every pass
func DefaultCorrectOptions() CorrectOptions {
	return CorrectOptions{FixStyle: true, FixSyntax: true}
}

type correctionPass struct {
	name    string
	enabled func(CorrectOptions) bool
	apply   func(c *Corrector, text string) (string, []string)
}

// passes run in this order; the order changes results and must not be shuffled
var passes = []correctionPass{
	{
		name:    "dictionary",
		enabled: func(o CorrectOptions) bool { return o.FixStyle },
		apply:   (*Corrector).fixTypos,
	},
	{
		name:    "colon",
		enabled: func(o CorrectOptions) bool { return o.FixSyntax },
		apply:   (*Corrector).fixColons,
	},
	{
		name:    "print",
		enabled: func(o CorrectOptions) bool { return o.FixSyntax },
		apply:   (*Corrector).fixPrints,
	},
}

// Corrector applies heuristic fixes for common typos and missing punctuation.
// It holds no mutable state and is safe for concurrent use.
type Corrector struct {
	fixes []Fix
}

// NewCorrector creates a corrector backed by FixDictionary
func NewCorrector() *Corrector {
	return &Corrector{fixes: FixDictionary}
}

// Fixes returns the substitution table in the order it is applied
func (c *Corrector) Fixes() []Fix {
	out := make([]Fix, len(c.fixes))
	copy(out, c.fixes)
	return out
}

// Correct runs every correction pass over code
func (c *Corrector) Correct(code string) models.CorrectionResult {
	return c.CorrectWithOptions(code, DefaultCorrectOptions())
}

// CorrectWithOptions runs the passes enabled by opts over code
func (c *Corrector) CorrectWithOptions(code string, opts CorrectOptions) models.CorrectionResult {
	corrections := []string{}
	fixed := code

	for _, p := range passes {
		if !p.enabled(opts) {
			continue
		}
		var log []string
		fixed, log = p.apply(c, fixed)
		corrections = append(corrections, log...)
	}

	return models.CorrectionResult{
		Original:    code,
		Corrected:   fixed,
		Corrections: corrections,
		TotalFixes:  len(corrections),
	}
}

func (c *Corrector) fixTypos(text string) (string, []string) {
	var log []string
	for _, f := range c.fixes {
		count := strings.Count(text, f.Wrong)
		if count == 0 {
			continue
		}
		text = strings.ReplaceAll(text, f.Wrong, f.Right)
		log = append(log, fmt.Sprintf("Fixed '%s' -> '%s' (%d times)", f.Wrong, f.Right, count))
	}
	return text, log
}

func (c *Corrector) fixColons(text string) (string, []string) {
	var log []string
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if !hasAnyPrefix(stripped, colonPrefixes) || strings.HasSuffix(stripped, ":") {
			continue
		}
		lines[i] = line + ":"
		log = append(log, fmt.Sprintf("Added missing colon on line %d", i+1))
	}
	return strings.Join(lines, "\n"), log
}

func (c *Corrector) fixPrints(text string) (string, []string) {
	var log []string
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !strings.Contains(line, "print ") || strings.ContainsAny(line, "()") {
			continue
		}
		match := printArgPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		content := match[1]
		// Only the single-space spelling is rewritten; the fix is still
		// reported when the match used wider whitespace.
		lines[i] = strings.ReplaceAll(line, "print "+content, "print("+content+")")
		log = append(log, fmt.Sprintf("Added parentheses to print on line %d", i+1))
	}
	return strings.Join(lines, "\n"), log
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
