package analysis

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// SyntaxChecker validates source text for one language. Check returns a
// *SyntaxError when the text does not parse and any other error when the
// check itself could not run.
type SyntaxChecker interface {
	Check(code string) error
	Language() string
}

// SyntaxError describes the first parse failure found in the source
type SyntaxError struct {
	Line     int
	Column   int
	Expected string
	Message  string
}

func (e *SyntaxError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (line %d, column %d)", e.Message, e.Line, e.Column)
	}
	if e.Expected != "" {
		return fmt.Sprintf("expected '%s' (line %d, column %d)", e.Expected, e.Line, e.Column)
	}
	return fmt.Sprintf("invalid syntax (line %d, column %d)", e.Line, e.Column)
}

// PythonChecker validates Python source with the tree-sitter Python grammar
type PythonChecker struct {
	language *sitter.Language
}

func NewPythonChecker() (*PythonChecker, error) {
	lang := sitter.NewLanguage(tree_sitter_python.Language())

	// fail early if the grammar is incompatible with the runtime
	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("failed to set language for parser: %w", err)
	}

	return &PythonChecker{language: lang}, nil
}

func (pc *PythonChecker) Language() string {
	return "python"
}

// Check parses code and reports the first error or missing node.
// A parser is created per call since parsers are not safe for concurrent use.
func (pc *PythonChecker) Check(code string) error {
	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(pc.language); err != nil {
		return fmt.Errorf("failed to set language for parser: %w", err)
	}

	tree := parser.Parse([]byte(code), nil)
	if tree == nil {
		return fmt.Errorf("failed to parse Python source: tree-sitter returned nil")
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return findLegacyStatement(root)
	}

	bad := findErrorNode(root)
	if bad == nil {
		return &SyntaxError{Line: 1, Column: 1}
	}

	pos := bad.StartPosition()
	synErr := &SyntaxError{
		Line:   int(pos.Row) + 1,
		Column: int(pos.Column) + 1,
	}
	if bad.IsMissing() {
		synErr.Expected = bad.Kind()
	}
	return synErr
}

// findErrorNode returns the first ERROR or MISSING node in document order
func findErrorNode(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	if !node.HasError() {
		return nil
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if found := findErrorNode(node.Child(i)); found != nil {
			return found
		}
	}
	return nil
}

// legacyStatements are Python 2 statements the grammar accepts but Python 3 rejects
var legacyStatements = map[string]string{
	"print_statement": "Missing parentheses in call to 'print'",
	"exec_statement":  "Missing parentheses in call to 'exec'",
}

// findLegacyStatement reports the first Python 2 only statement in document order
func findLegacyStatement(node *sitter.Node) error {
	if msg, ok := legacyStatements[node.Kind()]; ok {
		pos := node.StartPosition()
		return &SyntaxError{
			Line:    int(pos.Row) + 1,
			Column:  int(pos.Column) + 1,
			Message: msg,
		}
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if err := findLegacyStatement(node.NamedChild(i)); err != nil {
			return err
		}
	}
	return nil
}
