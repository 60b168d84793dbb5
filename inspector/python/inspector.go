package python

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/viant/afs"
)

// ErrInvalidEncoding is returned when the source is not valid UTF-8
var ErrInvalidEncoding = errors.New("source is not valid UTF-8")

// SyntaxError reports the first erroneous node of a parsed file
type SyntaxError struct {
	Line   int
	Column int
	Text   string
}

func (e *SyntaxError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("invalid syntax at line %d, column %d", e.Line, e.Column)
	}
	return fmt.Sprintf("invalid syntax at line %d, column %d: %q", e.Line, e.Column, e.Text)
}

// Inspector extracts imported module names from Python source code
type Inspector struct {
	fs afs.Service
}

// NewInspector creates a new Python Inspector
func NewInspector() *Inspector {
	return &Inspector{fs: afs.New()}
}

// InspectSource parses Python source code and returns the sorted set of imported modules
func (i *Inspector) InspectSource(src []byte) ([]string, error) {
	if !utf8.Valid(src) {
		return nil, ErrInvalidEncoding
	}
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		node := firstError(root)
		if node == nil {
			node = root
		}
		return nil, newSyntaxError(node, src)
	}
	if err := checkPython3(root, src); err != nil {
		return nil, err
	}

	imports := make(map[string]bool)
	collectImports(root, src, imports)

	result := make([]string, 0, len(imports))
	for name := range imports {
		result = append(result, name)
	}
	sort.Strings(result)
	return result, nil
}

// InspectFile reads and parses a Python file and returns the sorted set of imported modules
func (i *Inspector) InspectFile(filename string) ([]string, error) {
	src, err := i.fs.DownloadWithURL(context.Background(), filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	imports, err := i.InspectSource(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", filename, err)
	}
	return imports, nil
}

// collectImports walks the whole tree, imports nested in functions or conditionals count too
func collectImports(node *sitter.Node, src []byte, imports map[string]bool) {
	switch node.Type() {
	case "import_statement":
		for j := 0; j < int(node.NamedChildCount()); j++ {
			child := node.NamedChild(j)
			switch child.Type() {
			case "dotted_name":
				addImport(imports, dottedName(child, src))
			case "aliased_import":
				if name := child.ChildByFieldName("name"); name != nil {
					addImport(imports, dottedName(name, src))
				}
			}
		}
		return
	case "import_from_statement":
		addImport(imports, fromModule(node, src))
		return
	case "future_import_statement":
		addImport(imports, "__future__")
		return
	}

	for j := 0; j < int(node.NamedChildCount()); j++ {
		collectImports(node.NamedChild(j), src, imports)
	}
}

// fromModule returns the module a from-import reads from, leading dots of a relative import are dropped
func fromModule(node *sitter.Node, src []byte) string {
	moduleNode := node.ChildByFieldName("module_name")
	if moduleNode == nil {
		return ""
	}
	switch moduleNode.Type() {
	case "dotted_name":
		return dottedName(moduleNode, src)
	case "relative_import":
		// "from . import x" carries no module name
		for j := 0; j < int(moduleNode.NamedChildCount()); j++ {
			child := moduleNode.NamedChild(j)
			if child.Type() == "dotted_name" {
				return dottedName(child, src)
			}
		}
	}
	return ""
}

// dottedName joins identifiers of a dotted_name node, ignoring whitespace around dots
func dottedName(node *sitter.Node, src []byte) string {
	if node.Type() != "dotted_name" {
		return strings.TrimSpace(node.Content(src))
	}
	parts := make([]string, 0, node.NamedChildCount())
	for j := 0; j < int(node.NamedChildCount()); j++ {
		parts = append(parts, node.NamedChild(j).Content(src))
	}
	return strings.Join(parts, ".")
}

func addImport(imports map[string]bool, name string) {
	if name == "" {
		return
	}
	imports[name] = true
}

func newSyntaxError(node *sitter.Node, src []byte) *SyntaxError {
	point := node.StartPoint()
	text := node.Content(src)
	if line, _, found := strings.Cut(text, "\n"); found {
		text = line
	}
	if len(text) > 40 {
		text = text[:40]
	}
	return &SyntaxError{
		Line:   int(point.Row) + 1,
		Column: int(point.Column) + 1,
		Text:   text,
	}
}

// firstError finds the first ERROR or MISSING node in document order
func firstError(node *sitter.Node) *sitter.Node {
	if node.Type() == "ERROR" || node.IsMissing() {
		return node
	}
	for j := 0; j < int(node.ChildCount()); j++ {
		child := node.Child(j)
		if child.HasError() || child.IsMissing() {
			if found := firstError(child); found != nil {
				return found
			}
		}
	}
	return nil
}
