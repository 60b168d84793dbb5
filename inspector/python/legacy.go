package python

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// checkPython3 rejects constructs the grammar accepts but a Python 3 interpreter does not:
// print and exec statements, "except E, e:", backquotes and misaligned statements.
func checkPython3(root *sitter.Node, src []byte) *SyntaxError {
	var literals [][2]uint32
	if node := findLegacy(root, &literals); node != nil {
		return newSyntaxError(node, src)
	}
	for offset, b := range src {
		if b != '`' || within(literals, uint32(offset)) {
			continue
		}
		line, column := 1, 1
		for _, c := range src[:offset] {
			column++
			if c == '\n' {
				line, column = line+1, 1
			}
		}
		return &SyntaxError{Line: line, Column: column, Text: "`"}
	}
	return nil
}

func findLegacy(node *sitter.Node, literals *[][2]uint32) *sitter.Node {
	switch node.Type() {
	case "print_statement", "exec_statement":
		return node
	case "string", "comment":
		*literals = append(*literals, [2]uint32{node.StartByte(), node.EndByte()})
		return nil
	case "except_clause":
		for j := 0; j < int(node.ChildCount()); j++ {
			if child := node.Child(j); !child.IsNamed() && child.Type() == "," {
				return node
			}
		}
	case "module", "block":
		if misaligned := misalignedStatement(node); misaligned != nil {
			return misaligned
		}
	}
	for j := 0; j < int(node.ChildCount()); j++ {
		if found := findLegacy(node.Child(j), literals); found != nil {
			return found
		}
	}
	return nil
}

// misalignedStatement returns the first statement of a module or block that does not start
// at the indentation of its siblings, module statements must start at column zero
func misalignedStatement(node *sitter.Node) *sitter.Node {
	column := -1
	if node.Type() == "module" {
		column = 0
	}
	lastRow := -1
	for j := 0; j < int(node.NamedChildCount()); j++ {
		child := node.NamedChild(j)
		if child.Type() == "comment" {
			continue
		}
		start := child.StartPoint()
		// statements separated by semicolons share a line
		if int(start.Row) != lastRow {
			if column < 0 {
				column = int(start.Column)
			} else if int(start.Column) != column {
				return child
			}
		}
		lastRow = int(child.EndPoint().Row)
	}
	return nil
}

func within(ranges [][2]uint32, offset uint32) bool {
	for _, r := range ranges {
		if offset >= r[0] && offset < r[1] {
			return true
		}
	}
	return false
}
