package sexpr

import (
	"strings"

	"github.com/sergev/while/ast"
)

// Width is the line length Format tries to stay within.
const Width = 72

// Format renders node as an s-expression. Forms that do not fit in Width
// columns are broken over several lines, one operand per line, indented
// by two spaces under their head.
func Format(node ast.Node) string {
	if node == nil {
		return ""
	}
	v, err := readOne(newScanner(newStringSource(node.String())))
	if err != nil {
		return node.String()
	}
	var b strings.Builder
	writeValue(&b, v, 0)
	return b.String()
}

func writeValue(b *strings.Builder, v value, indent int) {
	line := v.String()
	if !v.isList || len(v.list) < 2 || indent+len(line) <= Width {
		b.WriteString(line)
		return
	}
	b.WriteByte('(')
	b.WriteString(v.list[0].String())
	for _, item := range v.list[1:] {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", indent+2))
		writeValue(b, item, indent+2)
	}
	b.WriteByte(')')
}
