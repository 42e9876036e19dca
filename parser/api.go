package parser

import (
	"fmt"
	"io"

	"github.com/sergev/while/ast"
)

// ParseString lexes and parses a complete While program.
func ParseString(src string) (ast.Statement, error) {
	return ParseStatement(NewLexer("", src))
}

// ParseReader consumes a While program from an io.Reader.
func ParseReader(r io.Reader) (ast.Statement, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(string(data))
}

// Entry names a production that can start a parse.
type Entry string

const (
	EntryStatement      Entry = "statement"
	EntryStatementTerm  Entry = "statement-term"
	EntryBooleanExp     Entry = "bexp"
	EntryBooleanExpTerm Entry = "bexp-term"
	EntryArithmeticExp  Entry = "aexp"
	EntryTerm           Entry = "term"
)

// Entries lists every entry point in grammar order.
var Entries = []Entry{
	EntryStatement,
	EntryStatementTerm,
	EntryBooleanExp,
	EntryBooleanExpTerm,
	EntryArithmeticExp,
	EntryTerm,
}

// ParseEntry parses src starting from the named production.
func ParseEntry(entry Entry, src TokenSource) (ast.Node, error) {
	switch entry {
	case EntryStatement, "":
		return ParseStatement(src)
	case EntryStatementTerm:
		return ParseStatementTerm(src)
	case EntryBooleanExp:
		return ParseBooleanExp(src)
	case EntryBooleanExpTerm:
		return ParseBooleanExpTerm(src)
	case EntryArithmeticExp:
		return ParseArithmeticExp(src)
	case EntryTerm:
		return ParseTerm(src)
	default:
		return nil, fmt.Errorf("unknown entry point %q", entry)
	}
}
