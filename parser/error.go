package parser

import (
	"errors"
	"fmt"

	"github.com/sergev/while/ast"
)

// Error is a syntax error: the parser met a token that no production
// accepts at that point.
type Error struct {
	Token      Token  // offending token; TokenEOF when input ended early
	Msg        string // description of what was expected
	Incomplete bool   // input ended before the production was complete
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Token.Pos, e.Msg)
}

// Pos returns the position of the offending token.
func (e *Error) Pos() ast.Position {
	return e.Token.Pos
}

// LexicalErrorKind classifies lexical errors.
type LexicalErrorKind int

const (
	InvalidToken LexicalErrorKind = iota
	InvalidInteger
	InvalidBoolean
)

func (k LexicalErrorKind) String() string {
	switch k {
	case InvalidToken:
		return "invalid token"
	case InvalidInteger:
		return "invalid integer"
	case InvalidBoolean:
		return "invalid boolean"
	default:
		return "lexical error"
	}
}

// LexicalError is reported by the Lexer for text that does not form a
// token, or for integer literals outside the 64-bit signed range. The parser
// reports it for literal tokens whose payload cannot be decoded.
type LexicalError struct {
	Kind LexicalErrorKind
	Text string
	Pos  ast.Position
	Err  error
}

func (e *LexicalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s %q: %v", e.Pos, e.Kind, e.Text, e.Err)
	}
	return fmt.Sprintf("%s: %s %q", e.Pos, e.Kind, e.Text)
}

func (e *LexicalError) Unwrap() error {
	return e.Err
}

// IsIncomplete reports whether err is a syntax error caused by the input
// ending too early.
func IsIncomplete(err error) bool {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Incomplete
	}
	return false
}

func isSyntaxError(err error) bool {
	var perr *Error
	return errors.As(err, &perr)
}
