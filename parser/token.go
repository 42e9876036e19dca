package parser

import (
	"unicode/utf8"

	"github.com/sergev/while/ast"
)

// TokenType enumerates the terminal symbols of the While grammar.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIllegal

	TokenIdentifier
	TokenInt
	TokenBool

	// Keywords
	TokenIf
	TokenThen
	TokenElse
	TokenWhile
	TokenDo
	TokenSkip

	// Operators and punctuation
	TokenLBrace    // {
	TokenRBrace    // }
	TokenLParen    // (
	TokenRParen    // )
	TokenAssign    // :=
	TokenSemicolon // ;
	TokenPlus      // +
	TokenMinus     // -
	TokenStar      // *
	TokenSlash     // /
	TokenEqual     // =
	TokenLess      // <
	TokenAmpersand // &
	TokenBang      // !
	TokenNewline
)

func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "EOF"
	case TokenIllegal:
		return "illegal"
	case TokenIdentifier:
		return "identifier"
	case TokenInt:
		return "int"
	case TokenBool:
		return "bool"
	case TokenIf:
		return "if"
	case TokenThen:
		return "then"
	case TokenElse:
		return "else"
	case TokenWhile:
		return "while"
	case TokenDo:
		return "do"
	case TokenSkip:
		return "skip"
	case TokenLBrace:
		return "{"
	case TokenRBrace:
		return "}"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenAssign:
		return ":="
	case TokenSemicolon:
		return ";"
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenStar:
		return "*"
	case TokenSlash:
		return "/"
	case TokenEqual:
		return "="
	case TokenLess:
		return "<"
	case TokenAmpersand:
		return "&"
	case TokenBang:
		return "!"
	case TokenNewline:
		return "newline"
	default:
		return "unknown"
	}
}

// Token is a single lexical unit.
type Token struct {
	Type   TokenType
	Lexeme string      // identifier text, or the raw text of literals
	Value  interface{} // int64 for TokenInt, bool for TokenBool, error for TokenIllegal
	Pos    ast.Position
}

func (t Token) String() string {
	switch t.Type {
	case TokenIdentifier, TokenInt, TokenBool:
		if t.Lexeme != "" {
			return t.Type.String() + " " + t.Lexeme
		}
	}
	return t.Type.String()
}

// TokenSource supplies tokens to the parser. An error returned by Next is a
// lexical error; the parser stops and returns it unchanged. After the last
// token a source keeps returning TokenEOF.
type TokenSource interface {
	Next() (Token, error)
}

type tokenSlice struct {
	tokens []Token
	pos    int
}

// NewTokenSlice returns a TokenSource over a fixed token sequence. Once the
// slice is exhausted it returns TokenEOF positioned just past the lexeme of
// the last token, on the same line. Tokens without a position (line 0) give
// an EOF without one.
func NewTokenSlice(tokens ...Token) TokenSource {
	return &tokenSlice{tokens: tokens}
}

func (ts *tokenSlice) Next() (Token, error) {
	if ts.pos >= len(ts.tokens) {
		return Token{Type: TokenEOF, Pos: ts.endPos()}, nil
	}
	tok := ts.tokens[ts.pos]
	ts.pos++
	return tok, nil
}

func (ts *tokenSlice) endPos() ast.Position {
	n := len(ts.tokens)
	if n == 0 {
		return ast.Position{}
	}
	last := ts.tokens[n-1]
	if last.Pos.Line == 0 {
		return ast.Position{}
	}
	return ast.Position{
		Offset: last.Pos.Offset + len(last.Lexeme),
		Line:   last.Pos.Line,
		Column: last.Pos.Column + utf8.RuneCountInString(last.Lexeme),
	}
}

// Tokens returns every token produced by src, up to and including TokenEOF.
func Tokens(src TokenSource) ([]Token, error) {
	var tokens []Token
	for {
		tok, err := src.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}
