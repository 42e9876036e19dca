package parser

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/sergev/while/ast"
)

// whileRules classify raw source text. Rule order matters: the first
// matching rule wins, so assume lines are claimed before identifiers and
// ":=" before "=". Keywords and boolean literals are recognised from the
// Ident rule.
var whileRules = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Assume", Pattern: `assume\b[^\n]*`},
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Newline", Pattern: `\n`},
	{Name: "Whitespace", Pattern: `[ \t\f\r]+`},
	{Name: "Ident", Pattern: `[_a-zA-Z][_0-9a-zA-Z]*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `:=|[{}();+\-*/=<&!]`},
	{Name: "Illegal", Pattern: `.`},
})

var ruleNames = func() map[lexer.TokenType]string {
	names := make(map[lexer.TokenType]string)
	for name, tt := range whileRules.Symbols() {
		names[tt] = name
	}
	return names
}()

var punctuation = map[string]TokenType{
	"{":  TokenLBrace,
	"}":  TokenRBrace,
	"(":  TokenLParen,
	")":  TokenRParen,
	":=": TokenAssign,
	";":  TokenSemicolon,
	"+":  TokenPlus,
	"-":  TokenMinus,
	"*":  TokenStar,
	"/":  TokenSlash,
	"=":  TokenEqual,
	"<":  TokenLess,
	"&":  TokenAmpersand,
	"!":  TokenBang,
}

// Lexer turns While source text into tokens. Blanks, newlines, # comments
// and assume lines are skipped.
type Lexer struct {
	lx  lexer.Lexer
	err error
	eof Token
}

var _ TokenSource = (*Lexer)(nil)

// NewLexer returns a lexer over src. The filename is only used in
// positions reported by the underlying scanner.
func NewLexer(filename, src string) *Lexer {
	lx, err := whileRules.Lex(filename, strings.NewReader(src))
	return &Lexer{lx: lx, err: err}
}

// Next returns the next significant token. Once a lexical error has been
// reported, every later call reports it again.
func (l *Lexer) Next() (Token, error) {
	if l.err != nil {
		return Token{Type: TokenIllegal, Value: l.err}, l.err
	}
	if l.lx == nil {
		return l.eof, nil
	}
	for {
		raw, err := l.lx.Next()
		if err != nil {
			l.err = err
			return Token{Type: TokenIllegal, Value: err}, err
		}
		pos := positionOf(raw.Pos)
		if raw.EOF() {
			l.eof = Token{Type: TokenEOF, Pos: pos}
			l.lx = nil
			return l.eof, nil
		}
		switch ruleNames[raw.Type] {
		case "Assume", "Comment", "Newline", "Whitespace":
			continue
		case "Ident":
			return makeIdentifierToken(raw.Value, pos), nil
		case "Int":
			return l.intToken(raw.Value, pos)
		case "Punct":
			return Token{Type: punctuation[raw.Value], Lexeme: raw.Value, Pos: pos}, nil
		default:
			return l.fail(&LexicalError{
				Kind: InvalidToken,
				Text: raw.Value,
				Pos:  pos,
			})
		}
	}
}

func (l *Lexer) intToken(lexeme string, pos ast.Position) (Token, error) {
	value, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return l.fail(&LexicalError{
			Kind: InvalidInteger,
			Text: lexeme,
			Pos:  pos,
			Err:  err,
		})
	}
	return Token{
		Type:   TokenInt,
		Lexeme: lexeme,
		Value:  value,
		Pos:    pos,
	}, nil
}

func (l *Lexer) fail(err *LexicalError) (Token, error) {
	l.err = err
	return Token{
		Type:   TokenIllegal,
		Lexeme: err.Text,
		Value:  err,
		Pos:    err.Pos,
	}, err
}

func makeIdentifierToken(lexeme string, pos ast.Position) Token {
	if keywordType, ok := keywordToken(lexeme); ok {
		return Token{Type: keywordType, Lexeme: lexeme, Pos: pos}
	}
	switch lexeme {
	case "true", "false":
		return Token{
			Type:   TokenBool,
			Lexeme: lexeme,
			Value:  lexeme == "true",
			Pos:    pos,
		}
	}
	return Token{
		Type:   TokenIdentifier,
		Lexeme: lexeme,
		Pos:    pos,
	}
}

func keywordToken(lexeme string) (TokenType, bool) {
	switch lexeme {
	case "if":
		return TokenIf, true
	case "then":
		return TokenThen, true
	case "else":
		return TokenElse, true
	case "while":
		return TokenWhile, true
	case "do":
		return TokenDo, true
	case "skip":
		return TokenSkip, true
	default:
		return TokenIllegal, false
	}
}

func positionOf(pos lexer.Position) ast.Position {
	return ast.Position{
		Offset: pos.Offset,
		Line:   pos.Line,
		Column: pos.Column,
	}
}

// Lex returns all tokens of src, ending with TokenEOF.
func Lex(src string) ([]Token, error) {
	return Tokens(NewLexer("", src))
}
