package parser

import (
	"fmt"
	"math"
	"strconv"

	"github.com/sergev/while/ast"
)

// ParseStatement parses a complete program: statements joined by ";".
func ParseStatement(src TokenSource) (ast.Statement, error) {
	return parseAll(src, (*parser).parseStatement)
}

// ParseStatementTerm parses skip, an assignment, or a braced statement.
func ParseStatementTerm(src TokenSource) (ast.Statement, error) {
	return parseAll(src, (*parser).parseStatementTerm)
}

// ParseBooleanExp parses a conjunction of possibly negated boolean terms.
func ParseBooleanExp(src TokenSource) (ast.BooleanExp, error) {
	return parseAll(src, (*parser).parseBooleanExp)
}

// ParseBooleanExpTerm parses a boolean literal, a comparison, or a
// parenthesised boolean expression.
func ParseBooleanExpTerm(src TokenSource) (ast.BooleanExp, error) {
	return parseAll(src, (*parser).parseBooleanExpTerm)
}

// ParseArithmeticExp parses a sum of products.
func ParseArithmeticExp(src TokenSource) (ast.ArithmeticExp, error) {
	return parseAll(src, (*parser).parseArithmeticExp)
}

// ParseTerm parses an integer literal (optionally negated), a variable, or a
// parenthesised arithmetic expression.
func ParseTerm(src TokenSource) (ast.ArithmeticExp, error) {
	return parseAll(src, (*parser).parseTerm)
}

// parseAll runs rule over the whole token stream; trailing tokens are a
// syntax error.
func parseAll[T any](src TokenSource, rule func(*parser) (T, error)) (T, error) {
	var zero T
	p := &parser{src: src}
	if err := p.fill(); err != nil {
		return zero, err
	}
	node, err := rule(p)
	if err != nil {
		return zero, err
	}
	if p.curr.Type != TokenEOF {
		return zero, p.unexpected("end of input")
	}
	return node, nil
}

// parser keeps every token it has read so that a failed speculative parse
// can rewind to an earlier token.
type parser struct {
	src    TokenSource
	tokens []Token
	pos    int
	curr   Token
	err    error // sticky lexical error
}

func (p *parser) advance() error {
	p.pos++
	return p.fill()
}

func (p *parser) fill() error {
	if p.pos < len(p.tokens) {
		p.curr = p.tokens[p.pos]
		return nil
	}
	if p.err != nil {
		return p.err
	}
	tok, err := p.src.Next()
	if err == nil && tok.Type == TokenIllegal {
		err = illegalTokenError(tok)
	}
	if err != nil {
		p.err = err
		return err
	}
	p.tokens = append(p.tokens, tok)
	p.curr = tok
	return nil
}

func (p *parser) mark() int {
	return p.pos
}

func (p *parser) restore(pos int) {
	p.pos = pos
	p.curr = p.tokens[pos]
}

func (p *parser) expect(tt TokenType) (Token, error) {
	if p.curr.Type != tt {
		return Token{}, p.unexpected(tt.String())
	}
	tok := p.curr
	if err := p.advance(); err != nil {
		return Token{}, err
	}
	return tok, nil
}

func (p *parser) unexpected(expected string) error {
	if p.curr.Type == TokenEOF {
		return &Error{
			Token:      p.curr,
			Msg:        fmt.Sprintf("unexpected end of input, expected %s", expected),
			Incomplete: true,
		}
	}
	return &Error{
		Token: p.curr,
		Msg:   fmt.Sprintf("expected %s, found %s", expected, p.curr),
	}
}

func illegalTokenError(tok Token) error {
	if err, ok := tok.Value.(error); ok {
		return err
	}
	return &LexicalError{Kind: InvalidToken, Text: tok.Lexeme, Pos: tok.Pos}
}

// Statements

func (p *parser) parseStatement() (ast.Statement, error) {
	left, err := p.parseControl()
	if err != nil {
		return nil, err
	}
	for p.curr.Type == TokenSemicolon {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseControl()
		if err != nil {
			return nil, err
		}
		left = &ast.Composition{Lhs: left, Rhs: right}
	}
	return left, nil
}

func (p *parser) parseControl() (ast.Statement, error) {
	switch p.curr.Type {
	case TokenIf:
		return p.parseConditional()
	case TokenWhile:
		return p.parseWhile()
	default:
		return p.parseStatementTerm()
	}
}

func (p *parser) parseConditional() (ast.Statement, error) {
	if _, err := p.expect(TokenIf); err != nil {
		return nil, err
	}
	guard, err := p.parseBooleanExp()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenThen); err != nil {
		return nil, err
	}
	trueBranch, err := p.parseStatementTerm()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenElse); err != nil {
		return nil, err
	}
	falseBranch, err := p.parseStatementTerm()
	if err != nil {
		return nil, err
	}
	return &ast.Conditional{
		Guard:       guard,
		TrueBranch:  trueBranch,
		FalseBranch: falseBranch,
	}, nil
}

func (p *parser) parseWhile() (ast.Statement, error) {
	whTok, err := p.expect(TokenWhile)
	if err != nil {
		return nil, err
	}
	guard, err := p.parseBooleanExp()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenDo); err != nil {
		return nil, err
	}
	body, err := p.parseStatementTerm()
	if err != nil {
		return nil, err
	}
	return &ast.While{
		Pos:   whTok.Pos,
		Guard: guard,
		Body:  body,
	}, nil
}

func (p *parser) parseStatementTerm() (ast.Statement, error) {
	switch p.curr.Type {
	case TokenSkip:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Skip{}, nil
	case TokenIdentifier:
		nameTok := p.curr
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenAssign); err != nil {
			return nil, err
		}
		value, err := p.parseArithmeticExp()
		if err != nil {
			return nil, err
		}
		return &ast.Assignment{Var: nameTok.Lexeme, Value: value}, nil
	case TokenLBrace:
		if err := p.advance(); err != nil {
			return nil, err
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRBrace); err != nil {
			return nil, err
		}
		return stmt, nil
	default:
		return nil, p.unexpected("statement")
	}
}

// Boolean expressions

func (p *parser) parseBooleanExp() (ast.BooleanExp, error) {
	left, err := p.parseNegation()
	if err != nil {
		return nil, err
	}
	for p.curr.Type == TokenAmpersand {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseNegation()
		if err != nil {
			return nil, err
		}
		left = &ast.And{Lhs: left, Rhs: right}
	}
	return left, nil
}

// parseNegation binds "!" tighter than "&": !a & b is (!a) & b.
func (p *parser) parseNegation() (ast.BooleanExp, error) {
	if p.curr.Type != TokenBang {
		return p.parseBooleanExpTerm()
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	exp, err := p.parseNegation()
	if err != nil {
		return nil, err
	}
	return &ast.Not{Exp: exp}, nil
}

func (p *parser) parseBooleanExpTerm() (ast.BooleanExp, error) {
	switch p.curr.Type {
	case TokenBool:
		value, err := boolValue(p.curr)
		if err != nil {
			return nil, err
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Boolean{Value: value}, nil
	case TokenLParen:
		return p.parseParenthesized()
	default:
		return p.parseComparison()
	}
}

// parseParenthesized resolves "(" in boolean position. The parenthesis
// opens either a boolean expression, as in (x < 1) & b, or the left operand
// of a comparison, as in (x + 1) < 2. Both readings are tried from the same
// token; when neither succeeds, the error that got further wins.
func (p *parser) parseParenthesized() (ast.BooleanExp, error) {
	start := p.mark()
	exp, err := p.parseParenBooleanExp()
	if err == nil {
		return exp, nil
	}
	if !isSyntaxError(err) {
		return nil, err
	}
	failedAt := p.pos

	p.restore(start)
	cond, condErr := p.parseComparison()
	if condErr == nil {
		return cond, nil
	}
	if isSyntaxError(condErr) && failedAt > p.pos {
		return nil, err
	}
	return nil, condErr
}

func (p *parser) parseParenBooleanExp() (ast.BooleanExp, error) {
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	exp, err := p.parseBooleanExp()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return exp, nil
}

func (p *parser) parseComparison() (ast.BooleanExp, error) {
	lhs, err := p.parseArithmeticExp()
	if err != nil {
		return nil, err
	}
	var op ast.ConditionOperator
	switch p.curr.Type {
	case TokenLess:
		op = ast.StrictlyLess
	case TokenEqual:
		op = ast.Equal
	default:
		return nil, p.unexpected("< or =")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	rhs, err := p.parseArithmeticExp()
	if err != nil {
		return nil, err
	}
	return ast.NewArithmeticCondition(lhs, op, rhs), nil
}

// Arithmetic expressions

func (p *parser) parseArithmeticExp() (ast.ArithmeticExp, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.curr.Type == TokenPlus || p.curr.Type == TokenMinus {
		op := ast.Add
		if p.curr.Type == TokenMinus {
			op = ast.Sub
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOperation{Lhs: left, Op: op, Rhs: right}
	}
	return left, nil
}

func (p *parser) parseFactor() (ast.ArithmeticExp, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.curr.Type == TokenStar || p.curr.Type == TokenSlash {
		op := ast.Mul
		if p.curr.Type == TokenSlash {
			op = ast.Div
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOperation{Lhs: left, Op: op, Rhs: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (ast.ArithmeticExp, error) {
	switch p.curr.Type {
	case TokenInt:
		tok := p.curr
		value, err := intValue(tok)
		if err != nil {
			return nil, err
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Integer{Value: value}, nil
	case TokenMinus:
		// Unary minus only applies to literals and is folded here.
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.curr.Type != TokenInt {
			return nil, p.unexpected("integer after unary minus")
		}
		tok := p.curr
		value, err := intValue(tok)
		if err != nil {
			return nil, err
		}
		if value == math.MinInt64 {
			return nil, &LexicalError{
				Kind: InvalidInteger,
				Text: "-" + tok.Lexeme,
				Pos:  tok.Pos,
				Err:  strconv.ErrRange,
			}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Integer{Value: -value}, nil
	case TokenIdentifier:
		tok := p.curr
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Variable{Name: tok.Lexeme}, nil
	case TokenLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		exp, err := p.parseArithmeticExp()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return exp, nil
	default:
		return nil, p.unexpected("arithmetic expression")
	}
}

func intValue(tok Token) (int64, error) {
	if value, ok := tok.Value.(int64); ok {
		return value, nil
	}
	value, err := strconv.ParseInt(tok.Lexeme, 10, 64)
	if err != nil {
		return 0, &LexicalError{
			Kind: InvalidInteger,
			Text: tok.Lexeme,
			Pos:  tok.Pos,
			Err:  err,
		}
	}
	return value, nil
}

func boolValue(tok Token) (bool, error) {
	if value, ok := tok.Value.(bool); ok {
		return value, nil
	}
	switch tok.Lexeme {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, &LexicalError{
		Kind: InvalidBoolean,
		Text: tok.Lexeme,
		Pos:  tok.Pos,
	}
}
