// Package parser implements glim's recursive-descent / Pratt parser: it
// turns a token stream into an AST while also populating precursor tables
// for function and record names (spec §4.2). Every `name(args)` is parsed
// as a CallExpression; whether it constructs a record or calls a function
// is decided by the evaluator at call time.
package parser

import (
	"fmt"

	"github.com/glim-lang/glim/internal/ast"
	"github.com/glim-lang/glim/internal/lexer"
	"github.com/glim-lang/glim/internal/token"
)

// Precedence levels, lowest to highest, per spec §4.2's grammar table.
const (
	LOWEST int = iota
	OR
	AND
	NOT // prefix-only; sits between and/or and equality
	EQUALITY
	RELATIONAL
	ADDITIVE
	MULTIPLICATIVE
	EXPONENT // right-associative
	UNARY    // prefix + -
	POSTFIX  // call, member access
)

var precedences = map[token.Type]int{
	token.OR:    OR,
	token.AND:   AND,
	token.EQ:    EQUALITY,
	token.NEQ:   EQUALITY,
	token.LT:    RELATIONAL,
	token.GT:    RELATIONAL,
	token.LTE:   RELATIONAL,
	token.GTE:   RELATIONAL,
	token.PLUS:  ADDITIVE,
	token.MINUS: ADDITIVE,
	token.STAR:  MULTIPLICATIVE,
	token.SLASH: MULTIPLICATIVE,
	token.PERCENT: MULTIPLICATIVE,
	token.CARET: EXPONENT,
	token.LPAREN: POSTFIX,
	token.DOT:    POSTFIX,
}

func getPrecedence(t token.Type) int {
	if p, ok := precedences[t]; ok {
		return p
	}
	return LOWEST
}

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

// Error is a static parse error: the offending token, the expected kind
// (if any), and source position (spec §7).
type Error struct {
	Message string
	Pos     token.Position
}

// Parser builds an AST from a Lexer's token stream. It also maintains
// `funcs` (names registered by `def`, class methods under their bare
// method name) and `records` (names registered by `struct`/`class`),
// exposed through Funcs and Records; the parser itself does not consult
// them when building call nodes (spec §4.2).
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors []Error

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn

	funcs   map[string]bool
	records map[string]bool
}

// New creates a Parser reading from l and primes the first two tokens.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:       l,
		funcs:   make(map[string]bool),
		records: make(map[string]bool),
	}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.IDENT:    p.parseIdentifierOrCall,
		token.NUMBER:   p.parseNumberLiteral,
		token.STRING:   p.parseStringLiteral,
		token.TRUE:     p.parseBoolLiteral,
		token.FALSE:    p.parseBoolLiteral,
		token.NULL:     p.parseNullLiteral,
		token.NOT:      p.parseUnaryExpression,
		token.MINUS:    p.parseUnaryExpression,
		token.PLUS:     p.parseUnaryExpression,
		token.LPAREN:   p.parseGroupedOrLambda,
		token.LBRACE:   p.parseArrayLiteral,
		token.INPUT:    p.parseInputExpression,
	}

	p.infixParseFns = map[token.Type]infixParseFn{
		token.PLUS: p.parseBinaryExpression, token.MINUS: p.parseBinaryExpression,
		token.STAR: p.parseBinaryExpression, token.SLASH: p.parseBinaryExpression,
		token.PERCENT: p.parseBinaryExpression, token.CARET: p.parseBinaryExpression,
		token.EQ: p.parseBinaryExpression, token.NEQ: p.parseBinaryExpression,
		token.LT: p.parseBinaryExpression, token.GT: p.parseBinaryExpression,
		token.LTE: p.parseBinaryExpression, token.GTE: p.parseBinaryExpression,
		token.AND: p.parseBinaryExpression, token.OR: p.parseBinaryExpression,
		token.LPAREN: p.parseCallExpression,
		token.DOT:    p.parseDotExpression,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns accumulated static parse errors.
func (p *Parser) Errors() []Error { return p.errors }

// Funcs returns the names registered by `def` (including class methods,
// under their bare method name) while parsing, for debug tooling such as
// `glim defs`.
func (p *Parser) Funcs() map[string]bool { return p.funcs }

// Records returns the names registered by `struct`/`class` while parsing.
func (p *Parser) Records() map[string]bool { return p.records }

func (p *Parser) addError(format string, args ...any) {
	p.errors = append(p.errors, Error{Message: fmt.Sprintf(format, args...), Pos: p.curToken.Pos})
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.Next()
}

func (p *Parser) curIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekIs(t) {
		p.nextToken()
		return true
	}
	p.addError("expected next token to be %s, got %s instead", t, p.peekToken.Type)
	return false
}

// skipSemicolons absorbs zero or more trailing ';' (optional before '}' or EOF).
func (p *Parser) skipSemicolons() {
	for p.curIs(token.SEMICOLON) {
		p.nextToken()
	}
}

// ParseProgram parses the full token stream into a Program AST.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	p.skipSemicolons()
	for !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
		p.skipSemicolons()
	}
	return program
}
