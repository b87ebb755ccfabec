package parser

import (
	"strconv"

	"github.com/glim-lang/glim/internal/ast"
	"github.com/glim-lang/glim/internal/lexer"
	"github.com/glim-lang/glim/internal/token"
)

// parseExpression is the Pratt precedence-climbing core: look up a prefix
// handler for curToken, then keep folding infix operators whose
// precedence exceeds the caller's floor (spec §4.2's grammar table).
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		p.addError("unexpected token %s (%q) in expression position", p.curToken.Type, p.curToken.Literal)
		return nil
	}
	left := prefix()

	for !p.peekIs(token.SEMICOLON) && precedence < getPrecedence(p.peekToken.Type) {
		infix, ok := p.infixParseFns[p.peekToken.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifierOrCall() ast.Expression {
	ident := &ast.Identifier{NodeBase: Token(p.curToken), Value: p.curToken.Literal}
	return ident
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	tok := p.curToken
	v, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.addError("malformed number literal %q", tok.Literal)
	}
	return &ast.NumberLiteral{NodeBase: Token(tok), Value: v}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{NodeBase: Token(p.curToken), Value: p.curToken.Literal}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	return &ast.BoolLiteral{NodeBase: Token(p.curToken), Value: p.curToken.Type == token.TRUE}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.NullLiteral{NodeBase: Token(p.curToken)}
}

func (p *Parser) parseInputExpression() ast.Expression {
	startTok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return &ast.InputExpression{NodeBase: Token(startTok)}
	}
	if !p.expectPeek(token.RPAREN) {
		return &ast.InputExpression{NodeBase: Token(startTok)}
	}
	return &ast.InputExpression{NodeBase: Token(startTok)}
}

// parseUnaryExpression handles prefix `+`, `-`, and `not`. Per spec §4.2's
// precedence table, `not` binds its operand at NOT level (between and/or
// and equality) while `+`/`-` bind at the tighter UNARY level.
func (p *Parser) parseUnaryExpression() ast.Expression {
	tok := p.curToken
	prec := UNARY
	if tok.Type == token.NOT {
		prec = NOT
	}
	p.nextToken()
	right := p.parseExpression(prec)
	// Operator is the canonical spelling (tok.Type.String()), not tok.Literal:
	// keywords like `not` are case-folded at lex time, but the literal keeps
	// the source's original casing (`NOT`, `Not`, ...), which would break the
	// evaluator's string-compared operator dispatch.
	return &ast.UnaryExpression{NodeBase: Token(tok), Operator: tok.Type.String(), Right: right}
}

// parseBinaryExpression handles every infix operator. `^` is
// right-associative: it recurses at precedence-1 so a further `^` on the
// right is folded into this call rather than terminating it.
func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	prec := getPrecedence(tok.Type)
	p.nextToken()
	var right ast.Expression
	if tok.Type == token.CARET {
		right = p.parseExpression(prec - 1)
	} else {
		right = p.parseExpression(prec)
	}
	// Same canonical-spelling reasoning as parseUnaryExpression above: `and`/
	// `or` must compare equal regardless of source casing.
	return &ast.BinaryExpression{NodeBase: Token(tok), Left: left, Operator: tok.Type.String(), Right: right}
}

// parseGroupedOrLambda disambiguates `(expr)` grouping from
// `(params) -> expr` lambda construction, both of which start with '('.
func (p *Parser) parseGroupedOrLambda() ast.Expression {
	startTok := p.curToken

	if p.peekIs(token.RPAREN) {
		// Could be `() -> expr` (zero-param lambda) — the only legal use of
		// an empty parenthesized form, since `()` alone is not a valid
		// grouped expression.
		p.nextToken() // consume ')'
		if p.peekIs(token.ARROW) {
			p.nextToken() // consume '->'
			p.nextToken()
			body := p.parseExpression(LOWEST)
			return &ast.Lambda{NodeBase: Token(startTok), Params: nil, Body: body}
		}
		p.addError("empty parentheses are not a valid expression")
		return &ast.NullLiteral{NodeBase: Token(startTok)}
	}

	// Speculatively try to parse a parameter list; if what follows isn't
	// `-> expr`, re-interpret what we parsed as a single grouped expression.
	if p.peekIs(token.IDENT) {
		if params, ok := p.tryParseLambdaParams(); ok {
			p.nextToken() // consume '->'
			p.nextToken()
			body := p.parseExpression(LOWEST)
			return &ast.Lambda{NodeBase: Token(startTok), Params: params, Body: body}
		}
	}

	p.nextToken()
	inner := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return inner
	}
	return &ast.GroupedExpression{NodeBase: Token(startTok), Expression: inner}
}

// tryParseLambdaParams looks ahead from curToken='(' to see whether the
// parenthesized list is a lambda parameter list followed by '->'. It only
// consumes tokens (leaving curToken on the closing ')') when that shape is
// confirmed; otherwise it returns ok=false having left the parser
// untouched so the caller can fall back to ordinary grouping.
func (p *Parser) tryParseLambdaParams() (params []string, ok bool) {
	// A plain identifier list in parens is ambiguous with a grouped
	// expression only when every comma-separated element is a bare
	// identifier. Scan forward with peek-only semantics is awkward without
	// multi-token lookahead, so glim takes the practical route the teacher's
	// own parser takes for similar ambiguities: parse the identifier list
	// optimistically, then check for '->' before committing.
	savedCur, savedPeek := p.curToken, p.peekToken
	savedErrs := len(p.errors)
	savedLex := *p.l

	p.nextToken() // consume '(', cur is first ident
	names := []string{p.curToken.Literal}
	for p.peekIs(token.COMMA) {
		p.nextToken()
		if !p.peekIs(token.IDENT) {
			p.restoreTokens(savedCur, savedPeek, savedErrs, savedLex)
			return nil, false
		}
		p.nextToken()
		names = append(names, p.curToken.Literal)
	}

	if !p.peekIs(token.RPAREN) {
		p.restoreTokens(savedCur, savedPeek, savedErrs, savedLex)
		return nil, false
	}
	p.nextToken() // consume ')'

	if !p.peekIs(token.ARROW) {
		p.restoreTokens(savedCur, savedPeek, savedErrs, savedLex)
		return nil, false
	}
	return names, true
}

// restoreTokens rewinds the parser to a previously saved cur/peek pair and
// the lexer to the state it had when that pair was saved. The lexer has no
// backtracking methods of its own, so the parser copies the Lexer value
// before a speculative lambda-parameter scan and writes it back here; the
// grouped-expression fallback then reads the same tokens again.
func (p *Parser) restoreTokens(cur, peek token.Token, errCount int, lex lexer.Lexer) {
	p.curToken = cur
	p.peekToken = peek
	p.errors = p.errors[:errCount]
	*p.l = lex
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	startTok := p.curToken
	elems := []ast.Expression{}
	if p.peekIs(token.RBRACE) {
		p.nextToken()
		return &ast.ArrayLiteral{NodeBase: Token(startTok), Elements: elems}
	}
	p.nextToken()
	elems = append(elems, p.parseExpression(LOWEST))
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		elems = append(elems, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(token.RBRACE) {
		return &ast.ArrayLiteral{NodeBase: Token(startTok), Elements: elems}
	}
	return &ast.ArrayLiteral{NodeBase: Token(startTok), Elements: elems}
}

func (p *Parser) parseCallArgs() []ast.Expression {
	var args []ast.Expression
	if p.peekIs(token.RPAREN) {
		p.nextToken()
		return args
	}
	p.nextToken()
	args = append(args, p.parseExpression(LOWEST))
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		args = append(args, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(token.RPAREN) {
		return args
	}
	return args
}

func (p *Parser) parseCallExpression(fn ast.Expression) ast.Expression {
	startTok := p.curToken
	args := p.parseCallArgs()
	return &ast.CallExpression{NodeBase: Token(startTok), Function: fn, Arguments: args}
}

// parseDotExpression handles `obj.field` and `obj.method(args)`.
func (p *Parser) parseDotExpression(left ast.Expression) ast.Expression {
	startTok := p.curToken // '.'
	if !p.expectPeek(token.IDENT) {
		return left
	}
	name := p.curToken.Literal

	if p.peekIs(token.LPAREN) {
		p.nextToken()
		args := p.parseCallArgs()
		return &ast.MethodCall{NodeBase: Token(startTok), Object: left, Method: name, Arguments: args}
	}
	return &ast.FieldAccess{NodeBase: Token(startTok), Object: left, Field: name}
}
