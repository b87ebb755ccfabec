package parser

import (
	"github.com/glim-lang/glim/internal/ast"
	"github.com/glim-lang/glim/internal/token"
)

// parseStatement dispatches on the current token to the right statement
// parser, per the grammar of spec §4.2.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LET:
		return p.parseAssignment(true)
	case token.PRINT:
		return p.parsePrintStatement()
	case token.DELETE:
		return p.parseDeleteStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.DEF:
		return p.parseFuncDecl()
	case token.STRUCT:
		return p.parseStructDecl()
	case token.CLASS:
		return p.parseClassDecl()
	case token.PARALLEL:
		return p.parseParallelStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.IDENT:
		return p.parseIdentifierLedStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseIdentifierLedStatement resolves the ambiguity an identifier in
// statement position introduces: a typed assignment ("TypeName varName =
// ..."), a plain assignment, a field assignment, or a bare
// expression statement (spec §4.2 tie-breaks).
func (p *Parser) parseIdentifierLedStatement() ast.Statement {
	// "TypeName varName = expr": two identifiers back to back, the first
	// is a discarded type annotation.
	if p.peekIs(token.IDENT) {
		p.nextToken() // consume the type name, landing curToken on the real target
		return p.parseAssignment(false)
	}

	if p.peekIs(token.ASSIGN) {
		return p.parseAssignment(false)
	}

	// Otherwise this may still resolve to a field assignment once the full
	// postfix chain (obj.field) has been parsed, e.g. `p.x = 1`.
	startTok := p.curToken
	expr := p.parseExpression(LOWEST)

	if p.peekIs(token.ASSIGN) {
		return p.finishComplexAssignment(startTok, expr)
	}

	return p.finishExpressionStatement(startTok, expr)
}

func (p *Parser) finishComplexAssignment(startTok token.Token, left ast.Expression) ast.Statement {
	p.nextToken() // consume '='
	p.nextToken()
	value := p.parseExpression(LOWEST)

	switch target := left.(type) {
	case *ast.FieldAccess:
		return &ast.FieldAssignment{Token(startTok), target.Object, target.Field, value}
	case *ast.Identifier:
		return &ast.Assignment{Token(startTok), false, target.Value, value}
	default:
		p.addError("invalid assignment target")
		return &ast.ExpressionStatement{Token(startTok), left}
	}
}

func (p *Parser) finishExpressionStatement(startTok token.Token, expr ast.Expression) ast.Statement {
	return &ast.ExpressionStatement{Token(startTok), expr}
}

// Token is a tiny helper converting a token.Token into the embeddable
// base used by every concrete ast node; it exists only so statement
// constructors in this file read as plain struct literals.
func Token(t token.Token) ast.NodeBase { return ast.NodeBase{Token: t} }

// parseAssignment parses `let id = expr` (isLet=true) or `id = expr`
// (isLet=false, curToken already on the identifier).
func (p *Parser) parseAssignment(isLet bool) ast.Statement {
	startTok := p.curToken
	if isLet {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
	}
	name := p.curToken.Literal
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	return &ast.Assignment{Token(startTok), isLet, name, value}
}

func (p *Parser) parsePrintStatement() ast.Statement {
	startTok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.PrintStatement{Token(startTok), value}
}

func (p *Parser) parseDeleteStatement() ast.Statement {
	startTok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := p.curToken.Literal
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.DeleteStatement{Token(startTok), name}
}

func (p *Parser) parseBlock() *ast.BlockStatement {
	startTok := p.curToken
	block := &ast.BlockStatement{Token(startTok), nil}
	if !p.expectPeek(token.LBRACE) {
		return block
	}
	p.nextToken()
	p.skipSemicolons()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
		p.skipSemicolons()
	}
	return block
}

func (p *Parser) parseIfStatement() ast.Statement {
	startTok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	then := p.parseBlock()

	var elseBlock *ast.BlockStatement
	if p.peekIs(token.ELSE) {
		p.nextToken()
		elseBlock = p.parseBlock()
	}
	return &ast.IfStatement{Token(startTok), cond, then, elseBlock}
}

func (p *Parser) parseForStatement() ast.Statement {
	startTok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()

	var init ast.Statement
	if !p.curIs(token.SEMICOLON) {
		init = p.parseStatement()
		p.nextToken()
	}
	if !p.curIs(token.SEMICOLON) {
		p.addError("expected ';' after for-init, got %s", p.curToken.Type)
	}
	p.nextToken()

	var cond ast.Expression
	if !p.curIs(token.SEMICOLON) {
		cond = p.parseExpression(LOWEST)
		p.nextToken()
	}
	if !p.curIs(token.SEMICOLON) {
		p.addError("expected ';' after for-condition, got %s", p.curToken.Type)
	}
	p.nextToken()

	var update ast.Statement
	if !p.curIs(token.RPAREN) {
		update = p.parseStatement()
		p.nextToken()
	}
	if !p.curIs(token.RPAREN) {
		p.addError("expected ')' to close for-clause, got %s", p.curToken.Type)
	}

	body := p.parseBlock()
	return &ast.ForStatement{Token(startTok), init, cond, update, body}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	startTok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	body := p.parseBlock()
	return &ast.WhileStatement{Token(startTok), cond, body}
}

func (p *Parser) parseParamList() []string {
	var params []string
	if p.peekIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	params = append(params, p.curToken.Literal)
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		params = append(params, p.curToken.Literal)
	}
	if !p.expectPeek(token.RPAREN) {
		return params
	}
	return params
}

func (p *Parser) parseFuncDecl() ast.Statement {
	startTok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := p.curToken.Literal
	p.funcs[name] = true

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params := p.parseParamList()
	body := p.parseBlock()
	return &ast.FuncDecl{Token(startTok), name, params, body}
}

func (p *Parser) parseFieldList() []string {
	var fields []string
	if p.peekIs(token.RBRACE) {
		p.nextToken()
		return fields
	}
	p.nextToken()
	fields = append(fields, p.curToken.Literal)
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		fields = append(fields, p.curToken.Literal)
	}
	return fields
}

func (p *Parser) parseStructDecl() ast.Statement {
	startTok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := p.curToken.Literal
	p.records[name] = true

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	fields := p.parseFieldList()
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return &ast.StructDecl{Token(startTok), name, fields}
}

// parseClassDecl parses `class Name { fields and methods }`. Fields are
// plain identifiers on their own statement-ish line; methods are `def`
// declarations registered as `Name.method` once the evaluator runs (spec
// §4.2). The parser itself just collects both lists.
func (p *Parser) parseClassDecl() ast.Statement {
	startTok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := p.curToken.Literal
	p.records[name] = true

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.nextToken()
	p.skipSemicolons()

	var fields []string
	var methods []*ast.FuncDecl
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if p.curIs(token.DEF) {
			if m, ok := p.parseFuncDecl().(*ast.FuncDecl); ok {
				methods = append(methods, m)
			}
		} else if p.curIs(token.IDENT) {
			fields = append(fields, p.curToken.Literal)
		}
		p.nextToken()
		p.skipSemicolons()
	}
	return &ast.ClassDecl{Token(startTok), name, fields, methods}
}

func (p *Parser) parseParallelStatement() ast.Statement {
	startTok := p.curToken
	body := p.parseBlock()
	return &ast.ParallelStatement{Token(startTok), body}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	startTok := p.curToken
	if p.peekIs(token.SEMICOLON) || p.peekIs(token.RBRACE) || p.peekIs(token.EOF) {
		return &ast.ReturnStatement{Token(startTok), nil}
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	return &ast.ReturnStatement{Token(startTok), value}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	startTok := p.curToken
	expr := p.parseExpression(LOWEST)
	return &ast.ExpressionStatement{Token(startTok), expr}
}
