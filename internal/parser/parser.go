// Package parser implements the recursive-descent parser described in
// spec.md §4.2, turning a token sequence into a list of statement nodes.
package parser

import (
	"github.com/sirupsen/logrus"

	"github.com/raspacee/lox/internal/ast"
	"github.com/raspacee/lox/internal/diag"
	"github.com/raspacee/lox/internal/token"
)

const maxArgs = 255

// parseError unwinds the recursive-descent call stack back to the nearest
// declaration(), which recovers it and synchronizes. It is never returned to callers outside this
// package; every reported parseError has already been recorded on the sink.
type parseError struct{}

func (parseError) Error() string { return "parse error" }

// Parser consumes a token stream and produces statement nodes.
type Parser struct {
	tokens  []token.Token
	current int
	sink    *diag.Sink
}

// New returns a Parser over tokens. Errors are reported to sink.
func New(tokens []token.Token, sink *diag.Sink) *Parser {
	return &Parser{tokens: tokens, sink: sink}
}

// Parse runs the `program := declaration* EOF` production, returning every
// statement it could recover. A malformed declaration contributes no node
// to the result (spec.md §4.2 "Error recovery").
func (p *Parser) Parse() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	logrus.WithField("count", len(stmts)).Debug("parser: finished")
	return stmts
}

// --- declarations ---

func (p *Parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()

	if p.match(token.Var) {
		return p.varDecl()
	}
	if p.match(token.Fun) {
		return p.function("function")
	}
	return p.statement()
}

func (p *Parser) varDecl() ast.Stmt {
	name := p.consume(token.Identifier, "Expect variable name.")
	var init ast.Expr
	if p.match(token.Equal) {
		init = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after variable declaration.")
	return &ast.Var{Name: name, Initializer: init}
}

func (p *Parser) function(kind string) *ast.Function {
	name := p.consume(token.Identifier, "Expect "+kind+" name.")
	p.consume(token.LeftParen, "Expect '(' after "+kind+" name.")
	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(token.Identifier, "Expect parameter name."))
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.consume(token.RightParen, "Expect ')' after parameters.")
	p.consume(token.LeftBrace, "Expect '{' before "+kind+" body.")
	body := p.block()
	return &ast.Function{Name: name, Params: params, Body: body}
}

// --- statements ---

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.Print):
		return p.printStmt()
	case p.match(token.LeftBrace):
		return &ast.Block{Statements: p.block()}
	case p.match(token.If):
		return p.ifStmt()
	case p.match(token.While):
		return p.whileStmt()
	case p.match(token.For):
		return p.forStmt()
	case p.match(token.Break):
		return p.breakStmt()
	case p.match(token.Return):
		return p.returnStmt()
	default:
		return p.exprStmt()
	}
}

func (p *Parser) printStmt() ast.Stmt {
	value := p.expression()
	p.consume(token.Semicolon, "Expect ';' after value.")
	return &ast.Print{Expr: value}
}

func (p *Parser) exprStmt() ast.Stmt {
	expr := p.expression()
	p.consume(token.Semicolon, "Expect ';' after expression.")
	return &ast.Expression{Expr: expr}
}

func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.consume(token.RightBrace, "Expect '}' after block.")
	return stmts
}

func (p *Parser) ifStmt() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(token.RightParen, "Expect ')' after if condition.")
	then := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.Else) {
		elseBranch = p.statement()
	}
	return &ast.If{Cond: cond, Then: then, Else: elseBranch}
}

func (p *Parser) whileStmt() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(token.RightParen, "Expect ')' after while condition.")
	body := p.statement()
	return &ast.While{Cond: cond, Body: body}
}

// forStmt desugars directly into Block{[init, While{cond, Block{[body, inc]}}]}
// per spec.md §4.2. Missing init/cond/inc are simply omitted.
func (p *Parser) forStmt() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'for'.")

	var init ast.Stmt
	switch {
	case p.match(token.Semicolon):
		init = nil
	case p.match(token.Var):
		init = p.varDecl()
	default:
		init = p.exprStmt()
	}

	var cond ast.Expr
	if !p.check(token.Semicolon) {
		cond = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after loop condition.")

	var inc ast.Expr
	if !p.check(token.RightParen) {
		inc = p.expression()
	}
	p.consume(token.RightParen, "Expect ')' after for clauses.")

	body := p.statement()

	if inc != nil {
		body = &ast.Block{Statements: []ast.Stmt{body, &ast.Expression{Expr: inc}}}
	}
	if cond == nil {
		cond = &ast.Literal{Value: true}
	}
	body = &ast.While{Cond: cond, Body: body}

	if init != nil {
		body = &ast.Block{Statements: []ast.Stmt{init, body}}
	}
	return body
}

func (p *Parser) breakStmt() ast.Stmt {
	keyword := p.previous()
	p.consume(token.Semicolon, "Expect ';' after 'break'.")
	return &ast.Break{Keyword: keyword}
}

func (p *Parser) returnStmt() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.Semicolon) {
		value = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after return value.")
	return &ast.Return{Keyword: keyword, Value: value}
}

// --- expressions ---

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.Equal) {
		equals := p.previous()
		value := p.assignment()
		if v, ok := expr.(*ast.Variable); ok {
			return &ast.Assign{Name: v.Name, Value: value}
		}
		p.errorAt(equals, "Invalid assignment target.")
		return expr
	}
	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.Or) {
		op := p.previous()
		right := p.and()
		expr = &ast.Logical{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.And) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BangEqual, token.EqualEqual) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.Minus, token.Plus) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.Slash, token.Star) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Operator: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for {
		if p.match(token.LeftParen) {
			expr = p.finishCall(expr)
		} else {
			break
		}
	}
	return expr
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren := p.consume(token.RightParen, "Expect ')' after arguments.")
	return &ast.Call{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.False):
		return &ast.Literal{Value: false}
	case p.match(token.True):
		return &ast.Literal{Value: true}
	case p.match(token.Nil):
		return &ast.Literal{Value: nil}
	case p.match(token.Number, token.String):
		return &ast.Literal{Value: p.previous().Literal}
	case p.match(token.Identifier):
		return &ast.Variable{Name: p.previous()}
	case p.match(token.LeftParen):
		expr := p.expression()
		p.consume(token.RightParen, "Expect ')' after expression.")
		return &ast.Grouping{Expression: expr}
	}
	panic(p.errorAt(p.peek(), "Expect expression."))
}

// --- token-stream helpers ---

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(t token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) consume(t token.Type, message string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	panic(p.errorAt(p.peek(), message))
}

// errorAt reports a non-fatal parse error at tok and returns a sentinel
// parseError for callers that need to unwind (consume/primary panic with it;
// arity-limit callers just report and continue).
func (p *Parser) errorAt(tok token.Token, message string) parseError {
	p.sink.ErrorAtToken(tok, message)
	return parseError{}
}

// synchronize discards tokens until a statement boundary, per spec.md §4.2.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == token.Semicolon {
			return
		}
		switch p.peek().Type {
		case token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}
