// parser.go — recursive-descent parser for Fen.
//
// OVERVIEW
// --------
// The parser consumes the token stream from lexer.go and builds the AST
// defined in ast.go. The expression grammar is a standard precedence ladder,
// low to high:
//
//	assignment → logic_or → logic_and → equality → comparison
//	           → addition → multiplication → unary → call → primary
//
// Assignment is right-associative (by recursion); the other binary levels are
// left-associative (by iteration). Call postfix operators — `(args)` and
// `.name` — chain freely after any primary.
//
// Error handling follows the classic panic-and-synchronize scheme: an
// unexpected token is reported to the Reporter and thrown as a *ParseError,
// which unwinds to the nearest declaration boundary. synchronize() then skips
// tokens until just past a `;` or just before a statement-starting keyword,
// and parsing resumes. The parser therefore returns the accepted prefix of
// declarations even for badly broken input; the driver refuses to execute when
// the Reporter saw anything.
//
// Two static context counters live here rather than in the resolver:
// loopDepth rejects `break`/`continue` outside a loop, and funDepth rejects
// `return` at the top level. Both point their diagnostic at the offending
// keyword.
//
// Desugaring: `for (init; cond; incr) body` is rewritten as
//
//	{ init; while (cond) { body; incr } }
//
// with the increment carried on the WhileStmt node itself, so that `continue`
// — which unwinds to the loop — still advances the loop variable before the
// next condition check. A missing condition becomes a literal `true`.
package fen

import "fmt"

const maxCallArguments = 255

// Parser turns tokens into statements. One Parser instance parses one source
// unit.
type Parser struct {
	tokens  []Token
	current int
	rep     *Reporter

	loopDepth int // >0 while parsing a loop body
	funDepth  int // >0 while parsing a function or method body
}

// NewParser creates a parser over tokens, reporting syntax errors through rep.
func NewParser(tokens []Token, rep *Reporter) *Parser {
	return &Parser{tokens: tokens, rep: rep}
}

// Parse consumes the whole token stream and returns every declaration that
// parsed cleanly.
func (p *Parser) Parse() []Stmt {
	var statements []Stmt
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// --- declarations ---

func (p *Parser) declaration() (stmt Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*ParseError); !ok {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()

	switch {
	case p.match(CLASS):
		return p.classDeclaration()
	case p.match(FUN):
		return p.function("function", false)
	case p.match(LET):
		return p.letDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) classDeclaration() Stmt {
	name := p.consume(IDENTIFIER, "Expect class name.")
	p.consume(LEFT_BRACE, "Expect '{' before class body.")

	var methods []*FunctionStmt
	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		static := p.match(STATIC)
		methods = append(methods, p.function("method", static))
	}

	p.consume(RIGHT_BRACE, "Expect '}' after class body.")
	return &ClassStmt{Name: name, Methods: methods}
}

func (p *Parser) function(kind string, static bool) *FunctionStmt {
	name := p.consume(IDENTIFIER, fmt.Sprintf("Expect %s name.", kind))
	p.consume(LEFT_PAREN, fmt.Sprintf("Expect '(' after %s name.", kind))

	var params []Token
	if !p.check(RIGHT_PAREN) {
		for {
			if len(params) >= maxCallArguments {
				p.rep.ErrorToken(p.peek(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(IDENTIFIER, "Expect parameter name."))
			if !p.match(COMMA) {
				break
			}
		}
	}
	p.consume(RIGHT_PAREN, "Expect ')' after parameters.")
	p.consume(LEFT_BRACE, fmt.Sprintf("Expect '{' before %s body.", kind))

	// A function body is a fresh loop context: `break` inside it never
	// belongs to a loop outside it.
	enclosingLoops := p.loopDepth
	p.loopDepth = 0
	p.funDepth++
	body := p.block()
	p.funDepth--
	p.loopDepth = enclosingLoops

	return &FunctionStmt{Name: name, Params: params, Body: body, IsStatic: static}
}

func (p *Parser) letDeclaration() Stmt {
	name := p.consume(IDENTIFIER, "Expect variable name.")

	var init Expr
	if p.match(EQUAL) {
		init = p.expression()
	}
	p.consume(SEMICOLON, "Expect ';' after variable declaration.")
	return &LetStmt{Name: name, Initializer: init}
}

// --- statements ---

func (p *Parser) statement() Stmt {
	switch {
	case p.match(FOR):
		return p.forStatement()
	case p.match(IF):
		return p.ifStatement()
	case p.match(RETURN):
		return p.returnStatement()
	case p.match(WHILE):
		return p.whileStatement()
	case p.match(BREAK):
		return p.breakStatement()
	case p.match(CONTINUE):
		return p.continueStatement()
	case p.match(LEFT_BRACE):
		return &BlockStmt{Statements: p.block()}
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) forStatement() Stmt {
	p.consume(LEFT_PAREN, "Expect '(' after 'for'.")

	var init Stmt
	switch {
	case p.match(SEMICOLON):
		init = nil
	case p.match(LET):
		init = p.letDeclaration()
	default:
		init = p.expressionStatement()
	}

	var cond Expr
	if !p.check(SEMICOLON) {
		cond = p.expression()
	}
	p.consume(SEMICOLON, "Expect ';' after loop condition.")

	var incr Expr
	if !p.check(RIGHT_PAREN) {
		incr = p.expression()
	}
	p.consume(RIGHT_PAREN, "Expect ')' after for clauses.")

	p.loopDepth++
	body := p.statement()
	p.loopDepth--

	if cond == nil {
		cond = &LiteralExpr{Value: true}
	}
	var loop Stmt = &WhileStmt{Condition: cond, Body: body, Increment: incr}
	if init != nil {
		loop = &BlockStmt{Statements: []Stmt{init, loop}}
	}
	return loop
}

func (p *Parser) ifStatement() Stmt {
	p.consume(LEFT_PAREN, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(RIGHT_PAREN, "Expect ')' after if condition.")

	then := p.statement()
	var els Stmt
	if p.match(ELSE) {
		els = p.statement()
	}
	return &IfStmt{Condition: cond, ThenBranch: then, ElseBranch: els}
}

func (p *Parser) returnStatement() Stmt {
	keyword := p.previous()
	if p.funDepth == 0 {
		p.rep.ErrorToken(keyword, "Can't return from top-level code.")
	}

	var value Expr
	if !p.check(SEMICOLON) {
		value = p.expression()
	}
	p.consume(SEMICOLON, "Expect ';' after return value.")
	return &ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) whileStatement() Stmt {
	p.consume(LEFT_PAREN, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(RIGHT_PAREN, "Expect ')' after condition.")

	p.loopDepth++
	body := p.statement()
	p.loopDepth--

	return &WhileStmt{Condition: cond, Body: body}
}

func (p *Parser) breakStatement() Stmt {
	keyword := p.previous()
	if p.loopDepth == 0 {
		p.rep.ErrorToken(keyword, "Can't use 'break' outside of a loop.")
	}
	p.consume(SEMICOLON, "Expect ';' after 'break'.")
	return &BreakStmt{Keyword: keyword}
}

func (p *Parser) continueStatement() Stmt {
	keyword := p.previous()
	if p.loopDepth == 0 {
		p.rep.ErrorToken(keyword, "Can't use 'continue' outside of a loop.")
	}
	p.consume(SEMICOLON, "Expect ';' after 'continue'.")
	return &ContinueStmt{Keyword: keyword}
}

func (p *Parser) block() []Stmt {
	var statements []Stmt
	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	p.consume(RIGHT_BRACE, "Expect '}' after block.")
	return statements
}

func (p *Parser) expressionStatement() Stmt {
	expr := p.expression()
	p.consume(SEMICOLON, "Expect ';' after expression.")
	return &ExpressionStmt{Expression: expr}
}

// --- expressions ---

func (p *Parser) expression() Expr {
	return p.assignment()
}

// assignment parses `target = value` right-associatively. A bad target is
// reported at the '=' but does not abort the surrounding expression.
func (p *Parser) assignment() Expr {
	expr := p.or()

	if p.match(EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *VariableExpr:
			return &AssignExpr{Name: target.Name, Value: value}
		case *GetExpr:
			return &SetExpr{Object: target.Object, Name: target.Name, Value: value}
		}
		p.rep.ErrorToken(equals, "Illegal assignment target.")
	}
	return expr
}

func (p *Parser) or() Expr {
	expr := p.and()
	for p.match(OR) {
		op := p.previous()
		right := p.and()
		expr = &LogicalExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) and() Expr {
	expr := p.equality()
	for p.match(AND) {
		op := p.previous()
		right := p.equality()
		expr = &LogicalExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() Expr {
	expr := p.comparison()
	for p.match(BANG_EQUAL, EQUAL_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = &BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() Expr {
	expr := p.addition()
	for p.match(GREATER, GREATER_EQUAL, LESS, LESS_EQUAL) {
		op := p.previous()
		right := p.addition()
		expr = &BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) addition() Expr {
	expr := p.multiplication()
	for p.match(MINUS, PLUS) {
		op := p.previous()
		right := p.multiplication()
		expr = &BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) multiplication() Expr {
	expr := p.unary()
	for p.match(SLASH, STAR) {
		op := p.previous()
		right := p.unary()
		expr = &BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() Expr {
	if p.match(BANG, MINUS) {
		op := p.previous()
		right := p.unary()
		return &UnaryExpr{Operator: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(DOT):
			name := p.consume(IDENTIFIER, "Expect property name after '.'.")
			expr = &GetExpr{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee Expr) Expr {
	var args []Expr
	if !p.check(RIGHT_PAREN) {
		for {
			if len(args) >= maxCallArguments {
				p.rep.ErrorToken(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(COMMA) {
				break
			}
		}
	}
	paren := p.consume(RIGHT_PAREN, "Expect ')' after arguments.")
	return &CallExpr{Callee: callee, Paren: paren, Arguments: args}
}

func (p *Parser) primary() Expr {
	switch {
	case p.match(FALSE):
		return &LiteralExpr{Value: false}
	case p.match(TRUE):
		return &LiteralExpr{Value: true}
	case p.match(NIL):
		return &LiteralExpr{Value: nil}
	case p.match(NUMBER, STRING):
		return &LiteralExpr{Value: p.previous().Literal}
	case p.match(THIS):
		return &ThisExpr{Keyword: p.previous()}
	case p.match(IDENTIFIER):
		return &VariableExpr{Name: p.previous()}
	case p.match(LEFT_PAREN):
		expr := p.expression()
		p.consume(RIGHT_PAREN, "Expect ')' after expression.")
		return &GroupingExpr{Expression: expr}
	}
	panic(p.error(p.peek(), "Expect expression."))
}

// --- token machinery ---

func (p *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tt TokenType, msg string) Token {
	if p.check(tt) {
		return p.advance()
	}
	panic(p.error(p.peek(), msg))
}

func (p *Parser) check(tt TokenType) bool {
	return p.peek().Type == tt
}

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool   { return p.peek().Type == EOF }
func (p *Parser) peek() Token     { return p.tokens[p.current] }
func (p *Parser) previous() Token { return p.tokens[p.current-1] }

// error reports at tok and returns the panic payload for the caller to throw.
func (p *Parser) error(tok Token, msg string) *ParseError {
	p.rep.ErrorToken(tok, msg)
	return &ParseError{Token: tok, Msg: msg}
}

// synchronize discards tokens until a likely statement boundary: just past a
// ';' or just before a keyword that starts a declaration or statement.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == SEMICOLON {
			return
		}
		switch p.peek().Type {
		case CLASS, FUN, LET, FOR, IF, WHILE, PRINT, RETURN:
			return
		}
		p.advance()
	}
}
