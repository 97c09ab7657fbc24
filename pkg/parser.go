package tally

import "strconv"

// Grammar:
// Program:    Assignment+ EOF
// Assignment: Identifier = Exp ;
// Exp:        Term (('+' | '-') Term)*
// Term:       Fact ('*' Fact)*
// Fact:       ('+' | '-') Fact | ( Exp ) | Identifier | Number

type SyntacticAnalyzer interface {
	Do()
	Get() Expr
	GetFilename() string
}

type Parser struct {
	filename  string
	tokenizer Tokenizer
	output    chan Expr
	buf       *Token
}

func NewParser(tokenizer Tokenizer) *Parser {
	return &Parser{
		tokenizer: tokenizer,
		filename:  tokenizer.GetFilename(),
		output:    make(chan Expr, 2),
	}
}

func (p *Parser) Get() Expr {
	return <-p.Chan()
}

func (p *Parser) Chan() chan Expr {
	return p.output
}

func (p *Parser) GetFilename() string {
	return p.filename
}

// Do streams assignments to the output channel, stopping at the first
// erroneous statement. The stream always ends with EOS.
func (p *Parser) Do() {
	go p.tokenizer.Do()

	if tok := p.peek(); tok.Typ == TokenEOF {
		p.output <- p.errorf(tok.Loc, "empty program", "")
	}

	for p.peek().Typ != TokenEOF {
		stmt := p.assignment()
		p.output <- stmt

		if _, bad := stmt.(*BadExpr); bad {
			go p.drainTokens()
			break
		}
	}

	p.output <- &EOS{}
	close(p.output)
}

// Run collects the whole program, returning the first error instead of a
// partial AST.
func (p *Parser) Run() (*Program, error) {
	go p.tokenizer.Do()

	prog := &Program{Filename: p.filename}

	if tok := p.peek(); tok.Typ == TokenEOF {
		return nil, &SyntaxError{Loc: tok.Loc, Msg: "empty program"}
	}

	for p.peek().Typ != TokenEOF {
		stmt := p.assignment()
		if bad, ok := stmt.(*BadExpr); ok {
			go p.drainTokens()
			return nil, bad.Err
		}

		prog.Statements = append(prog.Statements, stmt)
	}

	return prog, nil
}

// drainTokens unblocks the tokenizer goroutine after an early stop.
func (p *Parser) drainTokens() {
	l, ok := p.tokenizer.(*Lexer)
	if !ok {
		return
	}

	for range l.Chan() {
	}
}

func (p *Parser) peek() Token {
	if p.buf == nil {
		temp := p.next()
		p.buf = &temp
	}

	return *p.buf
}

func (p *Parser) next() Token {
	if p.buf != nil {
		if !p.buf.isValid() {
			// If an invalid token is buffered, don't try to get more tokens
			return *p.buf
		}

		temp := p.buf
		p.buf = nil

		return *temp
	}

	tok := p.tokenizer.Get()
	if !tok.isValid() {
		// If a token is invalid (such as Error or EOF) keep it buffered since no more valid tokens are expected
		p.buf = &tok
	}

	return tok
}

func (p *Parser) errorf(loc *Location, msg string, tok string) Expr {
	return &BadExpr{
		Loc: loc,
		Err: &SyntaxError{Loc: loc, Msg: msg, Tok: tok},
	}
}

// bad classifies an unexpected token: a TokenError surfaces the lexer's
// diagnostic, anything else is a grammar violation at that token.
func (p *Parser) bad(tok Token, msg string) Expr {
	if tok.Typ == TokenError {
		return &BadExpr{
			Loc: tok.Loc,
			Err: &LexicalError{Loc: tok.Loc, Text: tok.Value},
		}
	}

	if tok.Typ == TokenEOF {
		return p.errorf(tok.Loc, msg, "")
	}

	return p.errorf(tok.Loc, msg, tok.Value)
}

func (p *Parser) assignment() Expr {
	name := p.next()
	if name.Typ != TokenIdentifier {
		return p.bad(name, "expected identifier at start of assignment")
	}

	if eq := p.next(); eq.Typ != TokenAssign {
		return p.bad(eq, "expected '=' after identifier")
	}

	value := p.expr()
	if bad, ok := value.(*BadExpr); ok {
		return bad
	}

	if semi := p.next(); semi.Typ != TokenSemicolon {
		return p.bad(semi, "expected ';' after assignment")
	}

	return &Assignment{
		Name:  name.Value,
		Value: value,
		Loc:   name.Loc,
	}
}

func (p *Parser) expr() Expr {
	return p.additiveExpr()
}

func (p *Parser) additiveExpr() Expr {
	lhs := p.multiplicativeExpr()
	if _, ok := lhs.(*BadExpr); ok {
		return lhs
	}

	for {
		tok := p.peek()
		if tok.Typ != TokenPlus && tok.Typ != TokenMinus {
			return lhs
		}

		// Chained operands (for example 1 - 3 + 1) fold to the left
		p.next()

		rhs := p.multiplicativeExpr()
		if _, ok := rhs.(*BadExpr); ok {
			return rhs
		}

		lhs = &BinaryExpr{
			Operation: BinaryOp(tok.Value),
			Op1:       lhs,
			Op2:       rhs,
			Loc:       tok.Loc,
		}
	}
}

func (p *Parser) multiplicativeExpr() Expr {
	lhs := p.unaryExpr()
	if _, ok := lhs.(*BadExpr); ok {
		return lhs
	}

	for {
		tok := p.peek()
		if tok.Typ != TokenStar {
			return lhs
		}

		p.next()

		rhs := p.unaryExpr()
		if _, ok := rhs.(*BadExpr); ok {
			return rhs
		}

		lhs = &BinaryExpr{
			Operation: BinaryOp(tok.Value),
			Op1:       lhs,
			Op2:       rhs,
			Loc:       tok.Loc,
		}
	}
}

func (p *Parser) unaryExpr() Expr {
	if tok := p.peek(); tok.Typ == TokenPlus || tok.Typ == TokenMinus {
		p.next()

		// Signs nest arbitrarily: --5 and -+-x are valid
		operand := p.unaryExpr()
		if _, ok := operand.(*BadExpr); ok {
			return operand
		}

		return &UnaryExpr{
			Operation: UnaryOp(tok.Value),
			Operand:   operand,
			Loc:       tok.Loc,
		}
	}

	return p.primary()
}

func (p *Parser) primary() Expr {
	switch tok := p.peek(); tok.Typ {
	case TokenOpenParentheses:
		return p.parenthesisedExpression()
	case TokenIdentifier:
		p.next()
		return &Identifier{
			Name: tok.Value,
			Loc:  tok.Loc,
		}
	case TokenNumber:
		return p.literal()
	default:
		p.next()
		return p.bad(tok, "expected expression")
	}
}

func (p *Parser) parenthesisedExpression() Expr {
	p.next() // Skip the opening parenthesis

	exp := p.expr()
	if _, ok := exp.(*BadExpr); ok {
		return exp
	}

	if tok := p.next(); tok.Typ != TokenCloseParentheses {
		return p.bad(tok, "expected closing parenthesis")
	}

	return exp
}

func (p *Parser) literal() Expr {
	tok := p.next()

	v, err := strconv.ParseInt(tok.Value, 10, 64)
	if err != nil {
		return p.errorf(tok.Loc, "number literal out of range", tok.Value)
	}

	return &LiteralExpr{
		Value: v,
		Loc:   tok.Loc,
	}
}
