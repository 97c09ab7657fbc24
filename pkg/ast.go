package tally

// Program is the parsed form of one source text: an ordered sequence of
// assignments, evaluated in source order.
type Program struct {
	Filename   string
	Statements []Expr
}

type Expr interface {
	GetLocation() *Location
}

// BadExpr marks the point where parsing stopped. Err carries the typed
// error (*LexicalError or *SyntaxError) for the stage downstream.
type BadExpr struct {
	Loc *Location
	Err error
}

func (e *BadExpr) GetLocation() *Location {
	return e.Loc
}

// EOS terminates the statement stream between the parser and the evaluator.
type EOS struct{}

func (e *EOS) GetLocation() *Location {
	return nil
}

type Assignment struct {
	Name  string
	Value Expr
	Loc   *Location
}

func (e *Assignment) GetLocation() *Location {
	return e.Loc
}

type Identifier struct {
	Name string
	Loc  *Location
}

func (e *Identifier) GetLocation() *Location {
	return e.Loc
}

// LiteralExpr holds an already-parsed integer literal. The language is
// 64-bit signed throughout, so the text never needs re-parsing downstream.
type LiteralExpr struct {
	Value int64
	Loc   *Location
}

func (e *LiteralExpr) GetLocation() *Location {
	return e.Loc
}

type BinaryOp string

const (
	BinaryAddition       BinaryOp = "+"
	BinarySubtraction    BinaryOp = "-"
	BinaryMultiplication BinaryOp = "*"
)

type BinaryExpr struct {
	Operation BinaryOp
	Op1       Expr
	Op2       Expr
	Loc       *Location
}

func (e *BinaryExpr) GetLocation() *Location {
	return e.Loc
}

type UnaryOp string

const (
	UnaryNegative UnaryOp = "-"
	UnaryPositive UnaryOp = "+"
)

type UnaryExpr struct {
	Operation UnaryOp
	Operand   Expr
	Loc       *Location
}

func (e *UnaryExpr) GetLocation() *Location {
	return e.Loc
}
