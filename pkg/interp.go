package tally

import (
	"fmt"
	"sort"
	"strings"
)

// SymbolTable maps variable names to their current int64 value. An entry
// exists only once an assignment to that name has executed.
type SymbolTable struct {
	Entries map[string]int64
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		Entries: make(map[string]int64),
	}
}

func (t *SymbolTable) Add(name string, val int64) {
	t.Entries[name] = val
}

func (t *SymbolTable) Get(name string) (int64, bool) {
	val, contains := t.Entries[name]
	return val, contains
}

// Names returns the bound variable names in alphabetical order, the order
// final bindings are reported in.
func (t *SymbolTable) Names() []string {
	names := make([]string, 0, len(t.Entries))
	for name := range t.Entries {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

func (t *SymbolTable) Copy() *SymbolTable {
	t2 := NewSymbolTable()
	for k, v := range t.Entries {
		t2.Entries[k] = v
	}

	return t2
}

// String renders the final bindings, one "name = value" line per variable.
func (t *SymbolTable) String() string {
	var str strings.Builder
	for _, name := range t.Names() {
		fmt.Fprintf(&str, "%s = %d\n", name, t.Entries[name])
	}

	return str.String()
}

// Evaluator executes the statements streamed by a parser, threading one
// symbol table through the run.
type Evaluator struct {
	filename string
	parser   SyntacticAnalyzer
}

func NewEvaluator(parser SyntacticAnalyzer) *Evaluator {
	return &Evaluator{
		filename: parser.GetFilename(),
		parser:   parser,
	}
}

// Do runs the program to completion and returns the final symbol table, or
// the first error from any stage. No partial result is ever returned.
func (e *Evaluator) Do() (*SymbolTable, error) {
	go e.parser.Do()

	stab := NewSymbolTable()
	for {
		expr := e.parser.Get()

		switch s := expr.(type) {
		case *EOS:
			return stab, nil
		case *BadExpr:
			e.drain()
			return nil, s.Err
		case *Assignment:
			val, err := e.eval(stab, s.Value)
			if err != nil {
				e.drain()
				return nil, err
			}

			stab.Add(s.Name, val)
		default:
			e.drain()
			return nil, fmt.Errorf("unexpected statement node %T", expr)
		}
	}
}

// drain unblocks the parser goroutine after an early stop.
func (e *Evaluator) drain() {
	p, ok := e.parser.(*Parser)
	if !ok {
		return
	}

	go func() {
		for range p.Chan() {
		}
	}()
}

func (e *Evaluator) eval(stab *SymbolTable, expr Expr) (int64, error) {
	switch ex := expr.(type) {
	case *LiteralExpr:
		return ex.Value, nil
	case *Identifier:
		val, ok := stab.Get(ex.Name)
		if !ok {
			return 0, &UninitializedVariableError{
				Loc:  ex.Loc,
				Name: ex.Name,
			}
		}

		return val, nil
	case *UnaryExpr:
		val, err := e.eval(stab, ex.Operand)
		if err != nil {
			return 0, err
		}

		if ex.Operation == UnaryNegative {
			return -val, nil
		}

		return val, nil
	case *BinaryExpr:
		v1, err := e.eval(stab, ex.Op1)
		if err != nil {
			return 0, err
		}

		v2, err := e.eval(stab, ex.Op2)
		if err != nil {
			return 0, err
		}

		switch ex.Operation {
		case BinaryAddition:
			return v1 + v2, nil
		case BinarySubtraction:
			return v1 - v2, nil
		case BinaryMultiplication:
			return v1 * v2, nil
		default:
			return 0, fmt.Errorf("unexpected binary op '%s'", ex.Operation)
		}
	case *BadExpr:
		return 0, ex.Err
	default:
		return 0, fmt.Errorf("unexpected expression node %T", expr)
	}
}
