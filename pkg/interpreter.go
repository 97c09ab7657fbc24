package tally

import "io"

// Interpreter ties the pipeline together: lexer, parser and evaluator for a
// run, or lexer, parser and IR generator for a compile. Each call builds a
// fresh pipeline, so programs never interfere with each other.
type Interpreter struct{}

func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

func (i *Interpreter) Run(filename string) (*SymbolTable, error) {
	lexer, err := NewLexer(filename)
	if err != nil {
		return nil, err
	}

	return i.run(NewParser(lexer))
}

func (i *Interpreter) RunFromReader(reader io.Reader) (*SymbolTable, error) {
	lexer := NewLexerFromReader(reader)

	return i.run(NewParser(lexer))
}

func (i *Interpreter) run(p *Parser) (*SymbolTable, error) {
	return NewEvaluator(p).Do()
}

func (i *Interpreter) Compile(filename string) (IR, error) {
	lexer, err := NewLexer(filename)
	if err != nil {
		return nil, err
	}

	return i.compile(NewParser(lexer))
}

func (i *Interpreter) CompileFromReader(reader io.Reader) (IR, error) {
	lexer := NewLexerFromReader(reader)

	return i.compile(NewParser(lexer))
}

func (i *Interpreter) compile(p *Parser) (IR, error) {
	prog, err := p.Run()
	if err != nil {
		return nil, err
	}

	// Evaluate first so undefined identifiers are reported here instead of
	// panicking inside the generator
	if _, err := NewEvaluator(&programStream{prog: prog}).Do(); err != nil {
		return nil, err
	}

	return NewLLVMGenerator(prog).Do(), nil
}

// programStream replays an already-parsed program as a statement stream.
type programStream struct {
	prog *Program
	pos  int
}

func (s *programStream) Do() {
}

func (s *programStream) Get() Expr {
	if s.pos >= len(s.prog.Statements) {
		return &EOS{}
	}

	stmt := s.prog.Statements[s.pos]
	s.pos++

	return stmt
}

func (s *programStream) GetFilename() string {
	return s.prog.Filename
}
