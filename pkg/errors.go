package tally

import "fmt"

// The three failure kinds, in detection order: lexical before syntactic
// before semantic. Each one aborts the run; exactly one is ever reported.

type LexicalError struct {
	Loc  *Location
	Text string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("%s: lexical error: %s", e.Loc, e.Text)
}

type SyntaxError struct {
	Loc *Location
	Msg string
	Tok string
}

func (e *SyntaxError) Error() string {
	if e.Tok == "" {
		return fmt.Sprintf("%s: syntax error: %s, got end of input", e.Loc, e.Msg)
	}

	return fmt.Sprintf("%s: syntax error: %s, got '%s'", e.Loc, e.Msg, e.Tok)
}

type UninitializedVariableError struct {
	Loc  *Location
	Name string
}

func (e *UninitializedVariableError) Error() string {
	return fmt.Sprintf("%s: uninitialized variable: %s", e.Loc, e.Name)
}
