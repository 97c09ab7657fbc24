package tally

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode"
	"unicode/utf8"
)

type TokenType uint64
type stateFunc func(l *Lexer) stateFunc

//go:generate stringer -type=TokenType -trimprefix=Token
const (
	EOF rune = 0

	TokenError TokenType = iota
	TokenEOF
	TokenNumber

	TokenIdentifier

	TokenPlus
	TokenMinus
	TokenStar
	TokenAssign
	TokenOpenParentheses
	TokenCloseParentheses
	TokenSemicolon
)

var operatorTable = map[rune]TokenType{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'=': TokenAssign,
	'(': TokenOpenParentheses,
	')': TokenCloseParentheses,
	';': TokenSemicolon,
}

// Location is a 1-based line and column position in the source text.
type Location struct {
	Line int
	Col  int
}

func (l *Location) String() string {
	if l == nil {
		return "?:?"
	}

	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}

type Token struct {
	Typ   TokenType
	Value string
	Loc   *Location
}

func (t Token) isValid() bool {
	return t.Typ != TokenError && t.Typ != TokenEOF
}

// Tokenizer is the contract between the lexer and the parser. Do produces
// tokens until EOF or the first error, Get consumes them one at a time.
type Tokenizer interface {
	Do()
	Get() Token
	GetFilename() string
}

type Lexer struct {
	filename string
	reader   *bufio.Reader
	done     chan Token

	line int
	col  int
}

func NewLexer(filename string) (*Lexer, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	l := NewLexerFromReader(bytes.NewReader(data))
	l.filename = filename

	return l, nil
}

func NewLexerFromReader(reader io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(reader),
		done:   make(chan Token),
		line:   1,
	}
}

func (l *Lexer) GetFilename() string {
	return l.filename
}

func (l *Lexer) Do() {
	l.Run()
}

func (l *Lexer) Get() Token {
	return <-l.done
}

func (l *Lexer) Chan() chan Token {
	return l.done
}

func (l *Lexer) Run() {
	for state := defaultState; state != nil; {
		state = state(l)
	}

	close(l.done)
}

// RunBlocking drives the lexer to completion and collects the tokens,
// excluding the terminating EOF. A TokenError becomes a *LexicalError.
func (l *Lexer) RunBlocking() ([]Token, error) {
	go l.Run()

	var tokens []Token
	for t := range l.done {
		if t.Typ == TokenEOF {
			return tokens, nil
		}

		if t.Typ == TokenError {
			return nil, &LexicalError{Loc: t.Loc, Text: t.Value}
		}

		tokens = append(tokens, t)
	}

	return tokens, nil
}

func defaultState(l *Lexer) stateFunc {
	for {
		switch r := l.peek(); {
		case r == EOF:
			l.emitValue(TokenEOF, "", l.loc())
			return nil
		case unicode.IsSpace(r):
			l.next()
			continue
		case isDigit(r):
			return numberState
		case isLetter(r):
			return identifierState
		default:
			return operatorState
		}
	}
}

func numberState(l *Lexer) stateFunc {
	loc := l.loc()

	var num []rune
	num = append(num, l.next())

	if num[0] == '0' {
		// A zero is only valid on its own; 007 is malformed
		if isDigit(l.peek()) {
			return l.errorf(loc, "malformed number literal (leading zero)")
		}

		return l.emitValue(TokenNumber, "0", loc)
	}

	for r := l.peek(); isDigit(r); r = l.peek() {
		num = append(num, l.next())
	}

	return l.emitValue(TokenNumber, string(num), loc)
}

func identifierState(l *Lexer) stateFunc {
	loc := l.loc()

	var id []rune
	id = append(id, l.next())

	for r := l.peek(); isLetter(r) || isDigit(r); r = l.peek() {
		id = append(id, l.next())
	}

	return l.emitValue(TokenIdentifier, string(id), loc)
}

func operatorState(l *Lexer) stateFunc {
	loc := l.loc()

	r := l.next()
	if tok, ok := operatorTable[r]; ok {
		return l.emitValue(tok, string(r), loc)
	}

	return l.errorf(loc, "invalid symbol '%c'", r)
}

func isLetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func (l *Lexer) errorf(loc *Location, format string, args ...interface{}) stateFunc {
	l.done <- Token{
		Typ:   TokenError,
		Value: fmt.Sprintf(format, args...),
		Loc:   loc,
	}

	return nil
}

func (l *Lexer) emitValue(t TokenType, val string, loc *Location) stateFunc {
	l.done <- Token{
		Typ:   t,
		Value: val,
		Loc:   loc,
	}

	return defaultState
}

// loc is the position of the next rune to be consumed.
func (l *Lexer) loc() *Location {
	return &Location{
		Line: l.line,
		Col:  l.col + 1,
	}
}

func (l *Lexer) peek() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return EOF
		}

		return utf8.RuneError
	}

	_ = l.reader.UnreadRune()

	return r
}

func (l *Lexer) next() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return EOF
		}

		return utf8.RuneError
	}

	if r == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}

	return r
}
