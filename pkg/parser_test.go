package tally

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type BufferedTokenizerMocker struct {
	buf []Token
	pos int
}

func NewBufferedTokenizerMocker(toks []Token) *BufferedTokenizerMocker {
	return &BufferedTokenizerMocker{
		buf: toks,
		pos: 0,
	}
}

func (b *BufferedTokenizerMocker) Do() {
	return
}

func (b *BufferedTokenizerMocker) Get() Token {
	if len(b.buf) <= b.pos {
		return Token{Typ: TokenEOF}
	}

	tok := b.buf[b.pos]
	b.pos++

	return tok
}

func (b *BufferedTokenizerMocker) GetFilename() string {
	return "testing"
}

func TestParser(t *testing.T) {
	cases := []struct {
		data   []Token
		fail   bool
		expect []Expr
	}{
		{
			[]Token{
				{TokenIdentifier, "x", nil},
				{TokenAssign, "=", nil},
				{TokenNumber, "1", nil},
				{TokenSemicolon, ";", nil},
			},
			false,
			[]Expr{
				&Assignment{
					Name:  "x",
					Value: &LiteralExpr{Value: 1},
				},
			},
		},
		{
			// 2 + 3 * 4 parses with multiplication bound tighter
			[]Token{
				{TokenIdentifier, "x", nil},
				{TokenAssign, "=", nil},
				{TokenNumber, "2", nil},
				{TokenPlus, "+", nil},
				{TokenNumber, "3", nil},
				{TokenStar, "*", nil},
				{TokenNumber, "4", nil},
				{TokenSemicolon, ";", nil},
			},
			false,
			[]Expr{
				&Assignment{
					Name: "x",
					Value: &BinaryExpr{
						Operation: BinaryAddition,
						Op1:       &LiteralExpr{Value: 2},
						Op2: &BinaryExpr{
							Operation: BinaryMultiplication,
							Op1:       &LiteralExpr{Value: 3},
							Op2:       &LiteralExpr{Value: 4},
						},
					},
				},
			},
		},
		{
			// 1 - 2 + 3 folds left: (1 - 2) + 3
			[]Token{
				{TokenIdentifier, "x", nil},
				{TokenAssign, "=", nil},
				{TokenNumber, "1", nil},
				{TokenMinus, "-", nil},
				{TokenNumber, "2", nil},
				{TokenPlus, "+", nil},
				{TokenNumber, "3", nil},
				{TokenSemicolon, ";", nil},
			},
			false,
			[]Expr{
				&Assignment{
					Name: "x",
					Value: &BinaryExpr{
						Operation: BinaryAddition,
						Op1: &BinaryExpr{
							Operation: BinarySubtraction,
							Op1:       &LiteralExpr{Value: 1},
							Op2:       &LiteralExpr{Value: 2},
						},
						Op2: &LiteralExpr{Value: 3},
					},
				},
			},
		},
		{
			// (2 + 3) * 4 overrides precedence
			[]Token{
				{TokenIdentifier, "x", nil},
				{TokenAssign, "=", nil},
				{TokenOpenParentheses, "(", nil},
				{TokenNumber, "2", nil},
				{TokenPlus, "+", nil},
				{TokenNumber, "3", nil},
				{TokenCloseParentheses, ")", nil},
				{TokenStar, "*", nil},
				{TokenNumber, "4", nil},
				{TokenSemicolon, ";", nil},
			},
			false,
			[]Expr{
				&Assignment{
					Name: "x",
					Value: &BinaryExpr{
						Operation: BinaryMultiplication,
						Op1: &BinaryExpr{
							Operation: BinaryAddition,
							Op1:       &LiteralExpr{Value: 2},
							Op2:       &LiteralExpr{Value: 3},
						},
						Op2: &LiteralExpr{Value: 4},
					},
				},
			},
		},
		{
			// Signs nest: --5
			[]Token{
				{TokenIdentifier, "x", nil},
				{TokenAssign, "=", nil},
				{TokenMinus, "-", nil},
				{TokenMinus, "-", nil},
				{TokenNumber, "5", nil},
				{TokenSemicolon, ";", nil},
			},
			false,
			[]Expr{
				&Assignment{
					Name: "x",
					Value: &UnaryExpr{
						Operation: UnaryNegative,
						Operand: &UnaryExpr{
							Operation: UnaryNegative,
							Operand:   &LiteralExpr{Value: 5},
						},
					},
				},
			},
		},
		{
			// Unary binds tighter than binary: -x * y keeps the sign on x
			[]Token{
				{TokenIdentifier, "z", nil},
				{TokenAssign, "=", nil},
				{TokenMinus, "-", nil},
				{TokenIdentifier, "x", nil},
				{TokenStar, "*", nil},
				{TokenIdentifier, "y", nil},
				{TokenSemicolon, ";", nil},
			},
			false,
			[]Expr{
				&Assignment{
					Name: "z",
					Value: &BinaryExpr{
						Operation: BinaryMultiplication,
						Op1: &UnaryExpr{
							Operation: UnaryNegative,
							Operand:   &Identifier{Name: "x"},
						},
						Op2: &Identifier{Name: "y"},
					},
				},
			},
		},
		{
			[]Token{
				{TokenIdentifier, "x", nil},
				{TokenAssign, "=", nil},
				{TokenNumber, "1", nil},
				{TokenSemicolon, ";", nil},
				{TokenIdentifier, "y", nil},
				{TokenAssign, "=", nil},
				{TokenIdentifier, "x", nil},
				{TokenPlus, "+", nil},
				{TokenNumber, "2", nil},
				{TokenSemicolon, ";", nil},
			},
			false,
			[]Expr{
				&Assignment{
					Name:  "x",
					Value: &LiteralExpr{Value: 1},
				},
				&Assignment{
					Name: "y",
					Value: &BinaryExpr{
						Operation: BinaryAddition,
						Op1:       &Identifier{Name: "x"},
						Op2:       &LiteralExpr{Value: 2},
					},
				},
			},
		},
		{
			// Missing semicolon
			[]Token{
				{TokenIdentifier, "x", nil},
				{TokenAssign, "=", nil},
				{TokenNumber, "5", nil},
			},
			true,
			nil,
		},
		{
			// Missing '='
			[]Token{
				{TokenIdentifier, "x", nil},
				{TokenNumber, "5", nil},
				{TokenSemicolon, ";", nil},
			},
			true,
			nil,
		},
		{
			// Missing right-hand side
			[]Token{
				{TokenIdentifier, "x", nil},
				{TokenAssign, "=", nil},
				{TokenSemicolon, ";", nil},
			},
			true,
			nil,
		},
		{
			// Unclosed parenthesis
			[]Token{
				{TokenIdentifier, "x", nil},
				{TokenAssign, "=", nil},
				{TokenOpenParentheses, "(", nil},
				{TokenNumber, "1", nil},
				{TokenSemicolon, ";", nil},
			},
			true,
			nil,
		},
		{
			// Statement must start with an identifier
			[]Token{
				{TokenNumber, "1", nil},
				{TokenAssign, "=", nil},
				{TokenNumber, "2", nil},
				{TokenSemicolon, ";", nil},
			},
			true,
			nil,
		},
		{
			// Empty program
			nil,
			true,
			nil,
		},
	}

	for _, c := range cases {
		tokenizer := NewBufferedTokenizerMocker(c.data)
		p := NewParser(tokenizer)

		got, err := p.Run()
		if c.fail {
			var synErr *SyntaxError
			assert.ErrorAs(t, err, &synErr)
			assert.Nil(t, got)
			continue
		}

		assert.NoError(t, err)

		expect := &Program{
			Filename:   "testing",
			Statements: c.expect,
		}
		assert.Equal(t, expect, got)
	}
}

func TestParserReportsLexicalError(t *testing.T) {
	tokenizer := NewBufferedTokenizerMocker([]Token{
		{TokenIdentifier, "x", nil},
		{TokenAssign, "=", nil},
		{TokenError, "malformed number literal (leading zero)", &Location{1, 5}},
	})
	p := NewParser(tokenizer)

	got, err := p.Run()
	assert.Nil(t, got)

	var lexErr *LexicalError
	if assert.ErrorAs(t, err, &lexErr) {
		assert.Equal(t, &Location{1, 5}, lexErr.Loc)
	}
}

func TestParserFailsFast(t *testing.T) {
	// Both statements are malformed; only the first is reported
	tokenizer := NewBufferedTokenizerMocker([]Token{
		{TokenIdentifier, "x", &Location{1, 1}},
		{TokenAssign, "=", &Location{1, 3}},
		{TokenSemicolon, ";", &Location{1, 5}},
		{TokenIdentifier, "y", &Location{1, 7}},
		{TokenIdentifier, "z", &Location{1, 9}},
		{TokenSemicolon, ";", &Location{1, 10}},
	})
	p := NewParser(tokenizer)

	_, err := p.Run()

	var synErr *SyntaxError
	if assert.ErrorAs(t, err, &synErr) {
		assert.Equal(t, &Location{1, 5}, synErr.Loc)
	}
}

func TestParserNumberOutOfRange(t *testing.T) {
	tokenizer := NewBufferedTokenizerMocker([]Token{
		{TokenIdentifier, "x", nil},
		{TokenAssign, "=", nil},
		{TokenNumber, "9223372036854775808", nil}, // one past MaxInt64
		{TokenSemicolon, ";", nil},
	})
	p := NewParser(tokenizer)

	_, err := p.Run()

	var synErr *SyntaxError
	assert.ErrorAs(t, err, &synErr)
}
