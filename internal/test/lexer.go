package test

import (
	"fmt"
	"math/rand"
	"strings"
)

const validTokens = "x,y,z,count,total,a1,b2,longVariableName,(,),=,;,+,-,*,0,1,42,123,321,9001,\n"

// GetRandomTokens produces a whitespace-separated soup of valid tokens. The
// result is lexically valid but rarely grammatical; it only feeds the lexer.
func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ",")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}

// GetRandomProgram produces a grammatical program of the given number of
// assignments, each referring only to already-assigned variables.
func GetRandomProgram(statements int) string {
	var str strings.Builder

	for i := 0; i < statements; i++ {
		fmt.Fprintf(&str, "v%d = %d", i, rand.Intn(1000)+1)
		if i > 0 {
			fmt.Fprintf(&str, " + v%d * %d", rand.Intn(i), rand.Intn(9)+1)
		}
		str.WriteString(";\n")
	}

	return str.String()
}
