package calc_go

import (
	"fmt"
	"strings"
)

// / An operation decoded from the head of a line.
type Operation int8

const (
	OpError Operation = iota
	OpSet
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpRem
	OpNeg
	OpPow
	OpSqrt
)

var opNames = [...]string{
	OpError: "ERR",
	OpSet:   "SET",
	OpAdd:   "+",
	OpSub:   "-",
	OpMul:   "*",
	OpDiv:   "/",
	OpRem:   "%",
	OpNeg:   "_",
	OpPow:   "^",
	OpSqrt:  "SQRT",
}

func (op Operation) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return fmt.Sprintf("Operation(%d)", int8(op))
	}
	return opNames[op]
}

// / Number of arguments the operation consumes, the accumulator included.
func Arity(op Operation) int {
	switch op {
	case OpNeg, OpSqrt:
		return 1
	case OpSet, OpAdd, OpSub, OpMul, OpDiv, OpRem, OpPow:
		return 2
	}
	return 0
}

type OpToken struct {
	Token string
	Op    Operation
	Desc  string
}

// / Literal tokens, longest first so that prefix matching picks the longest one.
var kOpTokens = []OpToken{
	{"SQRT", OpSqrt, "square root of the accumulator"},
	{"+", OpAdd, "add the argument"},
	{"-", OpSub, "subtract the argument"},
	{"*", OpMul, "multiply by the argument"},
	{"/", OpDiv, "divide by the argument"},
	{"%", OpRem, "remainder of division by the argument"},
	{"_", OpNeg, "negate the accumulator"},
	{"^", OpPow, "raise to the power of the argument"},
}

// / OpTokens returns the token table, used by `-t ops` and the service.
func OpTokens() []OpToken {
	return append([]OpToken(nil), kOpTokens...)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// / Decode the operation starting at cursor. A leading digit yields OpSet and is
// / left unconsumed. On failure the cursor is returned unchanged and the
// / diagnostic names the whole remaining text.
func DecodeOperation(line string, cursor int) (Operation, int, *Diagnostic) {
	if cursor < len(line) && isDigit(line[cursor]) {
		return OpSet, cursor, nil
	}
	rest := ""
	if cursor < len(line) {
		rest = line[cursor:]
	}
	for _, t := range kOpTokens {
		if strings.HasPrefix(rest, t.Token) {
			return t.Op, cursor + len(t.Token), nil
		}
	}
	return OpError, cursor, unknownOperation(rest)
}

func unknownOperation(rest string) *Diagnostic {
	word := leadingWord(rest)
	if len(word) > 1 {
		if suggestion := SpellcheckOperation(word); suggestion != "" {
			return newDiagnostic(UnknownOperation, "unknown operation '%s', did you mean '%s'?", rest, suggestion)
		}
	}
	return newDiagnostic(UnknownOperation, "unknown operation '%s'", rest)
}

func leadingWord(s string) string {
	i := 0
	for i < len(s) && (s[i] >= 'A' && s[i] <= 'Z' || s[i] >= 'a' && s[i] <= 'z') {
		i++
	}
	return s[:i]
}
