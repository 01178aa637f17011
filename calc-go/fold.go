package calc_go

import (
	"strings"

	"github.com/edwingeng/deque"
)

// / Recognise a bracketed fold line and strip one layer of brackets.
// /
// / Two shapes are accepted: "(op) a b c", where the ')' directly follows the
// / operation token, and "(op a b c)", where ')' is the last non-blank byte.
// / Anything else is not a fold line and is decoded as is.
func foldBody(line string) (string, bool) {
	if len(line) < 2 || line[0] != '(' {
		return "", false
	}
	_, end, _ := DecodeOperation(line, 1)
	if end < len(line) && line[end] == ')' {
		return line[1:end] + line[end+1:], true
	}
	trimmed := strings.TrimRightFunc(line, isASCIISpace)
	if last := len(trimmed) - 1; last > 0 && trimmed[last] == ')' {
		return trimmed[1:last], true
	}
	return "", false
}

// / Left-fold one binary operation over the whitespace separated arguments of
// / body, which holds the operation token followed by the arguments. Any
// / failure discards the partial result and returns current.
func (e *Evaluator) LeftFold(current float64, body string) float64 {
	op, i, diag := DecodeOperation(body, 0)
	if op == OpError {
		e.report(diag)
		return current
	}
	if Arity(op) != 2 || op == OpSet {
		e.report(newDiagnostic(MalformedFold, "left fold works only with binary operations, got '%s'", op))
		return current
	}

	args := deque.NewDeque()
	for _, tok := range strings.FieldsFunc(body[i:], isASCIISpace) {
		args.PushBack(tok)
	}
	if args.Empty() {
		e.report(newDiagnostic(MalformedFold, "no arguments for a left fold"))
		return current
	}

	acc := current
	for !args.Empty() {
		tok := args.Front().(string)
		args.PopFront()

		arg := ParseArgument(tok, 0)
		if !arg.Valid || arg.End < len(tok) {
			e.report(arg.Diag)
			return current
		}
		next, diag := Binary(op, acc, arg.Value)
		if diag != nil {
			e.report(diag)
			return current
		}
		acc = next
	}
	return acc
}
