package calc_go

import (
	"math"
	"os"
)

// / Apply a unary operation to the accumulator. On a domain failure the value
// / comes back unchanged together with the diagnostic.
func Unary(op Operation, current float64) (float64, *Diagnostic) {
	switch op {
	case OpNeg:
		return -current, nil
	case OpSqrt:
		if current > 0 {
			return math.Sqrt(current), nil
		}
		return current, newDiagnostic(InvalidDomain, "bad argument for SQRT: %s", FormatValue(current, -1))
	}
	return current, nil
}

// / Apply a binary operation with left as the accumulator. A non-nil
// / diagnostic means the caller must drop the line's effect.
func Binary(op Operation, left, right float64) (float64, *Diagnostic) {
	switch op {
	case OpSet:
		return right, nil
	case OpAdd:
		return left + right, nil
	case OpSub:
		return left - right, nil
	case OpMul:
		return left * right, nil
	case OpDiv:
		if right != 0 {
			return left / right, nil
		}
		return left, newDiagnostic(InvalidDomain, "bad right argument for division: %s", FormatValue(right, -1))
	case OpRem:
		if right != 0 {
			return math.Mod(left, right), nil
		}
		return left, newDiagnostic(InvalidDomain, "bad right argument for remainder: %s", FormatValue(right, -1))
	case OpPow:
		return math.Pow(left, right), nil
	}
	return left, nil
}

// / An Evaluator maps (accumulator, line) to a new accumulator. It keeps no
// / state between calls besides optional metrics.
type Evaluator struct {
	Reporter Reporter
	Metrics  *Metrics
}

func NewEvaluator(reporter Reporter) *Evaluator {
	if reporter == nil {
		reporter = ReporterFunc(func(*Diagnostic) {})
	}
	return &Evaluator{Reporter: reporter}
}

var defaultEvaluator = NewEvaluator(NewStatusPrinter(os.Stderr, NewCalcConfig()))

// / Evaluate with diagnostics going to stderr.
func Evaluate(current float64, line string) float64 {
	return defaultEvaluator.Evaluate(current, line)
}

func (e *Evaluator) report(d *Diagnostic) {
	if d != nil {
		e.Reporter.Report(d)
	}
}

// / Evaluate one line against current. Every failure is reported and leaves
// / the returned value equal to current.
func (e *Evaluator) Evaluate(current float64, line string) float64 {
	if e.Metrics != nil {
		sw := NewStopwatch()
		defer func() { e.Metrics.Record(metricName(line), sw.ElapsedNanos()) }()
	}
	if body, ok := foldBody(line); ok {
		return e.LeftFold(current, body)
	}
	return e.processSingle(current, line)
}

func (e *Evaluator) processSingle(current float64, line string) float64 {
	op, i, diag := DecodeOperation(line, 0)
	switch Arity(op) {
	case 2:
		i = skipWhitespace(line, i)
		arg := ParseArgument(line, i)
		e.report(arg.Diag)
		if !arg.Consumed(i) {
			e.report(newDiagnostic(MissingArgument, "no argument for a binary operation"))
			return current
		}
		if !arg.Valid || arg.End < len(line) {
			return current
		}
		res, diag := Binary(op, current, arg.Value)
		if diag != nil {
			e.report(diag)
			return current
		}
		return res
	case 1:
		if skipWhitespace(line, i) < len(line) {
			e.report(newDiagnostic(ArgumentTrailingSuffix, "unexpected suffix for a unary operation: '%s'", line[i:]))
			return current
		}
		res, diag := Unary(op, current)
		e.report(diag)
		return res
	}
	e.report(diag)
	return current
}

func skipWhitespace(line string, i int) int {
	for i < len(line) && isSpace(line[i]) {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isASCIISpace(r rune) bool { return r < 0x80 && isSpace(byte(r)) }
