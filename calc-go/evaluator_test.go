package calc_go

import (
	"math"
	"strings"
	"testing"
)

func evaluate(current float64, line string) (float64, Diagnostics) {
	var diags Diagnostics
	e := NewEvaluator(&diags)
	return e.Evaluate(current, line), diags
}

func TestEvaluateSingleLine(t *testing.T) {
	tcs := []struct {
		current float64
		line    string
		want    float64
	}{
		{10, "+5", 15},
		{10, "-5", 5},
		{10, "*2", 20},
		{10, "/4", 2.5},
		{10, "%3", 1},
		{-7, "%3", -1},
		{3, "^2", 9},
		{16, "SQRT", 4},
		{16, "SQRT  ", 4},
		{10, "_", -10},
		{-10, "_", 10},
		{10, "_ \t", -10},
		{10, "42", 42},
		{10, "007.5", 7.5},
		{10, "+ 5", 15},
		{10, "+\t5", 15},
		{10, "+1234567890", 1234567900},
	}
	for _, tc := range tcs {
		got, diags := evaluate(tc.current, tc.line)
		if got != tc.want {
			t.Fatalf("Evaluate(%v, %q)=%v; want %v", tc.current, tc.line, got, tc.want)
		}
		if len(diags) != 0 {
			t.Fatalf("Evaluate(%v, %q) reported %v", tc.current, tc.line, diags.Kinds())
		}
	}
}

func TestEvaluateFailuresKeepAccumulator(t *testing.T) {
	tcs := []struct {
		line  string
		kinds []Kind
	}{
		{"/0", []Kind{InvalidDomain}},
		{"/0.0", []Kind{InvalidDomain}},
		{"%0", []Kind{InvalidDomain}},
		{"&3", []Kind{UnknownOperation}},
		{"", []Kind{UnknownOperation}},
		{" +5", []Kind{UnknownOperation}},
		{"SQ", []Kind{UnknownOperation}},
		{"+", []Kind{MissingArgument}},
		{"+   ", []Kind{MissingArgument}},
		{"+x", []Kind{ArgumentParseError, MissingArgument}},
		{"+5x", []Kind{ArgumentParseError}},
		{"+5 ", []Kind{ArgumentParseError}},
		{"+-5", []Kind{ArgumentParseError, MissingArgument}},
		{"+12345678901", []Kind{ArgumentTrailingSuffix}},
		{"_5", []Kind{ArgumentTrailingSuffix}},
		{"SQRT 4", []Kind{ArgumentTrailingSuffix}},
	}
	for _, tc := range tcs {
		got, diags := evaluate(8, tc.line)
		if got != 8 {
			t.Fatalf("Evaluate(8, %q)=%v; want 8", tc.line, got)
		}
		kinds := diags.Kinds()
		if len(kinds) != len(tc.kinds) {
			t.Fatalf("Evaluate(8, %q) kinds=%v; want %v", tc.line, kinds, tc.kinds)
		}
		for i := range kinds {
			if kinds[i] != tc.kinds[i] {
				t.Fatalf("Evaluate(8, %q) kinds=%v; want %v", tc.line, kinds, tc.kinds)
			}
		}
	}
}

func TestEvaluateSqrtNonPositive(t *testing.T) {
	for _, x := range []float64{0, -4} {
		got, diags := evaluate(x, "SQRT")
		if got != x {
			t.Fatalf("Evaluate(%v, SQRT)=%v; want unchanged", x, got)
		}
		if !diags.Has(InvalidDomain) {
			t.Fatalf("Evaluate(%v, SQRT) kinds=%v; want InvalidDomain", x, diags.Kinds())
		}
	}
}

func TestEvaluateIdentities(t *testing.T) {
	for _, x := range []float64{0, 1, -3.5, 1e10, 123.456} {
		if got, _ := evaluate(x, "+0"); got != x {
			t.Fatalf("Evaluate(%v, +0)=%v", x, got)
		}
		if got, _ := evaluate(x, "*1"); got != x {
			t.Fatalf("Evaluate(%v, *1)=%v", x, got)
		}
		if got, _ := evaluate(x, "_"); got != -x {
			t.Fatalf("Evaluate(%v, _)=%v", x, got)
		}
		if got, _ := evaluate(x, "+5"); got != x+5 {
			t.Fatalf("Evaluate(%v, +5)=%v", x, got)
		}
		if got, _ := evaluate(x, "-5"); got != x-5 {
			t.Fatalf("Evaluate(%v, -5)=%v", x, got)
		}
		if got, _ := evaluate(x, "*2"); got != 2*x {
			t.Fatalf("Evaluate(%v, *2)=%v", x, got)
		}
	}
}

func TestEvaluatePowPropagatesNaN(t *testing.T) {
	got, diags := evaluate(-4, "^0.5")
	if !math.IsNaN(got) {
		t.Fatalf("Evaluate(-4, ^0.5)=%v; want NaN", got)
	}
	if len(diags) != 0 {
		t.Fatalf("Evaluate(-4, ^0.5) reported %v", diags.Kinds())
	}
}

func TestEvaluateUnknownOperationMessage(t *testing.T) {
	_, diags := evaluate(1, "&3")
	if len(diags) != 1 || !strings.Contains(diags[0].Error(), "unknown operation") {
		t.Fatalf("diags=%v; want an unknown operation message", diags)
	}
}

func TestBinaryAndUnary(t *testing.T) {
	if v, d := Binary(OpSet, 3, 9); v != 9 || d != nil {
		t.Fatalf("Binary(Set)=%v,%v", v, d)
	}
	if v, d := Binary(OpDiv, 3, 0); v != 3 || d == nil || d.Kind != InvalidDomain {
		t.Fatalf("Binary(Div, 0)=%v,%v", v, d)
	}
	if v, d := Binary(OpRem, 7.5, 2); v != 1.5 || d != nil {
		t.Fatalf("Binary(Rem)=%v,%v", v, d)
	}
	if v, d := Binary(OpError, 3, 1); v != 3 || d != nil {
		t.Fatalf("Binary(Error)=%v,%v", v, d)
	}
	if v, d := Unary(OpNeg, 0); v != 0 || d != nil {
		t.Fatalf("Unary(Neg, 0)=%v,%v", v, d)
	}
	if v, d := Unary(OpSqrt, 2.25); v != 1.5 || d != nil {
		t.Fatalf("Unary(Sqrt)=%v,%v", v, d)
	}
}

func TestNewEvaluatorNilReporter(t *testing.T) {
	e := NewEvaluator(nil)
	if got := e.Evaluate(1, "/0"); got != 1 {
		t.Fatalf("Evaluate(1, /0)=%v; want 1", got)
	}
}

func TestEvaluatorMetrics(t *testing.T) {
	e := NewEvaluator(nil)
	e.Metrics = NewMetrics()
	acc := 0.0
	for _, line := range []string{"5", "+1", "+2", "(* 2 3)"} {
		acc = e.Evaluate(acc, line)
	}
	if acc != 48 {
		t.Fatalf("acc=%v; want 48", acc)
	}
	if m, ok := e.Metrics.Lookup("+"); !ok || m.Count != 2 {
		t.Fatalf("metric + = %+v, %v; want count 2", m, ok)
	}
	if m, ok := e.Metrics.Lookup("fold *"); !ok || m.Count != 1 {
		t.Fatalf("metric fold * = %+v, %v; want count 1", m, ok)
	}
	if _, ok := e.Metrics.Lookup("SET"); !ok {
		t.Fatalf("metric SET missing")
	}
}
