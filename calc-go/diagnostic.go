package calc_go

import "fmt"

// / Class of a non-fatal evaluation failure.
type Kind int8

const (
	UnknownOperation Kind = iota
	ArgumentParseError
	ArgumentTrailingSuffix
	MissingArgument
	InvalidDomain
	MalformedFold
)

var kindNames = [...]string{
	UnknownOperation:       "UnknownOperation",
	ArgumentParseError:     "ArgumentParseError",
	ArgumentTrailingSuffix: "ArgumentTrailingSuffix",
	MissingArgument:        "MissingArgument",
	InvalidDomain:          "InvalidDomain",
	MalformedFold:          "MalformedFold",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int8(k))
	}
	return kindNames[k]
}

// / A Diagnostic is reported once, at the point the failure is detected.
type Diagnostic struct {
	Kind Kind
	Msg  string
}

func newDiagnostic(kind Kind, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func (d *Diagnostic) Error() string { return d.Msg }

// / Side channel for diagnostics.
type Reporter interface {
	Report(d *Diagnostic)
}

type ReporterFunc func(d *Diagnostic)

func (f ReporterFunc) Report(d *Diagnostic) { f(d) }

// / Diagnostics collects everything reported to it, in order.
type Diagnostics []*Diagnostic

func (ds *Diagnostics) Report(d *Diagnostic) { *ds = append(*ds, d) }

// / Kinds lists the kind of every collected diagnostic.
func (ds Diagnostics) Kinds() []Kind {
	kinds := make([]Kind, 0, len(ds))
	for _, d := range ds {
		kinds = append(kinds, d.Kind)
	}
	return kinds
}

// / Has reports whether a diagnostic of the given kind was collected.
func (ds Diagnostics) Has(kind Kind) bool {
	for _, d := range ds {
		if d.Kind == kind {
			return true
		}
	}
	return false
}
