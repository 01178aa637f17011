package calc_go

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// / Status is where the calculator tells the user what happened.
type Status interface {
	Reporter
	Info(msg string, args ...interface{})
	Warning(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

type StatusPrinter struct {
	out io.Writer

	errorColor   *color.Color
	warningColor *color.Color
	kindColor    *color.Color
}

func NewStatusPrinter(out io.Writer, config *CalcConfig) *StatusPrinter {
	ret := &StatusPrinter{
		out:          out,
		errorColor:   color.New(color.FgRed, color.Bold),
		warningColor: color.New(color.FgYellow),
		kindColor:    color.New(color.Bold),
	}

	supportsColor := false
	switch config.Color {
	case ColorAlways:
		supportsColor = true
	case ColorNever:
	default:
		supportsColor = isSmartTerminal(out)
		if !supportsColor {
			force := os.Getenv("CLICOLOR_FORCE")
			supportsColor = force != "" && force != "0"
		}
	}
	for _, c := range []*color.Color{ret.errorColor, ret.warningColor, ret.kindColor} {
		if supportsColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return ret
}

func (s *StatusPrinter) Info(msg string, args ...interface{}) {
	fmt.Fprintf(s.out, "calc: "+msg+"\n", args...)
}

func (s *StatusPrinter) Warning(msg string, args ...interface{}) {
	s.warningColor.Fprint(s.out, "calc: warning: ")
	fmt.Fprintf(s.out, msg+"\n", args...)
}

func (s *StatusPrinter) Error(msg string, args ...interface{}) {
	s.errorColor.Fprint(s.out, "calc: error: ")
	fmt.Fprintf(s.out, msg+"\n", args...)
}

// / Report prints a diagnostic as a warning line tagged with its kind; the
// / calculator goes on with the unchanged accumulator.
func (s *StatusPrinter) Report(d *Diagnostic) {
	s.warningColor.Fprint(s.out, "calc: ")
	s.kindColor.Fprint(s.out, d.Kind.String())
	fmt.Fprintf(s.out, ": %s\n", d.Msg)
}
