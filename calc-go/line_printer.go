package calc_go

import (
	"fmt"
	"io"
	"os"
	"strconv"
)

// / isatty checks whether the file descriptor refers to a character device.
func isatty(fd uintptr) bool {
	st, err := os.Stat(fmt.Sprintf("/proc/self/fd/%d", fd))
	if err != nil {
		return false
	}
	return st.Mode()&os.ModeCharDevice != 0
}

// / Whether w is a terminal that understands control codes.
func isSmartTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	term := os.Getenv("TERM")
	return isatty(f.Fd()) && term != "" && term != "dumb"
}

// / FormatValue renders an accumulator value; precision -1 is the shortest
// / form that parses back to the same float64.
func FormatValue(v float64, precision int) string {
	return strconv.FormatFloat(v, 'g', precision, 64)
}

// / Prints results and the prompt.
type LinePrinter struct {
	out       io.Writer
	precision int
	verbosity Verbosity

	/// Whether a prompt makes sense, i.e. input comes from a terminal.
	interactive bool
}

func NewLinePrinter(out io.Writer, config *CalcConfig) *LinePrinter {
	return &LinePrinter{
		out:       out,
		precision: config.Precision,
		verbosity: config.Verbosity,
	}
}

func (p *LinePrinter) SetInteractive(interactive bool) { p.interactive = interactive }

func (p *LinePrinter) PrintPrompt(prompt string) {
	if p.interactive && p.verbosity != QUIET && prompt != "" {
		fmt.Fprint(p.out, prompt)
	}
}

// / Prints the value produced by line.
func (p *LinePrinter) PrintResult(line string, v float64) {
	if p.verbosity == VERBOSE {
		fmt.Fprintf(p.out, "%s = %s\n", line, FormatValue(v, p.precision))
		return
	}
	fmt.Fprintln(p.out, FormatValue(v, p.precision))
}
