package calc_go

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tevino/abool/v2"
)

// / A one-shot flag with a channel that is closed when it is set.
type interruptFlag struct {
	set  *abool.AtomicBool
	done chan struct{}
}

func newInterruptFlag() *interruptFlag {
	return &interruptFlag{set: abool.New(), done: make(chan struct{})}
}

func (f *interruptFlag) Interrupt() {
	if f.set.SetToIf(false, true) {
		close(f.done)
	}
}

var gInterrupt = newInterruptFlag()

// / Interrupt stops a running read loop at the next line boundary. Safe to
// / call more than once.
func Interrupt() { gInterrupt.Interrupt() }

func Interrupted() bool { return gInterrupt.set.IsSet() }

// / The state of one calculator run: the accumulator and where output goes.
type CalcMain struct {
	Config    *CalcConfig
	Status    Status
	Evaluator *Evaluator
	Printer   *LinePrinter

	Acc float64
}

func NewCalcMain(config *CalcConfig, status Status, out io.Writer) *CalcMain {
	ret := &CalcMain{
		Config:    config,
		Status:    status,
		Evaluator: NewEvaluator(status),
		Printer:   NewLinePrinter(out, config),
		Acc:       config.Accumulator,
	}
	if config.Stats {
		ret.Evaluator.Metrics = NewMetrics()
	}
	return ret
}

// / EvalLine feeds one input line to the evaluator. Blank lines are skipped
// / and report false.
func (c *CalcMain) EvalLine(line string) bool {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return false
	}
	c.Acc = c.Evaluator.Evaluate(c.Acc, line)
	return true
}

// / Run reads lines from in until EOF or stop is closed, printing the
// / accumulator after every evaluated line.
func (c *CalcMain) Run(in io.Reader, stop <-chan struct{}) (ExitStatus, error) {
	lines := make(chan string)
	var scanErr error
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}
		}
		scanErr = scanner.Err()
	}()

	for {
		c.Printer.PrintPrompt(c.Config.Prompt)
		select {
		case <-stop:
			return ExitInterrupted, nil
		case line, ok := <-lines:
			if !ok {
				if scanErr != nil {
					return ExitFailure, fmt.Errorf("reading input: %w", scanErr)
				}
				return ExitSuccess, nil
			}
			line = strings.TrimRight(line, "\r")
			if c.EvalLine(line) {
				c.Printer.PrintResult(line, c.Acc)
			}
		}
	}
}

// / DumpMetrics prints the `-d stats` table.
func (c *CalcMain) DumpMetrics(w io.Writer) {
	if c.Evaluator.Metrics != nil {
		c.Evaluator.Metrics.Report(w)
	}
}
