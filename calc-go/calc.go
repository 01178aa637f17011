package calc_go

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"git.sr.ht/~sircmpwn/getopt"
)

// / Command-line options.
type Options struct {
	/// File to read lines from, stdin when empty.
	InputFile string

	/// Config file to load before the other flags apply.
	ConfigFile string

	/// Directory to change into before running.
	WorkingDir string

	/// Tool to run rather than the read loop.
	Tool *Tool
}

// / The type of functions that are the entry points to tools (subcommands).
type ToolFunc func(c *CalcMain, options *Options, args []string) ExitStatus

// / Subtools, accessible via "-t foo".
type Tool struct {
	/// Short name of the tool.
	Name string

	/// Description (shown in "-t list").
	Desc string

	/// Implementation of the tool.
	Func ToolFunc
}

var kTools []Tool

func init() {
	kTools = []Tool{
		{"eval", "evaluate the remaining arguments as input lines", ToolEval},
		{"ops", "list the operations and their arity", ToolOps},
		{"list", "list subtools", ToolList},
	}
}

// / Look up a tool, suggesting a near match when there is none.
func ChooseTool(toolName string) (*Tool, error) {
	words := []string{}
	for i := range kTools {
		if kTools[i].Name == toolName {
			return &kTools[i], nil
		}
		words = append(words, kTools[i].Name)
	}
	if suggestion := SpellcheckStringV(toolName, words); suggestion != "" {
		return nil, fmt.Errorf("unknown tool '%s', did you mean '%s'?", toolName, suggestion)
	}
	return nil, fmt.Errorf("unknown tool '%s'", toolName)
}

// / Enable a debugging mode. Returns false if calc should exit instead of
// / continuing.
func DebugEnable(name string, config *CalcConfig, out io.Writer) (bool, error) {
	switch name {
	case "list":
		fmt.Fprint(out, "debugging modes:\n"+
			"  stats        print operation counts/timing info\n"+
			"multiple modes can be enabled via -d FOO -d BAR\n")
		return false, nil
	case "stats":
		config.Stats = true
		return true, nil
	}
	if suggestion := SpellcheckStringV(name, []string{"stats", "list"}); suggestion != "" {
		return false, fmt.Errorf("unknown debug setting '%s', did you mean '%s'?", name, suggestion)
	}
	return false, fmt.Errorf("unknown debug setting '%s'", name)
}

const kOptString = "a:c:C:d:f:hp:qt:vV"

// / Parse argv for command-line options. args is left holding the
// / positional arguments. Returns an exit code, or -1 if calc should continue.
func ReadFlags(args *[]string, options *Options, config *CalcConfig, out, errOut io.Writer) int {
	opts, optind, err := getopt.Getopts(*args, kOptString)
	if err != nil {
		fmt.Fprintf(errOut, "calc: %v\n", err)
		UsageMain(errOut, config)
		return int(ExitFailure)
	}
	*args = (*args)[optind:]

	// The config file is the base layer, whatever its position on the command line.
	for _, optV := range opts {
		if optV.Option == 'c' {
			options.ConfigFile = optV.Value
			if err := LoadConfigFile(optV.Value, config); err != nil {
				fmt.Fprintf(errOut, "calc: error: %v\n", err)
				return int(ExitFailure)
			}
		}
	}

	for _, optV := range opts {
		optarg := optV.Value
		switch optV.Option {
		case 'c':
		case 'a':
			value, err := strconv.ParseFloat(optarg, 64)
			if err != nil {
				fmt.Fprintf(errOut, "calc: error: -a parameter not numeric: '%s'\n", optarg)
				return int(ExitFailure)
			}
			config.Accumulator = value
		case 'C':
			options.WorkingDir = optarg
		case 'd':
			ok, err := DebugEnable(optarg, config, out)
			if err != nil {
				fmt.Fprintf(errOut, "calc: error: %v\n", err)
				return int(ExitFailure)
			}
			if !ok {
				return int(ExitSuccess)
			}
		case 'f':
			options.InputFile = optarg
		case 'p':
			value, err := strconv.Atoi(optarg)
			if err != nil || value < -1 {
				fmt.Fprintf(errOut, "calc: error: invalid -p parameter '%s'\n", optarg)
				return int(ExitFailure)
			}
			config.Precision = value
		case 'q':
			config.Verbosity = QUIET
		case 't':
			tool, err := ChooseTool(optarg)
			if err != nil {
				fmt.Fprintf(errOut, "calc: error: %v\n", err)
				return int(ExitFailure)
			}
			options.Tool = tool
		case 'v':
			config.Verbosity = VERBOSE
		case 'V':
			fmt.Fprintf(out, "%s\n", kCalcVersion)
			return int(ExitSuccess)
		default: // case 'h':
			UsageMain(errOut, config)
			return int(ExitFailure)
		}
	}
	return -1
}

// / Print usage information.
func UsageMain(w io.Writer, config *CalcConfig) {
	fmt.Fprintf(w,
		"usage: calc [options] [-t TOOL [-- args...]]\n"+
			"\n"+
			"reads one operation per line and prints the running value.\n"+
			"\n"+
			"options:\n"+
			"  -V       print calc version (\"%s\")\n"+
			"  -v       echo every line next to its result\n"+
			"  -q       don't print the prompt\n"+
			"\n"+
			"  -C DIR   change to DIR before doing anything else\n"+
			"  -c FILE  load a YAML config file\n"+
			"  -f FILE  read lines from FILE [default=stdin]\n"+
			"  -a N     start from accumulator N [default=%s]\n"+
			"  -p N     print N significant digits (-1 means shortest) [default=%d]\n"+
			"\n"+
			"  -d MODE  enable debugging (use '-d list' to list modes)\n"+
			"  -t TOOL  run a subtool (use '-t list' to list subtools)\n"+
			"    put '--' before tool arguments that start with '-'\n",
		kCalcVersion, FormatValue(config.Accumulator, -1), config.Precision)
}

func ToolList(c *CalcMain, options *Options, args []string) ExitStatus {
	fmt.Fprintf(c.Printer.out, "calc subtools:\n")
	for _, tool := range kTools {
		fmt.Fprintf(c.Printer.out, "%11s  %s\n", tool.Name, tool.Desc)
	}
	return ExitSuccess
}

func ToolOps(c *CalcMain, options *Options, args []string) ExitStatus {
	fmt.Fprintf(c.Printer.out, "%-6s %-5s %s\n", "token", "arity", "description")
	fmt.Fprintf(c.Printer.out, "%-6s %-5d %s\n", "0-9", Arity(OpSet), "set the accumulator to the number")
	for _, t := range kOpTokens {
		fmt.Fprintf(c.Printer.out, "%-6s %-5d %s\n", t.Token, Arity(t.Op), t.Desc)
	}
	fmt.Fprintf(c.Printer.out, "\nfold: '(op a b c)' or '(op) a b c' applies a binary op left to right\n")
	return ExitSuccess
}

// / Evaluate each argument as a line; prints every step with -v, otherwise
// / only the final value.
func ToolEval(c *CalcMain, options *Options, args []string) ExitStatus {
	if len(args) == 0 {
		c.Status.Error("expected at least one line to evaluate")
		return ExitFailure
	}
	for _, line := range args {
		if c.EvalLine(line) && c.Config.Verbosity == VERBOSE {
			c.Printer.PrintResult(line, c.Acc)
		}
	}
	if c.Config.Verbosity != VERBOSE {
		fmt.Fprintln(c.Printer.out, FormatValue(c.Acc, c.Config.Precision))
	}
	return ExitSuccess
}

// / RealMain runs calc with the given argv and streams and returns the
// / process exit code.
func RealMain(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	config := NewCalcConfig()
	options := Options{}

	if exitCode := ReadFlags(&args, &options, config, stdout, stderr); exitCode >= 0 {
		return exitCode
	}

	status := NewStatusPrinter(stderr, config)
	for _, w := range config.Warnings {
		status.Warning("%s", w)
	}

	if options.WorkingDir != "" {
		if err := os.Chdir(options.WorkingDir); err != nil {
			status.Error("chdir to '%s' - %v", options.WorkingDir, err)
			return int(ExitFailure)
		}
	}

	c := NewCalcMain(config, status, stdout)
	defer c.DumpMetrics(stdout)

	if options.Tool != nil {
		if len(args) > 0 && args[0] == "--" {
			args = args[1:]
		}
		return int(options.Tool.Func(c, &options, args))
	}
	if len(args) != 0 {
		status.Error("unexpected arguments %q; use '-t eval' to evaluate lines", args)
		return int(ExitFailure)
	}

	in := stdin
	if options.InputFile != "" {
		f, err := os.Open(options.InputFile)
		if err != nil {
			status.Error("%v", err)
			return int(ExitFailure)
		}
		defer f.Close()
		in = f
	} else if f, ok := stdin.(*os.File); ok && isatty(f.Fd()) {
		c.Printer.SetInteractive(true)
	}

	result, err := c.Run(in, gInterrupt.done)
	if err != nil {
		status.Error("%v", err)
	}
	return int(result)
}
