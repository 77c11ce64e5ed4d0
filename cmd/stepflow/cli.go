package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ExitError carries a process exit code
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

const (
	exitUsage = 2
	exitDrift = 3
)

type options struct {
	source         string
	destination    string
	configURL      string
	baseURL        string
	functionFormat string
	check          bool
	traceFile      string
	logFormat      string
	logLevel       string
}

// toStdout returns true when the definition should be printed instead of stored
func (o *options) toStdout() bool {
	return o.destination == "-"
}

// parse processes command-line arguments; it returns nil options when the program should exit cleanly
func parse(args []string, output io.Writer) (*options, error) {
	flagSet := flag.NewFlagSet("stepflow", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, `
stepflow - compiles workflow sources into JSONata state machine definitions.

Usage:
  stepflow [options] WORKFLOW_URL

Arguments:
  WORKFLOW_URL
    Workflow source (YAML or JSON), a local path or any afs URL.

Options:
`)
		flagSet.PrintDefaults()
	}
	ret := &options{}
	flagSet.StringVar(&ret.destination, "o", "", "Definition destination: name or URL; '-' prints to stdout. Defaults to the workflow name under -base.")
	flagSet.StringVar(&ret.configURL, "config", "", "Configuration URL (YAML or JSON).")
	flagSet.StringVar(&ret.baseURL, "base", "", "Base URL for stored definitions, overrides output.baseURL.")
	flagSet.StringVar(&ret.functionFormat, "function-format", "", "Function name format with {task} and {workflow} placeholders.")
	flagSet.BoolVar(&ret.check, "check", false, "Compare the stored definition with a fresh compilation and print a unified diff.")
	flagSet.StringVar(&ret.traceFile, "trace", "", "Write OpenTelemetry spans to the file.")
	flagSet.StringVar(&ret.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flagSet.StringVar(&ret.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, nil
		}
		return nil, &ExitError{Code: exitUsage, Message: err.Error()}
	}
	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, nil
	}
	ret.source = flagSet.Arg(0)
	ret.logFormat = strings.ToLower(ret.logFormat)
	if ret.logFormat != "text" && ret.logFormat != "json" {
		return nil, &ExitError{Code: exitUsage, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	ret.logLevel = strings.ToLower(ret.logLevel)
	if _, ok := logLevels[ret.logLevel]; !ok {
		return nil, &ExitError{Code: exitUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	if ret.check && ret.toStdout() {
		return nil, &ExitError{Code: exitUsage, Message: "-check requires a stored definition, not '-'"}
	}
	return ret, nil
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func newLogger(level, format string, outW io.Writer) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: logLevels[level]}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(outW, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(outW, handlerOpts))
}
