package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/stepflow"
	"github.com/viant/stepflow/service/dao/document"
)

const version = "0.1.0"

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*ExitError); ok {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// defaultDestination places the definition next to the source: orders.yaml -> orders.asl.json
func defaultDestination(source string) string {
	return strings.TrimSuffix(source, path.Ext(source)) + ".asl.json"
}

func run(outW, logW io.Writer, args []string) error {
	opts, err := parse(args, outW)
	if err != nil || opts == nil {
		return err
	}
	ctx := context.Background()
	config := stepflow.DefaultConfig()
	if opts.configURL != "" {
		if config, err = stepflow.LoadConfig(ctx, url.Normalize(opts.configURL, file.Scheme)); err != nil {
			return err
		}
	}
	if opts.baseURL != "" {
		config.Output.BaseURL = opts.baseURL
	}
	if opts.functionFormat != "" {
		config.Target.FunctionNameFormat = opts.functionFormat
	}
	options := []stepflow.Option{
		stepflow.WithConfig(config),
		stepflow.WithLogger(newLogger(opts.logLevel, opts.logFormat, logW)),
	}
	if opts.traceFile != "" {
		options = append(options, stepflow.WithTracing("stepflow", version, opts.traceFile))
	}
	srv := stepflow.New(options...)
	source := url.Normalize(opts.source, file.Scheme)
	destination := opts.destination
	if !opts.toStdout() && config.Output.BaseURL == "" {
		if destination == "" {
			destination = defaultDestination(opts.source)
		}
		destination = url.Normalize(destination, file.Scheme)
	}

	switch {
	case opts.check:
		drift, err := srv.Check(ctx, source, destination)
		if err != nil {
			return err
		}
		if drift.Missing {
			return &ExitError{Code: exitDrift, Message: fmt.Sprintf("definition %s does not exist", drift.URL)}
		}
		if drift.HasChanges() {
			fmt.Fprint(outW, drift.Diff)
			return &ExitError{Code: exitDrift, Message: fmt.Sprintf("definition %s is outdated", drift.URL)}
		}
		fmt.Fprintf(outW, "definition %s is up to date\n", drift.URL)
	case opts.toStdout():
		definition, err := srv.CompileLocation(ctx, source)
		if err != nil {
			return err
		}
		data, err := document.Encode(definition)
		if err != nil {
			return err
		}
		_, err = outW.Write(data)
		return err
	default:
		if _, err := srv.Build(ctx, source, destination); err != nil {
			return err
		}
	}
	return nil
}
