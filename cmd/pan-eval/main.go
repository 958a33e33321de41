package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/lyraproj/pan-evaluator/compiler"
	"github.com/lyraproj/pan-evaluator/config"
	"github.com/lyraproj/pan-evaluator/dml"
	"github.com/lyraproj/pan-evaluator/evaluator"
	"github.com/lyraproj/pan-evaluator/export"
	"github.com/lyraproj/pan-evaluator/yaml"
)

// exitError carries the exit code of a failed run
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func main() {
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if ee, ok := err.(*exitError); ok {
			os.Exit(ee.code)
		}
		os.Exit(1)
	}
}

func run(out, errOut io.Writer, args []string) error {
	flags := flag.NewFlagSet(`pan-eval`, flag.ContinueOnError)
	flags.SetOutput(errOut)
	flags.Usage = func() {
		fmt.Fprint(errOut, `
pan-eval compiles YAML templates into profiles.

Usage:
  pan-eval [options] TEMPLATE...

Options:
`)
		flags.PrintDefaults()
	}
	settingsPath := flags.String(`config`, ``, `Path to a YAML settings file.`)
	workers := flags.Int(`workers`, 0, `Number of templates compiled concurrently. Overrides the settings.`)
	logLevel := flags.String(`log-level`, ``, `Log level. Overrides the settings.`)
	format := flags.String(`format`, `yaml`, `Output format. Options: 'yaml' or 'json'.`)

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return &exitError{2, err}
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return &exitError{2, fmt.Errorf(`no templates given`)}
	}
	if *format != `yaml` && *format != `json` {
		return &exitError{2, fmt.Errorf(`unknown format '%s'`, *format)}
	}

	settings, err := loadSettings(*settingsPath, *workers, *logLevel)
	if err != nil {
		return err
	}

	handler := slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: evaluator.SlogLevel(settings.LogLevel)})
	logger := evaluator.NewStdLogger(slog.New(handler))

	c, err := compiler.New(settings, logger)
	if err != nil {
		return err
	}

	templates := make([]*compiler.Template, 0, flags.NArg())
	for _, path := range flags.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		tpl, err := compiler.ParseTemplate(path, data)
		if err != nil {
			return err
		}
		templates = append(templates, tpl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	profiles, compileErr := c.CompileAll(ctx, templates)
	for _, p := range profiles {
		if err := writeProfile(out, p, *format); err != nil {
			return err
		}
	}
	if compileErr != nil {
		return &exitError{1, compileErr}
	}
	return nil
}

func loadSettings(path string, workers int, logLevel string) (*config.Settings, error) {
	var settings *config.Settings
	var err error
	if path == `` {
		settings, err = config.Parse(nil)
	} else {
		settings, err = config.Load(path)
	}
	if err != nil {
		return nil, err
	}
	if workers > 0 {
		settings.Workers = workers
	}
	if logLevel != `` {
		settings.LogLevel = dml.LogLevel(logLevel)
	}
	return settings, settings.Validate()
}

func writeProfile(out io.Writer, p *compiler.Profile, format string) error {
	var data []byte
	var err error
	if format == `json` {
		data, err = export.JSON(p.Root)
		if err == nil {
			data = append(data, '\n')
		}
	} else {
		fmt.Fprintf(out, "--- # %s (%s)\n", p.Object, p.Template)
		data, err = yaml.Marshal(p.Root)
	}
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
