// Package main provides the CLI entrypoint for htmlc.
//
// htmlc compiles HTML templates into Go render functions:
//   - gen: compiles a template directory into one generated Go file
//   - check: prints the expression and context type of one template
//   - render: previews a template against YAML or JSON data
//   - init: writes an htmlc.yaml project file
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
)

const usage = `htmlc - compile HTML templates into Go render functions

Usage:
  htmlc gen    [-config htmlc.yaml] [-dir DIR] [-out FILE] [-pkg NAME] [-namespace NS]
  htmlc check  [-context NAME] [-namespace NS] FILE
  htmlc render [-data FILE] [-validate] [-sanitize] [-context NAME] [-namespace NS] FILE
  htmlc init   [-config htmlc.yaml] [-yes]

Every command accepts -v for debug logging.
`

// errUsage reports a malformed command line.
var errUsage = errors.New("invalid usage")

type app struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}

	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var cmd func([]string) error

	switch args[0] {
	case "gen":
		cmd = a.gen
	case "check":
		cmd = a.check
	case "render":
		cmd = a.render
	case "init":
		cmd = a.initConfig
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	if err := cmd(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "%v\n\n%s", err, usage)
			return 2
		}

		if a.logger != nil {
			a.logger.Error("command failed", "command", args[0], "error", err)
		} else {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}

		return 1
	}

	return 0
}

// newFlagSet returns a flag set with the shared -v flag. Parse errors are
// returned instead of exiting.
func (a *app) newFlagSet(name string, verbose *bool) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.BoolVar(verbose, "v", false, "enable debug logging")

	return fs
}

// parse parses args and sets up the logger.
func (a *app) parse(fs *flag.FlagSet, args []string, verbose *bool) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}

		return fmt.Errorf("%w: %v", errUsage, err)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}

	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))

	return nil
}

// fileArg returns the single positional FILE argument.
func fileArg(fs *flag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%w: %s expects exactly one FILE argument", errUsage, fs.Name())
	}

	return fs.Arg(0), nil
}
