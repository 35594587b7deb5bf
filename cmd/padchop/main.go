// SPDX-License-Identifier: EPL-2.0

// Command padchop slices audio files into pads and plays or renders them.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// logger is the command-wide structured logger. Safe to use before
// initLogger is called.
var logger = slog.Default()

var errUsage = errors.New("usage")

func initLogger(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	logger = slog.New(h)
	slog.SetDefault(logger)
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `usage: padchop <command> [flags] [file]

commands:
  slice    print the slice table of a sample
  render   play every pad in turn and write the result to a WAV file
  play     play the pads live from MIDI and the keyboard

run "padchop <command> -h" for the flags of a command`)
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "slice":
		return runSlice(rest, stdout, stderr)
	case "render":
		return runRender(rest, stdout, stderr)
	case "play":
		return runPlay(rest, stdout, stderr)
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return nil
	default:
		usage(stderr)
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
	case errors.Is(err, errUsage):
		os.Exit(2)
	default:
		logger.Error("padchop failed", "err", err)
		os.Exit(1)
	}
}
