package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// setupLogger configures the process logger from the CLI flags. The
// returned cleanup closes the log file, if one was opened.
func setupLogger(cli *CLI) (*log.Logger, func(), error) {
	level := log.InfoLevel
	if cli.Debug {
		level = log.DebugLevel
	}

	var out io.Writer = os.Stderr
	cleanup := func() {}

	switch {
	case cli.NoLog:
		out = io.Discard
	case cli.LogFile != "":
		f, err := os.OpenFile(cli.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		cleanup = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
	return logger, cleanup, nil
}
