package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"srstetris/client"
	"srstetris/config"
	"srstetris/tetris"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/kirsle/configdir"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\033[28;0H\n\r\033[?25h"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "srstetris",
		Short:        "Tetris in the terminal with the Super Rotation System",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         run,
	}
	config.Flags(cmd.Flags())
	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	o, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) { //nolint:gosec
		return errors.New("srstetris needs to run in an interactive terminal")
	}

	logger, closeLog, err := newLogger(o)
	if err != nil {
		return err
	}
	defer closeLog()

	c, err := client.New(logger, &client.Options{NoGhost: o.NoGhost, Level: o.Level})
	if err != nil {
		logger.Error("unable to start the client", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Error("unable to close the keyboard", slog.String("error", err.Error()))
		}
	}()

	fmt.Print(hideCursor)
	c.Start()
	fmt.Print(showCursor)

	if last := c.Last(); last != nil {
		printSummary(cmd.OutOrStdout(), last)
	}
	return nil
}

// newLogger logs to a file because the terminal belongs to the game.
func newLogger(o *config.Options) (*slog.Logger, func(), error) {
	level, err := o.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	if err := configdir.MakePath(filepath.Dir(o.LogFile)); err != nil {
		return nil, nil, fmt.Errorf("unable to create log directory: %w", err)
	}
	f, err := os.OpenFile(o.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open log file: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { f.Close() }, nil
}

func printSummary(w io.Writer, t *tetris.Tetris) {
	bold := color.New(color.Bold).SprintFunc()
	value := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Fprintln(w, bold("Last game"))
	fmt.Fprintf(w, "  score: %s\n", value(humanize.Comma(int64(t.Score))))
	fmt.Fprintf(w, "  level: %s\n", value(t.Level))
	fmt.Fprintf(w, "  lines: %s\n", value(humanize.Comma(int64(t.LinesClear))))
}
