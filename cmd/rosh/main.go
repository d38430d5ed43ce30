// rosh is an interactive ROS terminal on the host console.
//
// Usage:
//
//	rosh [flags]                 Start an interactive session
//	rosh -c "ls" -c "cd bin"     Run lines and exit
//
// Flags:
//
//	--storage-path   Directory holding the file system (default ~/.ros)
//	--memory         Keep the file system in memory only
//	--agent          Function-calling endpoint for unknown input
//	--no-color       Disable colored output
//	-c, --command    Line to run instead of the prompt (repeatable)
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/pflag"

	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/server"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "ros")
	}
	return filepath.Join(home, ".ros")
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rosh_history")
}

func run(args []string, out io.Writer) error {
	cfg := config.LoadOrDefault()
	cfg.Storage.Backend = "file"
	cfg.Storage.Path = defaultStoragePath()

	flags := pflag.NewFlagSet("rosh", pflag.ContinueOnError)
	flags.StringVar(&cfg.Storage.Path, "storage-path", cfg.Storage.Path, "directory holding the file system")
	memory := flags.Bool("memory", false, "keep the file system in memory only")
	flags.StringVar(&cfg.Agent.Endpoint, "agent", cfg.Agent.Endpoint, "function-calling endpoint for unknown input")
	noColor := flags.Bool("no-color", false, "disable colored output")
	commands := flags.StringArrayP("command", "c", nil, "line to run instead of the prompt (repeatable)")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if *memory {
		cfg.Storage.Backend = "memory"
	}
	if *noColor {
		color.NoColor = true
	}

	// Logs go to stderr so they never interleave with session output.
	logger, err := logging.New(logging.Config{Level: "error", OutputPaths: []string{"stderr"}})
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := context.Background()
	sys, err := server.NewSystem(ctx, cfg, logger, nil)
	if err != nil {
		return err
	}
	defer sys.Close()

	repl := NewREPL(sys, out)
	if len(*commands) > 0 {
		for _, line := range *commands {
			if err := repl.Eval(ctx, line); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				return err
			}
		}
		return nil
	}
	return interactive(ctx, repl)
}

func interactive(ctx context.Context, repl *REPL) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(repl.Complete)

	if f, err := os.Open(historyFile()); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile()); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	repl.Greet()
	for {
		input, err := line.Prompt(repl.Prompt())
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(repl.out)
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
		if input != "" {
			line.AppendHistory(input)
		}
		if err := repl.Eval(ctx, input); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			repl.errs.Fprintln(repl.out, err)
		}
	}
}
