package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"

	"github.com/GriffinCanCode/ros/backend/internal/domain/shell"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/server"
	"github.com/GriffinCanCode/ros/backend/internal/providers/settings"
	"github.com/GriffinCanCode/ros/backend/internal/providers/terminal"
	"github.com/GriffinCanCode/ros/backend/internal/shared/paths"
)

// errQuit ends the loop.
var errQuit = errors.New("quit")

const metaHelp = `rosh commands:
  :windows              list open windows
  :open <app> [file]    open an application window
  :export <file>        write a backup to the host file system
  :import <file>        restore a backup from the host file system
  :reset                restore the factory file system
  exit, quit            leave rosh`

// REPL runs terminal input against a System. Lines starting with ":"
// are rosh commands; everything else goes to the terminal session.
type REPL struct {
	sys     *server.System
	session string
	out     io.Writer

	model *color.Color
	errs  *color.Color
}

// NewREPL opens a terminal session on sys.
func NewREPL(sys *server.System, out io.Writer) *REPL {
	return &REPL{
		sys:     sys,
		session: sys.Terminals.CreateSession().ID,
		out:     out,
		model:   color.New(color.FgCyan),
		errs:    color.New(color.FgRed),
	}
}

// Prompt renders the cwd the way the desktop terminal does. It stays
// uncolored because liner measures the prompt in bytes.
func (r *REPL) Prompt() string {
	return fmt.Sprintf("ros:%s$ ", r.cwd())
}

func (r *REPL) cwd() string {
	if info, err := r.sys.Terminals.GetSession(r.session); err == nil {
		return info.Cwd
	}
	return paths.User
}

// Greet prints the terminal banner.
func (r *REPL) Greet() {
	r.model.Fprintln(r.out, terminal.Greeting)
	fmt.Fprintln(r.out, "Type :help for rosh commands.")
}

// Eval runs one line. It returns errQuit on exit.
func (r *REPL) Eval(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return nil
	case line == "exit" || line == "quit":
		return errQuit
	case strings.HasPrefix(line, ":"):
		if err := r.meta(strings.Fields(line[1:])); err != nil {
			r.errs.Fprintln(r.out, err)
		}
		return nil
	}

	out, err := r.sys.Terminals.Input(ctx, r.session, line)
	if err != nil {
		return err
	}
	if out.Cleared {
		fmt.Fprint(r.out, "\033[H\033[2J")
	}
	for _, msg := range out.Messages {
		if msg.Role == terminal.RoleModel {
			r.model.Fprintln(r.out, msg.Text)
		}
	}
	return nil
}

func (r *REPL) meta(fields []string) error {
	if len(fields) == 0 {
		return errors.New("missing rosh command, try :help")
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		fmt.Fprintln(r.out, metaHelp)
	case "windows":
		windows := r.sys.Shell.Windows().List()
		if len(windows) == 0 {
			fmt.Fprintln(r.out, "(no windows)")
		}
		active := r.sys.Shell.Windows().Active()
		for _, w := range windows {
			marker := " "
			if w.ID == active {
				marker = "*"
			}
			fmt.Fprintf(r.out, "%s %s  %-12s %s\n", marker, w.ID, w.AppID, w.FilePath())
		}
	case "open":
		if len(args) == 0 {
			return errors.New("usage: :open <app> [file]")
		}
		cmdArgs := map[string]any{"appId": args[0]}
		if len(args) > 1 {
			cmdArgs["filePath"] = paths.Resolve(r.cwd(), args[1])
		}
		outcome, err := r.sys.Shell.Execute(shell.CmdOpenApp, cmdArgs)
		if err != nil {
			return err
		}
		if !outcome.Applied {
			return fmt.Errorf("unknown app: %s", args[0])
		}
		fmt.Fprintf(r.out, "opened %s\n", outcome.WindowID)
	case "export":
		if len(args) != 1 {
			return errors.New("usage: :export <file>")
		}
		compress := strings.HasSuffix(args[0], ".gz")
		data, _, err := r.sys.Settings.Backup(compress)
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "exported %d bytes to %s\n", len(data), args[0])
	case "import":
		if len(args) != 1 {
			return errors.New("usage: :import <file>")
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		if err := r.sys.Settings.Restore(data); err != nil {
			return errors.New(settings.ImportFailedText)
		}
		fmt.Fprintf(r.out, "imported %d nodes\n", r.sys.FS.Len())
	case "reset":
		r.sys.FS.Reset()
		fmt.Fprintln(r.out, "file system reset")
	default:
		return fmt.Errorf("unknown rosh command: %s", cmd)
	}
	return nil
}

// Complete offers local commands and names in the cwd.
func (r *REPL) Complete(line string) []string {
	fields := strings.Fields(line)
	if len(fields) <= 1 && !strings.HasSuffix(line, " ") {
		candidates := []string{"help", "ls", "cd", "pwd", "cat", "mkdir", "rm", "clear", "exit",
			":help", ":windows", ":open", ":export", ":import", ":reset"}
		var out []string
		for _, c := range candidates {
			if strings.HasPrefix(c, line) {
				out = append(out, c)
			}
		}
		return out
	}

	prefix := ""
	if !strings.HasSuffix(line, " ") {
		prefix = fields[len(fields)-1]
	}
	head := strings.TrimSuffix(line, prefix)
	var out []string
	for _, name := range r.sys.FS.ReadDir(r.cwd()) {
		if strings.HasPrefix(name, prefix) {
			out = append(out, head+name)
		}
	}
	slices.Sort(out)
	return out
}
