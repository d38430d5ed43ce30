package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/server"
)

func newREPL(t *testing.T) (*REPL, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true

	cfg := config.Default()
	cfg.Storage.Backend = "memory"
	sys, err := server.NewSystem(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { sys.Close() })

	var out bytes.Buffer
	return NewREPL(sys, &out), &out
}

func eval(t *testing.T, r *REPL, out *bytes.Buffer, line string) string {
	t.Helper()
	out.Reset()
	require.NoError(t, r.Eval(context.Background(), line))
	return out.String()
}

func TestEvalTerminalCommands(t *testing.T) {
	r, out := newREPL(t)

	assert.Equal(t, "ros:/home/user$ ", r.Prompt())
	assert.Equal(t, "/home/user\n", eval(t, r, out, "pwd"))
	assert.Equal(t, "documents  projects\n", eval(t, r, out, "ls"))

	assert.Empty(t, eval(t, r, out, "cd documents"))
	assert.Equal(t, "ros:/home/user/documents$ ", r.Prompt())
	assert.Equal(t, "Welcome to GeminiOS!\n", eval(t, r, out, "cat hello.txt"))
	assert.Equal(t, "command not found: dance\n", eval(t, r, out, "dance"))
	assert.Empty(t, eval(t, r, out, "   "))
}

func TestEvalQuit(t *testing.T) {
	r, _ := newREPL(t)

	assert.ErrorIs(t, r.Eval(context.Background(), "exit"), errQuit)
	assert.ErrorIs(t, r.Eval(context.Background(), "quit"), errQuit)
}

func TestMetaWindows(t *testing.T) {
	r, out := newREPL(t)

	assert.Equal(t, "(no windows)\n", eval(t, r, out, ":windows"))
	assert.Contains(t, eval(t, r, out, ":open notepad documents/hello.txt"), "opened win_")

	listing := eval(t, r, out, ":windows")
	assert.Contains(t, listing, "* win_")
	assert.Contains(t, listing, "notepad")
	assert.Contains(t, listing, "/home/user/documents/hello.txt")

	assert.Equal(t, "unknown app: solitaire\n", eval(t, r, out, ":open solitaire"))
	assert.Equal(t, "unknown rosh command: dance\n", eval(t, r, out, ":dance"))
}

func TestMetaExportImportReset(t *testing.T) {
	r, out := newREPL(t)
	dir := t.TempDir()

	for _, name := range []string{"backup.json", "backup.json.gz"} {
		t.Run(name, func(t *testing.T) {
			file := filepath.Join(dir, name)
			assert.Contains(t, eval(t, r, out, ":export "+file), "exported")

			eval(t, r, out, "mkdir scratch")
			_, ok := r.sys.FS.Stat("/home/user/scratch")
			require.True(t, ok)

			assert.Equal(t, "imported 8 nodes\n", eval(t, r, out, ":import "+file))
			_, ok = r.sys.FS.Stat("/home/user/scratch")
			assert.False(t, ok)
		})
	}

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("nope"), 0o644))
	assert.Equal(t, "Failed to import: Invalid system file.\n", eval(t, r, out, ":import "+bad))

	r.sys.FS.WriteFile("/home/user/x.txt", "x")
	assert.Equal(t, "file system reset\n", eval(t, r, out, ":reset"))
	assert.Equal(t, 8, r.sys.FS.Len())
}

func TestComplete(t *testing.T) {
	r, _ := newREPL(t)

	assert.Equal(t, []string{"cd", "cat", "clear"}, r.Complete("c"))
	assert.Equal(t, []string{":export"}, r.Complete(":ex"))
	assert.Equal(t, []string{"cd documents"}, r.Complete("cd d"))
	assert.Equal(t, []string{"cat documents", "cat projects"}, r.Complete("cat "))
}

func TestRunCommands(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"--memory", "--no-color", "-c", "cd /bin", "-c", "pwd", "-c", "exit", "-c", "ls"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "/bin\n", out.String())
}
