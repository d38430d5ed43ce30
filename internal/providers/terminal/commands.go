package terminal

import (
	"fmt"
	"strings"

	"github.com/GriffinCanCode/ros/backend/internal/shared/paths"
)

// Greeting is the first transcript line of every session.
const Greeting = "ROS Kernel v2.0 initialized.\nVirtual File System Online.\nType \"help\" for commands or ask AI."

// HelpText lists the local commands.
const HelpText = "Available commands:\n" +
	"  ls - List directory\n" +
	"  cd <path> - Change directory\n" +
	"  cat <file> - Read file\n" +
	"  mkdir <name> - Create directory\n" +
	"  rm <name> - Remove file/folder\n" +
	"  pwd - Print working directory\n" +
	"  clear - Clear screen\n" +
	"  \n" +
	"  Or just ask Gemini to do anything!"

// parse splits a line on single spaces the way the terminal always has:
// repeated spaces yield empty operands.
func parse(line string) (cmd string, args []string) {
	parts := strings.Split(strings.TrimSpace(line), " ")
	return strings.ToLower(parts[0]), parts[1:]
}

func operand(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// runLocal executes a built-in command. It reports false when cmd is not
// built in and the line should go to the agent. Only cd normalizes "." and
// ".."; the other commands name a child of the cwd.
func (m *Manager) runLocal(sess *Session, out *Output, cmd string, args []string) bool {
	cwd := sess.Cwd()
	reply := func(text string) { sess.append(out, RoleModel, text) }

	switch cmd {
	case "help":
		reply(HelpText)
	case "clear":
		sess.clear()
		out.Cleared = true
	case "pwd":
		reply(cwd)
	case "ls":
		files := m.fs.ReadDir(cwd)
		if len(files) == 0 {
			reply("(empty)")
		} else {
			reply(strings.Join(files, "  "))
		}
	case "cd":
		target := operand(args)
		if target == "" {
			reply(cwd)
			break
		}
		next := paths.Resolve(cwd, target)
		if info, ok := m.fs.Stat(next); ok && info.IsDir() {
			sess.setCwd(next)
		} else {
			reply(fmt.Sprintf("cd: no such file or directory: %s", target))
		}
	case "mkdir":
		name := operand(args)
		if name == "" {
			reply("mkdir: missing operand")
			break
		}
		if name == "." || name == ".." || !m.fs.MakeDir(paths.Child(cwd, name)) {
			reply("mkdir: failed to create directory")
		}
	case "cat":
		name := operand(args)
		if name == "" {
			reply("cat: missing operand")
			break
		}
		content, ok := m.fs.ReadFile(paths.Child(cwd, name))
		if !ok {
			reply(fmt.Sprintf("cat: %s: No such file", name))
		} else {
			reply(content)
		}
	case "rm":
		name := operand(args)
		if name == "" {
			reply("rm: missing operand")
			break
		}
		if m.fs.Delete(paths.Child(cwd, name)) {
			reply("Deleted.")
		} else {
			reply("rm: failed to delete")
		}
	default:
		return false
	}
	return true
}
