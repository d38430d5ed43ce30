// Package terminal provides the desktop's terminal application.
//
// A session keeps a working directory (initially /home/user) and a
// transcript. Each input line is split on spaces; the first word is
// matched case-insensitively against the built-in commands, which operate
// directly on the virtual file system:
//
//	help, clear, pwd, ls, cd <path>, mkdir <name>, cat <file>, rm <name>
//
// Operands are resolved against the working directory, with "." and ".."
// normalized. Anything else is sent to the agent bridge, and the session
// refuses further input until the agent answers. Without an agent the
// line is reported as "command not found".
//
// Tools:
//   - terminal.create_session: Open a session
//   - terminal.input: Run one line
//   - terminal.history: Read the transcript
//   - terminal.list_sessions: List sessions
//   - terminal.get_session: Session info
//   - terminal.kill: Close a session
package terminal
