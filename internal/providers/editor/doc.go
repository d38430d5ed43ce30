// Package editor implements Code Studio: a JavaScript buffer per window
// that can be loaded from a file, saved back, and run in a goja sandbox.
//
// Runs capture console output and alert calls in order. A failing script
// keeps what it printed and ends with "Error: <message>"; a run with no
// output reports "> Execution successful (no output)". Saving an untitled
// buffer writes /home/user/projects/<name>, new_script.js by default,
// and binds the buffer to that path.
package editor
