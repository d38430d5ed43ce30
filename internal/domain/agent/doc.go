// Package agent bridges the desktop to a remote function-calling model.
//
// The model sees six tools: the three command protocol messages and three
// file system operations. A Session relays user text, runs every tool call
// in the reply against the shell or the file system, sends the results back
// in a single follow-up turn and stitches the visible transcript together.
// Transport lives in the remote subpackage; anything implementing Chat can
// stand in for it.
package agent
