// Package shell is the desktop's application shell. It owns the closed
// command protocol (openApp, closeApp, changeWallpaper) that applications
// and the agent use to drive shared state, and the desktop appearance that
// changeWallpaper and the settings app mutate.
//
// Commands arrive as a name plus an untyped argument bag and are decoded
// once at the boundary by Decode. Everything past that point works on the
// typed variants. Unknown commands are not errors for the desktop: Execute
// ignores them and reports the decode failure only to callers that ask.
package shell
