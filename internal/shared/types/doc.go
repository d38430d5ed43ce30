// Package types provides shared data structures for the desktop backend.
//
// Core Types:
//   - Window: an open application surface with geometry and stacking
//   - AppEntry: a registered application and its default geometry
//   - DesktopState: theme, wallpaper and levels
//   - Service, Tool, Result: the provider tool surface
//
// Request Types:
//   - PathRequest, WriteFileRequest: file system access
//   - OpenAppRequest, MoveRequest, CommandRequest: window control
//   - InputRequest: terminal input
//   - ExecuteRequest: service tool execution
//   - StreamMessage: websocket frames
package types
