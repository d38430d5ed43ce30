// Package http provides the REST surface of the desktop.
//
// Endpoints:
//   - Health: / and /health
//   - File system: /fs/stat, /fs/list, /fs/read, /fs/write, /fs/mkdir, /fs
//   - Windows: /windows, /windows/:id/{focus,minimize,maximize,position}
//   - Applications: /apps, /apps/:id/toggle
//   - Commands: /commands
//   - Desktop: /desktop
//   - System: /system/export, /system/import, /system/reset
//   - Terminal: /terminal/sessions, /terminal/sessions/:id/input
//   - Services: /services, /services/discover, /services/execute
//   - Metrics: /metrics, /metrics/json
//
// Failures are JSON bodies of the form {"error": "..."}.
package http
