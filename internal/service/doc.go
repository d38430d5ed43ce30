// Package service provides the registry of desktop application services.
//
// Each desktop application (terminal, explorer, editor, browser, monitor,
// settings) and the raw file system are exposed as a Provider with a set of
// tools. The registry routes a tool call such as "explorer.open" to the
// provider named by its prefix, and supports keyword discovery so callers
// can find the right service for a free-text intent.
//
// Example Usage:
//
//	registry := service.NewRegistry()
//	registry.MustRegister(filesystemProvider, terminalProvider)
//	services := registry.Discover("read file", 5)
//	result, err := registry.Execute(ctx, "filesystem.read", params, appCtx)
package service
