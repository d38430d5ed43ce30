/*
Package sandbox runs Code Studio scripts in isolated goja runtimes.

Each run gets a clean global scope with console.log/info/warn/error/debug
and alert captured as LogEntry values, require/process/module/exports
removed, and timers stubbed out. Runs are bounded by Config.Timeout; a
cancelled context interrupts the VM as well.

Runtimes are pooled and replaced with a fresh VM on release, so globals
defined by one script are never visible to the next.

	pool, err := sandbox.NewPool(sandbox.DefaultConfig(), 2)
	result, err := pool.Execute(ctx, `console.log("hi")`)
*/
package sandbox
