package sandbox

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dop251/goja"
)

// ErrTimeout is the interrupt value of a script that ran too long.
var ErrTimeout = errors.New("execution timeout exceeded")

// Runtime wraps a goja VM with console capture and a time limit
type Runtime struct {
	vm     *goja.Runtime
	config Config
	mu     sync.Mutex

	console []LogEntry
}

// New creates a new sandboxed runtime
func New(config Config) (*Runtime, error) {
	r := &Runtime{config: config}
	if err := r.init(); err != nil {
		return nil, err
	}
	return r, nil
}

// Execute runs a script. A script error is returned both as err and in
// Result.Error, with the console output captured before it.
func (r *Runtime) Execute(ctx context.Context, script string) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.vm == nil {
		return nil, errors.New("sandbox is closed")
	}

	start := time.Now()
	r.console = nil

	done := make(chan struct{})
	exited := make(chan struct{})
	go func(vm *goja.Runtime) {
		defer close(exited)
		timer := time.NewTimer(r.config.Timeout)
		defer timer.Stop()
		select {
		case <-timer.C:
			vm.Interrupt(ErrTimeout)
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-done:
		}
	}(r.vm)

	val, err := r.vm.RunString(script)
	close(done)
	<-exited
	r.vm.ClearInterrupt()

	result := &Result{
		Console:  r.console,
		Duration: time.Since(start),
	}
	if err != nil {
		result.Error = r.scriptError(err)
		return result, result.Error
	}
	result.Value = exportValue(val)
	return result, nil
}

// init builds a fresh VM and installs the globals scripts may use.
func (r *Runtime) init() error {
	vm := goja.New()
	if r.config.MaxCallStack > 0 {
		vm.SetMaxCallStackSize(r.config.MaxCallStack)
	}

	for _, name := range []string{"require", "process", "module", "exports"} {
		if err := vm.Set(name, goja.Undefined()); err != nil {
			return err
		}
	}

	console := vm.NewObject()
	for _, level := range []string{"log", "info", "warn", "error", "debug"} {
		if err := console.Set(level, r.capture(level)); err != nil {
			return err
		}
	}
	if err := vm.Set("console", console); err != nil {
		return err
	}
	if err := vm.Set("alert", r.capture("alert")); err != nil {
		return err
	}

	// Timers never fire in a synchronous run.
	noop := func(goja.FunctionCall) goja.Value { return goja.Undefined() }
	for _, name := range []string{"setTimeout", "setInterval"} {
		if err := vm.Set(name, noop); err != nil {
			return err
		}
	}

	r.vm = vm
	return nil
}

// capture records a call's arguments joined by spaces.
func (r *Runtime) capture(level string) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		r.console = append(r.console, LogEntry{
			Level:   level,
			Message: strings.Join(parts, " "),
			Time:    time.Now(),
		})
		return goja.Undefined()
	}
}

// scriptError reduces a goja error to the message a script author
// would see from a catch block.
func (r *Runtime) scriptError(err error) error {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		if cause, ok := interrupted.Value().(error); ok {
			return cause
		}
		return fmt.Errorf("%v", interrupted.Value())
	}

	var ex *goja.Exception
	if errors.As(err, &ex) {
		if obj, ok := ex.Value().(*goja.Object); ok {
			if msg := obj.Get("message"); msg != nil && !goja.IsUndefined(msg) {
				return errors.New(msg.String())
			}
		}
		return errors.New(ex.Value().String())
	}
	return err
}

func exportValue(val goja.Value) any {
	if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
		return nil
	}
	return val.Export()
}

// Reset replaces the VM so no state leaks between runs
func (r *Runtime) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.init()
}

// Close releases resources
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.vm = nil
	r.console = nil
	return nil
}
