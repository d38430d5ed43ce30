// Package events provides the in-process event bus that ties the desktop
// together. The file system publishes changes, the shell reacts to system
// reinitialization, and the websocket stream forwards everything to clients.
package events

import (
	"slices"
	"sync"
	"time"
)

const (
	// FSChanged is published after every successful file system mutation.
	FSChanged = "fs.changed"
	// SystemReinitialized is published after import or reset replaces the tree.
	SystemReinitialized = "system.reinitialized"
	// WindowsChanged is published after any window manager transition.
	WindowsChanged = "windows.changed"
	// DesktopChanged is published after wallpaper, theme or level changes.
	DesktopChanged = "desktop.changed"
)

// Event describes one change to shared system state.
type Event struct {
	Type      string `json:"type"`
	Op        string `json:"op,omitempty"`
	Path      string `json:"path,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Handler receives events synchronously on the publisher's goroutine.
type Handler func(Event)

// Bus fans events out to synchronous handlers and buffered channel
// subscribers. A nil *Bus drops everything.
type Bus struct {
	mu       sync.RWMutex
	handlers map[int]Handler
	nextID   int
	streams  map[chan Event]struct{}
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[int]Handler),
		streams:  make(map[chan Event]struct{}),
	}
}

// Subscribe registers a synchronous handler and returns its cancel func.
// Handlers run in registration order and must not publish recursively
// from inside a handler for the same event type.
func (b *Bus) Subscribe(h Handler) (cancel func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = h
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}
}

// Stream adds a buffered channel subscriber. The caller must call
// Unstream when done.
func (b *Bus) Stream() chan Event {
	ch := make(chan Event, 64)
	b.mu.Lock()
	b.streams[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unstream removes a channel subscriber and closes its channel.
func (b *Bus) Unstream(ch chan Event) {
	b.mu.Lock()
	if _, ok := b.streams[ch]; ok {
		delete(b.streams, ch)
		close(ch)
	}
	b.mu.Unlock()
}

// Publish delivers ev to every handler, then offers it to every stream.
// Slow streams drop events rather than block the publisher.
func (b *Bus) Publish(ev Event) {
	if b == nil {
		return
	}
	if ev.Timestamp == 0 {
		ev.Timestamp = time.Now().UnixMilli()
	}

	b.mu.RLock()
	ids := make([]int, 0, len(b.handlers))
	for id := range b.handlers {
		ids = append(ids, id)
	}
	handlers := make([]Handler, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		handlers = append(handlers, b.handlers[id])
	}
	for ch := range b.streams {
		select {
		case ch <- ev:
		default:
		}
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ev)
	}
}

// Count returns the number of channel subscribers.
func (b *Bus) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.streams)
}
