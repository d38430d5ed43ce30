package vfs

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ros/backend/internal/domain/events"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/storage"
	"github.com/GriffinCanCode/ros/backend/internal/shared/id"
	"github.com/GriffinCanCode/ros/backend/internal/shared/paths"
)

// DefaultKey is the storage key the tree is persisted under.
const DefaultKey = "gemini_os_fs"

// FileSystem is the process-wide virtual file system. All methods are safe
// for concurrent use; mutations are linearized by a single writer lock and
// each one persists the whole tree before returning.
type FileSystem struct {
	mu    sync.RWMutex
	nodes map[string]*node

	store   storage.Store
	key     string
	timeout time.Duration
	bus     *events.Bus
	logger  *zap.Logger
	metrics *monitoring.Metrics
	newID   func() string
}

// Option configures a FileSystem.
type Option func(*FileSystem)

// WithStore persists the tree to store under key.
func WithStore(store storage.Store, key string) Option {
	return func(fs *FileSystem) {
		fs.store = store
		if key != "" {
			fs.key = key
		}
	}
}

// WithPersistTimeout bounds each snapshot write.
func WithPersistTimeout(d time.Duration) Option {
	return func(fs *FileSystem) { fs.timeout = d }
}

func WithBus(bus *events.Bus) Option {
	return func(fs *FileSystem) { fs.bus = bus }
}

func WithLogger(logger *zap.Logger) Option {
	return func(fs *FileSystem) { fs.logger = logger }
}

func WithMetrics(m *monitoring.Metrics) Option {
	return func(fs *FileSystem) { fs.metrics = m }
}

// WithIDGenerator overrides how new node ids are minted.
func WithIDGenerator(gen func() string) Option {
	return func(fs *FileSystem) { fs.newID = gen }
}

// New loads the tree from the configured store, falling back to the factory
// default when nothing is stored or the stored snapshot is unreadable.
// Without WithStore the tree lives in memory only.
func New(ctx context.Context, opts ...Option) (*FileSystem, error) {
	fs := &FileSystem{
		key:     DefaultKey,
		timeout: 5 * time.Second,
		newID:   func() string { return id.NewNodeID().String() },
	}
	for _, opt := range opts {
		opt(fs)
	}
	if fs.store == nil {
		fs.store = storage.NewMemory()
	}
	if fs.logger == nil {
		fs.logger = zap.NewNop()
	}

	data, err := fs.store.Load(ctx, fs.key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		fs.nodes = factoryNodes()
	case err != nil:
		return nil, fmt.Errorf("load file system: %w", err)
	default:
		nodes, err := decodeSnapshot(data, fs.newID)
		if err != nil {
			fs.logger.Warn("stored file system is unreadable, using factory default",
				zap.String("key", fs.key), zap.Error(err))
			nodes = factoryNodes()
		}
		fs.nodes = nodes
	}

	fs.metrics.SetFSNodes(len(fs.nodes))
	fs.logger.Info("file system ready",
		zap.String("backend", fs.store.Type()),
		zap.Int("nodes", len(fs.nodes)))
	return fs, nil
}

// ResolvePath walks from the root one segment at a time. "/" and "" resolve
// to the root.
func (fs *FileSystem) ResolvePath(path string) (Node, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	n := fs.lookup(path)
	if n == nil {
		return Node{}, false
	}
	return Node{
		NodeInfo: n.info(canonical(path)),
		Content:  n.content,
		Entries:  slices.Clone(n.order),
	}, true
}

// Stat returns node metadata without content.
func (fs *FileSystem) Stat(path string) (NodeInfo, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	n := fs.lookup(path)
	if n == nil {
		return NodeInfo{}, false
	}
	return n.info(canonical(path)), true
}

// ReadDir lists child names in insertion order. Missing paths, files and
// empty folders all yield an empty slice.
func (fs *FileSystem) ReadDir(path string) []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	n := fs.lookup(path)
	if n == nil || n.typ != Folder {
		return []string{}
	}
	return slices.Clone(n.order)
}

// ReadFile returns the content of a file. ok is false for missing paths and
// folders; an existing empty file returns "", true.
func (fs *FileSystem) ReadFile(path string) (content string, ok bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	n := fs.lookup(path)
	if n == nil || n.typ != File {
		return "", false
	}
	return n.content, true
}

// WriteFile creates or overwrites the file at path. An existing node keeps
// its id and position; if it was a folder its subtree is discarded.
func (fs *FileSystem) WriteFile(path, content string) bool {
	fs.mu.Lock()
	dir, name := fs.parentFolder(path)
	if dir == nil {
		fs.mu.Unlock()
		fs.metrics.RecordFSOperation("writeFile", false)
		return false
	}

	if childID, exists := dir.children[name]; exists {
		n := fs.nodes[childID]
		if n.typ == Folder {
			fs.dropDescendants(n)
		}
		n.typ = File
		n.content = content
		n.order = nil
		n.children = nil
	} else {
		file := newFile(fs.mint(), name, dir.id, content)
		fs.nodes[file.id] = file
		dir.link(file)
	}
	fs.persistLocked()
	fs.mu.Unlock()

	fs.changed("writeFile", path)
	return true
}

// MakeDir creates an empty folder. It fails if the parent is missing or
// anything already exists under that name.
func (fs *FileSystem) MakeDir(path string) bool {
	fs.mu.Lock()
	dir, name := fs.parentFolder(path)
	if dir == nil {
		fs.mu.Unlock()
		fs.metrics.RecordFSOperation("makeDir", false)
		return false
	}
	if _, exists := dir.children[name]; exists {
		fs.mu.Unlock()
		fs.metrics.RecordFSOperation("makeDir", false)
		return false
	}

	folder := newFolder(fs.mint(), name, dir.id)
	fs.nodes[folder.id] = folder
	dir.link(folder)
	fs.persistLocked()
	fs.mu.Unlock()

	fs.changed("makeDir", path)
	return true
}

// Delete removes the entry at path and, for folders, everything below it.
// The root has no parent entry and can never be deleted.
func (fs *FileSystem) Delete(path string) bool {
	fs.mu.Lock()
	dir, name := fs.parentFolder(path)
	if dir == nil {
		fs.mu.Unlock()
		fs.metrics.RecordFSOperation("delete", false)
		return false
	}
	childID, exists := dir.children[name]
	if !exists {
		fs.mu.Unlock()
		fs.metrics.RecordFSOperation("delete", false)
		return false
	}

	fs.dropDescendants(fs.nodes[childID])
	delete(fs.nodes, childID)
	delete(dir.children, name)
	dir.order = slices.DeleteFunc(dir.order, func(s string) bool { return s == name })
	fs.persistLocked()
	fs.mu.Unlock()

	fs.changed("delete", path)
	return true
}

// Export serializes the whole tree as indented JSON.
func (fs *FileSystem) Export() ([]byte, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return encodeSnapshot(fs.nodes)
}

// Import replaces the tree with the snapshot in data. On any error the
// current tree is left untouched. Errors wrap ErrCorrupt.
func (fs *FileSystem) Import(data []byte) error {
	nodes, err := decodeSnapshot(data, fs.newID)
	if err != nil {
		fs.logger.Info("import rejected", zap.Error(err))
		fs.metrics.RecordFSOperation("import", false)
		return err
	}

	fs.mu.Lock()
	fs.nodes = nodes
	fs.persistLocked()
	fs.mu.Unlock()

	fs.reinitialized("import")
	return nil
}

// Reset restores the factory-default tree.
func (fs *FileSystem) Reset() {
	fs.mu.Lock()
	fs.nodes = factoryNodes()
	fs.persistLocked()
	fs.mu.Unlock()

	fs.reinitialized("reset")
}

// Len returns the number of nodes, root included.
func (fs *FileSystem) Len() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return len(fs.nodes)
}

func (fs *FileSystem) lookup(path string) *node {
	current := fs.nodes[RootID]
	for _, seg := range paths.Segments(path) {
		if current.typ != Folder {
			return nil
		}
		childID, ok := current.children[seg]
		if !ok {
			return nil
		}
		current = fs.nodes[childID]
	}
	return current
}

// parentFolder resolves the directory that would own path's leaf. It returns
// nil when the leaf is empty (the root) or the parent is not a folder.
func (fs *FileSystem) parentFolder(path string) (*node, string) {
	parent, name := paths.Split(path)
	if name == "" {
		return nil, ""
	}
	dir := fs.lookup(parent)
	if dir == nil || dir.typ != Folder {
		return nil, ""
	}
	return dir, name
}

func (fs *FileSystem) dropDescendants(n *node) {
	for _, childID := range n.children {
		if child := fs.nodes[childID]; child != nil {
			fs.dropDescendants(child)
		}
		delete(fs.nodes, childID)
	}
}

func (fs *FileSystem) mint() string {
	for {
		candidate := fs.newID()
		if _, taken := fs.nodes[candidate]; !taken && candidate != RootID {
			return candidate
		}
	}
}

// persistLocked writes the snapshot. A failed write is logged and counted;
// the in-memory tree stays authoritative and the mutation still succeeds.
func (fs *FileSystem) persistLocked() {
	fs.metrics.SetFSNodes(len(fs.nodes))

	data, err := encodeSnapshot(fs.nodes)
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), fs.timeout)
		err = fs.store.Save(ctx, fs.key, data)
		cancel()
	}
	if err != nil {
		fs.metrics.IncPersistErrors()
		fs.logger.Warn("failed to persist file system",
			zap.String("backend", fs.store.Type()),
			zap.String("key", fs.key),
			zap.Error(err))
	}
}

func (fs *FileSystem) changed(op, path string) {
	fs.metrics.RecordFSOperation(op, true)
	fs.bus.Publish(events.Event{Type: events.FSChanged, Op: op, Path: canonical(path)})
}

func (fs *FileSystem) reinitialized(op string) {
	fs.metrics.RecordFSOperation(op, true)
	fs.logger.Info("file system reinitialized", zap.String("op", op))
	fs.bus.Publish(events.Event{Type: events.SystemReinitialized, Op: op})
}

func canonical(path string) string {
	return paths.Join(paths.Segments(path)...)
}
