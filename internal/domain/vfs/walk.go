package vfs

import (
	"errors"
	"strings"

	"github.com/GriffinCanCode/ros/backend/internal/shared/paths"
)

// ErrNotFound is returned by Walk when the start path does not resolve.
var ErrNotFound = errors.New("no such file or directory")

// SkipDir can be returned from a WalkFunc to skip a folder's contents.
// Returned for a file it is ignored.
var SkipDir = errors.New("skip this directory")

// WalkFunc is called for each node in pre-order, children in insertion order.
type WalkFunc func(path string, info NodeInfo) error

// Walk visits the subtree at root. It works on a consistent copy of the
// tree, so fn may call back into the file system, including mutations.
func (fs *FileSystem) Walk(root string, fn WalkFunc) error {
	type entry struct {
		path string
		info NodeInfo
	}

	fs.mu.RLock()
	start := fs.lookup(root)
	if start == nil {
		fs.mu.RUnlock()
		return ErrNotFound
	}
	var entries []entry
	var visit func(n *node, path string)
	visit = func(n *node, path string) {
		entries = append(entries, entry{path: path, info: n.info(path)})
		for _, name := range n.order {
			visit(fs.nodes[n.children[name]], paths.Child(path, name))
		}
	}
	visit(start, canonical(root))
	fs.mu.RUnlock()

	skip := ""
	for _, e := range entries {
		if skip != "" && strings.HasPrefix(e.path, skip) {
			continue
		}
		skip = ""

		err := fn(e.path, e.info)
		if errors.Is(err, SkipDir) {
			if e.info.IsDir() {
				skip = strings.TrimSuffix(e.path, "/") + "/"
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}
