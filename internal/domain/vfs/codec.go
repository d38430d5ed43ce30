package vfs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrCorrupt is returned when a snapshot fails to parse or lacks the root marker.
var ErrCorrupt = errors.New("invalid file system snapshot")

// Snapshot wire format: {"root": node}. Folders carry a children object keyed
// by name in insertion order; files carry content.
type wireSnapshot struct {
	Root *wireNode `json:"root"`
}

type wireNode struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Type     NodeType      `json:"type"`
	ParentID string        `json:"parentId,omitempty"`
	Content  *string       `json:"content,omitempty"`
	Children *wireChildren `json:"children,omitempty"`
}

type wireEntry struct {
	Name string
	Node *wireNode
}

// wireChildren is a JSON object whose key order is significant.
type wireChildren []wireEntry

func (c wireChildren) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalRaw(e.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := marshalRaw(e.Node)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *wireChildren) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("children must be an object")
	}

	var out wireChildren
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)

		child := new(wireNode)
		if err := dec.Decode(child); err != nil {
			return fmt.Errorf("child %q: %w", key, err)
		}

		// Repeated keys keep their first position and last value.
		if i, dup := index[key]; dup {
			out[i].Node = child
			continue
		}
		index[key] = len(out)
		out = append(out, wireEntry{Name: key, Node: child})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	*c = out
	return nil
}

func marshalRaw(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func encodeSnapshot(nodes map[string]*node) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(wireSnapshot{Root: toWire(nodes, nodes[RootID])}); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func toWire(nodes map[string]*node, n *node) *wireNode {
	w := &wireNode{ID: n.id, Name: n.name, Type: n.typ, ParentID: n.parentID}
	if n.typ == File {
		content := n.content
		w.Content = &content
		return w
	}

	children := make(wireChildren, 0, len(n.order))
	for _, name := range n.order {
		children = append(children, wireEntry{Name: name, Node: toWire(nodes, nodes[n.children[name]])})
	}
	w.Children = &children
	return w
}

// decodeSnapshot parses data into a fresh arena. Nothing is shared with the
// caller's current tree, so a failure leaves it untouched.
func decodeSnapshot(data []byte, newID func() string) (map[string]*node, error) {
	var snap wireSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if snap.Root == nil || snap.Root.ID != RootID {
		return nil, fmt.Errorf("%w: missing root marker", ErrCorrupt)
	}
	if snap.Root.Type != Folder {
		return nil, fmt.Errorf("%w: root must be a folder", ErrCorrupt)
	}

	b := arenaBuilder{nodes: make(map[string]*node), newID: newID}
	if _, err := b.add(snap.Root, "root", "", true); err != nil {
		return nil, err
	}
	return b.nodes, nil
}

type arenaBuilder struct {
	nodes map[string]*node
	newID func() string
}

// add inserts w and its subtree. The child key is authoritative for the name;
// missing, duplicate or reserved ids are re-minted; parentId is rewritten.
func (b *arenaBuilder) add(w *wireNode, name, parentID string, isRoot bool) (string, error) {
	if w.Type != File && w.Type != Folder {
		return "", fmt.Errorf("%w: node %q has unknown type %q", ErrCorrupt, name, w.Type)
	}

	id := w.ID
	switch {
	case isRoot:
		id = RootID
	case id == "" || id == RootID || b.nodes[id] != nil:
		id = b.newID()
	}

	if w.Type == File {
		var content string
		if w.Content != nil {
			content = *w.Content
		}
		b.nodes[id] = newFile(id, name, parentID, content)
		return id, nil
	}

	folder := newFolder(id, name, parentID)
	b.nodes[id] = folder
	if w.Children == nil {
		return id, nil
	}
	for _, e := range *w.Children {
		if e.Name == "" || strings.Contains(e.Name, "/") {
			return "", fmt.Errorf("%w: invalid entry name %q under %q", ErrCorrupt, e.Name, name)
		}
		childID, err := b.add(e.Node, e.Name, id, false)
		if err != nil {
			return "", err
		}
		folder.order = append(folder.order, e.Name)
		folder.children[e.Name] = childID
	}
	return id, nil
}
