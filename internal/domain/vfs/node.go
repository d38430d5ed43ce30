package vfs

// NodeType distinguishes files from folders. It never changes for a given id
// except through a writeFile overwrite, which replaces the node's payload.
type NodeType string

const (
	File   NodeType = "file"
	Folder NodeType = "folder"
)

// RootID is the fixed identifier of the root folder.
const RootID = "root"

// NodeInfo is the metadata view of a node.
type NodeInfo struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     NodeType `json:"type"`
	ParentID string   `json:"parentId,omitempty"`
	Path     string   `json:"path"`
	Size     int      `json:"size"`
	Children int      `json:"children"`
}

// IsDir reports whether the node is a folder.
func (n NodeInfo) IsDir() bool { return n.Type == Folder }

// Node is a detached copy of a node as returned by ResolvePath.
type Node struct {
	NodeInfo
	Content string   `json:"content,omitempty"`
	Entries []string `json:"entries,omitempty"`
}

// node is the arena record. Children are addressed by name through an ordered
// index; parentID is informational only and never used for traversal.
type node struct {
	id       string
	name     string
	typ      NodeType
	content  string
	parentID string
	order    []string
	children map[string]string
}

func newFolder(id, name, parentID string) *node {
	return &node{id: id, name: name, typ: Folder, parentID: parentID, children: make(map[string]string)}
}

func newFile(id, name, parentID, content string) *node {
	return &node{id: id, name: name, typ: File, parentID: parentID, content: content}
}

func (n *node) info(path string) NodeInfo {
	return NodeInfo{
		ID:       n.id,
		Name:     n.name,
		Type:     n.typ,
		ParentID: n.parentID,
		Path:     path,
		Size:     len(n.content),
		Children: len(n.order),
	}
}

func (n *node) link(child *node) {
	n.order = append(n.order, child.name)
	n.children[child.name] = child.id
}
