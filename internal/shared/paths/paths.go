// Package paths provides the well-known locations of the virtual file system
// and the slash-path helpers shared by the file system and its callers.
package paths

import (
	"strings"
)

// Root is the path of the root folder.
const Root = "/"

// Factory-default locations.
const (
	Home      = "/home"
	User      = "/home/user"
	Documents = "/home/user/documents"
	Projects  = "/home/user/projects"
	Bin       = "/bin"
)

// Segments splits a slash path into its non-empty segments. "." and ".." are
// returned as-is; the file system treats them as ordinary names.
func Segments(path string) []string {
	raw := strings.Split(path, "/")
	out := raw[:0]
	for _, s := range raw {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Join builds an absolute path from segments.
func Join(segments ...string) string {
	if len(segments) == 0 {
		return Root
	}
	return Root + strings.Join(segments, "/")
}

// Split returns the parent path and leaf name. The leaf is "" for the root.
func Split(path string) (parent, name string) {
	segs := Segments(path)
	if len(segs) == 0 {
		return Root, ""
	}
	return Join(segs[:len(segs)-1]...), segs[len(segs)-1]
}

// Child appends name to dir.
func Child(dir, name string) string {
	if dir == Root || dir == "" {
		return Root + name
	}
	return strings.TrimSuffix(dir, "/") + "/" + name
}

// Resolve interprets target relative to cwd and normalizes "." and "..".
// Used by the terminal, whose cd understands relative navigation; ".."
// above the root stays at the root.
func Resolve(cwd, target string) string {
	var base []string
	if !strings.HasPrefix(target, "/") {
		base = Segments(cwd)
	}

	out := append([]string(nil), base...)
	for _, seg := range Segments(target) {
		switch seg {
		case ".":
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, seg)
		}
	}
	return Join(out...)
}

// Ext returns the lowercase extension of the leaf name including the dot.
func Ext(path string) string {
	_, name := Split(path)
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return ""
	}
	return strings.ToLower(name[i:])
}
