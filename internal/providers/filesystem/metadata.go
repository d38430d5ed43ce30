package filesystem

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/GriffinCanCode/ros/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/ros/backend/internal/shared/paths"
)

// Source files are plain text to content sniffing; their extension is
// more telling.
var textByExtension = map[string]string{
	".js":   "text/javascript",
	".ts":   "text/typescript",
	".py":   "text/x-python",
	".md":   "text/markdown",
	".css":  "text/css",
	".json": "application/json",
	".html": "text/html",
}

// DetectMIME sniffs content, refining plain text by extension.
func DetectMIME(path, content string) string {
	detected := mimetype.Detect([]byte(content))
	if detected.Is("text/plain") {
		if byExt, ok := textByExtension[paths.Ext(path)]; ok {
			return byExt
		}
	}
	return detected.String()
}

// Info builds FileInfo for a node, sniffing files. fs is only read for
// files.
func Info(fs FileSystem, node vfs.NodeInfo) FileInfo {
	info := FileInfo{
		Name:      node.Name,
		Path:      node.Path,
		Size:      node.Size,
		IsDir:     node.IsDir(),
		Children:  node.Children,
		Extension: strings.TrimPrefix(paths.Ext(node.Path), "."),
	}
	if info.IsDir {
		info.Extension = ""
		return info
	}
	if content, ok := fs.ReadFile(node.Path); ok {
		info.MimeType = DetectMIME(node.Path, content)
	}
	return info
}
