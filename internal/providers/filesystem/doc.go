// Package filesystem exposes the virtual file system as a service provider.
//
// Operations are grouped the same way the tool ids are:
//   - BasicOps: read, write, append, delete, exists, read_lines
//   - DirectoryOps: list, mkdir, stat, tree
//   - SearchOps: glob (doublestar ** patterns), grep
//   - FormatsOps: json.read/json.write, yaml.read/yaml.write
//
// Results follow the file system's own rules: write replaces whatever is
// at the path, mkdir is create-once, delete takes a folder's subtree with
// it. Files carry a sniffed MIME type in stat and detailed listings.
package filesystem
