// Package paths provides standardized virtual file system paths.
//
// # Directory Structure
//
//	/
//	├── home/
//	│   └── user/
//	│       ├── documents/
//	│       └── projects/
//	└── bin/
//
// Paths are slash-delimited and always absolute. Empty segments are dropped,
// so "//home///user/" and "/home/user" name the same node.
//
//	paths.Segments("/home//user/")          // ["home", "user"]
//	paths.Split("/home/user/notes.txt")     // "/home/user", "notes.txt"
//	paths.Resolve("/home/user", "../bin")   // "/home/bin"
package paths
