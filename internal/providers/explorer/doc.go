// Package explorer implements the File Explorer app as a service provider.
//
// Each explorer window keeps its own current folder, starting at
// /home/user. Opening a file dispatches openApp through the command
// protocol: .js, .py and .html files go to Code Studio with their path,
// .png and .jpg to the gallery, and anything else to Notepad with its
// path. Extensions match case-insensitively.
package explorer
