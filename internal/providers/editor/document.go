package editor

import (
	"sync"
)

// DefaultCode is the buffer of a fresh Code Studio window.
const DefaultCode = "// Write your javascript here\nconsole.log(\"Hello OS\");"

// DefaultSaveName is the file name suggested by save-as.
const DefaultSaveName = "new_script.js"

// NoOutput is the single output line of a run that printed nothing.
const NoOutput = "> Execution successful (no output)"

// Document is one Code Studio buffer. Path is empty until the buffer is
// opened from or saved to a file.
type Document struct {
	Path string `json:"path,omitempty"`
	Code string `json:"code"`
}

// documents holds the buffer of each editor window.
type documents struct {
	mu   sync.Mutex
	docs map[string]*Document
}

func (d *documents) get(key string) Document {
	d.mu.Lock()
	defer d.mu.Unlock()
	if doc, ok := d.docs[key]; ok {
		return *doc
	}
	return Document{Code: DefaultCode}
}

func (d *documents) update(key string, fn func(doc *Document)) Document {
	d.mu.Lock()
	defer d.mu.Unlock()
	doc, ok := d.docs[key]
	if !ok {
		doc = &Document{Code: DefaultCode}
		d.docs[key] = doc
	}
	fn(doc)
	return *doc
}
