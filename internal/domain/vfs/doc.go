/*
Package vfs implements the virtual hierarchical file system.

Nodes live in an arena keyed by id. Each folder keeps an ordered index from
child name to child id, so listings come back in insertion order and sibling
names are unique by construction. The root folder has the fixed id "root"
and cannot be deleted or replaced.

Paths are slash-delimited; empty segments are dropped and "/" is the root.
"." and ".." have no special meaning here and are looked up as names.

Every successful mutation re-serializes the whole tree and saves it to the
configured storage.Store under a single key. The snapshot format is also the
export format:

	{
	  "root": {
	    "id": "root",
	    "name": "root",
	    "type": "folder",
	    "children": {
	      "home": { ... }
	    }
	  }
	}

Expected failures (missing parent, duplicate name, missing entry) are
reported as false or ok=false, never as errors. Only Import returns an error,
wrapping ErrCorrupt.
*/
package vfs
