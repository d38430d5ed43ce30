package paths

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegments(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"/", []string{}},
		{"/home/user", []string{"home", "user"}},
		{"//home///user/", []string{"home", "user"}},
		{"home/./..", []string{"home", ".", ".."}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Segments(tt.in), tt.in)
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		in, parent, name string
	}{
		{"/", "/", ""},
		{"/bin", "/", "bin"},
		{"/home/user/notes.txt", "/home/user", "notes.txt"},
		{"home/user/", "/home", "user"},
	}
	for _, tt := range tests {
		parent, name := Split(tt.in)
		assert.Equal(t, tt.parent, parent, tt.in)
		assert.Equal(t, tt.name, name, tt.in)
	}
}

func TestChild(t *testing.T) {
	assert.Equal(t, "/bin", Child("/", "bin"))
	assert.Equal(t, "/home/user/a", Child("/home/user", "a"))
	assert.Equal(t, "/home/user/a", Child("/home/user/", "a"))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		cwd, target, want string
	}{
		{"/home/user", "documents", "/home/user/documents"},
		{"/home/user", "..", "/home"},
		{"/home/user", "../..", "/"},
		{"/", "..", "/"},
		{"/home/user", "/bin", "/bin"},
		{"/home/user", "./projects/../documents", "/home/user/documents"},
		{"/", "home", "/home"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Resolve(tt.cwd, tt.target), "%s + %s", tt.cwd, tt.target)
	}
}

func TestExt(t *testing.T) {
	assert.Equal(t, ".js", Ext("/home/user/projects/test.js"))
	assert.Equal(t, ".png", Ext("/a/B.PNG"))
	assert.Equal(t, "", Ext("/a/.bashrc"))
	assert.Equal(t, "", Ext("/a/README"))
}
