package vfs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkOrder(t *testing.T) {
	fs := newTestFS(t)

	var visited []string
	require.NoError(t, fs.Walk("/", func(path string, _ NodeInfo) error {
		visited = append(visited, path)
		return nil
	}))

	assert.Equal(t, []string{
		"/",
		"/home",
		"/home/user",
		"/home/user/documents",
		"/home/user/documents/hello.txt",
		"/home/user/projects",
		"/home/user/projects/test.js",
		"/bin",
	}, visited)
}

func TestWalkSkipDir(t *testing.T) {
	fs := newTestFS(t)

	var visited []string
	require.NoError(t, fs.Walk("/home/user", func(path string, info NodeInfo) error {
		visited = append(visited, path)
		if info.Name == "documents" {
			return SkipDir
		}
		if info.Name == "test.js" {
			return SkipDir
		}
		return nil
	}))

	assert.Equal(t, []string{
		"/home/user",
		"/home/user/documents",
		"/home/user/projects",
		"/home/user/projects/test.js",
	}, visited)
}

func TestWalkStopsOnError(t *testing.T) {
	fs := newTestFS(t)
	stop := errors.New("stop")

	count := 0
	err := fs.Walk("/", func(string, NodeInfo) error {
		count++
		if count == 3 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 3, count)
}

func TestWalkMissingRoot(t *testing.T) {
	fs := newTestFS(t)
	assert.ErrorIs(t, fs.Walk("/nope", func(string, NodeInfo) error { return nil }), ErrNotFound)
}

func TestWalkAllowsMutation(t *testing.T) {
	fs := newTestFS(t)
	require.NoError(t, fs.Walk("/home/user/documents", func(path string, info NodeInfo) error {
		if !info.IsDir() {
			assert.True(t, fs.WriteFile(path+".bak", "copy"))
		}
		return nil
	}))
	assert.Equal(t, []string{"hello.txt", "hello.txt.bak"}, fs.ReadDir("/home/user/documents"))
}
