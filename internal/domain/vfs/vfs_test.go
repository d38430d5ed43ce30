package vfs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/ros/backend/internal/domain/events"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/storage"
)

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("n%d", n)
	}
}

func newTestFS(t *testing.T, opts ...Option) *FileSystem {
	t.Helper()
	opts = append([]Option{WithIDGenerator(sequentialIDs())}, opts...)
	fs, err := New(context.Background(), opts...)
	require.NoError(t, err)
	return fs
}

// contents maps every path to its file content, or "<dir>" for folders.
func contents(t *testing.T, fs *FileSystem) map[string]string {
	t.Helper()
	out := map[string]string{}
	require.NoError(t, fs.Walk("/", func(path string, info NodeInfo) error {
		if info.IsDir() {
			out[path] = "<dir>:" + strings.Join(fs.ReadDir(path), ",")
			return nil
		}
		content, ok := fs.ReadFile(path)
		require.True(t, ok, path)
		out[path] = content
		return nil
	}))
	return out
}

type flakyStore struct {
	*storage.Memory
	loadErr error
	saveErr error
}

func (s *flakyStore) Load(ctx context.Context, key string) ([]byte, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.Memory.Load(ctx, key)
}

func (s *flakyStore) Save(ctx context.Context, key string, data []byte) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	return s.Memory.Save(ctx, key, data)
}

func TestFactoryDefault(t *testing.T) {
	fs := newTestFS(t)

	content, ok := fs.ReadFile("/home/user/documents/hello.txt")
	require.True(t, ok)
	assert.Equal(t, "Welcome to GeminiOS!", content)

	assert.Equal(t, []string{"documents", "projects"}, fs.ReadDir("/home/user"))
	assert.Equal(t, []string{"home", "bin"}, fs.ReadDir("/"))
	assert.Empty(t, fs.ReadDir("/bin"))

	script, ok := fs.ReadFile("/home/user/projects/test.js")
	require.True(t, ok)
	assert.Contains(t, script, `alert("Code Execution Successful");`)

	for _, p := range []string{"/", "", "//"} {
		root, ok := fs.ResolvePath(p)
		require.True(t, ok, p)
		assert.Equal(t, RootID, root.ID)
		assert.Equal(t, Folder, root.Type)
	}

	hello, ok := fs.Stat("/home/user/documents/hello.txt")
	require.True(t, ok)
	assert.Equal(t, "f1", hello.ID)
	assert.Equal(t, "docs", hello.ParentID)
	assert.Equal(t, len("Welcome to GeminiOS!"), hello.Size)
}

func TestResolveIsConsistentWithReadDir(t *testing.T) {
	fs := newTestFS(t)
	require.True(t, fs.MakeDir("/home/user/documents/deep"))
	require.True(t, fs.WriteFile("/home/user/documents/deep/x.txt", "x"))

	require.NoError(t, fs.Walk("/", func(path string, info NodeInfo) error {
		resolved, ok := fs.ResolvePath(path)
		require.True(t, ok, path)
		assert.Equal(t, info.ID, resolved.ID)

		prefix := "/"
		for _, seg := range strings.Split(strings.TrimPrefix(path, "/"), "/") {
			if seg == "" {
				continue
			}
			assert.Contains(t, fs.ReadDir(prefix), seg, "listing of %s", prefix)
			if prefix == "/" {
				prefix += seg
			} else {
				prefix += "/" + seg
			}
		}
		return nil
	}))
}

func TestResolvePathMisses(t *testing.T) {
	fs := newTestFS(t)
	tests := []string{
		"/nope",
		"/home/user/documents/hello.txt/child",
		"/home/user/..",
		"/home/./user",
	}
	for _, p := range tests {
		_, ok := fs.ResolvePath(p)
		assert.False(t, ok, p)
		assert.Empty(t, fs.ReadDir(p), p)
	}
	assert.Empty(t, fs.ReadDir("/home/user/documents/hello.txt"))
}

func TestWriteThenRead(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
	}{
		{"new file at root", "/notes.txt", "hi"},
		{"nested new file", "/home/user/documents/todo.md", "- ship it"},
		{"overwrite existing", "/home/user/documents/hello.txt", "changed"},
		{"empty content", "/home/user/empty.txt", ""},
		{"messy separators", "//home//user/x.txt/", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newTestFS(t)
			require.True(t, fs.WriteFile(tt.path, tt.content))

			got, ok := fs.ReadFile(tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.content, got)
		})
	}
}

func TestReadFileDistinguishesEmptyFromMissing(t *testing.T) {
	fs := newTestFS(t)
	require.True(t, fs.WriteFile("/empty", ""))

	content, ok := fs.ReadFile("/empty")
	assert.True(t, ok)
	assert.Equal(t, "", content)

	_, ok = fs.ReadFile("/missing")
	assert.False(t, ok)

	_, ok = fs.ReadFile("/home")
	assert.False(t, ok, "folders are not readable as files")
}

func TestWriteFilePreservesIDAndPosition(t *testing.T) {
	fs := newTestFS(t)
	require.True(t, fs.WriteFile("/home/user/documents/hello.txt", "v2"))

	info, ok := fs.Stat("/home/user/documents/hello.txt")
	require.True(t, ok)
	assert.Equal(t, "f1", info.ID)

	require.True(t, fs.WriteFile("/home/user/documents/a.txt", "a"))
	require.True(t, fs.WriteFile("/home/user/documents/hello.txt", "v3"))
	assert.Equal(t, []string{"hello.txt", "a.txt"}, fs.ReadDir("/home/user/documents"))
}

func TestWriteFileOverFolderDiscardsSubtree(t *testing.T) {
	fs := newTestFS(t)
	before := fs.Len()

	require.True(t, fs.WriteFile("/home/user", "flattened"))

	info, ok := fs.Stat("/home/user")
	require.True(t, ok)
	assert.Equal(t, File, info.Type)
	assert.Equal(t, "user", info.ID)
	assert.Equal(t, 0, info.Children)

	_, ok = fs.ResolvePath("/home/user/documents/hello.txt")
	assert.False(t, ok)
	// documents, hello.txt, projects, test.js are gone
	assert.Equal(t, before-4, fs.Len())
}

func TestWriteFileFailures(t *testing.T) {
	fs := newTestFS(t)
	before := contents(t, fs)

	assert.False(t, fs.WriteFile("/missing/file.txt", "x"), "missing parent")
	assert.False(t, fs.WriteFile("/home/user/documents/hello.txt/x", "x"), "parent is a file")
	assert.False(t, fs.WriteFile("/", "x"), "root")
	assert.False(t, fs.WriteFile("", "x"), "empty path")

	assert.Empty(t, cmp.Diff(before, contents(t, fs)))
}

func TestMakeDirIsCreateOnce(t *testing.T) {
	fs := newTestFS(t)

	assert.True(t, fs.MakeDir("/home/user/tmp"))
	assert.False(t, fs.MakeDir("/home/user/tmp"))
	assert.True(t, fs.Delete("/home/user/tmp"))

	_, ok := fs.ResolvePath("/home/user/tmp")
	assert.False(t, ok)
}

func TestMakeDirFailures(t *testing.T) {
	fs := newTestFS(t)

	assert.False(t, fs.MakeDir("/home/user/documents/hello.txt"), "name taken by a file")
	assert.False(t, fs.MakeDir("/missing/dir"), "missing parent")
	assert.False(t, fs.MakeDir("/home/user/documents/hello.txt/dir"), "parent is a file")
	assert.False(t, fs.MakeDir("/"), "root")
}

func TestMakeDirCreatesEmptyFolder(t *testing.T) {
	fs := newTestFS(t)
	require.True(t, fs.MakeDir("/bin/tools"))

	info, ok := fs.Stat("/bin/tools")
	require.True(t, ok)
	assert.Equal(t, Folder, info.Type)
	assert.Equal(t, "bin", info.ParentID)
	assert.Equal(t, "n1", info.ID)
	assert.Empty(t, fs.ReadDir("/bin/tools"))
}

func TestDeleteRemovesSubtree(t *testing.T) {
	fs := newTestFS(t)

	require.True(t, fs.Delete("/home"))

	_, ok := fs.ResolvePath("/home")
	assert.False(t, ok)
	_, ok = fs.ReadFile("/home/user/documents/hello.txt")
	assert.False(t, ok)
	assert.Equal(t, []string{"bin"}, fs.ReadDir("/"))
	// root and bin remain
	assert.Equal(t, 2, fs.Len())
}

func TestDeleteFailures(t *testing.T) {
	fs := newTestFS(t)

	for _, p := range []string{"/", "", "///"} {
		assert.False(t, fs.Delete(p), "root %q", p)
	}
	assert.False(t, fs.Delete("/home/nope"))
	assert.False(t, fs.Delete("/nope/child"))

	_, ok := fs.ResolvePath("/")
	assert.True(t, ok)
}

func TestDeleteThenRecreate(t *testing.T) {
	fs := newTestFS(t)
	require.True(t, fs.Delete("/home/user/documents/hello.txt"))
	require.True(t, fs.WriteFile("/home/user/documents/hello.txt", "again"))

	info, ok := fs.Stat("/home/user/documents/hello.txt")
	require.True(t, ok)
	assert.NotEqual(t, "f1", info.ID, "ids are never reused")
}

func TestMutationEvents(t *testing.T) {
	bus := events.NewBus()
	fs := newTestFS(t, WithBus(bus))

	var got []events.Event
	bus.Subscribe(func(ev events.Event) {
		ev.Timestamp = 0
		got = append(got, ev)
	})

	fs.WriteFile("home//user/a.txt", "a")
	fs.MakeDir("/home/user/dir")
	fs.MakeDir("/home/user/dir")
	fs.Delete("/home/user/a.txt")
	fs.Reset()

	want := []events.Event{
		{Type: events.FSChanged, Op: "writeFile", Path: "/home/user/a.txt"},
		{Type: events.FSChanged, Op: "makeDir", Path: "/home/user/dir"},
		{Type: events.FSChanged, Op: "delete", Path: "/home/user/a.txt"},
		{Type: events.SystemReinitialized, Op: "reset"},
	}
	assert.Empty(t, cmp.Diff(want, got))
}

func TestPersistsEveryMutation(t *testing.T) {
	store := storage.NewMemory()
	fs := newTestFS(t, WithStore(store, "k"))

	_, err := store.Load(context.Background(), "k")
	assert.ErrorIs(t, err, storage.ErrNotFound, "boot does not write")

	require.True(t, fs.WriteFile("/home/user/documents/todo.md", "persist me"))

	reopened := newTestFS(t, WithStore(store, "k"))
	content, ok := reopened.ReadFile("/home/user/documents/todo.md")
	require.True(t, ok)
	assert.Equal(t, "persist me", content)
	assert.Empty(t, cmp.Diff(contents(t, fs), contents(t, reopened)))
}

func TestPersistFailureKeepsMutation(t *testing.T) {
	metrics := monitoring.NewMetrics()
	store := &flakyStore{Memory: storage.NewMemory(), saveErr: errors.New("disk full")}
	fs := newTestFS(t, WithStore(store, ""), WithMetrics(metrics))

	assert.True(t, fs.WriteFile("/a.txt", "a"))
	content, ok := fs.ReadFile("/a.txt")
	assert.True(t, ok)
	assert.Equal(t, "a", content)
	assert.EqualValues(t, 1, metrics.Snapshot().PersistErrors)
}

func TestBootFromCorruptStore(t *testing.T) {
	store := storage.NewMemory()
	require.NoError(t, store.Save(context.Background(), DefaultKey, []byte("{not json")))

	fs := newTestFS(t, WithStore(store, ""))
	_, ok := fs.ReadFile("/home/user/documents/hello.txt")
	assert.True(t, ok)
}

func TestBootFailsOnStoreError(t *testing.T) {
	store := &flakyStore{Memory: storage.NewMemory(), loadErr: errors.New("connection refused")}
	_, err := New(context.Background(), WithStore(store, ""))
	assert.ErrorContains(t, err, "connection refused")
}

func TestConcurrentMutations(t *testing.T) {
	fs := newTestFS(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("/bin/f%02d", i)
			assert.True(t, fs.WriteFile(name, name))
			fs.ReadDir("/bin")
		}(i)
	}
	wg.Wait()

	assert.Len(t, fs.ReadDir("/bin"), 50)
	for i := 0; i < 50; i++ {
		name := fmt.Sprintf("/bin/f%02d", i)
		content, ok := fs.ReadFile(name)
		assert.True(t, ok)
		assert.Equal(t, name, content)
	}
}
