package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/ros/backend/internal/domain/events"
	"github.com/GriffinCanCode/ros/backend/internal/domain/registry"
	"github.com/GriffinCanCode/ros/backend/internal/domain/shell"
	"github.com/GriffinCanCode/ros/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/ros/backend/internal/domain/window"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ros/backend/internal/providers/filesystem"
	"github.com/GriffinCanCode/ros/backend/internal/providers/settings"
	"github.com/GriffinCanCode/ros/backend/internal/providers/terminal"
	"github.com/GriffinCanCode/ros/backend/internal/service"
	"github.com/GriffinCanCode/ros/backend/internal/shared/types"
	"github.com/GriffinCanCode/ros/backend/internal/shared/utils"
)

type testServer struct {
	router *gin.Engine
	fs     *vfs.FileSystem
	shell  *shell.Shell
}

func setup(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	bus := events.NewBus()
	metrics := monitoring.NewMetrics()
	fs, err := vfs.New(context.Background(), vfs.WithBus(bus), vfs.WithMetrics(metrics))
	require.NoError(t, err)

	apps := registry.Default()
	desktop := shell.NewDesktop("").WithBus(bus)
	sh := shell.New(window.NewManager(apps).WithBus(bus), desktop)
	sh.Attach(bus)
	t.Cleanup(sh.Detach)

	terms := terminal.NewManager(fs, nil, sh)
	backups := settings.NewProvider(fs, desktop, sh)
	services := service.NewRegistry().MustRegister(
		filesystem.NewProvider(fs),
		terminal.NewProvider(terms),
		backups,
	)

	h := NewHandlers(Deps{
		FS:        fs,
		Shell:     sh,
		Apps:      apps,
		Terminals: terms,
		Services:  services,
		Backups:   backups,
		Metrics:   metrics,
	})
	router := gin.New()
	router.Use(monitoring.Middleware(metrics))
	h.Register(router)
	return &testServer{router: router, fs: fs, shell: sh}
}

func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case []byte:
		reader = bytes.NewReader(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	return decode[map[string]string](t, w)["error"]
}

func TestRootAndHealth(t *testing.T) {
	s := setup(t)

	w := s.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "online", decode[map[string]any](t, w)["status"])

	w = s.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	health := decode[map[string]any](t, w)
	assert.Equal(t, "healthy", health["status"])
	assert.EqualValues(t, 8, health["fs_nodes"])
	assert.Equal(t, map[string]any{"enabled": false}, health["agent"])
}

func TestFileSystemRoutes(t *testing.T) {
	s := setup(t)

	w := s.do(http.MethodGet, "/fs/stat?path=/home/user/documents/hello.txt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	info := decode[vfs.NodeInfo](t, w)
	assert.Equal(t, "f1", info.ID)
	assert.Equal(t, len("Welcome to GeminiOS!"), info.Size)

	w = s.do(http.MethodGet, "/fs/read?path=/home/user/documents/hello.txt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Welcome to GeminiOS!", decode[map[string]string](t, w)["content"])

	w = s.do(http.MethodPost, "/fs/write", types.WriteFileRequest{Path: "/home/user/notes.txt", Content: "hi"})
	require.Equal(t, http.StatusOK, w.Code)
	content, ok := s.fs.ReadFile("/home/user/notes.txt")
	require.True(t, ok)
	assert.Equal(t, "hi", content)

	w = s.do(http.MethodPost, "/fs/mkdir", types.PathRequest{Path: "/home/user/music"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = s.do(http.MethodGet, "/fs/list?path=/home/user", nil)
	require.Equal(t, http.StatusOK, w.Code)
	listing := decode[struct {
		Entries []string `json:"entries"`
	}](t, w)
	assert.Equal(t, []string{"documents", "projects", "notes.txt", "music"}, listing.Entries)

	w = s.do(http.MethodDelete, "/fs?path=/home/user/music", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodDelete, "/fs?path=/home/user/music", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFileSystemRouteErrors(t *testing.T) {
	s := setup(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
	}{
		{"stat without path", http.MethodGet, "/fs/stat", nil, http.StatusBadRequest},
		{"stat missing", http.MethodGet, "/fs/stat?path=/nope", nil, http.StatusNotFound},
		{"read folder", http.MethodGet, "/fs/read?path=/home", nil, http.StatusBadRequest},
		{"read missing", http.MethodGet, "/fs/read?path=/home/nope.txt", nil, http.StatusNotFound},
		{"write without parent", http.MethodPost, "/fs/write", types.WriteFileRequest{Path: "/a/b.txt"}, http.StatusConflict},
		{"write over folder", http.MethodPost, "/fs/write", types.WriteFileRequest{Path: "/home"}, http.StatusConflict},
		{"write oversized", http.MethodPost, "/fs/write", types.WriteFileRequest{Path: "/home/user/big.txt", Content: strings.Repeat("x", utils.MaxContentSize+1)}, http.StatusBadRequest},
		{"mkdir existing", http.MethodPost, "/fs/mkdir", types.PathRequest{Path: "/bin"}, http.StatusConflict},
		{"mkdir without body", http.MethodPost, "/fs/mkdir", []byte(`{}`), http.StatusBadRequest},
		{"delete root", http.MethodDelete, "/fs?path=/", nil, http.StatusNotFound},
		{"stat overlong path", http.MethodGet, "/fs/stat?path=/" + strings.Repeat("a", utils.MaxPathLength), nil, http.StatusBadRequest},
		{"write nul path", http.MethodPost, "/fs/write", types.WriteFileRequest{Path: "/home/user/a\x00b"}, http.StatusBadRequest},
		{"mkdir overlong path", http.MethodPost, "/fs/mkdir", types.PathRequest{Path: "/" + strings.Repeat("a", utils.MaxPathLength)}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.NotEmpty(t, errorOf(t, w))
		})
	}
	assert.Equal(t, 8, s.fs.Len())
}

func TestListDirMissingIsEmpty(t *testing.T) {
	s := setup(t)

	w := s.do(http.MethodGet, "/fs/list?path=/nope", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"path":"/nope","entries":[]}`, w.Body.String())
}

func TestWindowRoutes(t *testing.T) {
	s := setup(t)

	w := s.do(http.MethodPost, "/windows", types.OpenAppRequest{AppID: "notepad", FilePath: "/home/user/documents/hello.txt"})
	require.Equal(t, http.StatusCreated, w.Code)
	win := decode[types.Window](t, w)
	assert.Equal(t, "Notepad", win.Title)
	assert.Equal(t, 11, win.ZIndex)
	assert.Equal(t, "/home/user/documents/hello.txt", win.FilePath())

	w = s.do(http.MethodPost, "/windows", types.OpenAppRequest{AppID: "terminal"})
	require.Equal(t, http.StatusCreated, w.Code)
	term := decode[types.Window](t, w)

	w = s.do(http.MethodPost, "/windows/"+win.ID+"/minimize", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[types.Window](t, w).IsMinimized)

	w = s.do(http.MethodPost, "/windows/"+win.ID+"/focus", nil)
	require.Equal(t, http.StatusOK, w.Code)
	focused := decode[types.Window](t, w)
	assert.False(t, focused.IsMinimized)
	assert.Greater(t, focused.ZIndex, term.ZIndex)

	w = s.do(http.MethodPost, "/windows/"+win.ID+"/maximize", nil)
	assert.True(t, decode[types.Window](t, w).IsMaximized)

	w = s.do(http.MethodPut, "/windows/"+win.ID+"/position", types.MoveRequest{X: 200, Y: 120})
	moved := decode[types.Window](t, w)
	assert.Equal(t, 200, moved.X)
	assert.Equal(t, 120, moved.Y)

	w = s.do(http.MethodGet, "/windows", nil)
	list := decode[struct {
		Windows []types.Window `json:"windows"`
		Active  string         `json:"active"`
	}](t, w)
	assert.Len(t, list.Windows, 2)
	assert.Equal(t, win.ID, list.Active)

	w = s.do(http.MethodPost, "/windows/blur", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, s.shell.Windows().Active())

	w = s.do(http.MethodDelete, "/windows/"+term.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, s.shell.Windows().List(), 1)
}

func TestWindowRouteErrors(t *testing.T) {
	s := setup(t)

	w := s.do(http.MethodPost, "/windows", types.OpenAppRequest{AppID: "solitaire"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	for _, op := range []string{"focus", "minimize", "maximize"} {
		w = s.do(http.MethodPost, "/windows/win_missing/"+op, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, op)
	}
	w = s.do(http.MethodDelete, "/windows/win_missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, s.shell.Windows().List())
}

func TestAppRoutes(t *testing.T) {
	s := setup(t)

	all := decode[struct {
		Apps []types.AppEntry `json:"apps"`
	}](t, s.do(http.MethodGet, "/apps", nil))
	icons := decode[struct {
		Apps []types.AppEntry `json:"apps"`
	}](t, s.do(http.MethodGet, "/apps?desktop=true", nil))
	assert.Len(t, all.Apps, 8)
	assert.Len(t, icons.Apps, 7)

	w := s.do(http.MethodPost, "/apps/monitor/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, s.shell.Windows().List(), 1)

	s.do(http.MethodPost, "/apps/monitor/toggle", nil)
	assert.True(t, s.shell.Windows().List()[0].IsMinimized)

	w = s.do(http.MethodPost, "/apps/solitaire/toggle", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommandRoute(t *testing.T) {
	s := setup(t)

	w := s.do(http.MethodPost, "/commands", types.CommandRequest{
		Command: shell.CmdOpenApp,
		Args:    map[string]any{"appId": "code", "filePath": "/home/user/projects/test.js"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	outcome := decode[shell.Outcome](t, w)
	assert.True(t, outcome.Applied)
	assert.NotEmpty(t, outcome.WindowID)

	w = s.do(http.MethodPost, "/commands", types.CommandRequest{Command: shell.CmdChangeWallpaper})
	require.Equal(t, http.StatusOK, w.Code)
	outcome = decode[shell.Outcome](t, w)
	assert.True(t, strings.HasPrefix(outcome.Wallpaper, "https://picsum.photos/id/"))
	assert.Equal(t, outcome.Wallpaper, s.shell.Desktop().State().Wallpaper)

	w = s.do(http.MethodPost, "/commands", types.CommandRequest{Command: shell.CmdCloseApp, Args: map[string]any{"target": "active"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, s.shell.Windows().List())

	w = s.do(http.MethodPost, "/commands", types.CommandRequest{Command: "reboot"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/commands", types.CommandRequest{Command: shell.CmdOpenApp})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDesktopRoutes(t *testing.T) {
	s := setup(t)

	state := decode[types.DesktopState](t, s.do(http.MethodGet, "/desktop", nil))
	assert.Equal(t, types.ThemeDark, state.Theme)
	assert.Equal(t, 50, state.Volume)

	w := s.do(http.MethodPut, "/desktop", []byte(`{"theme":"retro","volume":150,"brightness":-4}`))
	require.Equal(t, http.StatusOK, w.Code)
	state = decode[types.DesktopState](t, w)
	assert.Equal(t, types.ThemeRetro, state.Theme)
	assert.Equal(t, 100, state.Volume)
	assert.Equal(t, 0, state.Brightness)

	w = s.do(http.MethodPut, "/desktop", []byte(`{"theme":"neon","volume":10}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 100, s.shell.Desktop().State().Volume)
}

func TestExportImportReset(t *testing.T) {
	s := setup(t)

	w := s.do(http.MethodGet, "/system/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "ros-backup-")
	snapshot := w.Body.Bytes()
	assert.True(t, json.Valid(snapshot))

	require.True(t, s.fs.WriteFile("/home/user/extra.txt", "x"))

	w = s.do(http.MethodPost, "/system/import", snapshot)
	require.Equal(t, http.StatusOK, w.Code)
	_, ok := s.fs.Stat("/home/user/extra.txt")
	assert.False(t, ok)

	w = s.do(http.MethodGet, "/system/export?compress=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/gzip", w.Header().Get("Content-Type"))
	assert.True(t, settings.IsCompressed(w.Body.Bytes()))

	w = s.do(http.MethodPost, "/system/import", w.Body.Bytes())
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/system/import", []byte("not a snapshot"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, settings.ImportFailedText, errorOf(t, w))
	assert.Equal(t, 8, s.fs.Len())

	s.do(http.MethodPost, "/windows", types.OpenAppRequest{AppID: "browser"})
	s.do(http.MethodPut, "/desktop", []byte(`{"theme":"light"}`))
	require.True(t, s.fs.MakeDir("/tmp"))

	w = s.do(http.MethodPost, "/system/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 8, s.fs.Len())
	assert.Empty(t, s.shell.Windows().List())
	assert.Equal(t, types.ThemeDark, s.shell.Desktop().State().Theme)
}

func TestTerminalRoutes(t *testing.T) {
	s := setup(t)

	w := s.do(http.MethodPost, "/terminal/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	info := decode[terminal.SessionInfo](t, w)
	assert.Equal(t, "/home/user", info.Cwd)

	input := func(line string) terminal.Output {
		w := s.do(http.MethodPost, "/terminal/sessions/"+info.ID+"/input", types.InputRequest{Input: line})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		return decode[terminal.Output](t, w)
	}

	out := input("cd documents")
	assert.Equal(t, "/home/user/documents", out.Cwd)

	out = input("cat hello.txt")
	require.Len(t, out.Messages, 2)
	assert.Equal(t, "Welcome to GeminiOS!", out.Messages[1].Text)

	out = input("dance")
	assert.Equal(t, "command not found: dance", out.Messages[1].Text)

	w = s.do(http.MethodGet, "/terminal/sessions/"+info.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[struct {
		History []terminal.Message `json:"history"`
	}](t, w)
	assert.Len(t, detail.History, 6)

	listing := decode[struct {
		Sessions []terminal.SessionInfo `json:"sessions"`
	}](t, s.do(http.MethodGet, "/terminal/sessions", nil))
	assert.Len(t, listing.Sessions, 1)

	assert.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/terminal/sessions/"+info.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/terminal/sessions/"+info.ID, nil).Code)
	w = s.do(http.MethodPost, "/terminal/sessions/"+info.ID+"/input", types.InputRequest{Input: "ls"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServiceRoutes(t *testing.T) {
	s := setup(t)

	w := s.do(http.MethodGet, "/services", nil)
	require.Equal(t, http.StatusOK, w.Code)
	listing := decode[struct {
		Services []types.Service `json:"services"`
		Stats    service.Stats   `json:"stats"`
	}](t, w)
	assert.Equal(t, 3, listing.Stats.TotalServices)

	w = s.do(http.MethodGet, "/services?category=filesystem", nil)
	filtered := decode[struct {
		Services []types.Service `json:"services"`
	}](t, w)
	require.Len(t, filtered.Services, 1)
	assert.Equal(t, "filesystem", filtered.Services[0].ID)

	w = s.do(http.MethodPost, "/services/execute", types.ExecuteRequest{
		ToolID: "filesystem.read",
		Params: map[string]any{"path": "/home/user/documents/hello.txt"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	result := decode[types.Result](t, w)
	assert.True(t, result.Success)
	assert.Equal(t, "Welcome to GeminiOS!", result.Data["content"])

	w = s.do(http.MethodPost, "/services/execute", types.ExecuteRequest{ToolID: "filesystem.read", Params: map[string]any{"path": "/nope"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[types.Result](t, w).Success)

	w = s.do(http.MethodPost, "/services/execute", types.ExecuteRequest{ToolID: "weather.today"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/services/discover", map[string]any{"intent": "filesystem read"})
	require.Equal(t, http.StatusOK, w.Code)
	found := decode[struct {
		Services []types.Service `json:"services"`
	}](t, w)
	require.NotEmpty(t, found.Services)
	assert.Equal(t, "filesystem", found.Services[0].ID)

	w = s.do(http.MethodPost, "/services/discover", map[string]any{"intent": strings.Repeat("q", utils.MaxQueryLength+1)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsRoutes(t *testing.T) {
	s := setup(t)

	s.do(http.MethodGet, "/health", nil)
	w := s.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `path="/health"`)

	w = s.do(http.MethodGet, "/metrics/json", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[struct {
		Metrics monitoring.Snapshot `json:"metrics"`
	}](t, w)
	assert.GreaterOrEqual(t, stats.Metrics.TotalRequests, int64(2))
}
