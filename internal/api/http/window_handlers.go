package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/ros/backend/internal/shared/types"
)

var (
	errWindowNotFound = errors.New("window not found")
	errAppNotFound    = errors.New("app not found")
)

// ListWindows lists open windows in open order
func (h *Handlers) ListWindows(c *gin.Context) {
	windows := h.Shell.Windows()
	c.JSON(http.StatusOK, gin.H{
		"windows": windows.List(),
		"active":  windows.Active(),
		"stats":   windows.Stats(),
	})
}

// OpenWindow opens an application window
func (h *Handlers) OpenWindow(c *gin.Context) {
	var req types.OpenAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	var props map[string]any
	if req.FilePath != "" {
		props = map[string]any{"filePath": req.FilePath}
	}
	win, ok := h.Shell.Windows().Open(req.AppID, props)
	if !ok {
		abort(c, http.StatusNotFound, errAppNotFound)
		return
	}
	c.JSON(http.StatusCreated, win)
}

// windowOp adapts a boolean window transition into a handler.
func (h *Handlers) windowOp(op func(id string) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if !op(id) {
			abort(c, http.StatusNotFound, errWindowNotFound)
			return
		}
		win, _ := h.Shell.Windows().Get(id)
		c.JSON(http.StatusOK, win)
	}
}

// CloseWindow removes a window
func (h *Handlers) CloseWindow(c *gin.Context) {
	id := c.Param("id")
	if !h.Shell.Windows().Close(id) {
		abort(c, http.StatusNotFound, errWindowNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"closed": true, "id": id})
}

// FocusWindow raises a window and restores it if minimized
func (h *Handlers) FocusWindow(c *gin.Context) {
	h.windowOp(h.Shell.Windows().Focus)(c)
}

// MinimizeWindow hides a window
func (h *Handlers) MinimizeWindow(c *gin.Context) {
	h.windowOp(h.Shell.Windows().Minimize)(c)
}

// MaximizeWindow toggles the maximized bit
func (h *Handlers) MaximizeWindow(c *gin.Context) {
	h.windowOp(h.Shell.Windows().Maximize)(c)
}

// MoveWindow repositions a window
func (h *Handlers) MoveWindow(c *gin.Context) {
	var req types.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	h.windowOp(func(id string) bool {
		return h.Shell.Windows().Move(id, req.X, req.Y)
	})(c)
}

// BlurWindows clears the active window
func (h *Handlers) BlurWindows(c *gin.Context) {
	h.Shell.Windows().Blur()
	c.Status(http.StatusNoContent)
}

// ListApps lists the application registry. ?desktop=true keeps only
// entries that get a desktop icon.
func (h *Handlers) ListApps(c *gin.Context) {
	apps := h.Apps.List()
	if c.Query("desktop") == "true" {
		apps = h.Apps.Desktop()
	}
	c.JSON(http.StatusOK, gin.H{"apps": apps, "stats": h.Apps.Stats()})
}

// ToggleApp is the taskbar click: toggles minimize on the app's latest
// window, or opens one.
func (h *Handlers) ToggleApp(c *gin.Context) {
	appID := c.Param("id")
	if !h.Shell.Windows().ToggleApp(appID) {
		abort(c, http.StatusNotFound, errAppNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": h.Shell.Windows().Active()})
}
