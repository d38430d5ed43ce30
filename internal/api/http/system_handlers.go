package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ros/backend/internal/providers/settings"
	"github.com/GriffinCanCode/ros/backend/internal/shared/types"
	"github.com/GriffinCanCode/ros/backend/internal/shared/utils"
)

// GetDesktop returns the desktop state
func (h *Handlers) GetDesktop(c *gin.Context) {
	c.JSON(http.StatusOK, h.Shell.Desktop().State())
}

// UpdateDesktop applies theme, volume and brightness changes
func (h *Handlers) UpdateDesktop(c *gin.Context) {
	var req types.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	state, err := h.Shell.Desktop().Apply(req)
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Export downloads a snapshot of the file system. ?compress=true gzips it.
func (h *Handlers) Export(c *gin.Context) {
	compress, _ := strconv.ParseBool(c.Query("compress"))
	data, name, err := h.Backups.Backup(compress)
	if err != nil {
		h.Logger.Error("export failed", zap.Error(err))
		abort(c, http.StatusInternalServerError, err)
		return
	}

	contentType := "application/json"
	if compress {
		contentType = "application/gzip"
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// Import replaces the file system with the request body, compressed or not.
// A rejected snapshot leaves the current tree untouched.
func (h *Handlers) Import(c *gin.Context) {
	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, utils.MaxBackupSize))
	if err != nil {
		abort(c, http.StatusRequestEntityTooLarge, err)
		return
	}
	if err := h.Backups.Restore(data); err != nil {
		h.Logger.Info("import rejected", zap.Error(err))
		abort(c, http.StatusBadRequest, errors.New(settings.ImportFailedText))
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": true, "nodes": h.FS.Len()})
}

// Reset restores the factory tree. Subscribers close windows and reset
// the desktop.
func (h *Handlers) Reset(c *gin.Context) {
	h.FS.Reset()
	c.JSON(http.StatusOK, gin.H{"reset": true, "nodes": h.FS.Len()})
}
