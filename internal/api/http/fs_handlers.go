package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/ros/backend/internal/shared/types"
	"github.com/GriffinCanCode/ros/backend/internal/shared/utils"
)

var (
	errPathRequired = errors.New("path is required")
	errNotFound     = errors.New("path not found")
	errNotFile      = errors.New("not a file")
)

func pathQuery(c *gin.Context) (string, bool) {
	p := c.Query("path")
	if p == "" {
		abort(c, http.StatusBadRequest, errPathRequired)
		return "", false
	}
	if err := utils.ValidatePath(p); err != nil {
		abort(c, http.StatusBadRequest, err)
		return "", false
	}
	return p, true
}

// Stat describes one node
func (h *Handlers) Stat(c *gin.Context) {
	p, ok := pathQuery(c)
	if !ok {
		return
	}
	info, found := h.FS.Stat(p)
	if !found {
		abort(c, http.StatusNotFound, errNotFound)
		return
	}
	c.JSON(http.StatusOK, info)
}

// ListDir lists a folder's child names in insertion order. Missing paths
// and files list as empty.
func (h *Handlers) ListDir(c *gin.Context) {
	p, ok := pathQuery(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": p, "entries": h.FS.ReadDir(p)})
}

// ReadFile returns a file's content
func (h *Handlers) ReadFile(c *gin.Context) {
	p, ok := pathQuery(c)
	if !ok {
		return
	}
	content, found := h.FS.ReadFile(p)
	if !found {
		if _, exists := h.FS.Stat(p); exists {
			abort(c, http.StatusBadRequest, errNotFile)
			return
		}
		abort(c, http.StatusNotFound, errNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": p, "content": content})
}

// WriteFile creates or overwrites a file
func (h *Handlers) WriteFile(c *gin.Context) {
	var req types.WriteFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	if err := utils.ValidatePath(req.Path); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	if err := utils.ValidateContent(req.Content); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	if !h.FS.WriteFile(req.Path, req.Content) {
		abort(c, http.StatusConflict, errors.New("cannot write "+req.Path))
		return
	}
	c.JSON(http.StatusOK, gin.H{"written": true, "path": req.Path})
}

// MakeDir creates a folder
func (h *Handlers) MakeDir(c *gin.Context) {
	var req types.PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	if err := utils.ValidatePath(req.Path); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	if !h.FS.MakeDir(req.Path) {
		abort(c, http.StatusConflict, errors.New("cannot create "+req.Path))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"created": true, "path": req.Path})
}

// Delete removes a node and its subtree
func (h *Handlers) Delete(c *gin.Context) {
	p, ok := pathQuery(c)
	if !ok {
		return
	}
	if !h.FS.Delete(p) {
		abort(c, http.StatusNotFound, errNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true, "path": p})
}
