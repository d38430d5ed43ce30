package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/ros/backend/internal/providers/terminal"
	"github.com/GriffinCanCode/ros/backend/internal/shared/types"
	"github.com/GriffinCanCode/ros/backend/internal/shared/utils"
)

func terminalStatus(err error) int {
	switch {
	case errors.Is(err, terminal.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, terminal.ErrBusy):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// CreateTerminal starts a terminal session
func (h *Handlers) CreateTerminal(c *gin.Context) {
	c.JSON(http.StatusCreated, h.Terminals.CreateSession())
}

// ListTerminals lists live sessions
func (h *Handlers) ListTerminals(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sessions": h.Terminals.ListSessions()})
}

// GetTerminal returns a session with its transcript
func (h *Handlers) GetTerminal(c *gin.Context) {
	sess, err := h.Terminals.Session(c.Param("id"))
	if err != nil {
		abort(c, terminalStatus(err), err)
		return
	}
	info, _ := h.Terminals.GetSession(sess.ID)
	c.JSON(http.StatusOK, gin.H{"session": info, "history": sess.History()})
}

// TerminalInput runs one line in a session. The request blocks while
// the agent answers.
func (h *Handlers) TerminalInput(c *gin.Context) {
	var req types.InputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	if err := utils.ValidateMessage(req.Input); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	out, err := h.Terminals.Input(c.Request.Context(), c.Param("id"), req.Input)
	if err != nil {
		abort(c, terminalStatus(err), err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// KillTerminal ends a session
func (h *Handlers) KillTerminal(c *gin.Context) {
	id := c.Param("id")
	if err := h.Terminals.Kill(id); err != nil {
		abort(c, terminalStatus(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"killed": true, "id": id})
}
