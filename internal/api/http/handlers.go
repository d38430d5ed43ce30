package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ros/backend/internal/domain/registry"
	"github.com/GriffinCanCode/ros/backend/internal/domain/shell"
	"github.com/GriffinCanCode/ros/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/ros/backend/internal/providers/settings"
	"github.com/GriffinCanCode/ros/backend/internal/providers/terminal"
	"github.com/GriffinCanCode/ros/backend/internal/service"
	"github.com/GriffinCanCode/ros/backend/internal/shared/types"
	"github.com/GriffinCanCode/ros/backend/internal/shared/utils"
)

// Version is reported by the root endpoint.
const Version = "0.3.0"

// AgentStatus reports the remote agent's circuit breaker.
type AgentStatus interface {
	BreakerState() resilience.State
}

// Deps are the components the handlers serve.
type Deps struct {
	FS        *vfs.FileSystem
	Shell     *shell.Shell
	Apps      *registry.Manager
	Terminals *terminal.Manager
	Services  *service.Registry
	Backups   *settings.Provider
	Metrics   *monitoring.Metrics
	// Agent is nil when the agent bridge is disabled.
	Agent  AgentStatus
	Logger *zap.Logger
}

// Handlers contains all HTTP handlers
type Handlers struct {
	Deps
}

// NewHandlers creates a new handlers instance
func NewHandlers(deps Deps) *Handlers {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Handlers{Deps: deps}
}

func abort(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}

// Root handles the root endpoint
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "ros desktop",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	agent := gin.H{"enabled": h.Agent != nil}
	if h.Agent != nil {
		agent["breaker"] = h.Agent.BreakerState().String()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"fs_nodes":         h.FS.Len(),
		"windows":          h.Shell.Windows().Stats(),
		"apps":             h.Apps.Stats(),
		"service_registry": h.Services.Stats(),
		"terminals":        len(h.Terminals.ListSessions()),
		"agent":            agent,
	})
}

// Stats returns the JSON view of the metrics.
func (h *Handlers) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"metrics": h.Metrics.Snapshot(),
		"windows": h.Shell.Windows().Stats(),
		"desktop": h.Shell.Desktop().State(),
	})
}

// ListServices lists registered services, optionally by category
func (h *Handlers) ListServices(c *gin.Context) {
	var category *types.Category
	if s := c.Query("category"); s != "" {
		cat := types.Category(s)
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.Services.List(category),
		"stats":    h.Services.Stats(),
	})
}

type discoverRequest struct {
	Intent string `json:"intent" binding:"required"`
	Limit  int    `json:"limit"`
}

// DiscoverServices ranks services against a free-text intent
func (h *Handlers) DiscoverServices(c *gin.Context) {
	var req discoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	if err := utils.ValidateString(req.Intent, "intent", 1, utils.MaxQueryLength, true); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	if req.Limit <= 0 {
		req.Limit = 5
	}

	c.JSON(http.StatusOK, gin.H{
		"query":    req.Intent,
		"services": h.Services.Discover(req.Intent, req.Limit),
	})
}

// ExecuteService executes a service tool. Tool failures are successful
// HTTP responses carrying success=false; only routing errors are 4xx.
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	result, err := h.Services.Execute(c.Request.Context(), req.ToolID, req.Params, req.Ctx)
	if err != nil {
		h.Logger.Debug("service execution rejected", zap.String("tool_id", req.ToolID), zap.Error(err))
		abort(c, http.StatusNotFound, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Command dispatches one command protocol message.
func (h *Handlers) Command(c *gin.Context) {
	var req types.CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	outcome, err := h.Shell.Execute(req.Command, req.Args)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, shell.ErrUnknownCommand) {
			status = http.StatusNotFound
		}
		abort(c, status, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}
