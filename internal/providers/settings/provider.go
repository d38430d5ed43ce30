package settings

import (
	"context"
	"encoding/base64"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ros/backend/internal/domain/shell"
	"github.com/GriffinCanCode/ros/backend/internal/providers/params"
	"github.com/GriffinCanCode/ros/backend/internal/shared/types"
)

// ImportFailedText is shown when a backup is rejected.
const ImportFailedText = "Failed to import: Invalid system file."

// Encodings of exported data
const (
	EncodingJSON = "json"
	EncodingGzip = "gzip+base64"
)

// System is the snapshot surface of the file system.
type System interface {
	Export() ([]byte, error)
	Import(data []byte) error
	Reset()
}

// Commander dispatches command protocol messages.
type Commander interface {
	Execute(name string, args map[string]any) (shell.Outcome, error)
}

// Provider implements the Settings app
type Provider struct {
	system   System
	desktop  *shell.Desktop
	commands Commander
	logger   *zap.Logger
	now      func() time.Time
}

// NewProvider creates a settings provider
func NewProvider(system System, desktop *shell.Desktop, commands Commander) *Provider {
	return &Provider{
		system:   system,
		desktop:  desktop,
		commands: commands,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
}

// WithLogger sets the logger.
func (s *Provider) WithLogger(logger *zap.Logger) *Provider {
	if logger != nil {
		s.logger = logger.Named("settings")
	}
	return s
}

// Definition returns service metadata
func (s *Provider) Definition() types.Service {
	return types.Service{
		ID:          "settings",
		Name:        "Settings",
		Description: "Personalization, backups and factory reset",
		Category:    types.CategorySystem,
		Capabilities: []string{
			"personalization",
			"export",
			"import",
			"reset",
		},
		Tools: []types.Tool{
			{
				ID:          "settings.get",
				Name:        "Get Desktop Settings",
				Description: "Theme, wallpaper, volume and brightness",
				Parameters:  []types.Parameter{},
				Returns:     "DesktopState",
			},
			{
				ID:          "settings.set",
				Name:        "Update Desktop Settings",
				Description: "Change theme, volume or brightness; levels are clamped to 0-100",
				Parameters: []types.Parameter{
					{Name: "theme", Type: "string", Description: "dark, light, cyberpunk or retro", Required: false},
					{Name: "volume", Type: "number", Description: "Volume level", Required: false},
					{Name: "brightness", Type: "number", Description: "Brightness level", Required: false},
				},
				Returns: "DesktopState",
			},
			{
				ID:          "settings.change_wallpaper",
				Name:        "Change Wallpaper",
				Description: "Pick a new random wallpaper",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "settings.export",
				Name:        "Export Data",
				Description: "Snapshot of the whole file system",
				Parameters: []types.Parameter{
					{Name: "compress", Type: "boolean", Description: "Gzip and base64-encode the snapshot", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "settings.import",
				Name:        "Import Data",
				Description: "Replace the file system with a snapshot; compressed snapshots are detected",
				Parameters: []types.Parameter{
					{Name: "data", Type: "string", Description: "Snapshot JSON or base64 gzip", Required: true},
				},
				Returns: "boolean",
			},
			{
				ID:          "settings.reset",
				Name:        "Reset OS",
				Description: "Restore the factory file system",
				Parameters:  []types.Parameter{},
				Returns:     "boolean",
			},
		},
	}
}

// Execute runs a settings operation
func (s *Provider) Execute(ctx context.Context, toolID string, args map[string]any, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "settings.get":
		return params.Success(map[string]any{"desktop": s.desktop.State()})
	case "settings.set":
		return s.set(args)
	case "settings.change_wallpaper":
		return s.changeWallpaper()
	case "settings.export":
		return s.export(params.Bool(args, "compress", false))
	case "settings.import":
		return s.importData(args)
	case "settings.reset":
		s.system.Reset()
		return params.Success(map[string]any{"reset": true})
	default:
		return params.Failuref("unknown tool: %s", toolID)
	}
}

func (s *Provider) set(args map[string]any) (*types.Result, error) {
	var req types.SettingsRequest
	if raw, ok := args["theme"]; ok {
		theme, ok := raw.(string)
		if !ok {
			return params.Failure("theme must be string")
		}
		t := types.Theme(theme)
		req.Theme = &t
	}
	var err error
	if req.Volume, err = optionalInt(args, "volume"); err != nil {
		return params.Failure(err.Error())
	}
	if req.Brightness, err = optionalInt(args, "brightness"); err != nil {
		return params.Failure(err.Error())
	}

	state, err := s.desktop.Apply(req)
	if err != nil {
		return params.Failure(err.Error())
	}
	return params.Success(map[string]any{"desktop": state})
}

func optionalInt(args map[string]any, key string) (*int, error) {
	if _, ok := args[key]; !ok {
		return nil, nil
	}
	v, err := params.Int(args, key, 0)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Provider) changeWallpaper() (*types.Result, error) {
	outcome, err := s.commands.Execute(shell.CmdChangeWallpaper, map[string]any{})
	if err != nil {
		return params.Failure(err.Error())
	}
	return params.Success(map[string]any{"wallpaper": outcome.Wallpaper})
}

// Backup returns the current snapshot, gzipped when compress is set,
// with its download name.
func (s *Provider) Backup(compress bool) (data []byte, name string, err error) {
	data, err = s.system.Export()
	if err != nil {
		return nil, "", err
	}
	if compress {
		if data, err = Compress(data); err != nil {
			return nil, "", err
		}
	}
	return data, BackupName(s.now(), compress), nil
}

// Restore imports a backup, compressed or not.
func (s *Provider) Restore(data []byte) error {
	snapshot, err := Decompress(data)
	if err != nil {
		return err
	}
	return s.system.Import(snapshot)
}

func (s *Provider) export(compress bool) (*types.Result, error) {
	data, name, err := s.Backup(compress)
	if err != nil {
		return params.Failuref("export failed: %v", err)
	}

	encoding, payload := EncodingJSON, string(data)
	if compress {
		encoding, payload = EncodingGzip, base64.StdEncoding.EncodeToString(data)
	}
	return params.Success(map[string]any{
		"filename": name,
		"encoding": encoding,
		"data":     payload,
		"size":     len(data),
	})
}

func (s *Provider) importData(args map[string]any) (*types.Result, error) {
	raw, err := params.String(args, "data", true)
	if err != nil {
		return params.Failure(err.Error())
	}

	data := []byte(raw)
	if decoded, err := base64.StdEncoding.DecodeString(raw); err == nil && IsCompressed(decoded) {
		data = decoded
	}

	if err := s.Restore(data); err != nil {
		s.logger.Info("Backup rejected", zap.Error(err))
		return params.Failure(ImportFailedText)
	}
	return params.Success(map[string]any{"imported": true})
}
