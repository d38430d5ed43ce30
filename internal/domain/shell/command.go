package shell

import (
	"errors"
	"fmt"
)

// Command protocol names as they appear on the wire.
const (
	CmdOpenApp         = "openApp"
	CmdCloseApp        = "closeApp"
	CmdChangeWallpaper = "changeWallpaper"
)

// TargetActive is the only closeApp target that does anything.
const TargetActive = "active"

var (
	// ErrUnknownCommand is returned by Decode for names outside the protocol.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrMalformedCommand is returned by Decode when arguments have the wrong shape.
	ErrMalformedCommand = errors.New("malformed command")
)

// Command is one message of the command protocol. The set of
// implementations is closed; Dispatch switches over all of them.
type Command interface {
	Name() string
	command()
}

// OpenApp opens a window for AppID, forwarding FilePath to the app.
type OpenApp struct {
	AppID    string `json:"appId"`
	FilePath string `json:"filePath,omitempty"`
}

// CloseApp closes a window. Only TargetActive is honored.
type CloseApp struct {
	Target string `json:"target"`
}

// ChangeWallpaper draws a new random wallpaper.
type ChangeWallpaper struct{}

func (OpenApp) Name() string         { return CmdOpenApp }
func (CloseApp) Name() string        { return CmdCloseApp }
func (ChangeWallpaper) Name() string { return CmdChangeWallpaper }

func (OpenApp) command()         {}
func (CloseApp) command()        {}
func (ChangeWallpaper) command() {}

// Decode turns a loosely typed name and argument bag, as produced by the
// agent or a JSON request, into a Command. Extra arguments are ignored.
func Decode(name string, args map[string]any) (Command, error) {
	switch name {
	case CmdOpenApp:
		appID, err := stringArg(args, "appId", true)
		if err != nil {
			return nil, err
		}
		filePath, err := stringArg(args, "filePath", false)
		if err != nil {
			return nil, err
		}
		return OpenApp{AppID: appID, FilePath: filePath}, nil
	case CmdCloseApp:
		target, err := stringArg(args, "target", false)
		if err != nil {
			return nil, err
		}
		return CloseApp{Target: target}, nil
	case CmdChangeWallpaper:
		return ChangeWallpaper{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
}

func stringArg(args map[string]any, key string, required bool) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		if required {
			return "", fmt.Errorf("%w: missing %s", ErrMalformedCommand, key)
		}
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrMalformedCommand, key, raw)
	}
	return s, nil
}
