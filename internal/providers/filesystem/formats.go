package filesystem

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"

	"github.com/GriffinCanCode/ros/backend/internal/shared/types"
)

// FormatsOps handles structured file formats
type FormatsOps struct {
	*FilesystemOps
}

// GetTools returns format operation tool definitions
func (f *FormatsOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.json.read",
			Name:        "Read JSON",
			Description: "Read and parse a JSON file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.json.write",
			Name:        "Write JSON",
			Description: "Write data as an indented JSON file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "data", Type: "any", Description: "Data to write", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.yaml.read",
			Name:        "Read YAML",
			Description: "Parse a YAML file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.yaml.write",
			Name:        "Write YAML",
			Description: "Write data as a YAML file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "data", Type: "any", Description: "Data to write", Required: true},
			},
			Returns: "boolean",
		},
	}
}

func (f *FormatsOps) handlers() map[string]handler {
	return map[string]handler{
		"filesystem.json.read":  f.ReadJSON,
		"filesystem.json.write": f.WriteJSON,
		"filesystem.yaml.read":  f.ReadYAML,
		"filesystem.yaml.write": f.WriteYAML,
	}
}

// ReadJSON parses a JSON file
func (f *FormatsOps) ReadJSON(ctx context.Context, args map[string]any, appCtx *types.Context) (*types.Result, error) {
	return f.read(args, func(content string, out *any) error {
		return sonic.ConfigStd.UnmarshalFromString(content, out)
	})
}

// WriteJSON writes data as JSON
func (f *FormatsOps) WriteJSON(ctx context.Context, args map[string]any, appCtx *types.Context) (*types.Result, error) {
	return f.write(args, func(v any) ([]byte, error) {
		return sonic.ConfigStd.MarshalIndent(v, "", "  ")
	})
}

// ReadYAML parses a YAML file
func (f *FormatsOps) ReadYAML(ctx context.Context, args map[string]any, appCtx *types.Context) (*types.Result, error) {
	return f.read(args, func(content string, out *any) error {
		return yaml.Unmarshal([]byte(content), out)
	})
}

// WriteYAML writes data as YAML
func (f *FormatsOps) WriteYAML(ctx context.Context, args map[string]any, appCtx *types.Context) (*types.Result, error) {
	return f.write(args, yaml.Marshal)
}

func (f *FormatsOps) read(args map[string]any, decode func(string, *any) error) (*types.Result, error) {
	path, err := pathParam(args)
	if err != nil {
		return Failure(err.Error())
	}

	content, ok := f.FS.ReadFile(path)
	if !ok {
		return Failure(fmt.Sprintf("no such file: %s", path))
	}

	var data any
	if err := decode(content, &data); err != nil {
		return Failure(fmt.Sprintf("parse %s: %v", path, err))
	}
	return Success(map[string]any{"path": path, "data": data})
}

func (f *FormatsOps) write(args map[string]any, encode func(any) ([]byte, error)) (*types.Result, error) {
	path, err := pathParam(args)
	if err != nil {
		return Failure(err.Error())
	}
	data, ok := args["data"]
	if !ok {
		return Failure("data parameter required")
	}

	encoded, err := encode(data)
	if err != nil {
		return Failure(fmt.Sprintf("encode failed: %v", err))
	}
	if !f.FS.WriteFile(path, string(encoded)) {
		return Failure(fmt.Sprintf("write failed: parent of %s is not a folder", path))
	}
	return Success(map[string]any{"written": true, "path": path, "size": len(encoded)})
}
