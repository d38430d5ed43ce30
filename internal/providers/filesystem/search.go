package filesystem

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/GriffinCanCode/ros/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/ros/backend/internal/providers/params"
	"github.com/GriffinCanCode/ros/backend/internal/shared/paths"
	"github.com/GriffinCanCode/ros/backend/internal/shared/types"
)

// maxSearchResults caps every search.
const maxSearchResults = 500

var errStop = errors.New("result limit reached")

// SearchOps handles file search operations
type SearchOps struct {
	*FilesystemOps
}

// GetTools returns search operation tool definitions
func (s *SearchOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.glob",
			Name:        "Glob",
			Description: "Find paths under a directory matching a ** glob",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory to search", Required: true},
				{Name: "pattern", Type: "string", Description: "Glob relative to path, e.g. **/*.js", Required: true},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.grep",
			Name:        "Search Content",
			Description: "Find files whose content contains a string",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory to search", Required: true},
				{Name: "query", Type: "string", Description: "Text to look for", Required: true},
				{Name: "case_sensitive", Type: "boolean", Description: "Match case (default false)", Required: false},
			},
			Returns: "array",
		},
	}
}

func (s *SearchOps) handlers() map[string]handler {
	return map[string]handler{
		"filesystem.glob": s.Glob,
		"filesystem.grep": s.Grep,
	}
}

// Glob performs ** glob matching over the tree below path
func (s *SearchOps) Glob(ctx context.Context, args map[string]any, appCtx *types.Context) (*types.Result, error) {
	path, err := pathParam(args)
	if err != nil {
		return Failure(err.Error())
	}
	pattern, err := params.String(args, "pattern", true)
	if err != nil {
		return Failure(err.Error())
	}

	matches, err := Find(s.FS, path, pattern)
	if err != nil {
		return Failure(fmt.Sprintf("glob failed: %v", err))
	}
	return Success(map[string]any{"path": path, "matches": matches, "count": len(matches)})
}

// Find returns the absolute paths below root whose path relative to root
// matches pattern. root itself never matches.
func Find(fs FileSystem, root, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}

	prefix := paths.Join(paths.Segments(root)...)
	matches := []string{}
	err := fs.Walk(root, func(path string, info vfs.NodeInfo) error {
		rel := strings.TrimPrefix(strings.TrimPrefix(path, prefix), "/")
		if rel == "" {
			return nil
		}
		if doublestar.MatchUnvalidated(pattern, rel) {
			matches = append(matches, path)
		}
		if len(matches) >= maxSearchResults {
			return errStop
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		return nil, err
	}
	return matches, nil
}

// Grep finds files containing a string
func (s *SearchOps) Grep(ctx context.Context, args map[string]any, appCtx *types.Context) (*types.Result, error) {
	path, err := pathParam(args)
	if err != nil {
		return Failure(err.Error())
	}
	query, err := params.String(args, "query", true)
	if err != nil {
		return Failure(err.Error())
	}
	caseSensitive := params.Bool(args, "case_sensitive", false)
	if !caseSensitive {
		query = strings.ToLower(query)
	}

	type hit struct {
		Path string `json:"path"`
		Line int    `json:"line"`
		Text string `json:"text"`
	}
	hits := []hit{}
	err = s.FS.Walk(path, func(p string, info vfs.NodeInfo) error {
		if info.IsDir() {
			return nil
		}
		content, _ := s.FS.ReadFile(p)
		for i, line := range strings.Split(content, "\n") {
			haystack := line
			if !caseSensitive {
				haystack = strings.ToLower(line)
			}
			if strings.Contains(haystack, query) {
				hits = append(hits, hit{Path: p, Line: i + 1, Text: line})
				if len(hits) >= maxSearchResults {
					return errStop
				}
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		return Failure(fmt.Sprintf("search failed: %v", err))
	}
	return Success(map[string]any{"path": path, "matches": hits, "count": len(hits)})
}
