package service

import (
	"context"
	"testing"

	"github.com/GriffinCanCode/ros/backend/internal/shared/types"
)

type mockProvider struct {
	id       string
	category types.Category
	lastCtx  *types.Context
}

func (m *mockProvider) Definition() types.Service {
	category := m.category
	if category == "" {
		category = types.CategoryFilesystem
	}
	return types.Service{
		ID:           m.id,
		Name:         "Mock Service",
		Description:  "A mock service for testing",
		Category:     category,
		Capabilities: []string{"read", "write"},
		Tools: []types.Tool{
			{
				ID:          m.id + ".test",
				Name:        "Test Tool",
				Description: "A test tool",
				Returns:     "string",
			},
		},
	}
}

func (m *mockProvider) Execute(ctx context.Context, toolID string, params map[string]any, appCtx *types.Context) (*types.Result, error) {
	m.lastCtx = appCtx
	return types.Success(map[string]any{"result": "success", "tool": toolID, "params": len(params)}), nil
}

type badProvider struct{}

func (badProvider) Definition() types.Service {
	return types.Service{ID: "bad", Tools: []types.Tool{{ID: "other.tool"}}}
}

func (badProvider) Execute(context.Context, string, map[string]any, *types.Context) (*types.Result, error) {
	return nil, nil
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	p := &mockProvider{id: "test"}

	if err := r.Register(p); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, ok := r.Get("test"); !ok {
		t.Error("Service should be registered")
	}

	r.Unregister("test")
	if _, ok := r.Get("test"); ok {
		t.Error("Service should be gone after Unregister")
	}
}

func TestRegisterRejectsInvalid(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(&mockProvider{id: ""}); err == nil {
		t.Error("Expected error for empty service ID")
	}
	if err := r.Register(badProvider{}); err == nil {
		t.Error("Expected error for tool outside the service namespace")
	}
}

func TestMustRegisterPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic")
		}
	}()
	NewRegistry().MustRegister(badProvider{})
}

func TestList(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(&mockProvider{id: "test2"}, &mockProvider{id: "test1"}, &mockProvider{id: "apps", category: types.CategoryApps})

	services := r.List(nil)
	if len(services) != 3 {
		t.Fatalf("Expected 3 services, got %d", len(services))
	}
	if services[0].ID != "apps" || services[1].ID != "test1" {
		t.Errorf("Expected services sorted by id, got %s, %s", services[0].ID, services[1].ID)
	}

	cat := types.CategoryFilesystem
	filtered := r.List(&cat)
	if len(filtered) != 2 {
		t.Errorf("Expected 2 filesystem services, got %d", len(filtered))
	}
}

func TestDiscover(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(&mockProvider{id: "storage"}, &mockProvider{id: "media", category: types.CategoryMedia})

	results := r.Discover("storage read write", 5)
	if len(results) == 0 {
		t.Fatal("Should discover storage service")
	}

	if results[0].ID != "storage" {
		t.Errorf("Expected storage service, got %s", results[0].ID)
	}

	if got := r.Discover("storage read write", 1); len(got) != 1 {
		t.Errorf("Expected limit to cap results, got %d", len(got))
	}

	if got := r.Discover("zzz", 5); len(got) != 0 {
		t.Errorf("Expected no matches, got %d", len(got))
	}
}

func TestExecute(t *testing.T) {
	r := NewRegistry()
	p := &mockProvider{id: "test"}
	r.MustRegister(p)

	ctx := context.Background()
	appCtx := &types.Context{WindowID: "win_1", AppID: "terminal"}
	result, err := r.Execute(ctx, "test.test", nil, appCtx)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !result.Success {
		t.Error("Expected successful execution")
	}
	if result.Data["tool"] != "test.test" {
		t.Errorf("Expected tool id to reach provider, got %v", result.Data["tool"])
	}
	if p.lastCtx != appCtx {
		t.Error("Expected app context to reach provider")
	}
}

func TestExecuteErrors(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	result, err := r.Execute(ctx, "notool", nil, nil)
	if err == nil || result.Success {
		t.Error("Expected invalid format error")
	}

	result, err = r.Execute(ctx, "missing.tool", nil, nil)
	if err == nil || result.Success {
		t.Error("Expected service not found error")
	}
	if result.Error == nil || *result.Error != "service not found: missing" {
		t.Errorf("Unexpected error message: %v", result.Error)
	}
}

func TestStats(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(&mockProvider{id: "test1"}, &mockProvider{id: "test2"})

	stats := r.Stats()
	if stats.TotalServices != 2 {
		t.Errorf("Expected 2 total services, got %d", stats.TotalServices)
	}

	if stats.TotalTools != 2 {
		t.Errorf("Expected 2 total tools, got %d", stats.TotalTools)
	}

	if stats.Categories["filesystem"] != 2 {
		t.Errorf("Expected 2 filesystem services, got %d", stats.Categories["filesystem"])
	}
}
