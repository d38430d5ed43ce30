// Package params holds the argument and result helpers shared by the
// service providers.
package params

import (
	"fmt"
	"math"

	"github.com/GriffinCanCode/ros/backend/internal/shared/types"
)

// Success creates successful result
func Success(data map[string]any) (*types.Result, error) {
	return types.Success(data), nil
}

// Failure creates failed result. Tool failures are results, not errors.
func Failure(message string) (*types.Result, error) {
	return types.Failure(message), nil
}

// Failuref is Failure with formatting.
func Failuref(format string, args ...any) (*types.Result, error) {
	return types.Failure(fmt.Sprintf(format, args...)), nil
}

// String extracts string parameter
func String(params map[string]any, key string, required bool) (string, error) {
	val, ok := params[key]
	if !ok || val == nil {
		if required {
			return "", fmt.Errorf("%s parameter required", key)
		}
		return "", nil
	}

	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s must be string", key)
	}

	if required && str == "" {
		return "", fmt.Errorf("%s cannot be empty", key)
	}

	return str, nil
}

// Bool extracts bool parameter
func Bool(params map[string]any, key string, defaultVal bool) bool {
	b, ok := params[key].(bool)
	if !ok {
		return defaultVal
	}
	return b
}

// Int extracts an integral parameter. JSON numbers arrive as float64.
func Int(params map[string]any, key string, defaultVal int) (int, error) {
	val, ok := params[key]
	if !ok || val == nil {
		return defaultVal, nil
	}

	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("%s must be number", key)
	}
}
