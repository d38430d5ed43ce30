package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Size limits for request payloads
const (
	MaxBackupSize  = 8 * 1024 * 1024 // 8MB - exported or imported file system snapshot
	MaxContentSize = 1 * 1024 * 1024 // 1MB - single file content
	MaxMessageSize = 16 * 1024       // 16KB - single terminal or chat message
)

// String length limits
const (
	MaxPathLength  = 1024
	MaxNameLength  = 255
	MaxIDLength    = 128
	MaxQueryLength = 2048
)

var (
	// SafeIDPattern allows alphanumeric, hyphens, underscores
	SafeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	if value == "" && !required {
		return nil
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}
	return nil
}

// ValidateID validates an identifier such as an app or window id.
func ValidateID(id, fieldName string, required bool) error {
	if err := ValidateString(id, fieldName, 1, MaxIDLength, required); err != nil {
		return err
	}
	if id != "" && !SafeIDPattern.MatchString(id) {
		return fmt.Errorf("%s contains invalid characters (only alphanumeric, hyphens, and underscores allowed)", fieldName)
	}
	return nil
}

// ValidatePath validates a virtual file system path.
func ValidatePath(path string) error {
	return ValidateString(path, "path", 1, MaxPathLength, true)
}

// ValidateName validates a single path segment.
func ValidateName(name, fieldName string) error {
	if err := ValidateString(name, fieldName, 1, MaxNameLength, true); err != nil {
		return err
	}
	if strings.Contains(name, "/") {
		return fmt.Errorf("%s must not contain '/'", fieldName)
	}
	return nil
}

// ValidateContent validates file content size.
func ValidateContent(content string) error {
	if len(content) > MaxContentSize {
		return fmt.Errorf("content size %d bytes exceeds maximum %d bytes", len(content), MaxContentSize)
	}
	if !utf8.ValidString(content) {
		return fmt.Errorf("content must be valid UTF-8")
	}
	return nil
}

// ValidateMessage validates a terminal or chat message
func ValidateMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("message is required")
	}
	return ValidateString(message, "message", 1, MaxMessageSize, true)
}
