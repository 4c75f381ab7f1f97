// Package errors defines stable error codes and the structured error type
// used across stackscan. Every failure mode that can reach a caller has a
// code, so front ends can react without string matching.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// PathNotFound indicates the project path does not exist
	PathNotFound ErrorCode = "PATH_NOT_FOUND"
	// UnreadableFile indicates a file could not be read; callers skip and continue
	UnreadableFile ErrorCode = "UNREADABLE_FILE"
	// CorruptCacheEntry indicates a cache entry failed to parse
	CorruptCacheEntry ErrorCode = "CORRUPT_CACHE_ENTRY"
	// StaleCacheEntry indicates a cache entry failed the TTL or schema check
	StaleCacheEntry ErrorCode = "STALE_CACHE_ENTRY"
	// VCSUnavailable indicates the version-control head could not be resolved
	VCSUnavailable ErrorCode = "VCS_UNAVAILABLE"
	// ConfigInvalid indicates a configuration value failed validation
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
}

// ScanError represents a stackscan error with code, message, and suggestions
type ScanError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new ScanError
func New(code ErrorCode, message string, cause error) *ScanError {
	return &ScanError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *ScanError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *ScanError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *ScanError) WithDetails(details interface{}) *ScanError {
	e.Details = details
	return e
}

// WithFixes adds suggested fixes to the error
func (e *ScanError) WithFixes(fixes ...FixAction) *ScanError {
	e.SuggestedFixes = append(e.SuggestedFixes, fixes...)
	return e
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	PathNotFound: {
		{
			Type:        RunCommand,
			Command:     "ls <path>",
			Safe:        true,
			Description: "Verify the project path exists and is readable",
		},
	},
	CorruptCacheEntry: {
		{
			Type:        RunCommand,
			Command:     "stackscan cache clear",
			Safe:        true,
			Description: "Clear the analysis cache and re-run the scan",
		},
	},
	VCSUnavailable: {
		{
			Type:        RunCommand,
			Command:     "git status",
			Safe:        true,
			Description: "Check if you're in a valid git repository",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
