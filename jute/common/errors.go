package common

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Common error types used across jute packages
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrIOFailure       = errors.New("i/o failure")
	ErrPathEmpty       = fmt.Errorf("%w: path cannot be empty", ErrInvalidArgument)
)

// ValidationUtils provides common validation utilities used across packages
type ValidationUtils struct{}

// NewValidationUtils creates a new ValidationUtils instance
func NewValidationUtils() *ValidationUtils {
	return &ValidationUtils{}
}

// ValidateRequiredString validates that a string is not empty
func (vu *ValidationUtils) ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrInvalidArgument, fieldName)
	}
	return nil
}

// ValidatePathCharacters validates that a path doesn't contain invalid characters
func (vu *ValidationUtils) ValidatePathCharacters(path string) error {
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: path contains null character", ErrInvalidArgument)
	}
	return nil
}

// ValidateDirectoryExists validates that path exists and is a directory.
// Both a missing path and a non-directory report ErrNotFound.
func (vu *ValidationUtils) ValidateDirectoryExists(stat func(string) (fs.FileInfo, error), path string) error {
	if path == "" {
		return ErrPathEmpty
	}
	if stat == nil {
		stat = os.Stat
	}

	info, err := stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: directory %s does not exist", ErrNotFound, path)
		}
		return WrapIOError(err, "stat", path)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrNotFound, path)
	}
	return nil
}

// WrapIOError tags err as ErrIOFailure while keeping the original error in the chain.
func WrapIOError(err error, operation, path string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s %s: %w", ErrIOFailure, operation, path, err)
}
