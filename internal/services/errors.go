package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks assets rejected before any network call was attempted.
	ErrValidation = errors.New("validation error")
	// ErrTransport marks download or upload failures that exhausted their retry budget.
	ErrTransport = errors.New("transport error")
	// ErrNotFound marks a missing package folder or an empty discovery result.
	ErrNotFound = errors.New("not found")
	// ErrPlatform marks a structured rejection returned by the ad platform.
	ErrPlatform = errors.New("platform rejection")
	// ErrTimeout marks a single request attempt that exceeded its bound.
	ErrTimeout = errors.New("timeout")
	// ErrConfiguration marks unusable configuration detected at wiring time.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransport
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Terminal reports whether the error should never be retried.
func Terminal(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrConfiguration) ||
		errors.Is(err, ErrNotFound)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
