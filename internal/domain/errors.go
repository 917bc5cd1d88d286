package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound signals a missing caregiver, client, or shift record.
var ErrNotFound = errors.New("record not found")

// ErrUpstreamUnavailable signals a routing-provider failure. Callers recover
// by falling back to estimate-based distances; it never surfaces to the API.
var ErrUpstreamUnavailable = errors.New("routing provider unavailable")

// ValidationError rejects malformed input before any computation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// MissingGeodataError names every entity that lacks coordinates needed for
// distance or route work. Missing coordinates are never treated as zero
// distance.
type MissingGeodataError struct {
	Entities []string
}

func (e *MissingGeodataError) Error() string {
	return "missing coordinates for: " + strings.Join(e.Entities, ", ")
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsMissingGeodata(err error) bool {
	var ge *MissingGeodataError
	return errors.As(err, &ge)
}
