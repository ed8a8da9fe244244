package planner

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoFeasiblePlatform is the terminal ranking failure: every candidate was
// filtered out or none existed for the requested model.
var ErrNoFeasiblePlatform = errors.New("no platforms can handle the specified workload")

// ValidationError reports malformed caller input or a defensively caught
// non-positive catalog value.
type ValidationError struct {
	msg string
}

func newValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.msg
}

// UnknownKeyError reports an identifier absent from the catalog or pattern
// table. The message enumerates valid options to aid correction.
type UnknownKeyError struct {
	Kind  string // "pattern", "platform", "gpu", "model"
	Key   string
	Valid []string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown %s '%s'. Valid options: %s",
		e.Kind, e.Key, strings.Join(e.Valid, ", "))
}

// MemoryError reports a model that does not fit in a GPU's memory. The ranker
// treats this one error as a filter and skips the candidate; everything else
// aborts the ranking call.
type MemoryError struct {
	ModelKey    string
	GPUName     string
	RequiredGB  int
	AvailableGB int
}

func (e *MemoryError) Error() string {
	return fmt.Sprintf("model '%s' requires %dGB but %s only has %dGB",
		e.ModelKey, e.RequiredGB, e.GPUName, e.AvailableGB)
}
