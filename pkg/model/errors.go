package model

import (
	"errors"
	"fmt"
)

// Common sentinel errors. All failures are local, synchronous caller
// errors: nothing is retried and a failed operation leaves registries
// and ID counters untouched.
var (
	// ErrInvalidGeometry reports a malformed coordinate (wrong arity,
	// or a component that cannot serve as a canonical key).
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrMissingEndpoint reports a nil node reference passed to AddLine.
	ErrMissingEndpoint = errors.New("missing endpoint")

	// ErrDegenerateLine reports a line request connecting a node to
	// itself. This is a hard error: no sentinel line is ever created.
	ErrDegenerateLine = errors.New("degenerate line")

	// ErrNotAttached reports removal of a load attachment that was
	// never established.
	ErrNotAttached = errors.New("load not attached to target")

	// ErrInvalidSection reports rejected parametric section dimensions.
	ErrInvalidSection = errors.New("invalid section dimensions")

	// ErrInvalidMaterial reports rejected material constants.
	ErrInvalidMaterial = errors.New("invalid material constants")
)

// ModelError provides structured error information for builder operations.
type ModelError struct {
	Op      string // Operation that failed (e.g., "AddNode", "RemoveNodalLoad")
	Entity  string // Entity kind (e.g., "node", "line", "nodal_load")
	ID      uint64 // Entity ID (if applicable)
	Context string // Additional context
	Cause   error  // Underlying error
}

// Error implements the error interface.
func (e *ModelError) Error() string {
	if e.ID != 0 {
		if e.Context != "" {
			return fmt.Sprintf("%s %s %d (%s): %v", e.Op, e.Entity, e.ID, e.Context, e.Cause)
		}
		return fmt.Sprintf("%s %s %d: %v", e.Op, e.Entity, e.ID, e.Cause)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ModelError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *ModelError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// Convenience constructors for common failure shapes

func invalidGeometryError(op, context string) error {
	return &ModelError{Op: op, Entity: "node", Context: context, Cause: ErrInvalidGeometry}
}

func missingEndpointError(op string) error {
	return &ModelError{Op: op, Entity: "line", Cause: ErrMissingEndpoint}
}

func degenerateLineError(op string, nodeID uint64) error {
	return &ModelError{Op: op, Entity: "line", ID: nodeID, Context: "self-loop", Cause: ErrDegenerateLine}
}

func notAttachedError(op, entity string, targetID uint64) error {
	return &ModelError{Op: op, Entity: entity, ID: targetID, Cause: ErrNotAttached}
}
