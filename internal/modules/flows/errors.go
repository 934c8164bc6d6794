package flows

import (
	"errors"
	"fmt"
)

// ErrUnknownFlow is returned when the requested flow name is not registered.
var ErrUnknownFlow = errors.New("unknown flow")

// SchemaError reports a payload that violates the flow's contract. Output is
// true when the model, not the caller, produced the bad structure.
type SchemaError struct {
	Flow   string
	Detail string
	Output bool
}

func (e *SchemaError) Error() string {
	side := "input"
	if e.Output {
		side = "output"
	}
	return fmt.Sprintf("flow %s: invalid %s: %s", e.Flow, side, e.Detail)
}

// GenerationError reports a failed provider call.
type GenerationError struct {
	Flow   string
	Detail string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("flow %s: %s: %v", e.Flow, e.Detail, e.Err)
	}
	return fmt.Sprintf("flow %s: %s", e.Flow, e.Detail)
}

func (e *GenerationError) Unwrap() error { return e.Err }
