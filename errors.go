package rampage

import (
	"errors"
	"fmt"
)

// Phase tags where in the CHOMP-CRUNCH-TEAR-STOMP-ROAR pipeline a [DiffError]
// originated. Every phase has a fixed HTTP status mapping (§7).
type Phase string

const (
	PhaseAuth       Phase = "AUTH"
	PhaseSize       Phase = "SIZE"
	PhaseFetch      Phase = "FETCH"
	PhaseDecompress Phase = "DECOMPRESS"
	PhaseTar        Phase = "TAR"
	PhaseDiff       Phase = "DIFF"
)

// phaseStatus is the fixed phase->HTTP status mapping from §7.
var phaseStatus = map[Phase]int{
	PhaseAuth:       401,
	PhaseSize:       413,
	PhaseFetch:      502,
	PhaseDecompress: 422,
	PhaseTar:        422,
	PhaseDiff:       500,
}

// DiffError is the single error type surfaced by every public entry point of
// the core. Its Message and Cause text are always sanitized before storage
// (I4); its Status is the phase's fixed mapping (I3).
type DiffError struct {
	Phase   Phase
	Message string
	Status  int
	Cause   error
}

// NewDiffError constructs a [DiffError] for phase with a sanitized message.
// A zero-value / unrecognized phase still gets a status (falls back to 500),
// but callers are expected to pass one of the declared Phase constants.
func NewDiffError(phase Phase, message string) *DiffError {
	return &DiffError{
		Phase:   phase,
		Message: sanitizeCredentials(message),
		Status:  statusFor(phase),
	}
}

// newDiffErrorWithCause is like NewDiffError but also records cause. The
// stored cause reports sanitized text but still unwraps to the original
// error, so errors.Is/errors.As keep working.
func newDiffErrorWithCause(phase Phase, message string, cause error) *DiffError {
	e := NewDiffError(phase, message)
	if cause != nil {
		e.Cause = &sanitizedCause{text: sanitizeCredentials(cause.Error()), err: cause}
	}
	return e
}

// sanitizedCause carries a cause's credential-sanitized text while
// unwrapping to the original error.
type sanitizedCause struct {
	text string
	err  error
}

func (c *sanitizedCause) Error() string { return c.text }
func (c *sanitizedCause) Unwrap() error { return c.err }

func statusFor(phase Phase) int {
	if s, ok := phaseStatus[phase]; ok {
		return s
	}

	return 500
}

// Error implements the error interface.
func (e *DiffError) Error() string {
	if e == nil {
		return ""
	}

	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s", e.Phase, e.Message, e.Cause.Error())
	}

	return fmt.Sprintf("[%s] %s", e.Phase, e.Message)
}

// Unwrap exposes the original cause for errors.Is/errors.As.
func (e *DiffError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.Cause
}

// ErrorJSON is the wire shape described in §6 "Error JSON shape".
type ErrorJSON struct {
	Error   string `json:"error"`
	Phase   Phase  `json:"phase"`
	Status  int    `json:"status"`
	Message string `json:"message"`
	Cause   string `json:"cause,omitempty"`
}

// ToJSON renders the error in the wire shape of §6, with every field
// sanitized (I4).
func (e *DiffError) ToJSON() ErrorJSON {
	out := ErrorJSON{
		Error:   "DiffError",
		Phase:   e.Phase,
		Status:  e.Status,
		Message: sanitizeCredentials(e.Message),
	}
	if e.Cause != nil {
		out.Cause = sanitizeCredentials(e.Cause.Error())
	}

	return out
}

// IsDiffError reports whether err is (or wraps) a [DiffError].
func IsDiffError(err error) bool {
	var de *DiffError

	return errors.As(err, &de)
}

// wrap preserves an existing [DiffError] unchanged (optionally prepending
// context to its message), or wraps an arbitrary cause as a new [DiffError]
// for phase, stringifying its message. This is the core's sole error-boundary
// helper; it never loses the original cause (§3 Lifecycles, §7 Propagation
// policy).
func wrap(phase Phase, cause error, context string) *DiffError {
	if cause == nil {
		return NewDiffError(phase, context)
	}

	var de *DiffError
	if errors.As(cause, &de) {
		if context == "" {
			return de
		}

		wrapped := *de
		wrapped.Message = sanitizeCredentials(context + ": " + de.Message)

		return &wrapped
	}

	msg := context
	if msg == "" {
		msg = cause.Error()
	}

	return newDiffErrorWithCause(phase, msg, cause)
}

// assertDiff panics with a [DiffError] if cond is false. It is used at public
// boundaries to validate caller input (§7 Propagation policy); callers that
// cross a recover()-guarded boundary (such as the top-level Diff/DiffWithStats
// entry points) turn the panic back into a normal returned error.
func assertDiff(cond bool, phase Phase, msg string) {
	if !cond {
		panic(NewDiffError(phase, msg))
	}
}

// recoverDiffError turns a panic raised by assertDiff back into a regular
// error. It must be deferred at every public entry point that may (directly
// or transitively) call assertDiff.
func recoverDiffError(errp *error) {
	if r := recover(); r != nil {
		if de, ok := r.(*DiffError); ok {
			*errp = de

			return
		}

		panic(r)
	}
}
