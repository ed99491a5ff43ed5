// Package errors provides centralized error definitions for arbiter.
//
// Core predicates of the arbitration engine never fail; errors exist only at the
// edges: engine lifecycle misuse, scenario files, configuration and the outcome
// ledger.
//
// # Error Types
//
//   - MatchError: engine lifecycle and team-registry consistency errors
//   - ScenarioError: invalid or unreadable scenario files
//   - StorageError: outcome ledger failures
//
// # Usage
//
//	err := errors.NewScenarioError("unknown action", errors.ErrScenarioInvalid).
//		WithPath("duel.yaml").WithField("timeline[3].action")
//
//	if errors.Is(err, errors.ErrScenarioInvalid) { ... }
//
//	var se *errors.ScenarioError
//	if errors.As(err, &se) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for data-consistency anomalies that are logged and ignored.
	SeverityDebug Severity = iota
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Match-related sentinel errors
var (
	// ErrNoTeam indicates that an event referenced a slot with no resolved team.
	ErrNoTeam = New("slot has no team")
	// ErrUnknownSlot indicates a slot index outside the match.
	ErrUnknownSlot = New("unknown slot")
	// ErrMatchNotStarted indicates an engine operation before the match started.
	ErrMatchNotStarted = New("match not started")
)

// Scenario-related sentinel errors
var (
	// ErrScenarioInvalid indicates a scenario file failed validation.
	ErrScenarioInvalid = New("scenario is invalid")
	// ErrScenarioUnreadable indicates a scenario file could not be read or parsed.
	ErrScenarioUnreadable = New("scenario is unreadable")
)

// Storage-related sentinel errors
var (
	// ErrLedgerClosed indicates use of a closed outcome ledger.
	ErrLedgerClosed = New("ledger is closed")
	// ErrRecordNotFound indicates that a ledger record could not be found.
	ErrRecordNotFound = New("record not found")
)

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message  string
	cause    error
	severity Severity
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

func (e *baseError) format(prefix string, parts []string) string {
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", prefix, strings.Join(parts, ", "))
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// MatchError represents errors raised by the arbitration engine.
//
// Example:
//
//	err := errors.NewMatchError("structure built", errors.ErrNoTeam).WithSlot(4)
//	fmt.Println(err) // "match error [slot=4]: structure built: slot has no team"
type MatchError struct {
	baseError
	Slot int // -1 when not applicable
	Team int // -1 when not applicable
}

// NewMatchError creates a new MatchError.
func NewMatchError(message string, cause error) *MatchError {
	severity := SeverityError
	if errors.Is(cause, ErrNoTeam) {
		severity = SeverityDebug
	}
	return &MatchError{
		baseError: baseError{message: message, cause: cause, severity: severity},
		Slot:      -1,
		Team:      -1,
	}
}

// WithSlot adds a slot to the error context.
func (e *MatchError) WithSlot(slot int) *MatchError {
	e.Slot = slot
	return e
}

// WithTeam adds a team index to the error context.
func (e *MatchError) WithTeam(team int) *MatchError {
	e.Team = team
	return e
}

// Error returns the formatted error message.
func (e *MatchError) Error() string {
	var parts []string
	if e.Slot >= 0 {
		parts = append(parts, fmt.Sprintf("slot=%d", e.Slot))
	}
	if e.Team >= 0 {
		parts = append(parts, fmt.Sprintf("team=%d", e.Team))
	}
	return e.format("match error", parts)
}

// ScenarioError represents errors loading or validating a scenario file.
type ScenarioError struct {
	baseError
	Path  string
	Field string
}

// NewScenarioError creates a new ScenarioError.
func NewScenarioError(message string, cause error) *ScenarioError {
	return &ScenarioError{
		baseError: baseError{message: message, cause: cause, severity: SeverityError},
	}
}

// WithPath adds the scenario file path to the error context.
func (e *ScenarioError) WithPath(path string) *ScenarioError {
	e.Path = path
	return e
}

// WithField adds the offending field to the error context.
func (e *ScenarioError) WithField(field string) *ScenarioError {
	e.Field = field
	return e
}

// Error returns the formatted error message.
func (e *ScenarioError) Error() string {
	var parts []string
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	return e.format("scenario error", parts)
}

// StorageError represents outcome ledger failures.
type StorageError struct {
	baseError
	Op string
}

// NewStorageError creates a new StorageError for the named operation.
func NewStorageError(op string, cause error) *StorageError {
	return &StorageError{
		baseError: baseError{message: op + " failed", cause: cause, severity: SeverityError},
		Op:        op,
	}
}

// Error returns the formatted error message.
func (e *StorageError) Error() string {
	return e.format("storage error", nil)
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// GetSeverity returns the severity of err, or SeverityError for errors that do
// not carry one.
func GetSeverity(err error) Severity {
	var s interface{ Severity() Severity }
	if As(err, &s) {
		return s.Severity()
	}
	return SeverityError
}

// IsConsistencyBug reports whether err signals a team-registry inconsistency
// that should be logged and otherwise ignored.
func IsConsistencyBug(err error) bool {
	return Is(err, ErrNoTeam)
}
