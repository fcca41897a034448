package services

import (
  "fmt"
)

// ValidationError rejects a malformed request before anything is persisted.
type ValidationError struct {
  Message string
}

func (e *ValidationError) Error() string {
  return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
  return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InsufficientCandidatesError means the pool cannot supply the requested
// bracket width. It is a data-availability condition, not a malformed
// request; callers may retry with a smaller count or another genre.
type InsufficientCandidatesError struct {
  Have int
  Want int
}

func (e *InsufficientCandidatesError) Error() string {
  return fmt.Sprintf("not enough candidates: have %d, want %d", e.Have, e.Want)
}

// PersistenceError wraps a failure inside the result-recording transaction.
// The transaction has been rolled back; no partial state remains.
type PersistenceError struct {
  Err error
}

func (e *PersistenceError) Error() string {
  return fmt.Sprintf("worldcup persistence failed: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
  return e.Err
}
