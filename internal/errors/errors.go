// Package errors provides explicit, human-readable error types for
// taintinfo. Every error carries a Reason and Suggestion so a failed
// invocation tells the operator what to do next, plus an ErrorCode that
// maps onto the process exit codes.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents the category of error for exit code mapping.
type ErrorCode int

const (
	// CodeGeneric covers every ordinary failure: unreadable or
	// malformed taint source, unrecognized invocation.
	CodeGeneric ErrorCode = 1

	// CodeMemAlloc is reserved for memory exhaustion.
	CodeMemAlloc ErrorCode = 2
)

// TaintError is the base error type for all taintinfo errors.
type TaintError struct {
	Code       ErrorCode
	Message    string
	Reason     string
	Suggestion string
	Cause      error
}

func (e *TaintError) Error() string {
	msg := e.Message
	if e.Reason != "" {
		msg = fmt.Sprintf("%s\nReason: %s", msg, e.Reason)
	}
	if e.Suggestion != "" {
		msg = fmt.Sprintf("%s\nSuggestion: %s", msg, e.Suggestion)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s\nCaused by: %v", msg, e.Cause)
	}
	return msg
}

func (e *TaintError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the code carried by the error. The method lives on
// *TaintError so every wrapper type promotes it.
func (e *TaintError) ExitCode() int {
	return int(e.Code)
}

type exitCoder interface {
	ExitCode() int
}

// ExitCode maps any error to a process exit code. Errors without a
// taintinfo code fall back to the generic code; nil maps to 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coded exitCoder
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return int(CodeGeneric)
}

// ErrSourceUnavailable is returned when the taint source file cannot be
// opened or read.
type ErrSourceUnavailable struct {
	TaintError
	Path string
}

// NewSourceUnavailable creates a new ErrSourceUnavailable.
func NewSourceUnavailable(path string, cause error) *ErrSourceUnavailable {
	return &ErrSourceUnavailable{
		TaintError: TaintError{
			Code:       CodeGeneric,
			Message:    fmt.Sprintf("cannot read taint status from input file %q", path),
			Reason:     "the file could not be opened or read",
			Suggestion: "verify the path exists and is readable, or point --source at a readable copy",
			Cause:      cause,
		},
		Path: path,
	}
}

// ErrSourceMalformed is returned when the taint source file does not
// contain a single non-negative decimal integer.
type ErrSourceMalformed struct {
	TaintError
	Path string
}

// NewSourceMalformed creates a new ErrSourceMalformed.
func NewSourceMalformed(path string, cause error) *ErrSourceMalformed {
	return &ErrSourceMalformed{
		TaintError: TaintError{
			Code:       CodeGeneric,
			Message:    fmt.Sprintf("input file %q contains unparsable data", path),
			Reason:     "expected a single non-negative decimal integer of at most 64 bits",
			Suggestion: "check that the file is a kernel taint word and not something else",
			Cause:      cause,
		},
		Path: path,
	}
}

// ErrUsage is returned for an unrecognized command-line invocation.
type ErrUsage struct {
	TaintError
}

// NewUsage creates a new ErrUsage.
func NewUsage(reason string) *ErrUsage {
	return &ErrUsage{
		TaintError: TaintError{
			Code:       CodeGeneric,
			Message:    "unrecognized invocation",
			Reason:     reason,
			Suggestion: "run with one of: current, list, taint=<flags>",
		},
	}
}
