// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// The N42 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The N42 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the N42 library. If not, see <http://www.gnu.org/licenses/>.

// Package errors defines the error taxonomy used throughout evmcfg. This
// provides a centralized location for error definitions to ensure
// consistency and avoid duplication across packages.
package errors

import (
	"errors"
	"fmt"
)

// =====================
// Fatal errors
// =====================
//
// These abort the pipeline and propagate to the CLI's exit code.

var (
	// ErrTransport is returned when a trace or bytecode fetch over JSON-RPC fails.
	ErrTransport = errors.New("rpc transport error")

	// ErrMalformedTrace is returned when a trace response is missing required fields.
	ErrMalformedTrace = errors.New("malformed trace")

	// ErrInvariantViolation signals an internal bug, e.g. an edge referencing
	// a node that is no longer present in its CFG.
	ErrInvariantViolation = errors.New("cfg invariant violation")
)

// =====================
// Recoverable errors
// =====================
//
// These never abort a build; the builder that encounters the condition
// degrades the result (omits the affected edge) instead. The dynamic
// builders log an unknown block at Warn; the static builder drops
// unresolved and out-of-range targets without logging.

var (
	// ErrUnknownBlock is returned when a step references a pc that belongs
	// to no known basic block.
	ErrUnknownBlock = errors.New("step references unknown basic block")

	// ErrAnalyzerGiveUp is returned when the stack value analyzer cannot
	// determine a jump target.
	ErrAnalyzerGiveUp = errors.New("stack value analyzer could not resolve jump target")

	// ErrOutOfRangeTarget is returned when a computed successor pc falls
	// outside every basic block of the contract.
	ErrOutOfRangeTarget = errors.New("computed successor pc is out of range")
)

// =====================
// Helper functions
// =====================

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}

// Errorf formats according to a format specifier and returns the string as
// a value that satisfies error.
func Errorf(format string, a ...interface{}) error {
	return fmt.Errorf(format, a...)
}
