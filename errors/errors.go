/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common sentinel errors
var (
	// ErrUnsupportedMultiTable is returned when a bulk request targets more than one table
	ErrUnsupportedMultiTable = errors.New("bulk request spans more than one table")

	// ErrBackendCall is matched by every error raised by the batch backend
	ErrBackendCall = errors.New("backend call failed")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoIndexMap is returned when no index map is found for a type
	ErrNoIndexMap = errors.New("no index map found for type")
)

// UnsupportedMultiTableError reports the tables of a rejected multi-table request.
type UnsupportedMultiTableError struct {
	Tables []string
}

func (e *UnsupportedMultiTableError) Error() string {
	tables := append([]string(nil), e.Tables...)
	sort.Strings(tables)
	return fmt.Sprintf("bulk request spans %d tables (%s); only one table per call is supported",
		len(tables), strings.Join(tables, ", "))
}

func (e *UnsupportedMultiTableError) Is(target error) bool {
	return target == ErrUnsupportedMultiTable
}

// BackendCallError wraps an error returned by the batch backend.
type BackendCallError struct {
	Op    string
	Table string
	Err   error
}

func (e *BackendCallError) Error() string {
	return fmt.Sprintf("%s on table %q failed: %v", e.Op, e.Table, e.Err)
}

func (e *BackendCallError) Is(target error) bool {
	return target == ErrBackendCall
}

func (e *BackendCallError) Unwrap() error {
	return e.Err
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Helper functions for creating errors

// NewUnsupportedMultiTableError creates a new UnsupportedMultiTableError
func NewUnsupportedMultiTableError(tables []string) error {
	return &UnsupportedMultiTableError{Tables: tables}
}

// NewBackendCallError creates a new BackendCallError
func NewBackendCallError(op, table string, err error) error {
	return &BackendCallError{Op: op, Table: table, Err: err}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsUnsupportedMultiTable checks if an error is a multi-table rejection
func IsUnsupportedMultiTable(err error) bool {
	return errors.Is(err, ErrUnsupportedMultiTable)
}

// IsBackendCall checks if an error was raised by the backend
func IsBackendCall(err error) bool {
	return errors.Is(err, ErrBackendCall)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
