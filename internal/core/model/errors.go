package model

import (
	"errors"
	"fmt"
)

// Ledger errors.
var (
	ErrIndexOutOfRange   = errors.New("activity index out of range")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrReservedCategory  = errors.New("category is reserved")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrEmptyCategoryName = errors.New("category name is empty")
	ErrCategoryInUse     = errors.New("category has recorded activities")
	ErrCategoryActive    = errors.New("category is used by the running timer")
)

// Input errors.
var (
	ErrInvalidTimeFormat = errors.New("invalid time format, use HH:MM")
	ErrInvalidDate       = errors.New("invalid date, use YYYY-MM-DD")
	ErrMissingField      = errors.New("all fields are required")
)

// Timer errors.
var (
	ErrAlreadyRunning     = errors.New("timer already running")
	ErrNotRunning         = errors.New("timer is not running")
	ErrNoCategorySelected = errors.New("select a specific category (not All) to start tracking")
	ErrEmptyActivityName  = errors.New("enter what you are working on")
)

// Persistence and application errors.
var (
	ErrPersistenceCorrupt      = errors.New("data file is corrupted")
	ErrPersistenceWriteFailure = errors.New("data file could not be written")
	ErrNoDataFile              = errors.New("there is no data file")
	ErrRestartRequired         = errors.New("restart required")
	ErrNothingToExport         = errors.New("there are no activities on this date to export")
	ErrNothingToCopy           = errors.New("there are no activities in this view to copy")
	ErrConfirmationRequired    = errors.New("a timer is running, confirmation required")
)

// PersistenceError describes a failed data file operation. It matches both
// its Kind and its cause with errors.Is.
type PersistenceError struct {
	Kind error
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

// Unwrap exposes the kind and the cause.
func (e *PersistenceError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
