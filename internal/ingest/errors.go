package ingest

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies pipeline-wide failures. Field and row problems never
// surface as a Kind; they are absorbed by defaults or by dropping the row.
type Kind int

const (
	KindUnreadableFormat Kind = iota + 1
	KindMissingRequiredColumns
	KindEmptyResultSet
	KindStoreCommitFailure
)

var (
	ErrUnreadableFormat       = errors.New("unreadable format")
	ErrMissingRequiredColumns = errors.New("missing required columns")
	ErrEmptyResultSet         = errors.New("empty result set")
	ErrStoreCommitFailure     = errors.New("store commit failure")
)

func (k Kind) sentinel() error {
	switch k {
	case KindUnreadableFormat:
		return ErrUnreadableFormat
	case KindMissingRequiredColumns:
		return ErrMissingRequiredColumns
	case KindEmptyResultSet:
		return ErrEmptyResultSet
	case KindStoreCommitFailure:
		return ErrStoreCommitFailure
	}
	return nil
}

func (k Kind) String() string {
	switch k {
	case KindUnreadableFormat:
		return "UnreadableFormat"
	case KindMissingRequiredColumns:
		return "MissingRequiredColumns"
	case KindEmptyResultSet:
		return "EmptyResultSet"
	case KindStoreCommitFailure:
		return "StoreCommitFailure"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Error is the typed failure of one import attempt.
type Error struct {
	Kind  Kind
	Stage Stage
	// Columns lists the headers actually found, for MissingRequiredColumns.
	Columns []string
	// Missing lists the canonical fields that could not be resolved.
	Missing []Field
	// Dropped counts rows rejected by validation, for EmptyResultSet.
	Dropped int
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("import %s at %s", e.Kind, e.Stage)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match the Kind sentinels.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// Message is the operator-facing text for the failure.
func (e *Error) Message() string {
	switch e.Kind {
	case KindUnreadableFormat:
		return "file format not supported"
	case KindMissingRequiredColumns:
		missing := make([]string, len(e.Missing))
		for i, f := range e.Missing {
			missing[i] = string(f)
		}
		return fmt.Sprintf("missing required columns: %s; columns found: %s",
			strings.Join(missing, ", "), strings.Join(e.Columns, ", "))
	case KindEmptyResultSet:
		return fmt.Sprintf("the file was readable but no valid rows remained (%d rows dropped)", e.Dropped)
	case KindStoreCommitFailure:
		return "import failed, no changes made"
	}
	return "import failed"
}
