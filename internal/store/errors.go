package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind discriminates store failures so the caller can match on them
// exhaustively instead of inspecting driver error types.
type Kind int

const (
	// KindStore is any store failure not covered by a more specific kind.
	KindStore Kind = iota
	// KindReferential is a foreign key violation: the operation referenced
	// a parent row that does not exist.
	KindReferential
	// KindUnique is a collision with a store-enforced unique value, e.g.
	// a duplicate username.
	KindUnique
	// KindCapacity is a bulk-generation request that exceeds the number of
	// available unique combinations. Raised before any insert happens.
	KindCapacity
)

func (k Kind) String() string {
	switch k {
	case KindReferential:
		return "referential violation"
	case KindUnique:
		return "unique constraint violation"
	case KindCapacity:
		return "capacity exceeded"
	default:
		return "store error"
	}
}

// SQLSTATE codes for the constraint classes the tool cares about.
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
)

// Error is the classified form of every failure the store surfaces. Code
// carries the SQLSTATE when the database produced one.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the kind from a classified error chain. The second return
// reports whether err originated from the store layer at all.
func KindOf(err error) (Kind, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return KindStore, false
}

// classify converts driver and gorm errors into *Error. nil passes through.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		kind := KindStore
		switch pgErr.Code {
		case codeForeignKeyViolation:
			kind = KindReferential
		case codeUniqueViolation:
			kind = KindUnique
		}
		return &Error{Kind: kind, Code: pgErr.Code, Message: pgErr.Message, Err: err}
	}

	// gorm translates some dialect errors before we see them
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &Error{Kind: KindUnique, Message: err.Error(), Err: err}
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return &Error{Kind: KindReferential, Message: err.Error(), Err: err}
	}

	return &Error{Kind: KindStore, Message: err.Error(), Err: err}
}

func capacityError(requested, available int64) *Error {
	return &Error{
		Kind:    KindCapacity,
		Message: fmt.Sprintf("not enough free user×book pairs for %d rows (have %d)", requested, available),
	}
}
