package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a sale cannot be located by its natural key.
var ErrNotFound = errors.New("sale not found")

// ValidationError reports a bad or out-of-range filter input. The message
// names the specific violated constraint and is safe to return to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InvalidIdentifierError reports a malformed record reference.
type InvalidIdentifierError struct {
	ID string
}

func (e *InvalidIdentifierError) Error() string {
	return "invalid transaction id format"
}

// DuplicateKeyError reports a unique constraint violation, naming the
// offending field. Only the ingestion tools can trigger it.
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

// StoreError wraps an unexpected store failure. The wrapped cause is kept
// for logging; clients only ever see a generic message.
type StoreError struct {
	cause error
}

func (e *StoreError) Error() string {
	return "internal server error"
}

func (e *StoreError) Unwrap() error {
	return e.cause
}

// ClassifyStoreError converts a raw store-layer failure into the error
// taxonomy. Validation failures never reach here; they are detected before
// any store access.
func ClassifyStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			return &DuplicateKeyError{Field: fieldFromConstraint(pgErr.ConstraintName)}
		case strings.HasPrefix(pgErr.Code, "08"):
			return &StoreError{cause: err}
		}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &StoreError{cause: err}
	}

	return &StoreError{cause: err}
}

// fieldFromConstraint maps an index name like sales_transaction_id_key to
// the client-facing field name it guards.
func fieldFromConstraint(constraint string) string {
	if strings.Contains(constraint, "transaction") {
		return "transactionId"
	}
	if constraint == "" {
		return "record"
	}
	return constraint
}
