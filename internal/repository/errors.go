package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no row matches the requested id.
	ErrNotFound = errors.New("record not found")

	// ErrConnection marks failures where the store could not be reached.
	ErrConnection = errors.New("database connection failure")

	// ErrForeignKey marks writes rejected by a foreign key constraint.
	ErrForeignKey = errors.New("foreign key violation")
)

const pgForeignKeyViolation = "23503"

// classify tags err with one of the package error kinds. The original error
// stays in the chain for logging.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isConnectionError(err):
		return fmt.Errorf("%w: %w", ErrConnection, err)
	case isForeignKeyError(err):
		return fmt.Errorf("%w: %w", ErrForeignKey, err)
	default:
		return err
	}
}

func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	// Request cancellation also surfaces as a net.Error timeout; that is the
	// caller going away, not the store.
	if errors.Is(err, context.Canceled) {
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

func isForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}

	return false
}
