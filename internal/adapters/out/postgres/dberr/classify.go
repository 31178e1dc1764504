// Package dberr translates PostgreSQL driver failures into the error kinds of
// internal/pkg/errs so callers can tell a lost race or an unreachable database
// apart from a business failure.
package dberr

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"restaurant/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

const upstream = "postgres"

// Classify maps err to an errs kind:
//   - serialization failures, deadlocks and unique violations on entity become
//     ConcurrencyConflictError for id
//   - connection failures, admin shutdowns and network errors become
//     UpstreamUnavailableError
//
// Anything else, including nil, is returned unchanged.
func Classify(err error, entity string, id any) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "40001", pgErr.Code == "40P01", pgErr.Code == "23505":
			return errs.NewConcurrencyConflictErrorWithCause(entity, id, err)
		case strings.HasPrefix(pgErr.Code, "08"), strings.HasPrefix(pgErr.Code, "57P"):
			return errs.NewUpstreamUnavailableError(upstream, err)
		}
		return err
	}

	var connectErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connectErr) ||
		errors.As(err, &netErr) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) {
		return errs.NewUpstreamUnavailableError(upstream, err)
	}

	return err
}
