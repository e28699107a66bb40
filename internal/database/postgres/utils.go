package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
)

// pgTx adapts pgx.Tx to repository.Tx
type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return domain.ErrTxClosed
		}
		return err
	}
	return nil
}

func (t *pgTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return domain.ErrTxClosed
		}
		return err
	}
	return nil
}

// raw exposes the pgx transaction so another repository can join it
func (t *pgTx) raw() pgx.Tx {
	return t.tx
}

// joinable is implemented by every transaction this package hands out
type joinable interface {
	raw() pgx.Tx
}

func rawTx(tx any) (pgx.Tx, error) {
	j, ok := tx.(joinable)
	if !ok {
		return nil, fmt.Errorf("cannot join a %T: not a postgres transaction", tx)
	}
	return j.raw(), nil
}

func begin(ctx context.Context, db *pgxpool.Pool) (pgx.Tx, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// parseUserUUID validates a user id. A malformed id can never match a row,
// so it is reported as not found.
func parseUserUUID(userID string) (uuid.UUID, error) {
	u, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid user id %q", domain.ErrUserNotFound, userID)
	}
	return u, nil
}

func pgErrorCode(err error) (string, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

func isUniqueViolation(err error) bool {
	code, _ := pgErrorCode(err)
	return code == PgErrorCodeUniqueViolation
}

// mapUserFK turns a foreign key violation on user_id into ErrUserNotFound
func mapUserFK(err error) error {
	if code, _ := pgErrorCode(err); code == PgErrorCodeForeignKeyViolation {
		return fmt.Errorf("%w: %v", domain.ErrUserNotFound, err)
	}
	return err
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	}
	return limit
}

func timestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func timestamptzPtr(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return timestamptz(*t)
}

// utcPtr converts a nullable timestamp to a UTC pointer
func utcPtr(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}
	u := t.Time.UTC()
	return &u
}
