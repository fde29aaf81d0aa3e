package sqlstore

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/vytor/lexiflash/internal/logger"
)

// DefaultPageSize bounds every list read and every IN-list.
const DefaultPageSize = 1000

type Option func(*base)

// WithPageSize overrides DefaultPageSize.
func WithPageSize(n int) Option {
	return func(b *base) {
		if n > 0 {
			b.pageSize = n
		}
	}
}

// base is shared by every repository: the handle, a builder with the
// driver's placeholder format, and the page size.
type base struct {
	db       *sqlx.DB
	sb       squirrel.StatementBuilderType
	pageSize int
}

func newBase(db *sqlx.DB, opts []Option) base {
	var format squirrel.PlaceholderFormat = squirrel.Question
	if db.DriverName() == "pgx" {
		format = squirrel.Dollar
	}
	b := base{
		db:       db,
		sb:       squirrel.StatementBuilder.PlaceholderFormat(format),
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// selectAll reads q page by page until a short page. q must be ordered.
func selectAll[T any](ctx context.Context, b base, q squirrel.SelectBuilder) ([]T, error) {
	var out []T
	for offset := 0; ; offset += b.pageSize {
		query, args, err := q.Limit(uint64(b.pageSize)).Offset(uint64(offset)).ToSql()
		if err != nil {
			return nil, err
		}
		var page []T
		if err := sqlx.SelectContext(ctx, b.db, &page, query, args...); err != nil {
			return nil, err
		}
		out = append(out, page...)
		if len(page) < b.pageSize {
			return out, nil
		}
	}
}

func chunks(ids []int64, size int) [][]int64 {
	var out [][]int64
	for len(ids) > size {
		out = append(out, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		out = append(out, ids)
	}
	return out
}

func tx(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	log := logger.FromContext(ctx).WithPrefix("repo")
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		log.Debug("transaction rolled back due to error: %v", err)
		return err
	}
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction: %v", err)
		return err
	}
	log.Debug("transaction committed")
	return nil
}
