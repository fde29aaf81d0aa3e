package sqlstore

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
)

type summaryRepository struct {
	base
}

// NewSummaryRepository creates a new SummaryRepository implementation
func NewSummaryRepository(db *sqlx.DB, opts ...Option) repository.SummaryRepository {
	return &summaryRepository{base: newBase(db, opts)}
}

// Increment adds to the counters of (userID, date), creating the row if needed.
func (r *summaryRepository) Increment(ctx context.Context, userID, date string, reviews, newWords int) error {
	log := logger.FromContext(ctx).WithPrefix("summary_repo")
	log.Debug("incrementing summary: user_id=%s, date=%s, reviews=%d, new_words=%d", userID, date, reviews, newWords)

	query, args, err := r.sb.Insert("daily_summary").
		Columns("user_id", "date", "reviews_done", "new_words_learned").
		Values(userID, date, reviews, newWords).
		Suffix(`ON CONFLICT (user_id, date) DO UPDATE SET
reviews_done = daily_summary.reviews_done + excluded.reviews_done,
new_words_learned = daily_summary.new_words_learned + excluded.new_words_learned`).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to increment summary: %v", err)
		return err
	}
	return nil
}

// Range returns the rows with from <= date <= to, ordered by date.
func (r *summaryRepository) Range(ctx context.Context, userID, from, to string) ([]models.DailySummary, error) {
	log := logger.FromContext(ctx).WithPrefix("summary_repo")
	log.Debug("fetching summary range: user_id=%s, from=%s, to=%s", userID, from, to)

	q := r.sb.Select("user_id", "date", "reviews_done", "new_words_learned").
		From("daily_summary").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		OrderBy("date")

	rows, err := selectAll[models.DailySummary](ctx, r.base, q)
	if err != nil {
		log.Error("failed to fetch summary range: %v", err)
		return nil, err
	}
	return rows, nil
}
