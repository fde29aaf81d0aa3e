package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
)

var progressColumns = []string{
	"id", "user_id", "word_id", "deck_id", "repetitions", "interval_days",
	"ease_factor", "next_review_date", "again_count", "updated_at",
}

const progressUpsertSuffix = `ON CONFLICT (user_id, word_id, deck_id) DO UPDATE SET
repetitions = excluded.repetitions,
interval_days = excluded.interval_days,
ease_factor = excluded.ease_factor,
next_review_date = excluded.next_review_date,
again_count = excluded.again_count,
updated_at = excluded.updated_at
RETURNING id`

type progressRepository struct {
	base
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sqlx.DB, opts ...Option) repository.ProgressRepository {
	return &progressRepository{base: newBase(db, opts)}
}

func normalizeProgress(rows []models.Progress) []models.Progress {
	for i := range rows {
		rows[i].NextReviewDate = rows[i].NextReviewDate.UTC()
		rows[i].UpdatedAt = rows[i].UpdatedAt.UTC()
	}
	return rows
}

func (r *progressRepository) ListByDeck(ctx context.Context, userID string, deckID int64) ([]models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing progress: user_id=%s, deck_id=%d", userID, deckID)

	q := r.sb.Select(progressColumns...).
		From("user_progress").
		Where(squirrel.Eq{"user_id": userID, "deck_id": deckID}).
		OrderBy("id")

	rows, err := selectAll[models.Progress](ctx, r.base, q)
	if err != nil {
		log.Error("failed to list progress: %v", err)
		return nil, err
	}
	log.Debug("found %d progress rows", len(rows))
	return normalizeProgress(rows), nil
}

func (r *progressRepository) ListByDecks(ctx context.Context, userID string, deckIDs []int64) ([]models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing progress across decks: user_id=%s, decks=%v", userID, deckIDs)

	var out []models.Progress
	for _, chunk := range chunks(deckIDs, r.pageSize) {
		q := r.sb.Select(progressColumns...).
			From("user_progress").
			Where(squirrel.Eq{"user_id": userID, "deck_id": chunk}).
			OrderBy("id")
		rows, err := selectAll[models.Progress](ctx, r.base, q)
		if err != nil {
			log.Error("failed to list progress across decks: %v", err)
			return nil, err
		}
		out = append(out, rows...)
	}
	return normalizeProgress(out), nil
}

func (r *progressRepository) ListByWords(ctx context.Context, userID string, deckID int64, wordIDs []int64) ([]models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing progress by words: user_id=%s, deck_id=%d, words=%d", userID, deckID, len(wordIDs))

	var out []models.Progress
	for _, chunk := range chunks(wordIDs, r.pageSize) {
		query, args, err := r.sb.Select(progressColumns...).
			From("user_progress").
			Where(squirrel.Eq{"user_id": userID, "deck_id": deckID, "word_id": chunk}).
			ToSql()
		if err != nil {
			return nil, err
		}
		var page []models.Progress
		if err := r.db.SelectContext(ctx, &page, query, args...); err != nil {
			log.Error("failed to list progress chunk: %v", err)
			return nil, err
		}
		out = append(out, page...)
	}
	return normalizeProgress(out), nil
}

func (r *progressRepository) Get(ctx context.Context, userID string, wordID, deckID int64) (*models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("fetching progress: user_id=%s, word_id=%d, deck_id=%d", userID, wordID, deckID)

	query, args, err := r.sb.Select(progressColumns...).
		From("user_progress").
		Where(squirrel.Eq{"user_id": userID, "word_id": wordID, "deck_id": deckID}).
		ToSql()
	if err != nil {
		return nil, err
	}
	var p models.Progress
	err = r.db.GetContext(ctx, &p, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no progress yet: word_id=%d", wordID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, err
	}
	p.NextReviewDate = p.NextReviewDate.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

func (r *progressRepository) Upsert(ctx context.Context, p models.Progress) (models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("upserting progress: user_id=%s, word_id=%d, deck_id=%d, interval=%d, ease=%.2f",
		p.UserID, p.WordID, p.DeckID, p.IntervalDays, p.EaseFactor)

	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}
	p.UpdatedAt = p.UpdatedAt.UTC()
	p.NextReviewDate = p.NextReviewDate.UTC()

	query, args, err := r.sb.Insert("user_progress").
		Columns(progressColumns[1:]...).
		Values(p.UserID, p.WordID, p.DeckID, p.Repetitions, p.IntervalDays,
			p.EaseFactor, p.NextReviewDate, p.AgainCount, p.UpdatedAt).
		Suffix(progressUpsertSuffix).
		ToSql()
	if err != nil {
		return p, err
	}
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&p.ID); err != nil {
		log.Error("failed to upsert progress: %v", err)
		return p, err
	}
	log.Debug("progress saved: id=%d", p.ID)
	return p, nil
}
