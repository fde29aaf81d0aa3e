package sqlstore

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
)

type deepDiveRepository struct {
	base
}

// NewDeepDiveRepository creates a new DeepDiveRepository implementation
func NewDeepDiveRepository(db *sqlx.DB, opts ...Option) repository.DeepDiveRepository {
	return &deepDiveRepository{base: newBase(db, opts)}
}

func (r *deepDiveRepository) Viewed(ctx context.Context, userID string, deckID int64, category string) ([]models.DeepDiveView, error) {
	log := logger.FromContext(ctx).WithPrefix("deep_dive_repo")
	log.Debug("fetching views: user_id=%s, deck_id=%d, category=%s", userID, deckID, category)

	q := r.sb.Select("user_id", "deck_id", "vocabulary_id", "category", "last_viewed_at").
		From("deep_dive_progress").
		Where(squirrel.Eq{"user_id": userID, "deck_id": deckID, "category": category}).
		OrderBy("vocabulary_id")

	views, err := selectAll[models.DeepDiveView](ctx, r.base, q)
	if err != nil {
		log.Error("failed to fetch views: %v", err)
		return nil, err
	}
	for i := range views {
		views[i].LastViewedAt = views[i].LastViewedAt.UTC()
	}
	return views, nil
}

func (r *deepDiveRepository) MarkViewed(ctx context.Context, v models.DeepDiveView) error {
	log := logger.FromContext(ctx).WithPrefix("deep_dive_repo")
	log.Debug("marking viewed: user_id=%s, deck_id=%d, word_id=%d, category=%s", v.UserID, v.DeckID, v.VocabularyID, v.Category)

	query, args, err := r.sb.Insert("deep_dive_progress").
		Columns("user_id", "deck_id", "vocabulary_id", "category", "last_viewed_at").
		Values(v.UserID, v.DeckID, v.VocabularyID, v.Category, v.LastViewedAt.UTC()).
		Suffix("ON CONFLICT (user_id, deck_id, vocabulary_id, category) DO UPDATE SET last_viewed_at = excluded.last_viewed_at").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to mark viewed: %v", err)
		return err
	}
	return nil
}
