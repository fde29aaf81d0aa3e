package sqlstore

import (
	"context"
	"slices"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
)

type ratingRepository struct {
	base
}

// NewRatingRepository creates a new RatingRepository implementation
func NewRatingRepository(db *sqlx.DB, opts ...Option) repository.RatingRepository {
	return &ratingRepository{base: newBase(db, opts)}
}

func (r *ratingRepository) Insert(ctx context.Context, e models.RatingEvent) error {
	log := logger.FromContext(ctx).WithPrefix("rating_repo")
	log.Debug("logging rating: user_id=%s, word_id=%d, rating=%s", e.UserID, e.WordID, e.Rating)

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	query, args, err := r.sb.Insert("rating_history").
		Columns("user_id", "word_id", "deck_id", "rating", "created_at").
		Values(e.UserID, e.WordID, e.DeckID, e.Rating, e.CreatedAt.UTC()).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to log rating: %v", err)
		return err
	}
	return nil
}

func (r *ratingRepository) RecentRatings(ctx context.Context, userID string, wordID int64, limit int) ([]models.RatingEvent, error) {
	log := logger.FromContext(ctx).WithPrefix("rating_repo")
	log.Debug("fetching recent ratings: user_id=%s, word_id=%d, limit=%d", userID, wordID, limit)

	if limit <= 0 {
		return nil, nil
	}
	query, args, err := r.sb.Select("id", "user_id", "word_id", "deck_id", "rating", "created_at").
		From("rating_history").
		Where(squirrel.Eq{"user_id": userID, "word_id": wordID}).
		OrderBy("id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	var events []models.RatingEvent
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		log.Error("failed to fetch recent ratings: %v", err)
		return nil, err
	}
	slices.Reverse(events)
	for i := range events {
		events[i].CreatedAt = events[i].CreatedAt.UTC()
	}
	return events, nil
}

func (r *ratingRepository) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("rating_repo")
	log.Debug("pruning ratings before %s", cutoff.UTC().Format(time.RFC3339))

	query, args, err := r.sb.Delete("rating_history").
		Where(squirrel.Lt{"created_at": cutoff.UTC()}).
		ToSql()
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to prune ratings: %v", err)
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	log.Info("pruned %d ratings", n)
	return n, nil
}
