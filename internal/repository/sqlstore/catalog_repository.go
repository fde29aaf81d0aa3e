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

var (
	deckColumns       = []string{"id", "name", "language_a_name", "language_b_name", "created_at"}
	vocabularyColumns = []string{"id", "language_a_word", "language_b_translation", "language_a_sentence", "language_b_sentence", "created_at"}
)

type catalogRepository struct {
	base
}

// NewCatalogRepository creates a new CatalogRepository implementation
func NewCatalogRepository(db *sqlx.DB, opts ...Option) repository.CatalogRepository {
	return &catalogRepository{base: newBase(db, opts)}
}

func (r *catalogRepository) Deck(ctx context.Context, id int64) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("fetching deck: id=%d", id)

	query, args, err := r.sb.Select(deckColumns...).From("decks").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	var d models.Deck
	err = r.db.GetContext(ctx, &d, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, err
	}
	d.CreatedAt = d.CreatedAt.UTC()
	return &d, nil
}

func (r *catalogRepository) ListDecks(ctx context.Context) ([]models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("listing decks")

	decks, err := selectAll[models.Deck](ctx, r.base, r.sb.Select(deckColumns...).From("decks").OrderBy("id"))
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, err
	}
	for i := range decks {
		decks[i].CreatedAt = decks[i].CreatedAt.UTC()
	}
	log.Debug("found %d decks", len(decks))
	return decks, nil
}

func (r *catalogRepository) DeckWordIDs(ctx context.Context, deckID int64) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("fetching deck membership: deck_id=%d", deckID)

	q := r.sb.Select("vocabulary_id").
		From("deck_vocabulary").
		Where(squirrel.Eq{"deck_id": deckID}).
		OrderBy("word_order", "vocabulary_id")

	ids, err := selectAll[int64](ctx, r.base, q)
	if err != nil {
		log.Error("failed to fetch deck membership: %v", err)
		return nil, err
	}
	log.Debug("deck %d has %d words", deckID, len(ids))
	return ids, nil
}

func (r *catalogRepository) Vocabulary(ctx context.Context, ids []int64) ([]models.Vocabulary, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("fetching vocabulary: count=%d", len(ids))

	var out []models.Vocabulary
	for _, chunk := range chunks(ids, r.pageSize) {
		query, args, err := r.sb.Select(vocabularyColumns...).
			From("vocabulary").
			Where(squirrel.Eq{"id": chunk}).
			OrderBy("id").
			ToSql()
		if err != nil {
			return nil, err
		}
		var page []models.Vocabulary
		if err := r.db.SelectContext(ctx, &page, query, args...); err != nil {
			log.Error("failed to fetch vocabulary chunk: %v", err)
			return nil, err
		}
		out = append(out, page...)
	}
	for i := range out {
		out[i].CreatedAt = out[i].CreatedAt.UTC()
	}
	return out, nil
}

func (r *catalogRepository) CreateDeck(ctx context.Context, deck models.Deck) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("creating deck: name=%s", deck.Name)

	query, args, err := r.sb.Insert("decks").
		Columns("name", "language_a_name", "language_b_name", "created_at").
		Values(deck.Name, deck.LanguageA, deck.LanguageB, time.Now().UTC()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		log.Error("failed to create deck: %v", err)
		return 0, err
	}
	log.Debug("deck created: id=%d", id)
	return id, nil
}

func (r *catalogRepository) AddVocabulary(ctx context.Context, deckID int64, words []models.Vocabulary) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog_repo")
	log.Debug("adding %d words to deck %d", len(words), deckID)

	ids := make([]int64, 0, len(words))
	err := tx(ctx, r.db, func(tx *sqlx.Tx) error {
		query, args, err := r.sb.Select("COALESCE(MAX(word_order), -1)").
			From("deck_vocabulary").
			Where(squirrel.Eq{"deck_id": deckID}).
			ToSql()
		if err != nil {
			return err
		}
		var order int
		if err := tx.GetContext(ctx, &order, query, args...); err != nil {
			return err
		}

		now := time.Now().UTC()
		for _, w := range words {
			query, args, err := r.sb.Insert("vocabulary").
				Columns("language_a_word", "language_b_translation", "language_a_sentence", "language_b_sentence", "created_at").
				Values(w.Term, w.Translation, w.ExampleA, w.ExampleB, now).
				Suffix("RETURNING id").
				ToSql()
			if err != nil {
				return err
			}
			var id int64
			if err := tx.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
				return err
			}

			order++
			query, args, err = r.sb.Insert("deck_vocabulary").
				Columns("deck_id", "vocabulary_id", "word_order").
				Values(deckID, id, order).
				ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to add vocabulary: %v", err)
		return nil, err
	}
	return ids, nil
}
