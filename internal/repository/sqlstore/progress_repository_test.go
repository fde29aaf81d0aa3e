package sqlstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/lexiflash/internal/db"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
	"github.com/vytor/lexiflash/internal/repository/sqlstore"
	"github.com/vytor/lexiflash/internal/testutil"
)

type ProgressRepositorySuite struct {
	suite.Suite
	db      *db.DB
	catalog repository.CatalogRepository
	repo    repository.ProgressRepository
	deckID  int64
	wordIDs []int64
}

func (s *ProgressRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.catalog = sqlstore.NewCatalogRepository(s.db.DB)
	s.repo = sqlstore.NewProgressRepository(s.db.DB, sqlstore.WithPageSize(2))
	s.deckID, s.wordIDs = testutil.SeedDeck(s.T(), s.catalog, "d", "uno", "dos", "tres", "cuatro", "cinco")
}

func (s *ProgressRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ProgressRepositorySuite) progress(wordID int64, interval int) models.Progress {
	return models.Progress{
		UserID:         "user-1",
		WordID:         wordID,
		DeckID:         s.deckID,
		Repetitions:    1,
		IntervalDays:   interval,
		EaseFactor:     2.5,
		NextReviewDate: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC).AddDate(0, 0, interval),
		UpdatedAt:      time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func (s *ProgressRepositorySuite) TestNoRowsIsNotAnError() {
	rows, err := s.repo.ListByDeck(context.Background(), "nobody", s.deckID)
	s.Require().NoError(err)
	s.Assert().Nil(rows)

	p, err := s.repo.Get(context.Background(), "nobody", s.wordIDs[0], s.deckID)
	s.Require().NoError(err)
	s.Assert().Nil(p)
}

func (s *ProgressRepositorySuite) TestUpsertInsertsThenUpdates() {
	ctx := context.Background()

	saved, err := s.repo.Upsert(ctx, s.progress(s.wordIDs[0], 1))
	s.Require().NoError(err)
	s.Assert().Greater(saved.ID, int64(0))

	next := s.progress(s.wordIDs[0], 6)
	next.AgainCount = 2
	updated, err := s.repo.Upsert(ctx, next)
	s.Require().NoError(err)
	s.Assert().Equal(saved.ID, updated.ID)

	got, err := s.repo.Get(ctx, "user-1", s.wordIDs[0], s.deckID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(6, got.IntervalDays)
	s.Assert().Equal(2, got.AgainCount)
	s.Assert().True(next.NextReviewDate.Equal(got.NextReviewDate))
	s.Assert().Equal(time.UTC, got.NextReviewDate.Location())

	var count int
	s.Require().NoError(s.db.Get(&count, `SELECT COUNT(*) FROM user_progress`))
	s.Assert().Equal(1, count)
}

func (s *ProgressRepositorySuite) TestListByDeckPaginates() {
	ctx := context.Background()
	for i, id := range s.wordIDs {
		_, err := s.repo.Upsert(ctx, s.progress(id, i))
		s.Require().NoError(err)
	}
	other := s.progress(s.wordIDs[0], 3)
	other.UserID = "user-2"
	_, err := s.repo.Upsert(ctx, other)
	s.Require().NoError(err)

	rows, err := s.repo.ListByDeck(ctx, "user-1", s.deckID)
	s.Require().NoError(err)
	s.Assert().Len(rows, 5)
	for _, r := range rows {
		s.Assert().Equal("user-1", r.UserID)
	}
}

func (s *ProgressRepositorySuite) TestListByWordsChunks() {
	ctx := context.Background()
	for _, id := range s.wordIDs[:4] {
		_, err := s.repo.Upsert(ctx, s.progress(id, 1))
		s.Require().NoError(err)
	}

	rows, err := s.repo.ListByWords(ctx, "user-1", s.deckID, []int64{s.wordIDs[0], s.wordIDs[2], s.wordIDs[3], s.wordIDs[4]})
	s.Require().NoError(err)
	s.Assert().Len(rows, 3)
}

func (s *ProgressRepositorySuite) TestListByDecks() {
	ctx := context.Background()
	otherDeck, otherWords := testutil.SeedDeck(s.T(), s.catalog, "other", "x", "y")

	_, err := s.repo.Upsert(ctx, s.progress(s.wordIDs[0], 1))
	s.Require().NoError(err)
	p := s.progress(otherWords[1], 30)
	p.DeckID = otherDeck
	_, err = s.repo.Upsert(ctx, p)
	s.Require().NoError(err)

	rows, err := s.repo.ListByDecks(ctx, "user-1", []int64{s.deckID, otherDeck})
	s.Require().NoError(err)
	s.Assert().Len(rows, 2)

	rows, err = s.repo.ListByDecks(ctx, "user-1", []int64{otherDeck})
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Assert().Equal(30, rows[0].IntervalDays)
}

func TestProgressRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProgressRepositorySuite))
}
