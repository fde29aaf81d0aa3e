package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/vytor/lexiflash/internal/db"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/ratelimit"
	"github.com/vytor/lexiflash/internal/repository/sqlstore"
	"github.com/vytor/lexiflash/internal/services"
	"github.com/vytor/lexiflash/internal/srs"
	"github.com/vytor/lexiflash/internal/testutil"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type APITestSuite struct {
	suite.Suite
	db      *db.DB
	handler http.Handler
	deckID  int64
	wordIDs []int64
}

func (s *APITestSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	catalog := sqlstore.NewCatalogRepository(s.db.DB)
	progress := sqlstore.NewProgressRepository(s.db.DB)
	ratings := sqlstore.NewRatingRepository(s.db.DB)
	summary := sqlstore.NewSummaryRepository(s.db.DB)
	views := sqlstore.NewDeepDiveRepository(s.db.DB)

	s.deckID, s.wordIDs = testutil.SeedDeck(s.T(), catalog, "Basics", "hola", "gato", "perro")

	opts := srs.DefaultOptions()
	spacer := srs.NewSpacer(opts.Classifier(), opts.LeechMinSpacing, srs.NewSeededSource(1))
	clock := srs.FixedNower{T: testNow}

	srv := &Server{
		DeckService:     services.NewDeckService(catalog),
		QueueService:    services.NewQueueService(catalog, progress, spacer, opts),
		MetricsService:  services.NewMetricsService(catalog, progress, opts),
		DeepDiveService: services.NewDeepDiveService(catalog, progress, views, spacer, opts),
		HeatmapService:  services.NewHeatmapService(catalog, progress, opts),
		SessionService:  services.NewSessionService(progress, ratings, summary),
		ActivityService: services.NewActivityService(summary),
		DB:              s.db,
		Limiter:         ratelimit.New(ratelimit.NewCounter(), 5, time.Minute),
		Clock:           clock,
	}
	s.handler = srv.Routes()
}

func (s *APITestSuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *APITestSuite) do(method, path, user, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if user != "" {
		req.Header.Set(userHeader, user)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *APITestSuite) decode(rec *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func (s *APITestSuite) deckPath(suffix string) string {
	return "/decks/" + itoa(s.deckID) + suffix
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

func (s *APITestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/healthz", "", "")
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/readyz", "", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("nosniff", rec.Header().Get("X-Content-Type-Options"))
	s.NotEmpty(rec.Header().Get("X-Request-ID"))
}

func (s *APITestSuite) TestListDecks() {
	rec := s.do(http.MethodGet, "/decks", "", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		Decks []models.Deck `json:"decks"`
	}
	s.decode(rec, &body)
	s.Require().Len(body.Decks, 1)
	s.Equal("Basics", body.Decks[0].Name)

	rec = s.do(http.MethodGet, "/decks/999", "", "")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *APITestSuite) TestMissingUser() {
	rec := s.do(http.MethodGet, s.deckPath("/queues"), "", "")
	s.Equal(http.StatusBadRequest, rec.Code)

	var body errorBody
	s.decode(rec, &body)
	s.Equal("BAD_REQUEST", body.Error.Code)
}

func (s *APITestSuite) TestStudyFlow() {
	rec := s.do(http.MethodGet, s.deckPath("/queues"), "ana", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var q models.Queues
	s.decode(rec, &q)
	s.Len(q.Unseen, 3)
	s.Empty(q.Review)

	word := itoa(s.wordIDs[0])
	rec = s.do(http.MethodPost, s.deckPath("/words/"+word+"/discover"), "ana", `{"rating":"learn"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, s.deckPath("/words/"+word+"/review"), "ana", `{"rating":"good"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var rated ratingResponse
	s.decode(rec, &rated)
	s.Equal(1, rated.Progress.IntervalDays)
	s.Equal(1, rated.DueInDays)

	rec = s.do(http.MethodGet, s.deckPath("/queues"), "ana", "")
	s.decode(rec, &q)
	s.Len(q.Unseen, 2)
	// Due tomorrow and nothing due now: promoted into review.
	s.Len(q.Review, 1)

	rec = s.do(http.MethodGet, s.deckPath("/metrics"), "ana", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var metrics struct {
		Metrics models.DeckMetrics `json:"metrics"`
		Total   int                `json:"total"`
	}
	s.decode(rec, &metrics)
	s.Equal(3, metrics.Total)
	s.Equal(1, metrics.Metrics.Learning)

	rec = s.do(http.MethodGet, "/activity/summary?days=7", "ana", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var activity models.ActivitySummary
	s.decode(rec, &activity)
	s.Equal(2, activity.Today)
	s.Equal(1, activity.Streak)
	s.Len(activity.Series, 7)

	rec = s.do(http.MethodGet, "/heatmap?deck="+itoa(s.deckID), "ana", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var hm models.Heatmap
	s.decode(rec, &hm)
	s.Equal(3, hm.TotalWords)
	s.Equal(1, hm.WordsWithProgress)
}

func (s *APITestSuite) TestRatingValidation() {
	word := itoa(s.wordIDs[0])

	rec := s.do(http.MethodPost, s.deckPath("/words/"+word+"/review"), "ana", `{"rating":"know"}`)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, s.deckPath("/words/"+word+"/review"), "ana", `{"rating":"meh"}`)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, s.deckPath("/words/"+word+"/review"), "ana", `not json`)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, s.deckPath("/words/abc/review"), "ana", `{"rating":"good"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APITestSuite) TestDeepDive() {
	word := itoa(s.wordIDs[1])
	rec := s.do(http.MethodPost, s.deckPath("/words/"+word+"/discover"), "ana", `{"rating":"learn"}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, s.deckPath("/deep-dive?category=learning"), "ana", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var body struct {
		Words []models.Vocabulary `json:"words"`
	}
	s.decode(rec, &body)
	s.Require().Len(body.Words, 1)
	s.Equal(s.wordIDs[1], body.Words[0].ID)

	rec = s.do(http.MethodPost, s.deckPath("/deep-dive/"+word+"/viewed?category=learning"), "ana", "")
	s.Equal(http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, s.deckPath("/deep-dive?category=mastered"), "ana", "")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APITestSuite) TestWriteRateLimit() {
	word := itoa(s.wordIDs[2])
	for i := 0; i < 5; i++ {
		rec := s.do(http.MethodPost, s.deckPath("/words/"+word+"/review"), "bob", `{"rating":"good"}`)
		s.Require().Equal(http.StatusOK, rec.Code)
	}
	rec := s.do(http.MethodPost, s.deckPath("/words/"+word+"/review"), "bob", `{"rating":"good"}`)
	s.Equal(http.StatusTooManyRequests, rec.Code)
	s.Equal("60", rec.Header().Get("Retry-After"))

	// Reads are not limited, and other users have their own budget.
	s.Equal(http.StatusOK, s.do(http.MethodGet, s.deckPath("/queues"), "bob", "").Code)
	s.Equal(http.StatusOK, s.do(http.MethodPost, s.deckPath("/words/"+word+"/review"), "carol", `{"rating":"good"}`).Code)
}

func (s *APITestSuite) TestCalendarValidation() {
	rec := s.do(http.MethodGet, "/activity/calendar?from=2025-03-05&to=2025-03-01", "ana", "")
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/activity/calendar?from=2025-03-01&to=2025-03-05", "ana", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var body struct {
		Days []models.ActivityDay `json:"days"`
	}
	s.decode(rec, &body)
	s.Len(body.Days, 5)
}

type downDB struct{}

func (downDB) Ready(context.Context) error { return context.DeadlineExceeded }

func TestReadyReportsDatabaseDown(t *testing.T) {
	srv := &Server{DB: downDB{}}
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
