package services

import (
	"context"
	"time"

	"github.com/vytor/lexiflash/internal/errors"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
)

const (
	MinActivityDays     = 1
	MaxActivityDays     = 365
	DefaultActivityDays = 30
)

// ActivityService reports per-day study activity from the daily summary.
type ActivityService interface {
	Summary(ctx context.Context, userID string, days int, now time.Time) (models.ActivitySummary, error)
	Calendar(ctx context.Context, userID, from, to string) ([]models.ActivityDay, error)
}

type activityService struct {
	summary repository.SummaryRepository
}

// NewActivityService creates a new ActivityService
func NewActivityService(summary repository.SummaryRepository) ActivityService {
	return &activityService{summary: summary}
}

// ClampDays bounds a requested window to [MinActivityDays, MaxActivityDays].
// Zero means the default window.
func ClampDays(days int) int {
	if days == 0 {
		return DefaultActivityDays
	}
	return max(MinActivityDays, min(MaxActivityDays, days))
}

func midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dense expands rows into one entry per day of [from, to].
func dense(rows []models.DailySummary, from, to time.Time) []models.ActivityDay {
	byDate := make(map[string]models.DailySummary, len(rows))
	for _, r := range rows {
		byDate[r.Date] = r
	}
	var out []models.ActivityDay
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := DateKey(d)
		r := byDate[key]
		out = append(out, models.ActivityDay{
			Date:      key,
			Review:    r.ReviewsDone,
			Discovery: r.NewWordsLearned,
			Total:     r.ReviewsDone + r.NewWordsLearned,
		})
	}
	return out
}

func (s *activityService) Summary(ctx context.Context, userID string, days int, now time.Time) (models.ActivitySummary, error) {
	log := logger.FromContext(ctx).WithPrefix("activity_service")
	log.Debug("activity summary: user_id=%s, days=%d", userID, days)

	if userID == "" {
		return models.ActivitySummary{Series: []models.ActivityDay{}}, errors.NewValidationError("user_id", "is required")
	}
	days = ClampDays(days)

	today := midnight(now)
	// Fetch at least 30 days so the trailing totals are exact for short windows.
	span := max(days, 30)
	from := today.AddDate(0, 0, -(span - 1))

	rows, err := s.summary.Range(ctx, userID, DateKey(from), DateKey(today))
	if err != nil {
		log.Error("summary unavailable, reporting no activity: %v", err)
		rows = nil
	}
	all := dense(rows, from, today)

	var out models.ActivitySummary
	n := len(all)
	for i, d := range all {
		age := n - 1 - i
		if age < 7 {
			out.Last7Days += d.Total
		}
		if age < 30 {
			out.Last30Days += d.Total
		}
	}
	out.Today = all[n-1].Total
	for i := n - 1; i >= 0 && all[i].Total > 0; i-- {
		out.Streak++
	}
	out.Series = all[n-days:]
	return out, nil
}

func (s *activityService) Calendar(ctx context.Context, userID, from, to string) ([]models.ActivityDay, error) {
	log := logger.FromContext(ctx).WithPrefix("activity_service")
	log.Debug("activity calendar: user_id=%s, from=%s, to=%s", userID, from, to)

	if userID == "" {
		return []models.ActivityDay{}, errors.NewValidationError("user_id", "is required")
	}
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return []models.ActivityDay{}, errors.NewValidationError("from", "must be YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return []models.ActivityDay{}, errors.NewValidationError("to", "must be YYYY-MM-DD")
	}
	if start.After(end) {
		return []models.ActivityDay{}, errors.NewValidationError("from", "must not be after to")
	}
	if end.Sub(start) > (MaxActivityDays+1)*24*time.Hour {
		return []models.ActivityDay{}, errors.NewValidationError("to", "range is limited to one year")
	}

	rows, err := s.summary.Range(ctx, userID, from, to)
	if err != nil {
		log.Error("summary unavailable, reporting no activity: %v", err)
		rows = nil
	}
	return dense(rows, start, end), nil
}
