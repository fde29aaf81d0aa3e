package api

import (
	"context"
	"time"

	"github.com/vytor/lexiflash/internal/ratelimit"
	"github.com/vytor/lexiflash/internal/services"
	"github.com/vytor/lexiflash/internal/srs"
)

// ReadyChecker reports whether a dependency can serve traffic.
type ReadyChecker interface {
	Ready(ctx context.Context) error
}

type Server struct {
	DeckService     services.DeckService
	QueueService    services.QueueService
	MetricsService  services.MetricsService
	DeepDiveService services.DeepDiveService
	HeatmapService  services.HeatmapService
	SessionService  services.SessionService
	ActivityService services.ActivityService

	DB      ReadyChecker
	Limiter *ratelimit.Limiter
	Clock   srs.Nower
	// RequestTimeout bounds every handler; zero means 30s.
	RequestTimeout time.Duration
}

func (s *Server) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now()
}

func (s *Server) requestTimeout() time.Duration {
	if s.RequestTimeout <= 0 {
		return 30 * time.Second
	}
	return s.RequestTimeout
}
