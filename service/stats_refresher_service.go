package services

import (
	"context"
	"time"

	"tour-server/config"
	"tour-server/logger"
)

// StatsRefresherService recomputes the stats cache on a fixed interval so
// requests rarely pay for the upstream fan-out.
type StatsRefresherService struct {
	stats  *StatsService
	logger logger.Logger
}

func NewStatsRefresherService(stats *StatsService, log logger.Logger) *StatsRefresherService {
	return &StatsRefresherService{stats: stats, logger: logger.Component(log, "StatsRefresherService")}
}

// StartPeriodicJob refreshes once immediately and then every interval until
// ctx is done.
func (sr *StatsRefresherService) StartPeriodicJob(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = config.STATS_REFRESHER_SCHEDULE_MINUTES * time.Minute
	}
	go sr.startPeriodicJob(ctx, interval)
}

func (sr *StatsRefresherService) startPeriodicJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		sr.RefreshStats(ctx)
		select {
		case <-ctx.Done():
			sr.logger.Info("stats refresher stopped", nil)
			return
		case <-ticker.C:
		}
	}
}

// RefreshStats runs one refresh and logs its outcome.
func (sr *StatsRefresherService) RefreshStats(ctx context.Context) {
	sr.logger.Info("running periodic stats refresher job", nil)
	start := time.Now()
	data, err := sr.stats.RefreshStats(ctx)
	if err != nil {
		sr.logger.WithError(err).Error("stats refresh failed", nil)
		return
	}
	sr.logger.Info("stats refresh completed", map[string]interface{}{
		"regions":    len(data.RegionStats),
		"types":      len(data.TypeStats),
		"totalCount": data.Summary.TotalCount,
		"took":       time.Since(start).String(),
	})
}
