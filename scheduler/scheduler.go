package scheduler

import (
	"fmt"

	"elprimobot/config"
	"elprimobot/logger"
	"elprimobot/stats"

	"github.com/robfig/cron/v3"
)

// Start registers the daily and weekly stats jobs on their configured
// cron expressions and starts the scheduler. The returned cron runs
// until Stop is called on it.
func Start(svc *stats.Service) (*cron.Cron, error) {
	c := cron.New()

	cfg := config.AppConfig
	if _, err := c.AddFunc(cfg.DailyCron, func() {
		logger.Log.Info("Daily stats job triggered")
		if err := svc.PostDailyStats(); err != nil {
			logger.Log.WithError(err).Error("Daily stats job failed")
		}
	}); err != nil {
		return nil, fmt.Errorf("invalid daily cron expression %q: %w", cfg.DailyCron, err)
	}

	if _, err := c.AddFunc(cfg.WeeklyCron, func() {
		logger.Log.Info("Weekly stats job triggered")
		if err := svc.PostWeeklyStats(); err != nil {
			logger.Log.WithError(err).Error("Weekly stats job failed")
		}
	}); err != nil {
		return nil, fmt.Errorf("invalid weekly cron expression %q: %w", cfg.WeeklyCron, err)
	}

	c.Start()
	logger.Log.Infof("Scheduler started (daily: %q, weekly: %q)", cfg.DailyCron, cfg.WeeklyCron)
	return c, nil
}
