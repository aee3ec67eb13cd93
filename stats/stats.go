// Package stats implements the community activity engine: it walks a
// guild's text channels, folds message history into per-user activity
// counters seeded from a persisted ledger, classifies members into
// active and inactive tiers, enforces the inactivity-removal policy and
// posts a report to the stats channel.
package stats

import (
	"time"

	"elprimobot/config"
	"elprimobot/database"
	"elprimobot/logger"
	"elprimobot/models"

	"github.com/bwmarrin/discordgo"
)

// Client is the slice of the Discord surface the engine consumes. The
// discord package provides the production implementation; tests swap in
// fakes.
type Client interface {
	GuildMembers(guildID string) ([]models.Member, error)
	GuildChannels(guildID string) ([]models.Channel, error)
	ChannelMessages(channelID string, limit int, beforeID string) ([]models.Message, error)
	KickMember(guildID, userID string) error
	SendEmbed(channelID, content string, embed *discordgo.MessageEmbed) error
}

// Service runs one stats cycle at a time. Cycles are strictly
// sequential; the ledger's load-then-persist is not guarded against
// overlapping runs.
type Service struct {
	client       Client
	guildID      string
	statsChannel string
	bots         map[string]struct{}
	removalWeeks int
	maxPages     int
	ledger       *Ledger

	now func() time.Time
}

func New(client Client, cfg config.Config) *Service {
	return &Service{
		client:       client,
		guildID:      cfg.GuildID,
		statsChannel: cfg.StatsChannel,
		bots:         cfg.Bots,
		removalWeeks: cfg.RemovalWeeks,
		maxPages:     cfg.MaxChannelPages,
		ledger:       NewLedger(cfg.LedgerPath),
		now:          time.Now,
	}
}

type scanTotals struct {
	channels int
	messages int
}

// PostWeeklyStats runs the full weekly cycle:
// load -> aggregate -> classify -> remove -> report -> persist.
func (s *Service) PostWeeklyStats() error {
	now := s.now()
	since := now.AddDate(0, 0, -7)

	working, totals, err := s.aggregate(since)
	if err != nil {
		return err
	}

	cls := Classify(working, now, s.removalWeeks)
	removed := s.removeFlagged(cls.ForRemoval)

	if err := s.sendReport(cls, removed, "**Weekly Stats**"); err != nil {
		logger.Log.WithError(err).Error("Failed to send weekly stats report")
	}

	s.persistLedger(working)
	s.archiveCycle("weekly", now, cls, removed, totals)
	return nil
}

// PostDailyStats reports activity over the last 24 hours. The daily
// cycle never removes members and never rewrites the ledger; the weekly
// cycle owns both.
func (s *Service) PostDailyStats() error {
	now := s.now()
	since := now.AddDate(0, 0, -1)

	working, totals, err := s.aggregate(since)
	if err != nil {
		return err
	}

	cls := Classify(working, now, s.removalWeeks)

	if err := s.sendReport(cls, nil, "**Daily Stats**"); err != nil {
		logger.Log.WithError(err).Error("Failed to send daily stats report")
	}

	s.archiveCycle("daily", now, cls, nil, totals)
	return nil
}

func (s *Service) persistLedger(working map[string]*models.UserActivity) {
	entries := make(map[string]int64, len(working))
	for username, rec := range working {
		entries[username] = rec.LastActivity
	}
	if err := s.ledger.Persist(entries); err != nil {
		logger.Log.WithError(err).Error("Failed to persist activity ledger; next cycle will use the previous state")
	}
}

func (s *Service) archiveCycle(scope string, now time.Time, cls models.ActivityClassification, removed []string, totals scanTotals) {
	database.RecordCycle(models.CycleStats{
		Date:            now,
		Scope:           scope,
		ActiveUsers:     len(cls.Active),
		InactiveUsers:   len(cls.Inactive),
		RemovedUsers:    len(removed),
		MessagesScanned: totals.messages,
		ChannelsScanned: totals.channels,
	})
}
