package stats

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"elprimobot/logger"
	"elprimobot/models"
)

// aggregate builds the cycle's working set: every current member seeded
// with zero counters and a last-seen timestamp from the ledger (new
// members default to now), then message history from every text channel
// folded in. A channel that fails to fetch contributes nothing; partial
// data beats no report.
func (s *Service) aggregate(since time.Time) (map[string]*models.UserActivity, scanTotals, error) {
	var totals scanTotals

	ledger := s.ledger.Load()
	now := s.now().UnixMilli()

	members, err := s.client.GuildMembers(s.guildID)
	if err != nil {
		return nil, totals, fmt.Errorf("error enumerating guild members: %w", err)
	}

	working := make(map[string]*models.UserActivity, len(members))
	for _, m := range members {
		last, ok := ledger[m.Username]
		if !ok {
			last = now
		}
		working[m.Username] = &models.UserActivity{
			Username:     m.Username,
			LastActivity: last,
		}
	}

	channels, err := s.client.GuildChannels(s.guildID)
	if err != nil {
		return nil, totals, fmt.Errorf("error enumerating guild channels: %w", err)
	}

	for _, ch := range channels {
		if ch.Kind != models.ChannelText {
			logger.Log.Debugf("Skipping channel %s, not a text channel", ch.Name)
			continue
		}

		messages, err := s.fetchMessagesSince(ch.ID, since)
		if err != nil {
			logger.Log.WithError(err).Errorf("Failed to fetch messages from channel %s, skipping", ch.Name)
			continue
		}
		logger.Log.Debugf("Processing %d messages from channel %s", len(messages), ch.Name)

		totals.channels++
		totals.messages += len(messages)

		for _, msg := range messages {
			rec, ok := working[msg.AuthorUsername]
			if !ok {
				// author has since left the guild
				rec = &models.UserActivity{
					Username:     msg.AuthorUsername,
					LastActivity: now,
				}
				working[msg.AuthorUsername] = rec
			}
			rec.Posts++
			rec.Words += len(strings.Fields(msg.Content))
			rec.Letters += utf8.RuneCountInString(msg.Content)
			if now > rec.LastActivity {
				rec.LastActivity = now
			}
		}
	}

	for bot := range s.bots {
		delete(working, bot)
	}

	return working, totals, nil
}
