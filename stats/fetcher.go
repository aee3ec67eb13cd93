package stats

import (
	"fmt"
	"time"

	"elprimobot/models"
)

// Discord caps a single message fetch at 100.
const messagePageSize = 100

// fetchMessagesSince retrieves every message in a channel created at or
// after since, newest first, paging past the per-call limit by asking
// for messages before the oldest message of the previous page. The loop
// stops on an empty page or on the first message older than since (that
// message and everything before it is discarded). A hard page cap keeps
// a misbehaving channel from looping forever; hitting it aborts the
// channel for this cycle.
func (s *Service) fetchMessagesSince(channelID string, since time.Time) ([]models.Message, error) {
	var messages []models.Message
	beforeID := ""

	for page := 0; ; page++ {
		if page >= s.maxPages {
			return nil, fmt.Errorf("channel %s exceeded %d pages this cycle, aborting", channelID, s.maxPages)
		}

		batch, err := s.client.ChannelMessages(channelID, messagePageSize, beforeID)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			return messages, nil
		}

		beforeID = batch[len(batch)-1].ID
		for _, m := range batch {
			if m.CreatedAt.Before(since) {
				return messages, nil
			}
			messages = append(messages, m)
		}
	}
}
