package stats

import "elprimobot/logger"

// removeFlagged kicks every flagged member still present in the guild
// and returns the usernames actually removed. Membership is re-fetched
// so the removals act on current state; a member who already left is
// simply not found. Each kick is independent, one failure never blocks
// the rest.
func (s *Service) removeFlagged(flagged map[string]struct{}) []string {
	if len(flagged) == 0 {
		logger.Log.Debug("No members flagged for removal")
		return nil
	}

	members, err := s.client.GuildMembers(s.guildID)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to refresh membership, skipping removals this cycle")
		return nil
	}

	var removed []string
	for _, m := range members {
		if _, ok := flagged[m.Username]; !ok {
			continue
		}
		if err := s.client.KickMember(s.guildID, m.ID); err != nil {
			logger.Log.WithError(err).Errorf("Failed to remove member %s", m.Username)
			continue
		}
		logger.Log.Infof("Removed %s for inactivity", m.Username)
		removed = append(removed, m.Username)
	}
	return removed
}
