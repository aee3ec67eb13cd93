package stats

import (
	"fmt"
	"strings"
	"time"

	"elprimobot/logger"
	"elprimobot/models"

	"github.com/bwmarrin/discordgo"
)

// sendReport renders the cycle's classification into a single embed and
// posts it to the configured stats channel.
func (s *Service) sendReport(cls models.ActivityClassification, removed []string, title string) error {
	if len(cls.Active) == 0 && len(cls.Inactive) == 0 {
		logger.Log.Debug("Nothing to report this cycle")
		return nil
	}

	channelID, err := s.statsChannelID()
	if err != nil {
		return err
	}

	embed := buildReportEmbed(cls, removed, s.now())
	if err := s.client.SendEmbed(channelID, title, embed); err != nil {
		return err
	}
	logger.Log.Infof("Sent stats report to channel %s", s.statsChannel)
	return nil
}

func (s *Service) statsChannelID() (string, error) {
	channels, err := s.client.GuildChannels(s.guildID)
	if err != nil {
		return "", fmt.Errorf("error looking up stats channel: %w", err)
	}
	for _, ch := range channels {
		if ch.Kind == models.ChannelText && ch.Name == s.statsChannel {
			return ch.ID, nil
		}
	}
	return "", fmt.Errorf("stats channel %q not found in guild", s.statsChannel)
}

func buildReportEmbed(cls models.ActivityClassification, removed []string, now time.Time) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Color:     0x0099FF,
		Timestamp: now.Format(time.RFC3339),
	}

	if len(cls.Active) > 0 {
		var b strings.Builder
		for _, rec := range cls.Active {
			fmt.Fprintf(&b, "**%s** **(** %d **|** %d **|** %d** )**\n", rec.Username, rec.Posts, rec.Words, rec.Letters)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "user (posts | words | letters)",
			Value:  b.String(),
			Inline: true,
		})
	}

	if stale := staleLines(cls.Inactive, now); len(stale) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "inactive (last seen, days ago)",
			Value: strings.Join(stale, "\n"),
		})
	}

	if len(removed) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "removed for inactivity",
			Value: strings.Join(removed, ", "),
		})
	}

	return embed
}

// staleLines renders inactive users as "username (N days)", keeping
// only those unseen for at least a full day.
func staleLines(inactive []*models.UserActivity, now time.Time) []string {
	var lines []string
	for _, rec := range inactive {
		days := (now.UnixMilli() - rec.LastActivity) / millisPerDay
		if days < 1 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s (%d days)", rec.Username, days))
	}
	return lines
}
