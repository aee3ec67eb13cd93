package discord

import (
	"context"
	"fmt"

	"elprimobot/logger"
	"elprimobot/models"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

const memberPageSize = 1000

// Session wraps a discordgo session behind the narrow surface the stats
// engine needs, converting SDK objects to models records at the
// boundary. All REST calls go through a shared limiter so a long fetch
// loop stays under Discord's rate limits.
type Session struct {
	session *discordgo.Session
	limiter *rate.Limiter
}

// New creates and opens a Discord session for the given bot token.
func New(token string) (*Session, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages

	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("error opening discord session: %w", err)
	}

	return &Session{
		session: session,
		// 20 requests/second, well under the global REST limit.
		limiter: rate.NewLimiter(rate.Limit(20), 5),
	}, nil
}

func (s *Session) Close() error {
	return s.session.Close()
}

func (s *Session) wait() {
	if err := s.limiter.Wait(context.Background()); err != nil {
		logger.Log.WithError(err).Error("Rate limiter wait failed")
	}
}

// GuildMembers enumerates the full guild membership, paging past the
// API's per-call member limit.
func (s *Session) GuildMembers(guildID string) ([]models.Member, error) {
	var members []models.Member
	after := ""
	for {
		s.wait()
		batch, err := s.session.GuildMembers(guildID, after, memberPageSize)
		if err != nil {
			return nil, fmt.Errorf("error fetching guild members: %w", err)
		}
		if len(batch) == 0 {
			break
		}
		for _, gm := range batch {
			if gm.User == nil {
				continue
			}
			members = append(members, models.Member{
				ID:       gm.User.ID,
				Username: gm.User.Username,
				Bot:      gm.User.Bot,
			})
		}
		after = batch[len(batch)-1].User.ID
		if len(batch) < memberPageSize {
			break
		}
	}
	return members, nil
}

// GuildChannels lists all guild channels tagged with their kind.
func (s *Session) GuildChannels(guildID string) ([]models.Channel, error) {
	s.wait()
	channels, err := s.session.GuildChannels(guildID)
	if err != nil {
		return nil, fmt.Errorf("error fetching guild channels: %w", err)
	}

	out := make([]models.Channel, 0, len(channels))
	for _, ch := range channels {
		out = append(out, models.Channel{
			ID:   ch.ID,
			Name: ch.Name,
			Kind: channelKind(ch.Type),
		})
	}
	return out, nil
}

func channelKind(t discordgo.ChannelType) models.ChannelKind {
	switch t {
	case discordgo.ChannelTypeGuildText:
		return models.ChannelText
	case discordgo.ChannelTypeGuildVoice, discordgo.ChannelTypeGuildStageVoice:
		return models.ChannelVoice
	case discordgo.ChannelTypeGuildCategory:
		return models.ChannelCategory
	default:
		return models.ChannelOther
	}
}

// ChannelMessages fetches one page of up to limit messages, newest
// first, strictly before the given message ID (all messages when
// beforeID is empty).
func (s *Session) ChannelMessages(channelID string, limit int, beforeID string) ([]models.Message, error) {
	s.wait()
	messages, err := s.session.ChannelMessages(channelID, limit, beforeID, "", "")
	if err != nil {
		return nil, fmt.Errorf("error fetching channel messages: %w", err)
	}

	out := make([]models.Message, 0, len(messages))
	for _, m := range messages {
		if m.Author == nil {
			continue
		}
		out = append(out, models.Message{
			ID:             m.ID,
			AuthorUsername: m.Author.Username,
			Content:        m.Content,
			CreatedAt:      m.Timestamp,
		})
	}
	return out, nil
}

// KickMember removes a member from the guild.
func (s *Session) KickMember(guildID, userID string) error {
	s.wait()
	if err := s.session.GuildMemberDeleteWithReason(guildID, userID, "inactivity"); err != nil {
		return fmt.Errorf("error kicking member %s: %w", userID, err)
	}
	return nil
}

// SendEmbed posts a message with an embed to a channel.
func (s *Session) SendEmbed(channelID, content string, embed *discordgo.MessageEmbed) error {
	s.wait()
	_, err := s.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		Embeds:  []*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		return fmt.Errorf("error sending embed: %w", err)
	}
	return nil
}
