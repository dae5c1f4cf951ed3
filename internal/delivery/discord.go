package delivery

//go:generate mockgen -destination=mock/mock_session.go -package=mockdelivery -source=discord.go

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/KirkDiggler/nightfall/internal/domain/game"
	"github.com/KirkDiggler/nightfall/internal/errors"
	"github.com/KirkDiggler/nightfall/internal/render"
)

const texContentType = "application/x-tex"

// Session is the part of *discordgo.Session the sink uses
type Session interface {
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordSinkConfig holds configuration for the Discord sink
type DiscordSinkConfig struct {
	Session           Session     // Required
	NarratorChannelID string      // Optional, the narrator script is skipped when empty
	Logger            *zap.Logger // Optional
}

// DiscordSink DMs each player their sheet and posts the narrator script to
// a channel. Players without a Discord user ID are skipped.
type DiscordSink struct {
	session           Session
	narratorChannelID string
	logger            *zap.Logger
}

// NewDiscordSink creates a new Discord sink
func NewDiscordSink(cfg *DiscordSinkConfig) *DiscordSink {
	if cfg.Session == nil {
		panic("discord session is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &DiscordSink{
		session:           cfg.Session,
		narratorChannelID: cfg.NarratorChannelID,
		logger:            logger,
	}
}

// Deliver implements Sink
func (s *DiscordSink) Deliver(ctx context.Context, run *game.Run, docs []render.Document) error {
	if run == nil {
		return errors.InvalidArgument("run cannot be nil")
	}
	players := make(map[int]string, len(run.Characters))
	for _, c := range run.Characters {
		players[c.Player.Seat] = c.Player.DiscordUserID
	}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}

		if doc.Seat == 0 {
			if s.narratorChannelID == "" {
				s.logger.Debug("no narrator channel configured, skipping script")
				continue
			}
			content := fmt.Sprintf("Narrator script for run `%s` (%d players)", run.ID, run.PlayerCount)
			if err := s.send(ctx, s.narratorChannelID, content, doc); err != nil {
				return fmt.Errorf("failed to post narrator script: %w", err)
			}
			continue
		}

		userID := players[doc.Seat]
		if userID == "" {
			s.logger.Info("player has no discord user, skipping sheet", zap.Int("seat", doc.Seat))
			continue
		}

		channel, err := s.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("failed to open DM for seat %d: %w", doc.Seat, err)
		}

		content := fmt.Sprintf("Your secret character for run `%s`. Keep it to yourself!", run.ID)
		if err := s.send(ctx, channel.ID, content, doc); err != nil {
			return fmt.Errorf("failed to send sheet for seat %d: %w", doc.Seat, err)
		}
		s.logger.Debug("sent sheet", zap.Int("seat", doc.Seat))
	}

	return nil
}

func (s *DiscordSink) send(ctx context.Context, channelID, content string, doc render.Document) error {
	_, err := s.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		Files: []*discordgo.File{{
			Name:        doc.Name,
			ContentType: texContentType,
			Reader:      strings.NewReader(doc.Body),
		}},
	}, discordgo.WithContext(ctx))
	return err
}
