package summarise

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/stake-plus/summarybot/src/metrics"
	"github.com/stake-plus/summarybot/src/summary"
)

// buildEmbeds turns a summary into the embeds to send, in order.
func buildEmbeds(profile summary.Profile, question, text string, count int) []*discordgo.MessageEmbed {
	title := fmt.Sprintf("Summarised %d Messages", count)
	ceiling := profile.Ceiling
	if ceiling <= 0 {
		ceiling = summary.EmbedCeiling
	}

	if profile.Delivery == summary.DeliverTruncated {
		body, dropped := summary.Truncate(text, ceiling)
		footer := "No prompt provided."
		if question != "" {
			footer = "Prompt: " + question
		}
		if dropped > 0 {
			footer += fmt.Sprintf(" Response truncated by %d chars.", dropped)
		}
		return []*discordgo.MessageEmbed{{
			Color:       summary.EmbedColor,
			Title:       title,
			Description: body,
			Footer:      &discordgo.MessageEmbedFooter{Text: footer},
		}}
	}

	chunks := summary.Chunk(text, ceiling)
	if len(chunks) == 0 {
		chunks = []string{""}
	}
	embeds := make([]*discordgo.MessageEmbed, 0, len(chunks))
	for idx, chunk := range chunks {
		embeds = append(embeds, &discordgo.MessageEmbed{
			Color:       summary.EmbedColor,
			Title:       title,
			Description: chunk,
			Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Page %d of %d", idx+1, len(chunks))},
		})
	}
	return embeds
}

// deliver sends embeds according to visibility. Private summaries land in the deferred
// ephemeral reply, then ephemeral follow-ups; public ones are posted as regular follow-ups.
func deliver(s Session, interaction *discordgo.Interaction, visibility summary.Visibility, embeds []*discordgo.MessageEmbed) error {
	for idx, embed := range embeds {
		if visibility.Ephemeral() {
			if idx == 0 {
				first := []*discordgo.MessageEmbed{embed}
				if _, err := s.InteractionResponseEdit(interaction, &discordgo.WebhookEdit{Embeds: &first}); err != nil {
					return fmt.Errorf("summarise: edit reply: %w", err)
				}
			} else if _, err := s.FollowupMessageCreate(interaction, true, &discordgo.WebhookParams{
				Embeds: []*discordgo.MessageEmbed{embed},
				Flags:  discordgo.MessageFlagsEphemeral,
			}); err != nil {
				return fmt.Errorf("summarise: ephemeral follow-up %d: %w", idx+1, err)
			}
		} else if _, err := s.FollowupMessageCreate(interaction, true, &discordgo.WebhookParams{
			Embeds: []*discordgo.MessageEmbed{embed},
		}); err != nil {
			return fmt.Errorf("summarise: public follow-up %d: %w", idx+1, err)
		}
		metrics.ChunksDelivered.WithLabelValues(string(visibility)).Inc()
	}
	return nil
}

// mirrorToDM copies every embed to the user's direct messages. Failures are logged, not
// returned, since the in-channel delivery already succeeded.
func mirrorToDM(s Session, userID string, embeds []*discordgo.MessageEmbed, logger zerolog.Logger) {
	if userID == "" {
		return
	}
	channel, err := s.UserChannelCreate(userID)
	if err != nil {
		logger.Warn().Err(err).Str("user_id", userID).Msg("open DM channel failed")
		return
	}
	for idx, embed := range embeds {
		if _, err := s.ChannelMessageSendEmbed(channel.ID, embed); err != nil {
			logger.Warn().Err(err).Int("page", idx+1).Str("user_id", userID).Msg("DM mirror failed")
			return
		}
		metrics.ChunksDelivered.WithLabelValues("dm").Inc()
	}
}
