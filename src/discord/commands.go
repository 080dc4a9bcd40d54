package discord

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// CommandSummarise is the slash command name.
const CommandSummarise = "summarise"

// SummariseCommand builds the /summarise definition for the given limit choices.
func SummariseCommand(limitChoices []int) *discordgo.ApplicationCommand {
	minLimit := 1.0
	maxLimit := 0
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(limitChoices))
	for _, c := range limitChoices {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: strconv.Itoa(c), Value: c})
		if c > maxLimit {
			maxLimit = c
		}
	}

	return &discordgo.ApplicationCommand{
		Name:        CommandSummarise,
		Description: "Summarise messages in this channel",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "ask",
				Description: "Specific questions to ask",
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "limit",
				Description: "The maximum number of messages to read",
				MinValue:    &minLimit,
				MaxValue:    float64(maxLimit),
				Choices:     choices,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "visibility",
				Description: "Choose who can see the AI response",
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "You", Value: "private"},
					{Name: "Everyone", Value: "public"},
				},
			},
		},
	}
}

// CommandRegistrar is the part of *discordgo.Session used to create application commands.
type CommandRegistrar interface {
	ApplicationCommandCreate(appID string, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
}

// RegisterSlashCommands registers commands for a guild, or globally when guildID is empty.
func RegisterSlashCommands(s CommandRegistrar, appID, guildID string, logger zerolog.Logger, commands ...*discordgo.ApplicationCommand) error {
	if appID == "" {
		return fmt.Errorf("discord: application id is required to register slash commands")
	}

	var failures []string
	for _, definition := range commands {
		_, err := s.ApplicationCommandCreate(appID, guildID, definition)
		if err != nil {
			if isDuplicateCommandError(err) {
				logger.Info().Str("command", definition.Name).Msg("slash command already registered")
				continue
			}
			failures = append(failures, fmt.Sprintf("%s: %v", definition.Name, err))
			logger.Error().Err(err).Str("command", definition.Name).Msg("failed to register command")
			continue
		}
		logger.Info().Str("command", definition.Name).Str("guild_id", guildID).Msg("slash command registered")
	}

	if len(failures) > 0 {
		return fmt.Errorf("discord: slash command registration errors: %s", strings.Join(failures, "; "))
	}

	return nil
}

func isDuplicateCommandError(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Message != nil {
			msg := strings.ToLower(restErr.Message.Message)
			if strings.Contains(msg, "already exists") {
				return true
			}
		}
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "50035") && strings.Contains(msg, "already exists")
}
