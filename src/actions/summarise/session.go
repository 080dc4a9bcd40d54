package summarise

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/stake-plus/summarybot/src/data"
	"github.com/stake-plus/summarybot/src/summary"
)

// Session is the subset of *discordgo.Session the command needs.
type Session interface {
	summary.MessageSource
	summary.MemberLookup
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var _ Session = (*discordgo.Session)(nil)

// Summariser produces the summary for one request.
type Summariser interface {
	Summarise(ctx context.Context, req summary.Request) (*summary.Result, error)
}

// RunRecorder stores run metadata.
type RunRecorder interface {
	Record(run data.SummaryRun) error
}
