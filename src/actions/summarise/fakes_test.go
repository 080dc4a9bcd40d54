package summarise

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stake-plus/summarybot/src/data"
	"github.com/stake-plus/summarybot/src/summary"
)

type followup struct {
	embed     *discordgo.MessageEmbed
	ephemeral bool
}

type fakeSession struct {
	mu          sync.Mutex
	channelType discordgo.ChannelType
	channelErr  error
	followErr   error
	responses   []*discordgo.InteractionResponse
	edits       []string
	editEmbeds  []*discordgo.MessageEmbed
	followups   []followup
	dms         []*discordgo.MessageEmbed
	dmUser      string
}

func (f *fakeSession) ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error) {
	return nil, nil
}

func (f *fakeSession) GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error) {
	return nil, errors.New("unknown member")
}

func (f *fakeSession) Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if f.channelErr != nil {
		return nil, f.channelErr
	}
	return &discordgo.Channel{ID: channelID, Type: f.channelType}, nil
}

func (f *fakeSession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeSession) InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if newresp.Content != nil {
		f.edits = append(f.edits, *newresp.Content)
	}
	if newresp.Embeds != nil {
		f.editEmbeds = append(f.editEmbeds, *newresp.Embeds...)
	}
	return &discordgo.Message{}, nil
}

func (f *fakeSession) FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, params *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.followErr != nil {
		return nil, f.followErr
	}
	for _, e := range params.Embeds {
		f.followups = append(f.followups, followup{embed: e, ephemeral: params.Flags&discordgo.MessageFlagsEphemeral != 0})
	}
	return &discordgo.Message{}, nil
}

func (f *fakeSession) UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.dmUser = recipientID
	return &discordgo.Channel{ID: "dm-" + recipientID, Type: discordgo.ChannelTypeDM}, nil
}

func (f *fakeSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dms = append(f.dms, embed)
	return &discordgo.Message{}, nil
}

func (f *fakeSession) lastEdit() string {
	if len(f.edits) == 0 {
		return ""
	}
	return f.edits[len(f.edits)-1]
}

// fakeSummariser reports progress like the real pipeline and returns a canned summary.
type fakeSummariser struct {
	text  string
	count int
	err   error
	got   *summary.Request
}

func (f *fakeSummariser) Summarise(ctx context.Context, req summary.Request) (*summary.Result, error) {
	f.got = &req
	if req.Progress != nil {
		req.Progress(summary.StageFetching, req.Limit)
	}
	if f.err != nil {
		return nil, f.err
	}
	if req.Progress != nil {
		req.Progress(summary.StageSummarising, 0)
	}
	return &summary.Result{Summary: f.text, Count: f.count, Fingerprint: 42, NewestFirst: true}, nil
}

type fakeRuns struct {
	runs []data.SummaryRun
}

func (f *fakeRuns) Record(run data.SummaryRun) error {
	f.runs = append(f.runs, run)
	return nil
}

// countingLimiter records Allow calls and answers with allow.
type countingLimiter struct {
	allow bool
	calls int
}

func (c *countingLimiter) Allow(context.Context, string) (bool, time.Duration) {
	c.calls++
	return c.allow, 42 * time.Second
}

type denyAll struct{}

func (denyAll) Allow(context.Context, string) (bool, time.Duration) { return false, 42 * time.Second }
