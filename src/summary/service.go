package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/stake-plus/summarybot/src/ai/core"
	"github.com/stake-plus/summarybot/src/metrics"
	"github.com/stake-plus/summarybot/src/prompts"
)

// DirectMessageGuild stands in for the guild id in links to messages outside a guild.
const DirectMessageGuild = "@me"

// Stage identifies a progress checkpoint reported to the invoking user.
type Stage int

const (
	StageFetching Stage = iota
	StageSummarising
)

// ProgressFunc receives progress updates. remaining is only meaningful for StageFetching.
type ProgressFunc func(stage Stage, remaining int)

// Request is one summary job.
type Request struct {
	Invocation
	Profile   Profile
	GuildID   string
	ChannelID string
	UserID    string
	Progress  ProgressFunc
}

// Result is the request-scoped outcome of a summary job.
type Result struct {
	Summary     string
	Count       int
	Batches     int
	Fingerprint uint64
	NewestFirst bool
}

// Summariser runs fetch, normalise, prompt and completion for one request.
type Summariser struct {
	source   MessageSource
	names    *NameResolver
	prompts  *prompts.Library
	ai       core.Client
	opts     core.Options
	provider string
	logger   zerolog.Logger
}

// NewSummariser wires the pipeline. names may be nil when no profile resolves display names.
func NewSummariser(source MessageSource, names *NameResolver, library *prompts.Library, ai core.Client, provider string, opts core.Options, logger zerolog.Logger) *Summariser {
	return &Summariser{
		source:   source,
		names:    names,
		prompts:  library,
		ai:       ai,
		opts:     opts,
		provider: provider,
		logger:   logger,
	}
}

// Summarise produces a summary for req.
func (s *Summariser) Summarise(ctx context.Context, req Request) (*Result, error) {
	progress := req.Progress
	if progress == nil {
		progress = func(Stage, int) {}
	}

	fetched, err := FetchMessages(ctx, s.source, req.ChannelID, req.Limit, func(remaining int) {
		progress(StageFetching, remaining)
	})
	if err != nil {
		return nil, err
	}
	metrics.FetchBatches.Add(float64(fetched.Batches))
	metrics.MessagesCollected.Observe(float64(len(fetched.Messages)))

	var names map[string]string
	if req.Profile.ResolveNames && s.names != nil {
		names = s.names.Resolve(ctx, req.GuildID, fetched.Messages)
	}
	records := Normalize(fetched.Messages, names, req.Profile.Chronological)

	payload, err := MarshalRecords(records, req.Profile)
	if err != nil {
		return nil, fmt.Errorf("summary: encode records: %w", err)
	}

	guildID := req.GuildID
	if guildID == "" {
		guildID = DirectMessageGuild
	}
	rendered, err := s.prompts.Render(req.Profile.Name, prompts.Data{
		GuildID:   guildID,
		ChannelID: req.ChannelID,
		UserID:    req.UserID,
		Messages:  string(payload),
		Question:  req.Question,
		Count:     len(records),
	})
	if err != nil {
		return nil, err
	}

	progress(StageSummarising, 0)
	start := time.Now()
	text, err := s.ai.Complete(ctx, []core.Message{
		{Role: core.RoleSystem, Content: rendered.System},
		{Role: core.RoleUser, Content: rendered.User},
	}, s.opts)
	metrics.CompletionLatency.WithLabelValues(s.provider).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("summary: completion: %w", err)
	}

	res := &Result{
		Summary:     text,
		Count:       len(records),
		Batches:     fetched.Batches,
		Fingerprint: rendered.Fingerprint,
		NewestFirst: NewestFirst(SourceIDs(text)),
	}
	if !res.NewestFirst {
		s.logger.Warn().
			Str("channel_id", req.ChannelID).
			Msg("summary bullets are not ordered newest to oldest")
	}
	return res, nil
}

// Author returns the invoking user of an interaction, whether in a guild or a DM.
func Author(i *discordgo.Interaction) *discordgo.User {
	if i == nil {
		return nil
	}
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}
