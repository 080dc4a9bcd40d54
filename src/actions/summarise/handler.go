package summarise

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stake-plus/summarybot/src/data"
	shareddiscord "github.com/stake-plus/summarybot/src/discord"
	"github.com/stake-plus/summarybot/src/logging"
	"github.com/stake-plus/summarybot/src/metrics"
	"github.com/stake-plus/summarybot/src/ratelimit"
	"github.com/stake-plus/summarybot/src/summary"
)

// Interaction tokens stay valid for 15 minutes.
const invocationTimeout = 10 * time.Minute

const (
	msgProcessing    = "Processing request..."
	msgSummarising   = "Summarising messages..."
	msgTextOnly      = "This command only works in text-based channels."
	msgGuildOnly     = "This command can only be used in a server."
	msgNoPermission  = "You don't have permission to use this command."
	msgFailed        = "An error occurred while processing your request."
	outcomeRejected  = "rejected"
	outcomeDelivered = "ok"
	rejectDM         = "dm"
	rejectChannel    = "channel"
	rejectRole       = "role"
	rejectCooldown   = "cooldown"
)

// Handler runs one /summarise interaction end to end.
type Handler struct {
	session    Session
	summariser Summariser
	profile    summary.Profile
	roleID     string
	limiter    ratelimit.Limiter
	runs       RunRecorder
	logger     zerolog.Logger
}

// NewHandler wires a handler. limiter and runs may be nil.
func NewHandler(session Session, summariser Summariser, profile summary.Profile, roleID string, limiter ratelimit.Limiter, runs RunRecorder, logger zerolog.Logger) *Handler {
	if limiter == nil {
		limiter = ratelimit.Unlimited{}
	}
	return &Handler{
		session:    session,
		summariser: summariser,
		profile:    profile,
		roleID:     roleID,
		limiter:    limiter,
		runs:       runs,
		logger:     logger,
	}
}

// Handle processes an interaction. Anything other than /summarise is ignored.
func (h *Handler) Handle(ctx context.Context, i *discordgo.Interaction) {
	if i == nil || i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	cmd := i.ApplicationCommandData()
	if cmd.Name != shareddiscord.CommandSummarise {
		return
	}

	userID := ""
	if user := summary.Author(i); user != nil {
		userID = user.ID
	}

	if !shareddiscord.HasRole(h.session, i, h.roleID) {
		metrics.Rejections.WithLabelValues(rejectRole).Inc()
		h.respondEphemeral(i, msgNoPermission)
		return
	}
	if err := h.session.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}); err != nil {
		h.logger.Error().Err(err).Str("channel_id", i.ChannelID).Msg("slash ack failed")
		return
	}
	h.edit(i, msgProcessing)

	ctx, cancel := context.WithTimeout(ctx, invocationTimeout)
	defer cancel()

	inv := summary.ParseInvocation(cmd.Options, h.profile)
	run := data.SummaryRun{
		ID:         uuid.NewString(),
		GuildID:    i.GuildID,
		ChannelID:  i.ChannelID,
		UserID:     userID,
		Profile:    h.profile.Name,
		Visibility: string(inv.Visibility),
		Requested:  inv.Limit,
	}
	logger := h.logger.With().
		Str("request_id", run.ID).
		Str("guild_id", i.GuildID).
		Str("channel_id", i.ChannelID).
		Str("user_id", userID).
		Int("limit", inv.Limit).
		Logger()

	start := time.Now()
	outcome := h.run(ctx, i, inv, userID, &run, logger)

	elapsed := time.Since(start)
	run.Outcome = outcome
	run.DurationMs = elapsed.Milliseconds()
	metrics.Invocations.WithLabelValues(h.profile.Name, outcome).Inc()
	metrics.InvocationDuration.WithLabelValues(h.profile.Name).Observe(elapsed.Seconds())
	if h.runs != nil {
		if err := h.runs.Record(run); err != nil {
			logger.Warn().Err(err).Msg("record run failed")
		}
	}
	logger.Info().
		Str("outcome", outcome).
		Int("collected", run.Collected).
		Int("chunks", run.Chunks).
		Dur("elapsed", elapsed).
		Msg("summarise finished")
}

func (h *Handler) run(ctx context.Context, i *discordgo.Interaction, inv summary.Invocation, userID string, run *data.SummaryRun, logger zerolog.Logger) string {
	if i.GuildID == "" && h.profile.RejectDM {
		metrics.Rejections.WithLabelValues(rejectDM).Inc()
		h.edit(i, msgGuildOnly)
		return outcomeRejected
	}

	channel, err := h.session.Channel(i.ChannelID, discordgo.WithContext(ctx))
	if err != nil {
		return h.fail(i, logger, fmt.Errorf("summarise: load channel: %w", err))
	}
	if !shareddiscord.TextCapable(channel.Type) {
		metrics.Rejections.WithLabelValues(rejectChannel).Inc()
		h.edit(i, msgTextOnly)
		return outcomeRejected
	}

	// The cooldown is only spent once every other guard has passed.
	if ok, wait := h.limiter.Allow(ctx, userID); !ok {
		metrics.Rejections.WithLabelValues(rejectCooldown).Inc()
		h.edit(i, fmt.Sprintf("Please wait %s before summarising again.", wait.Round(time.Second)))
		return outcomeRejected
	}

	res, err := h.summariser.Summarise(ctx, summary.Request{
		Invocation: inv,
		Profile:    h.profile,
		GuildID:    i.GuildID,
		ChannelID:  i.ChannelID,
		UserID:     userID,
		Progress: func(stage summary.Stage, remaining int) {
			switch stage {
			case summary.StageFetching:
				h.edit(i, fmt.Sprintf("Fetching messages... (possibly %d remaining)", remaining))
			case summary.StageSummarising:
				h.edit(i, msgSummarising)
			}
		},
	})
	if err != nil {
		return h.fail(i, logger, err)
	}
	run.Collected = res.Count
	run.TemplateFingerprint = res.Fingerprint

	h.edit(i, fmt.Sprintf("Summarised %d messages.", res.Count))

	embeds := buildEmbeds(h.profile, inv.Question, res.Summary, res.Count)
	run.Chunks = len(embeds)
	if err := deliver(h.session, i, inv.Visibility, embeds); err != nil {
		return h.fail(i, logger, err)
	}
	if h.profile.MirrorDM {
		mirrorToDM(h.session, userID, embeds, logger)
	}
	return outcomeDelivered
}

func (h *Handler) fail(i *discordgo.Interaction, logger zerolog.Logger, err error) string {
	logger.Error().Err(err).Msg("summarise failed")
	h.edit(i, msgFailed)
	return logging.Outcome(err)
}

func (h *Handler) edit(i *discordgo.Interaction, content string) {
	if _, err := h.session.InteractionResponseEdit(i, &discordgo.WebhookEdit{Content: &content}); err != nil {
		h.logger.Debug().Err(err).Str("content", content).Msg("interaction edit failed")
	}
}

func (h *Handler) respondEphemeral(i *discordgo.Interaction, content string) {
	if err := h.session.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		h.logger.Warn().Err(err).Msg("ephemeral reply failed")
	}
}
