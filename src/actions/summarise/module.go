package summarise

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stake-plus/summarybot/src/actions/core"
	aicore "github.com/stake-plus/summarybot/src/ai/core"
	sharedconfig "github.com/stake-plus/summarybot/src/config"
	"github.com/stake-plus/summarybot/src/data"
	shareddiscord "github.com/stake-plus/summarybot/src/discord"
	"github.com/stake-plus/summarybot/src/logging"
	"github.com/stake-plus/summarybot/src/prompts"
	"github.com/stake-plus/summarybot/src/ratelimit"
	"github.com/stake-plus/summarybot/src/summary"
	"gorm.io/gorm"
)

const (
	nameCacheTTL    = 15 * time.Minute
	cleanupInterval = 5 * time.Minute
)

var _ core.Module = (*Module)(nil)

// Module owns the Discord session and the /summarise command.
type Module struct {
	cfg     *sharedconfig.SummaryConfig
	profile summary.Profile
	session *discordgo.Session
	handler *Handler
	limiter ratelimit.Limiter
	logger  zerolog.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewModule wires the session, summariser and stores. db and rdb may be nil.
func NewModule(cfg *sharedconfig.SummaryConfig, db *gorm.DB, rdb *redis.Client, logger zerolog.Logger) (*Module, error) {
	if cfg == nil {
		return nil, fmt.Errorf("summarise config is nil")
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("summarise: discord token is not configured")
	}

	profile, err := summary.LookupProfile(cfg.Profile)
	if err != nil {
		return nil, fmt.Errorf("summarise: %w", err)
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("summarise: discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent |
		discordgo.IntentsDirectMessages
	if profile.ResolveNames {
		session.Identify.Intents |= discordgo.IntentsGuildMembers
	}

	if cfg.OpenAIKey == "" && cfg.ClaudeKey == "" {
		return nil, fmt.Errorf("summarise: no AI provider configured")
	}
	aiClient, err := aicore.NewClient(aicore.FactoryConfig{
		Provider:            cfg.Provider,
		OpenAIKey:           cfg.OpenAIKey,
		ClaudeKey:           cfg.ClaudeKey,
		Model:               cfg.Model,
		BaseURL:             cfg.BaseURL,
		Temperature:         0,
		MaxCompletionTokens: cfg.MaxTokens,
		RetryAttempts:       cfg.RetryAttempts,
	})
	if err != nil {
		return nil, fmt.Errorf("summarise: AI client init: %w", err)
	}

	log := logging.Component(logger, "summarise")
	var names *summary.NameResolver
	if profile.ResolveNames {
		names = summary.NewNameResolver(session, summary.NewRedisNameCache(rdb, nameCacheTTL), cfg.LookupWorkers, log)
	}
	library := prompts.NewLibrary(data.NewTemplateStore(db))
	summariser := summary.NewSummariser(session, names, library, aiClient, cfg.Provider, aicore.Options{
		Model:               cfg.Model,
		Temperature:         0,
		MaxCompletionTokens: cfg.MaxTokens,
	}, log)

	limiter := ratelimit.New(rdb, cfg.Cooldown)

	return &Module{
		cfg:     cfg,
		profile: profile,
		session: session,
		handler: NewHandler(session, summariser, profile, cfg.RoleID, limiter, data.NewRunStore(db), log),
		limiter: limiter,
		logger:  log,
	}, nil
}

// Name implements actions.Module.
func (m *Module) Name() string { return "summarise" }

// Start boots the Discord session and registers handlers.
func (m *Module) Start(ctx context.Context) error {
	if m.session == nil {
		return fmt.Errorf("summarise: session not initialized")
	}

	m.ctx, m.cancel = context.WithCancel(ctx)
	m.initHandlers()
	if err := m.session.Open(); err != nil {
		m.cancel()
		return fmt.Errorf("summarise: discord open: %w", err)
	}

	if mem, ok := m.limiter.(*ratelimit.Memory); ok {
		go m.cleanupLoop(mem)
	}

	go func() {
		<-m.ctx.Done()
		m.session.Close()
	}()

	return nil
}

// Stop closes the Discord session.
func (m *Module) Stop(ctx context.Context) {
	if m.cancel != nil {
		m.cancel()
	}
	if m.session != nil {
		m.session.Close()
	}
}

func (m *Module) initHandlers() {
	m.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		m.logger.Info().Str("user", s.State.User.Username).Str("profile", m.profile.Name).Msg("logged in")
		if err := shareddiscord.RegisterSlashCommands(s, s.State.User.ID, m.cfg.GuildID, m.logger,
			shareddiscord.SummariseCommand(m.profile.LimitChoices),
		); err != nil {
			m.logger.Error().Err(err).Msg("register commands failed")
		}
	})

	m.session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		m.handler.Handle(m.ctx, i.Interaction)
	})
}

func (m *Module) cleanupLoop(mem *ratelimit.Memory) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			mem.Cleanup()
		}
	}
}
