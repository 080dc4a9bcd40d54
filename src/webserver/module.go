package webserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stake-plus/summarybot/src/actions/core"
	sharedconfig "github.com/stake-plus/summarybot/src/config"
	"github.com/stake-plus/summarybot/src/data"
	"github.com/stake-plus/summarybot/src/logging"
	"github.com/stake-plus/summarybot/src/prompts"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

var _ core.Module = (*Module)(nil)

// Module runs the admin HTTP server.
type Module struct {
	cfg     sharedconfig.AdminConfig
	srv     *http.Server
	limiter *RateLimiter
	logger  zerolog.Logger
	cancel  context.CancelFunc
}

// NewModule wires the admin API against db, which may be nil.
func NewModule(cfg sharedconfig.AdminConfig, db *gorm.DB, logger zerolog.Logger) (*Module, error) {
	if cfg.Listen == "" {
		return nil, fmt.Errorf("admin: listen address is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("admin: jwt secret is required")
	}

	gin.SetMode(gin.ReleaseMode)
	log := logging.Component(logger, "admin")
	store := data.NewTemplateStore(db)
	limiter := NewRateLimiter(60, time.Minute)
	router := New([]byte(cfg.JWTSecret), cfg.CORSOrigins, Deps{
		Templates: NewTemplates(store, prompts.NewLibrary(store), log),
		Runs:      NewRuns(data.NewRunStore(db)),
		Limiter:   limiter,
	})

	return &Module{
		cfg:     cfg,
		srv:     &http.Server{Addr: cfg.Listen, Handler: router, ReadHeaderTimeout: 10 * time.Second},
		limiter: limiter,
		logger:  log,
	}, nil
}

// Name implements actions.Module.
func (m *Module) Name() string { return "admin" }

// Start binds the listener and serves in the background.
func (m *Module) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", m.cfg.Listen)
	if err != nil {
		return fmt.Errorf("admin: listen %s: %w", m.cfg.Listen, err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	go func() {
		if err := m.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error().Err(err).Msg("admin server stopped")
		}
	}()
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case now := <-ticker.C:
				m.limiter.cleanup(now)
			}
		}
	}()

	m.logger.Info().Str("addr", ln.Addr().String()).Msg("admin server listening")
	return nil
}

// Stop shuts the server down gracefully.
func (m *Module) Stop(ctx context.Context) {
	if m.cancel != nil {
		m.cancel()
	}
	shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := m.srv.Shutdown(shutCtx); err != nil {
		m.logger.Warn().Err(err).Msg("admin shutdown")
	}
}
