package actions

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	summarisemodule "github.com/stake-plus/summarybot/src/actions/summarise"
	sharedconfig "github.com/stake-plus/summarybot/src/config"
	"github.com/stake-plus/summarybot/src/webserver"
	"gorm.io/gorm"
)

// StartAll wires up enabled modules and starts the manager. db and rdb may be nil.
func StartAll(ctx context.Context, db *gorm.DB, rdb *redis.Client, logger zerolog.Logger) (*Manager, error) {
	mgr := NewManager(logger)

	summaryCfg := sharedconfig.LoadSummaryConfig(db)
	if summaryCfg.Enabled {
		mod, err := summarisemodule.NewModule(&summaryCfg, db, rdb, logger)
		if err != nil {
			return nil, fmt.Errorf("actions: init summarise module: %w", err)
		}
		if err := mgr.Add(mod); err != nil {
			return nil, fmt.Errorf("actions: add summarise module: %w", err)
		}
	} else {
		logger.Info().Msg("summarise module disabled via configuration")
	}

	adminCfg := sharedconfig.LoadAdminConfig()
	if adminCfg.Enabled {
		mod, err := webserver.NewModule(adminCfg, db, logger)
		if err != nil {
			return nil, fmt.Errorf("actions: init admin module: %w", err)
		}
		if err := mgr.Add(mod); err != nil {
			return nil, fmt.Errorf("actions: add admin module: %w", err)
		}
	} else {
		logger.Info().Msg("admin server disabled: set ADMIN_LISTEN and ADMIN_JWT_SECRET to enable")
	}

	if mgr.Len() == 0 {
		return nil, fmt.Errorf("actions: no modules enabled")
	}
	if err := mgr.Start(ctx); err != nil {
		return nil, err
	}

	return mgr, nil
}
