package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/stake-plus/summarybot/src/actions"
	_ "github.com/stake-plus/summarybot/src/ai/providers"
	sharedconfig "github.com/stake-plus/summarybot/src/config"
	shareddata "github.com/stake-plus/summarybot/src/data"
	"github.com/stake-plus/summarybot/src/logging"
	"gorm.io/gorm"
)

func main() {
	sharedconfig.LoadDotEnv()
	boot := logging.New(os.Getenv("ENV"))

	// MySQL is optional; without it settings come from the environment only.
	var db *gorm.DB
	if dsn := shareddata.GetMySQLDSN(); dsn != "" {
		conn, err := shareddata.ConnectMySQL(dsn)
		if err != nil {
			boot.Fatal().Err(err).Msg("db")
		}
		db = conn
	}

	base := sharedconfig.LoadBase(db)
	logger := logging.New(base.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb, err := shareddata.ConnectRedis(ctx, base.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	manager, err := actions.StartAll(ctx, db, rdb, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("actions start")
	}
	logger.Info().Bool("mysql", db != nil).Bool("redis", rdb != nil).Msg("summary bot running")

	// Wait for termination
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	manager.Stop(ctx)
}
