package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/target/jokeboard/internal/bootstrap"
)

// infra holds the connections a command opened. close releases all of them.
type infra struct {
	DB    *sql.DB
	Redis *redis.Client
}

func connectInfra(ctx context.Context, cmdCtx *commandContext, wantRedis bool) (*infra, error) {
	db, err := bootstrap.ConnectDB(ctx, bootstrap.DatabaseConfig{
		DBConfig: cmdCtx.Config.Postgres,
		Logger:   cmdCtx.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	out := &infra{DB: db}
	if !wantRedis {
		return out, nil
	}

	out.Redis, err = bootstrap.ConnectRedis(ctx, bootstrap.DatabaseConfig{
		RedisConfig: cmdCtx.Config.Redis,
		Logger:      cmdCtx.Logger,
	})
	if err != nil {
		out.close(cmdCtx)
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return out, nil
}

func (i *infra) serviceDeps(cmdCtx *commandContext) *bootstrap.ServiceDeps {
	deps := &bootstrap.ServiceDeps{Config: &cmdCtx.Config, DB: i.DB, Logger: cmdCtx.Logger}
	if i.Redis != nil {
		deps.RedisClient = i.Redis
	}
	return deps
}

func (i *infra) close(cmdCtx *commandContext) {
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", err)
		}
	}
	if err := i.DB.Close(); err != nil {
		cmdCtx.Logger.Warn("db close failed", "error", err)
	}
}
