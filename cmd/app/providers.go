package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/nap-planner/internal/domain/napschedule"
	"github.com/yanqian/nap-planner/internal/infra/config"
	"github.com/yanqian/nap-planner/internal/infra/schedulecache"
)

func providePlannerConfig(cfg *config.Config) napschedule.Config {
	return napschedule.Config{
		Timezone:      cfg.Planner.Timezone,
		AutoDetectDST: cfg.Planner.AutoDetectDST,
		CacheTTL:      cfg.Planner.CacheTTL,
	}
}

func provideScheduleCache(cfg *config.Config, logger *slog.Logger) (napschedule.Cache, func()) {
	noop := func() {}
	if !cfg.Cache.Enabled {
		logger.Info("schedule cache disabled")
		return nil, noop
	}
	if cfg.Cache.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return schedulecache.NewMemoryStore(), noop
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return schedulecache.NewMemoryStore(), noop
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
			client.Close()
		} else {
			logger.Info("schedule valkey cache enabled", "addr", cfg.Cache.Valkey.Addr)
			return schedulecache.NewValkeyStore(client, cfg.Cache.Valkey.Prefix), client.Close
		}
	}
	return schedulecache.NewMemoryStore(), noop
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Cache.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Cache.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Cache.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
