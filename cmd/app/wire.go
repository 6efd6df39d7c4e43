//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/nap-planner/internal/bootstrap"
	"github.com/yanqian/nap-planner/internal/domain/napschedule"
	"github.com/yanqian/nap-planner/internal/infra/config"
	httpiface "github.com/yanqian/nap-planner/internal/interface/http"
	"github.com/yanqian/nap-planner/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		providePlannerConfig,
		provideScheduleCache,
		napschedule.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
