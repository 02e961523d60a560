package main

import (
	"flag"
	"log/slog"
	"os"

	"birthday-home/internal/clock"
	"birthday-home/internal/config"
	"birthday-home/internal/handler"
	"birthday-home/internal/logger"
	"birthday-home/internal/model"
	"birthday-home/internal/service"
	"birthday-home/internal/storage"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)

	db, err := cfg.OpenGormDB()
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(
		&model.User{}, &model.Message{}, &model.Activity{},
		&model.Bottle{}, &model.BottleView{}, &model.ScheduledMessage{},
		&model.Visit{}, &model.Chronicle{},
	); err != nil {
		slog.Error("migrate failed", "err", err)
		os.Exit(1)
	}

	clk := clock.NewSystem(cfg.Display.Timezone)

	files, err := storage.NewDiskStore(cfg.Upload.Dir)
	if err != nil {
		slog.Error("upload dir init failed", "err", err)
		os.Exit(1)
	}

	identitySvc := service.NewIdentityService(db, cfg.Auth)
	activitySvc := service.NewActivityLogger(db, clk)
	visitSvc := service.NewVisitLogger(db, clk)
	messageSvc := service.NewMessageService(db, files, clk)
	bottleSvc := service.NewBottleService(db, clk)
	scheduleSvc := service.NewScheduleService(db, clk, cfg.Display.GreetingFallback, cfg.Display.PSFallback)
	adminSvc, err := service.NewAdminService(db, clk, cfg.Admin)
	if err != nil {
		slog.Error("admin service init failed", "err", err)
		os.Exit(1)
	}

	h := handler.Handlers{
		Auth:      handler.NewAuthHandler(identitySvc, activitySvc),
		Landing:   handler.NewLandingHandler(identitySvc, visitSvc),
		Message:   handler.NewMessageHandler(messageSvc, files, activitySvc),
		Bottle:    handler.NewBottleHandler(bottleSvc, files, activitySvc, clk),
		Dashboard: handler.NewDashboardHandler(messageSvc, bottleSvc, scheduleSvc, activitySvc, clk),
		Admin:     handler.NewAdminHandler(adminSvc, scheduleSvc, visitSvc),
	}

	r := handler.SetupRouter(db, h, adminSvc.JWTSecret(), files.Dir())

	slog.Info("server starting", "addr", cfg.Addr(), "driver", cfg.Database.Driver)
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server failed", "err", err)
	}
}
