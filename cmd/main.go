package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	api "github.com/nroshal/circlet-server/internal/api/http"
	"github.com/nroshal/circlet-server/internal/config"
	"github.com/nroshal/circlet-server/internal/logger"
	"github.com/nroshal/circlet-server/internal/model"
	"github.com/nroshal/circlet-server/internal/repository/postgres"
	"github.com/nroshal/circlet-server/internal/server"
	"github.com/nroshal/circlet-server/internal/service"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	followRepo := postgres.NewFollowRepository(db)
	circleRepo := postgres.NewCircleRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	studioRepo := postgres.NewStudioRepository(db)
	postRepo := postgres.NewPostRepository(db)

	followService := service.NewFollow(followRepo, userRepo, logger)
	circleService := service.NewCircle(circleRepo, followRepo, userRepo, logger)
	profileService := service.NewProfile(profileRepo, userRepo, followRepo, postRepo, logger)
	studioService := service.NewStudio(studioRepo, postRepo, userRepo, logger)
	accountService := service.NewAccount(userRepo, postRepo, followService, circleService, profileService, studioService, logger)

	router := api.NewRouter(api.RouterConfig{
		Follow:  api.NewFollowHandler(followService, logger),
		Circle:  api.NewCircleHandler(circleService, logger),
		Profile: api.NewProfileHandler(profileService, logger),
		Studio:  api.NewStudioHandler(studioService, logger),
		Account: api.NewAccountHandler(accountService, logger),
		Logger:  logger,
	})

	httpServer := server.NewHTTPServer(router, fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
