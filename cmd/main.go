package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/gig-market/internal/config"
	"github.com/maxaizer/gig-market/internal/logger"
	"github.com/maxaizer/gig-market/internal/metrics"
	"github.com/maxaizer/gig-market/internal/repositories"
	"github.com/maxaizer/gig-market/internal/server"
	"github.com/maxaizer/gig-market/internal/services"
	log "github.com/sirupsen/logrus"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(cfg.Server.MetricsPort)

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	if err = dbContext.Migrate(); err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	if err = dbContext.Ping(); err != nil {
		log.Fatalf("can't reach database: %v", err)
	}

	jobs := repositories.NewJobsRepository(dbContext.DB)
	users := repositories.NewUsersRepository(dbContext.DB)
	cachedJobs := repositories.NewCachedJobs(jobs)

	bus := EventBus.New()

	recorder, err := services.NewActivityRecorder(bus)
	if err != nil {
		log.Fatalf("can't create activity recorder: %v", err)
	}
	defer recorder.Stop()

	if cfg.Cleaner.RetentionInDays > 0 {
		cleaner, err := services.NewCompletedJobsCleaner(jobs, cfg.Cleaner.RetentionInDays)
		if err != nil {
			log.Fatalf("can't create jobs cleaner: %v", err)
		}
		defer cleaner.Stop()
	}

	jobService := services.NewJobService(bus, jobs, cachedJobs)
	userService := services.NewUserService(users)

	srv := server.New(cfg.Server, jobService, userService)
	go func() {
		if err := srv.Run(); err != nil {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down services...")
	timeout := time.Duration(cfg.Server.ShutdownTimeoutSec) * time.Second
	if err := srv.Shutdown(timeout); err != nil {
		log.Errorf("http server forced to shutdown: %v", err)
	}
	log.Info("Services stopped.")
}
