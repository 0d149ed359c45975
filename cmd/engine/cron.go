package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/questx-lab/rewards/internal/domain/cron"
	"github.com/questx-lab/rewards/pkg/prometheus"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	if err := s.loadEngine(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	leaderboardJob, err := cron.NewLeaderboardCronJob(ctx, s.challengeTracker)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", prometheus.NewHandler())
	metricServer := &http.Server{
		Addr:              s.configs.Metrics.Address(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		xcontext.Logger(ctx).Infof("Serving metrics on %s", metricServer.Addr)
		if err := metricServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			xcontext.Logger(ctx).Errorf("Cannot serve metrics: %v", err)
		}
	}()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(leaderboardJob)
	cronJobManager.Start(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return metricServer.Shutdown(shutdownCtx)
}
