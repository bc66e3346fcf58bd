package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sifterlab/sifter/internal/config"
	"github.com/sifterlab/sifter/internal/logger"
	"github.com/sifterlab/sifter/internal/metrics"
	"github.com/sifterlab/sifter/internal/scheduler"
	"github.com/sifterlab/sifter/internal/storage/archive"
	"github.com/sifterlab/sifter/internal/storage/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchProfile string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Screen the universe on a schedule",
	Long: `Runs the screening funnel on the cron schedule from the config,
keeping recent reports in memory and optionally archiving each one.
Exposes Prometheus metrics when enabled.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchProfile, "profile", "p", "", "strategy profile name")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(logger.Must(debug, ""))
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}
	defer log.Sync()

	prof, _, err := loadNamedProfile(cfg, watchProfile, log)
	if err != nil {
		return err
	}

	runner, err := buildRunner(cfg, log)
	if err != nil {
		return err
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		reg := metrics.NewRegistry()
		runner.SetMetrics(reg)

		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		metricsServer = &http.Server{Addr: cfg.Metrics.Addr, Handler: mux}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("metrics server error", zap.Error(err))
			}
		}()
		log.Info("metrics exposed",
			zap.String("addr", cfg.Metrics.Addr),
			zap.String("path", cfg.Metrics.Path),
		)
	}

	store := report.NewMemoryStore(cfg.Store.MaxReports)
	archiver, err := buildArchiver(cfg)
	if err != nil {
		return err
	}

	universe := func(context.Context) ([]string, error) {
		return readUniverse(cfg.Data.Universe)
	}

	sched, err := scheduler.New(runner, universe, prof, store, archiver, log)
	if err != nil {
		return err
	}
	if err := sched.Register(cfg.Watch.Schedule); err != nil {
		return err
	}

	sched.Start()
	if cfg.Watch.RunOnStart {
		go sched.RunNow(context.Background())
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	sched.Stop()

	if metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return metricsServer.Shutdown(ctx)
	}
	return nil
}

func buildArchiver(cfg *config.Config) (*archive.Archiver, error) {
	if !cfg.Archive.Enabled {
		return nil, nil
	}

	switch cfg.Archive.Type {
	case "localfs":
		backend, err := archive.NewLocalFS(cfg.Archive.Path)
		if err != nil {
			return nil, fmt.Errorf("archive backend: %w", err)
		}
		return archive.New(backend), nil
	case "s3":
		backend, err := archive.NewS3(archive.S3Config{
			Bucket:    cfg.Archive.S3.Bucket,
			Endpoint:  cfg.Archive.S3.Endpoint,
			Region:    cfg.Archive.S3.Region,
			AccessKey: cfg.Archive.S3.AccessKey,
			SecretKey: cfg.Archive.S3.SecretKey,
			Prefix:    cfg.Archive.S3.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("archive backend: %w", err)
		}
		return archive.New(backend), nil
	default:
		return nil, fmt.Errorf("unknown archive type %q", cfg.Archive.Type)
	}
}
