package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"krishi/config"
	"krishi/pkg/logger"
	"krishi/pkg/reminder"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "krishi",
		Short:        "Farmer advisory web app and crop reminder scanner",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(func(cfg config.AppConfig, log *zap.Logger) error {
				return serve(cmd.Context(), cfg, log)
			})
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the web server and the daily reminder job",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(func(cfg config.AppConfig, log *zap.Logger) error {
				return serve(cmd.Context(), cfg, log)
			})
		},
	})

	var date string
	remind := &cobra.Command{
		Use:   "remind",
		Short: "Run one reminder scan and print what was sent",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(func(cfg config.AppConfig, log *zap.Logger) error {
				today := civil.DateOf(time.Now().In(cfg.Location()))
				if date != "" {
					d, err := civil.ParseDate(date)
					if err != nil {
						return fmt.Errorf("--date: %w", err)
					}
					today = d
				}
				return remindOnce(cmd.Context(), cfg, log, today, cmd.OutOrStdout())
			})
		},
	}
	remind.Flags().StringVar(&date, "date", "", "scan as if today were `YYYY-MM-DD` (default: today in TZ)")
	root.AddCommand(remind)

	root.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Create the schema and load schedule rules if the table is empty",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(func(cfg config.AppConfig, log *zap.Logger) error {
				db, n, err := openStore(cfg, log)
				if err != nil {
					return err
				}
				if sqlDB, err := db.DB(); err == nil {
					defer sqlDB.Close()
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d schedule rules\n", n)
				return nil
			})
		},
	})
	return root
}

// withEnv loads config and a logger for one command.
func withEnv(run func(config.AppConfig, *zap.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, "krishi")
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	return run(cfg, log)
}

func serve(parent context.Context, cfg config.AppConfig, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting", zap.Any("config", cfg.Redacted()))
	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	sched, err := reminder.NewScheduler(a.reminders, cfg.ReminderHour, cfg.Location(), log.Named("scheduler"))
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("port", cfg.Port))
		if err := a.echo.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.echo.Shutdown(shCtx)
	})
	g.Go(func() error { return sched.Run(gctx) })

	err = g.Wait()
	log.Info("stopped", zap.Error(err))
	return err
}

func remindOnce(ctx context.Context, cfg config.AppConfig, log *zap.Logger, today civil.Date, out io.Writer) error {
	db, _, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	svc, closers := newReminderService(ctx, db, cfg, log)
	defer func() {
		for _, c := range closers {
			c()
		}
	}()

	res, err := svc.RunOnce(ctx, today)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Checking for tasks on %s\n", res.Tomorrow)
	for _, r := range res.Reminders {
		fmt.Fprintln(out, r.Message())
	}
	if len(res.Reminders) == 0 {
		fmt.Fprintln(out, "No reminders due.")
	}
	return nil
}
