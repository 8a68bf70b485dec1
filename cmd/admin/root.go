package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Dan9191/openbanqr/internal/config"
	"github.com/Dan9191/openbanqr/internal/repository"
	"github.com/Dan9191/openbanqr/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagEnvFile string
	flagTimeout time.Duration
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "openbanqr-admin",
	Short:         "OpenBanqr maintenance commands",
	Long:          "Migrate and seed the database, refresh stock prices and run simulated weeks outside the API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagEnvFile, "env-file", "e", "", "Env file to load before reading configuration")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 5*time.Minute, "Time limit for the whole command")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log at debug level")
}

// env is the shared setup every command runs on
type env struct {
	cfg  *config.Config
	log  *logrus.Logger
	repo *repository.Repository
	svc  *service.Service
}

// openEnv loads configuration and connects to the database; callers must run close.
func openEnv() (*env, func(), error) {
	if flagEnvFile != "" {
		os.Setenv("ENV_FILE", flagEnvFile)
	}
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)
	if flagVerbose {
		log.SetLevel(logrus.DebugLevel)
	} else if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	db, err := repository.Open(cfg.DBDriver, cfg.DBConn)
	if err != nil {
		return nil, nil, err
	}
	repo := repository.NewRepository(db)
	e := &env{
		cfg:  cfg,
		log:  log,
		repo: repo,
		svc:  service.NewService(repo, log, cfg),
	}
	return e, func() { db.Close() }, nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, flagTimeout)
}
