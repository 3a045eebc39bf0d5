package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sakshi-kolawale/MoodTune/internal/adapters/ollama"
	"github.com/sakshi-kolawale/MoodTune/internal/adapters/openai"
	"github.com/sakshi-kolawale/MoodTune/internal/adapters/rest"
	"github.com/sakshi-kolawale/MoodTune/internal/adapters/spotify"
	"github.com/sakshi-kolawale/MoodTune/internal/adapters/sqlite"
	"github.com/sakshi-kolawale/MoodTune/internal/config"
	"github.com/sakshi-kolawale/MoodTune/internal/core/ports"
	"github.com/sakshi-kolawale/MoodTune/internal/core/services"
	"github.com/sakshi-kolawale/MoodTune/internal/worker"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "moodtune",
		Short:         "MoodTune relay between mood-based clients and the Spotify Web API",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cfgFile)
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: moodtune.yaml in . or $HOME)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP relay",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cfgFile)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Verify that the Spotify credentials work",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.Context(), cfgFile)
		},
	})
	return root
}

func loadConfig(cfgFile string) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(viper.New(), cfgFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return config.Config{}, nil, err
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		_ = logger.Sync()
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

func newSpotifyClient(cfg config.Config, logger *zap.Logger) *spotify.Client {
	return spotify.NewClient(spotify.Config{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		BaseURL:      cfg.Spotify.APIURL,
		TokenURL:     cfg.Spotify.TokenURL,
		Market:       cfg.Spotify.Market,
		MaxRetries:   cfg.Spotify.MaxRetries,
		RetryBackoff: cfg.Spotify.RetryBackoff,
		Logger:       logger,
	})
}

func newClassifier(cfg config.ClassifierConfig) ports.MoodClassifier {
	switch cfg.Provider {
	case config.ClassifierOllama:
		return ollama.NewClient(cfg.OllamaHost, cfg.OllamaModel)
	case config.ClassifierOpenAI:
		return openai.NewClassifier(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	default:
		return nil
	}
}

func runCheck(ctx context.Context, cfgFile string) error {
	cfg, logger, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	svc := services.NewOrchestrator(newSpotifyClient(cfg, logger), nil, services.WithLogger(logger))
	if err := svc.Ready(ctx); err != nil {
		logger.Error("spotify connection check failed", zap.Error(err))
		return err
	}
	logger.Info("spotify connection working")
	return nil
}

func runServe(ctx context.Context, cfgFile string) error {
	cfg, logger, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// -- Database Adapter
	repo, err := sqlite.NewAdapter(cfg.Storage.Path)
	if err != nil {
		logger.Error("failed to initialize database", zap.String("path", cfg.Storage.Path), zap.Error(err))
		return err
	}
	defer func() { _ = repo.Close() }()

	// -- Spotify Adapter
	spotifyClient := newSpotifyClient(cfg, logger)

	// -- Feature backfill
	pool := worker.NewPool(spotifyClient, repo, cfg.Worker.Count, cfg.Worker.QueueSize, logger)
	pool.Start()
	defer pool.Stop()

	opts := []services.Option{
		services.WithLogger(logger),
		services.WithBackfill(pool),
	}
	if classifier := newClassifier(cfg.Classifier); classifier != nil {
		opts = append(opts, services.WithClassifier(classifier))
		logger.Info("mood classifier enabled", zap.String("provider", classifier.Name()))
	}
	svc := services.NewOrchestrator(spotifyClient, repo, opts...)

	handler := rest.NewHandler(svc, rest.Options{
		Logger: logger,
		Debug:  cfg.Debug,
		Credentials: rest.CredentialStatus{
			ClientIDSet:     cfg.Spotify.ClientID != "",
			ClientSecretSet: cfg.Spotify.ClientSecret != "",
		},
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("MoodTune relay listening", zap.String("addr", cfg.Server.Addr), zap.Bool("debug", cfg.Debug))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("server failed", zap.Error(err))
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg))
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown error", zap.Error(err))
		}
	}
	return nil
}

func shutdownTimeout(cfg config.Config) time.Duration {
	if cfg.Server.ShutdownTimeout <= 0 {
		return 10 * time.Second
	}
	return cfg.Server.ShutdownTimeout
}
