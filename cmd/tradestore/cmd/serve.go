package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/efreitasn/tradestore/internal/config"
	"github.com/efreitasn/tradestore/internal/handler"
	"github.com/efreitasn/tradestore/internal/seed"
	"github.com/efreitasn/tradestore/internal/service"
	"github.com/efreitasn/tradestore/internal/store"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Start the trade API and block until SIGINT or SIGTERM.

The store starts with the built-in seed records unless SEED_FILE points at a
YAML document or SEED_DISABLED=true.

Example:
  LOG_LEVEL=debug tradestore serve --port 9090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("port") {
		if servePort < 1 || servePort > 65535 {
			return fmt.Errorf("invalid --port: %d out of range 1-65535", servePort)
		}
		cfg.Port = servePort
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	tradeSvc := service.NewTradeService(store.NewTradeStore(), logger)
	if err := loadSeed(cfg, tradeSvc, logger); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler.NewRouter(tradeSvc, logger),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
	return nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// loadSeed fills the store according to SEED_FILE and SEED_DISABLED.
func loadSeed(cfg *config.Config, imp seed.Importer, logger *slog.Logger) error {
	if cfg.SeedDisabled {
		logger.Info("seed disabled")
		return nil
	}

	var (
		n   int
		err error
	)
	source := "built-in"
	if cfg.SeedFile != "" {
		source = cfg.SeedFile
		n, err = seed.LoadFile(cfg.SeedFile, imp)
	} else {
		n, err = seed.Load(seed.Default(), imp)
	}
	if err != nil {
		return fmt.Errorf("load seed: %w", err)
	}

	logger.Info("seed loaded", slog.String("source", source), slog.Int("trades", n))
	return nil
}
