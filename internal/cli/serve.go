package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/me/vertexdash/internal/archive"
	"github.com/me/vertexdash/internal/backend"
	"github.com/me/vertexdash/internal/metrics"
	"github.com/me/vertexdash/internal/server"
	"github.com/me/vertexdash/internal/store"
)

func newServeCmd() *cobra.Command {
	var (
		addr      string
		dbPath    string
		staticDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				cfg.Addr = addr
			}
			if dbPath != "" {
				cfg.DBPath = dbPath
			}

			// Resolve database path.
			path := cfg.DBPath
			if path == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("cannot determine home directory: %w", err)
				}
				dir := filepath.Join(home, ".vertexdash")
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("cannot create %s: %w", dir, err)
				}
				path = filepath.Join(dir, "vertexdash.db")
			}

			// Graceful shutdown
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// Open store and run migrations.
			st, err := store.NewSQLiteStore(path, logger)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer st.Close()

			if err := st.Migrate(ctx); err != nil {
				return fmt.Errorf("migrate database: %w", err)
			}
			logger.Info("database ready", "path", path)

			m := metrics.New()
			opts := []server.Option{server.WithMetrics(m), server.WithStaticDir(staticDir)}

			arch, err := archive.FromConfig(ctx, cfg.Archive)
			if err != nil {
				return fmt.Errorf("configure archive: %w", err)
			}
			if arch != nil {
				opts = append(opts, server.WithArchiver(arch))
				logger.Info("report archive enabled", "archive", arch.String())
			}

			client := backend.New(backend.Config{BaseURL: cfg.Backend.URL, Timeout: cfg.Backend.Timeout}, logger)
			srv := server.New(cfg, st, client, logger, opts...)

			if err := srv.StartSweeper(ctx); err != nil {
				return err
			}

			httpServer := &http.Server{
				Addr:              cfg.Addr,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("server starting", "addr", cfg.Addr, "backend", cfg.Backend.URL)
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server failed: %w", err)
				}
			case <-ctx.Done():
			}
			logger.Info("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :3000)")
	cmd.Flags().StringVar(&dbPath, "db", "", "Database path (default ~/.vertexdash/vertexdash.db)")
	cmd.Flags().StringVar(&staticDir, "static", "ui/assets", "Directory served under /static/")
	return cmd
}
