package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/rpggio/deepwork/internal/leaderboard"
	"github.com/rpggio/deepwork/internal/mcp"
	"github.com/rpggio/deepwork/internal/render"
	"github.com/rpggio/deepwork/internal/transport"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, render.Error(err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "deepwork",
		Short:         "Track deep work sessions and weekly leaderboards",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config (overrides DEEPWORK_CONFIG_PATH)")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newMCPCmd(&configPath))
	root.AddCommand(newCheckCmd(&configPath))
	root.AddCommand(newLeaderboardCmd(&configPath))
	root.AddCommand(newSessionsCmd(&configPath))
	return root
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd.Context(), *configPath, os.Stdout)
			if err != nil {
				return err
			}
			defer a.Close()
			return runHTTP(a)
		},
	}
}

func newMCPCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve MCP tools over stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// stdout carries JSON-RPC, so logs go to stderr.
			a, err := loadApp(cmd.Context(), *configPath, os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()
			return runStdio(a)
		},
	}
}

func newCheckCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the database connection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd.Context(), *configPath, os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.sessions.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("database connection failed: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Database connection successful!")
			return nil
		},
	}
}

func newLeaderboardCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Print this week's leaderboard and all-time stats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd.Context(), *configPath, os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()
			d := leaderboard.Build(a.sessions.ListAll(cmd.Context()), a.clock.Now())
			return render.Dashboard(cmd.OutOrStdout(), d)
		},
	}
}

func newSessionsCmd(configPath *string) *cobra.Command {
	var oldestFirst bool
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List all stored sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd.Context(), *configPath, os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()
			list := a.sessions.ListRecent(cmd.Context())
			if oldestFirst {
				list = a.sessions.ListAll(cmd.Context())
			}
			return render.Sessions(cmd.OutOrStdout(), list)
		},
	}
	cmd.Flags().BoolVar(&oldestFirst, "asc", false, "list in storage order instead of newest first")
	return cmd
}

func newMCPServer(a *app) *sdkmcp.Server {
	return mcp.NewServer(mcp.Config{
		Sessions: a.sessions,
		Clock:    a.clock,
		Logger:   a.logger,
		Version:  version,
	})
}

func runStdio(a *app) error {
	a.logger.Info("starting stdio transport")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Run blocks until stdin closes or context is canceled.
	if err := newMCPServer(a).Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Error("stdio server error", "error", err)
		return err
	}
	return nil
}

func runHTTP(a *app) error {
	cfg := transport.Config{
		Sessions: a.sessions,
		Clock:    a.clock,
		Logger:   a.logger,
	}
	if a.cfg.Metrics.Enabled {
		cfg.Metrics = a.metrics.Handler()
	}
	if a.cfg.MCP.Enabled {
		mcpServer := newMCPServer(a)
		cfg.MCP = sdkmcp.NewStreamableHTTPHandler(
			func(*http.Request) *sdkmcp.Server { return mcpServer },
			&sdkmcp.StreamableHTTPOptions{Stateless: true},
		)
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           transport.NewServer(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "addr", addr, "driver", a.db.Driver(), "metrics", a.cfg.Metrics.Enabled, "mcp", a.cfg.MCP.Enabled)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	return waitForShutdown(a.logger, httpServer, errCh)
}

func waitForShutdown(logger *slog.Logger, server *http.Server, errCh <-chan error) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "error", err)
		}
		return err
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}
	return nil
}
