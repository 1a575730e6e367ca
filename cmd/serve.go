package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nikogura/portfolio-chat/pkg/chat"
	"github.com/nikogura/portfolio-chat/pkg/config"
	"github.com/nikogura/portfolio-chat/pkg/portfolio"
	"github.com/nikogura/portfolio-chat/pkg/server"
	"github.com/nikogura/portfolio-chat/pkg/session"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

//nolint:gochecknoglobals // Cobra boilerplate
var serveListen string

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chat widget API",
	Long: `Serve the chat widget over HTTP. Each visitor gets an in-memory session.
Portfolio data is loaded once in the background; questions asked before it
arrives are answered with fallback text.

Example:
  portfolio-chat serve
  portfolio-chat serve --listen :9000
  PORTFOLIO_DATA=https://example.com/data.json portfolio-chat serve`,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	listen := cfg.Listen
	if serveListen != "" {
		listen = serveListen
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load portfolio data without blocking startup
	store := portfolio.NewStore()
	go store.Fill(ctx, cfg.DataLocation, log)

	delay := chat.RandomDelay(cfg.MinDelay(), cfg.MaxDelay())
	factory := func() *chat.Controller {
		return chat.NewController(store, controllerOptions(cfg, delay, log)...)
	}
	manager := session.NewManager(factory, cfg.IdleTimeout(), log)

	opts := []server.Option{
		server.WithSessions(manager),
		server.WithStore(store),
		server.WithLogger(log.With("component", "server")),
		server.WithAllowedOrigins(cfg.AllowedOrigins),
		server.WithRateLimit(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst),
	}
	if cfg.StaticDir != "" {
		opts = append(opts, server.WithStaticDir(cfg.StaticDir))
	}

	var srv *server.Server
	srv, err = server.NewServer(opts...)
	if err != nil {
		err = errors.Wrap(err, "failed to create server")
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return manager.Run(gctx, time.Minute)
	})
	g.Go(func() error {
		return srv.Run(gctx, listen)
	})

	err = g.Wait()
	if err != nil {
		err = errors.Wrap(err, "server stopped")
		return err
	}

	log.Info("stopped")
	return err
}
