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

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sdnlab/pox-mcp/pkg/config"
	"github.com/sdnlab/pox-mcp/pkg/health"
	"github.com/sdnlab/pox-mcp/pkg/mcpserver"
	"github.com/sdnlab/pox-mcp/pkg/pox"
	"github.com/sdnlab/pox-mcp/pkg/session"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags struct {
		poxURL        string
		transport     string
		listen        string
		metricsListen string
		debug         bool
	}

	cmd := &cobra.Command{
		Use:   "pox-mcp",
		Short: "MCP server exposing a POX OpenFlow controller",
		Long: "pox-mcp bridges a running POX OpenFlow controller's web service into the\n" +
			"Model Context Protocol: switches, flow statistics, and flow-table\n" +
			"configuration become tools and resources an assistant can call.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// Flags win over the environment.
			if cmd.Flags().Changed("pox-url") {
				cfg.ControllerURL = flags.poxURL
			}
			if cmd.Flags().Changed("transport") {
				cfg.Transport = flags.transport
			}
			if cmd.Flags().Changed("listen") {
				cfg.Listen = flags.listen
			}
			if cmd.Flags().Changed("metrics-listen") {
				cfg.MetricsListen = flags.metricsListen
			}
			if cmd.Flags().Changed("debug") {
				cfg.Debug = flags.debug
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cfg)
		},
	}

	cmd.Flags().StringVar(&flags.poxURL, "pox-url", "", "URL of the POX controller's web service")
	cmd.Flags().StringVar(&flags.transport, "transport", "", "MCP transport: stdio or sse")
	cmd.Flags().StringVar(&flags.listen, "listen", "", "bind address for the SSE transport")
	cmd.Flags().StringVar(&flags.metricsListen, "metrics-listen", "", "bind address for health/metrics endpoints (disabled when empty)")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "enable debug logging")

	return cmd
}

func run(cfg *config.Config) error {
	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	// stdout belongs to the stdio transport, so logs always go to stderr.
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	store := session.NewStore()
	client := pox.NewClient(cfg.ControllerURL, cfg.RequestTimeout, log.With().Str("component", "pox-client").Logger())
	manager := pox.NewManager(client, store, log.With().Str("component", "pox-manager").Logger())
	srv := mcpserver.New(manager, store, log.With().Str("component", "mcp").Logger())

	if cfg.MetricsListen != "" {
		obs := health.NewServer(cfg.MetricsListen, log.With().Str("component", "health").Logger())
		go func() {
			if err := obs.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("observability server failed")
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			obs.Stop(ctx)
		}()
	}

	log.Info().
		Str("controller", cfg.ControllerURL).
		Str("transport", cfg.Transport).
		Msg("starting POX OpenFlow MCP server")

	switch cfg.Transport {
	case config.TransportStdio:
		return srv.ServeStdio()

	case config.TransportSSE:
		sse := srv.NewSSE()

		errCh := make(chan error, 1)
		go func() {
			errCh <- sse.Start(cfg.Listen)
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-sigCh:
			log.Info().Str("signal", sig.String()).Msg("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return sse.Shutdown(ctx)
		}

	default:
		return fmt.Errorf("unknown transport %q", cfg.Transport)
	}
}
