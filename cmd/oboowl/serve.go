package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/c360studio/oboowl/config"
	oboconverter "github.com/c360studio/oboowl/processor/obo-converter"
	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/metric"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/c360studio/semstreams/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

type serveFlags struct {
	natsURL     string
	subject     string
	queue       string
	metricsAddr string
	sqlitePath  string
}

func serveCmd(g *globalFlags) *cobra.Command {
	f := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Answer conversion requests over NATS",
		Long: `Serve subscribes to the request subject and replies to each request
with the converted ontology. The request body is either raw OBO text or a
JSON object {"document": "...", "format": "ofn"}.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.setup()
			if err != nil {
				return err
			}
			cfg.Merge(&config.Config{
				NATS:    config.NATSConfig{URL: f.natsURL, Subject: f.subject, QueueGroup: f.queue},
				Metrics: config.MetricsConfig{Addr: f.metricsAddr},
				Storage: config.StorageConfig{SQLitePath: f.sqlitePath},
			})
			return runServe(cmd.Context(), cfg, logger)
		},
	}

	cmd.Flags().StringVar(&f.natsURL, "nats", "", "NATS server URL")
	cmd.Flags().StringVar(&f.subject, "subject", "", "Request subject")
	cmd.Flags().StringVar(&f.queue, "queue", "", "Queue group")
	cmd.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "Prometheus listen address")
	cmd.Flags().StringVar(&f.sqlitePath, "sqlite", "", "Store results in this SQLite database")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	natsClient, err := connectNATS(ctx, cfg.NATS.URL, logger)
	if err != nil {
		return err
	}
	defer natsClient.Close(context.Background())

	metricsRegistry := metric.NewMetricsRegistry()
	componentRegistry := component.NewRegistry()
	if err := oboconverter.Register(componentRegistry); err != nil {
		return fmt.Errorf("register obo-converter: %w", err)
	}

	rawConfig, err := json.Marshal(converterConfig(cfg))
	if err != nil {
		return fmt.Errorf("marshal component config: %w", err)
	}
	created, err := componentRegistry.CreateComponent(appName+"-converter", types.ComponentConfig{
		Type:    types.ComponentTypeProcessor,
		Name:    "obo-converter",
		Enabled: true,
		Config:  rawConfig,
	}, component.Dependencies{
		NATSClient:      natsClient,
		MetricsRegistry: metricsRegistry,
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("create obo-converter: %w", err)
	}
	converter, ok := created.(component.LifecycleComponent)
	if !ok {
		return fmt.Errorf("obo-converter does not implement the component lifecycle")
	}
	if err := converter.Initialize(); err != nil {
		return fmt.Errorf("initialize obo-converter: %w", err)
	}
	if err := converter.Start(ctx); err != nil {
		return fmt.Errorf("start obo-converter: %w", err)
	}

	var srv *http.Server
	if cfg.Metrics.Addr != "" {
		registry := metricsRegistry.PrometheusRegistry()
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
		srv = &http.Server{Addr: cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			logger.Info("Metrics endpoint listening", "addr", cfg.Metrics.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server failed", "error", err)
			}
		}()
	}

	fmt.Fprintf(os.Stderr, "%s v%s serving %s on %s\n", appName, Version, cfg.NATS.Subject, cfg.NATS.URL)
	<-ctx.Done()
	logger.Info("Shutting down")

	if err := converter.Stop(10 * time.Second); err != nil {
		logger.Warn("obo-converter stop failed", "error", err)
	}
	if srv != nil {
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Metrics server shutdown failed", "error", err)
		}
	}
	return nil
}

// converterConfig maps the application config onto the obo-converter
// component config.
func converterConfig(cfg *config.Config) oboconverter.Config {
	cc := oboconverter.DefaultConfig()
	cc.Ports.Inputs[0].Subject = cfg.NATS.Subject
	cc.QueueGroup = cfg.NATS.QueueGroup
	cc.Format = cfg.Output.Format
	if cfg.NATS.Timeout > 0 {
		cc.Timeout = cfg.NATS.Timeout.String()
	}
	cc.SQLitePath = cfg.Storage.SQLitePath
	cc.DefaultOntology = cfg.Conversion.DefaultOntology
	cc.IDSpaces = cfg.Conversion.IDSpaces
	cc.EquivalentXrefPrefixes = cfg.Conversion.EquivalentXrefPrefixes
	return cc
}

func connectNATS(ctx context.Context, url string, logger *slog.Logger) (*natsclient.Client, error) {
	logger.Info("Connecting to NATS", "url", url)

	client, err := natsclient.NewClient(url,
		natsclient.WithName(appName),
		natsclient.WithMaxReconnects(-1),
		natsclient.WithReconnectWait(time.Second),
		natsclient.WithHealthInterval(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create NATS client: %w", err)
	}

	if err := client.Connect(ctx); err != nil {
		return nil, wrapNATSError(err, url)
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.WaitForConnection(connCtx); err != nil {
		return nil, wrapNATSError(err, url)
	}

	logger.Info("Connected to NATS", "url", url)
	return client, nil
}

func wrapNATSError(err error, url string) error {
	errStr := err.Error()

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no servers available") ||
		strings.Contains(errStr, "timeout") {
		return fmt.Errorf(`NATS connection failed: %w

NATS is not running at %s.

To start NATS:
  docker run -p 4222:4222 nats

Or pass --nats to point to your NATS server.`, err, url)
	}

	return fmt.Errorf("NATS connection failed: %w", err)
}
