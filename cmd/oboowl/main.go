// Package main provides the oboowl binary entry point.
// oboowl translates OBO flat-file ontologies into OWL axioms, either from
// the command line or as a NATS conversion service.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/c360studio/oboowl/config"
	"github.com/c360studio/oboowl/convert"
	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "oboowl"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
}

func rootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "OBO to OWL translator",
		Long: `oboowl translates OBO flat-file ontologies into OWL 2 axioms.

It provides:
- convert: translate .obo files to OWL functional syntax or JSON
- serve: answer conversion requests over NATS
- config: inspect and initialize configuration`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})
	cmd.AddCommand(convertCmd(g))
	cmd.AddCommand(serveCmd(g))
	cmd.AddCommand(configCmd(g))

	return cmd
}

// setup loads configuration and installs the default logger.
func (g *globalFlags) setup() (*config.Config, *slog.Logger, error) {
	bootstrap := newLogger(g.logLevel)
	cfg, err := config.NewLoader(bootstrap).Load(g.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if g.logLevel != "" {
		cfg.Log.Level = strings.ToLower(g.logLevel)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(cfg.Log.Level)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

func newLogger(level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(level)}))
}

// converterOptions maps the conversion section of cfg to converter options.
func converterOptions(cfg *config.Config, logger *slog.Logger) []convert.Option {
	opts := []convert.Option{
		convert.WithLogger(logger),
		convert.WithDefaultOntology(cfg.Conversion.DefaultOntology),
		convert.WithEquivalentXrefPrefixes(cfg.Conversion.EquivalentXrefPrefixes...),
	}
	for ns, prefix := range cfg.Conversion.IDSpaces {
		opts = append(opts, convert.WithIDSpace(ns, prefix))
	}
	return opts
}
