// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"reelscout/internal/config"
	"reelscout/internal/extract"
	"reelscout/internal/httputil"
	"reelscout/internal/log"
	"reelscout/internal/provider"
	"reelscout/internal/resolve"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagJSON        bool
	flagDebug       bool
	flagBase        string
	flagConcurrency int
	flagLanguage    string
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "reelscout [query]",
	Short: "Browse a streaming catalog and resolve playable links",
	Long: `Reelscout lists and searches the EgyDead catalog, tells movies from series,
and digs the playable media URLs out of title and episode pages.`,
	Args:              cobra.ArbitraryArgs,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
	RunE:              searchRun,
}

// Execute runs the root command. An interrupt cancels in-flight work.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Output results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")
	rootCmd.PersistentFlags().StringVar(&flagBase, "base", "", "Site origin (default: https://tv2.egydead.live)")
	rootCmd.PersistentFlags().IntVar(&flagConcurrency, "concurrency", 0, "Concurrent page fetches (1-16)")
	rootCmd.PersistentFlags().StringVarP(&flagLanguage, "language", "l", "", "Preferred subtitle language (default: arabic)")

	rootCmd.AddCommand(homeCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(linksCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagBase != "" {
		cfg.BaseURL = flagBase
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = flagConcurrency
	}
	if flagLanguage != "" {
		cfg.SubsLanguage = flagLanguage
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return log.Setup(log.Options{Level: cfg.LogLevel, File: cfg.LogFile, Debug: cfg.Debug})
}

// debugf logs a message if debug mode is enabled.
func debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// services bundles the collaborators every command needs.
type services struct {
	site     config.Site
	provider provider.Provider
	resolver *resolve.Resolver
}

func newServices() *services {
	site := cfg.Site()
	ua := cfg.UserAgent
	if ua == "" {
		ua = httputil.DefaultUserAgent
	}
	fetcher := httputil.NewFetcher(httputil.NewClient(cfg.Timeout()), ua)

	debugf("site %s (%s), concurrency %d", site.MainURL, site.Lang, cfg.Concurrency)
	return &services{
		site:     site,
		provider: provider.NewEgyDead(site, fetcher, cfg.Concurrency),
		resolver: resolve.New(site, fetcher, extract.Default(fetcher), resolve.WithConcurrency(cfg.Concurrency)),
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("reelscout", Version)
	},
}
