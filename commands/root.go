package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"apartment-prices/config"
	"apartment-prices/scraper"
	"apartment-prices/services"
	"apartment-prices/storage"
	"apartment-prices/utils"
)

var (
	cfg    *config.Config
	logger *utils.Logger
)

var rootCmd = &cobra.Command{
	Use:   "apartments",
	Short: "Records the lowest rent per floorplan for a list of apartment properties, once a day.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetDebug(cfg.Debug)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cfg = config.Load()
	logger = utils.NewLogger()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.HistoryPath, "history", cfg.HistoryPath, "price history CSV file")
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "print debug logs")

	rootCmd.Flags().StringVar(&cfg.SchemaPath, "schema", cfg.SchemaPath, "vendor page schema (YAML)")
	rootCmd.Flags().StringVar(&cfg.FetchMode, "fetch-mode", cfg.FetchMode, "page fetcher: http or browser")
	rootCmd.Flags().StringSliceVar(&cfg.PropertyURLs, "url", cfg.PropertyURLs, "property page URL (repeatable)")
}

// ExecuteContext runs the CLI and exits non-zero on failure.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	schema := scraper.ApartmentsCom()
	if cfg.SchemaPath != "" {
		s, err := scraper.LoadSchema(cfg.SchemaPath)
		if err != nil {
			return err
		}
		schema = s
	}
	logger.Debug("Schema: %s | fetch mode: %s | properties: %d", schema.Vendor, cfg.FetchMode, len(cfg.PropertyURLs))

	fetcher, closeFetcher, err := newFetcher()
	if err != nil {
		return err
	}
	defer closeFetcher()

	history, err := storage.NewCSVHistory(cfg.HistoryPath)
	if err != nil {
		return err
	}
	defer history.Close()

	var mirrors []storage.HistoryStore
	if cfg.HistoryDBDriver != "" {
		db, err := storage.NewSQLHistory(ctx, cfg.HistoryDBDriver, cfg.HistoryDBDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		mirrors = append(mirrors, db)
	}

	throttle := utils.NewThrottle(cfg.MinDelaySec, cfg.MaxDelaySec, time.Second)
	pipeline := services.NewPipeline(
		scraper.New(fetcher, scraper.NewExtractor(schema), throttle, cfg.MaxRetries, logger),
		services.NewNormalizer(schema.CallForRent, logger),
		services.NewReporter(os.Stdout),
		services.NewRecorder(logger, history, mirrors...),
		logger,
	)

	_, err = pipeline.Run(ctx, cfg.PropertyURLs)
	return err
}

func newFetcher() (scraper.Fetcher, func(), error) {
	switch cfg.FetchMode {
	case config.FetchModeHTTP:
		return scraper.NewHTTPFetcher(cfg.FetchTimeout, cfg.UserAgent), func() {}, nil
	case config.FetchModeBrowser:
		b, err := scraper.NewBrowserFetcher(cfg.ChromeBin, cfg.UserAgent, cfg.FetchTimeout, logger)
		if err != nil {
			return nil, nil, err
		}
		return b, func() { _ = b.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown fetch mode %q (want %q or %q)",
			cfg.FetchMode, config.FetchModeHTTP, config.FetchModeBrowser)
	}
}
