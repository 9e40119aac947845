package cmd

import (
	"fmt"

	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tradejournal",
	Short: "A daily trading journal with calendar and performance statistics",
	Long: `Tradejournal records one result per trading day and derives account statistics from them.

It provides tools for:
  - Recording trades count and P/L per day
  - Account balance, win rate and growth against a baseline
  - Month calendar views with recorded days
  - Drawdown and profit factor over the whole journal
  - CSV export and import

State is kept in a SQLite database, a JSON file or in memory.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

var (
	cfgFile   string
	envFile   string
	storeType string
	storePath string

	cfg    *config.Config
	logger *logrus.Logger
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "optional .env file with overrides")
	rootCmd.PersistentFlags().StringVar(&storeType, "store", "", "store type: memory, file or sqlite")
	rootCmd.PersistentFlags().StringVarP(&storePath, "path", "p", "", "store file path")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	c := config.Default()
	if cfgFile != "" {
		var err error
		if c, err = config.LoadFromFile(cfgFile); err != nil {
			return err
		}
	}
	if err := c.ApplyEnv(envFile); err != nil {
		return fmt.Errorf("environment: %w", err)
	}

	if cmd.Flags().Changed("store") {
		c.Store.Type = storeType
	}
	if cmd.Flags().Changed("path") {
		c.Store.Path = storePath
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	cfg = c
	logger = cfg.Logger()
	logger.SetOutput(cmd.ErrOrStderr())
	return nil
}

// openEngine opens the configured store and hydrates a journal from it.
// The returned close func releases the store.
func openEngine() (*journal.Engine, func() error, error) {
	store, err := journal.OpenStore(cfg.Store.Type, cfg.Store.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	e, err := journal.New(store,
		journal.WithLogger(logger.WithField("component", "journal")),
		journal.WithDefaultBaseline(cfg.Journal.DefaultBaseline),
	)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("load journal: %w", err)
	}
	return e, store.Close, nil
}
