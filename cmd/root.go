package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/resultscope/internal/analysis"
	cfgpkg "github.com/KaramelBytes/resultscope/internal/config"
	"github.com/KaramelBytes/resultscope/internal/history"
)

var (
	// Global flags
	cfgFile   string
	debug     bool
	noHistory bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "resultscope",
	Short: "ResultScope: turn exam-result spreadsheets into pass-rate statistics",
	Long: `ResultScope ingests CSV and Excel exam-result sheets with arbitrary headers,
infers which columns hold subject, year, gender, name, result and score,
and reports per-subject pass rates, gender splits and a next-year projection.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(setupLogging, loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.resultscope/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "do not record uploads in the history database")
}

func setupLogging() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{PassThreshold: 33, PreviewRows: 50, DefaultFormat: "markdown", ServerAddr: ":8080"}
	}
	cfg = c
	log.Debug().Str("history", cfg.HistoryPath).Float64("pass_threshold", cfg.PassThreshold).Msg("config loaded")
}

// pipelineOptions merges configuration into analysis options.
func pipelineOptions() analysis.Options {
	opt := analysis.DefaultOptions()
	if cfg == nil {
		return opt
	}
	if cfg.PassThreshold > 0 {
		opt.PassThreshold = cfg.PassThreshold
	}
	if cfg.PreviewRows > 0 {
		opt.PreviewRows = cfg.PreviewRows
	}
	if cfg.MaxRows > 0 {
		opt.MaxRows = cfg.MaxRows
	}
	return opt
}

// openHistory returns the history store, or nil when history is disabled.
func openHistory() (*history.Store, error) {
	if noHistory || cfg == nil || cfg.HistoryDisabled {
		return nil, nil
	}
	return history.Open(cfg.HistoryPath)
}
