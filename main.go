package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"docstitch/internal/config"
	"docstitch/internal/services"
	"docstitch/internal/utils"
)

var (
	flagDryRun         bool
	flagVerbosity      int
	flagProvider       string
	flagModel          string
	flagTimeout        time.Duration
	flagRate           float64
	flagCostMultiplier float64
	flagWorkers        int
	flagOnly           string
)

var rootCmd = &cobra.Command{
	Use:   "docstitch <directory>",
	Short: "Generate missing docstrings for a Python codebase",
	Long: `docstitch scans a directory for Python functions without docstrings,
generates the missing documentation with an LLM provider and rewrites the
files in place. Files ignored by git are skipped.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := utils.LoadEnv(); err != nil {
			slog.Warn("could not load .env", "error", err)
		}
		configureLogging(flagVerbosity)
	},
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	keyringService := services.NewKeyringService()

	cfg := config.New()
	cfg.TargetDir = args[0]
	cfg.DryRun = flagDryRun
	cfg.Verbosity = flagVerbosity
	cfg.Provider = flagProvider
	cfg.Model = flagModel
	cfg.Timeout = flagTimeout
	cfg.TokenRate = flagRate
	cfg.CostMultiplier = flagCostMultiplier
	cfg.Workers = flagWorkers
	cfg.Only = flagOnly
	cfg.APIKey = keyringService.ResolveApiKey(cfg.Provider)

	if err := cfg.Validate(); err != nil {
		return err
	}

	app := NewApp(cfg)
	return app.Scan(cmd.Context())
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage provider API keys in the OS keyring",
}

var authSetCmd = &cobra.Command{
	Use:   "set <provider>",
	Short: "Store an API key (read from stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "Paste the %s API key: ", args[0])
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return err
		}
		key := strings.TrimSpace(line)
		return services.NewKeyringService().StoreApiKey(args[0], []byte(key))
	},
}

var authRmCmd = &cobra.Command{
	Use:   "rm <provider>",
	Short: "Delete a stored API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return services.NewKeyringService().DeleteApiKey(args[0])
	},
}

var authListCmd = &cobra.Command{
	Use:   "list",
	Short: "List providers with a stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		keys, err := services.NewKeyringService().ListApiKeys()
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Fprintln(cmd.OutOrStdout(), k["provider"])
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "estimate cost without generating or writing anything")
	rootCmd.PersistentFlags().CountVarP(&flagVerbosity, "verbose", "v", "increase output verbosity (-v, -vv, -vvv)")
	rootCmd.Flags().StringVar(&flagProvider, "provider", "openai", "generation provider (openai, anthropic, gemini)")
	rootCmd.Flags().StringVar(&flagModel, "model", config.DefaultModel, "provider model name")
	rootCmd.Flags().DurationVar(&flagTimeout, "timeout", config.DefaultTimeout, "per-request generation timeout")
	rootCmd.Flags().Float64Var(&flagRate, "rate", config.DefaultTokenRate, "dollars per token for cost accounting")
	rootCmd.Flags().Float64Var(&flagCostMultiplier, "cost-multiplier", config.DefaultCostMultiplier, "dry-run estimate padding, must be >= 1")
	rootCmd.Flags().IntVar(&flagWorkers, "workers", config.DefaultWorkers, "concurrent generation requests per file")
	rootCmd.Flags().StringVar(&flagOnly, "only", "", "restrict the scan to files matching this glob (supports **)")

	authCmd.AddCommand(authSetCmd, authRmCmd, authListCmd)
	rootCmd.AddCommand(authCmd)
}

func configureLogging(verbosity int) {
	var level slog.Level
	switch verbosity {
	case 0:
		level = slog.LevelError
	case 1:
		level = slog.LevelWarn
	case 2:
		level = slog.LevelInfo
	default:
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
