package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dgallion1/cragmap/internal/config"
)

var (
	envFile string
	verbose bool

	cfg    config.Config
	logger *slog.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cragmap",
	Short: "Prepare static data for the climbing route map",
	Long: `cragmap generates the data files the climbing route map app is built from.

Available subcommands:
  crags   - Extract crag shapes and SVG paths from the design file into crags.ts
  mapping - Convert the block mapping text file into JSON
  fill    - Attach block numbers to routes and drop invalid difficulties
  audit   - List routes whose block does not start with a digit
  serve   - Serve generated artifacts for local preview`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(cragsCmd)
	rootCmd.AddCommand(mappingCmd)
	rootCmd.AddCommand(fillCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(serveCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	cfg = config.Load()

	level := slog.LevelInfo
	if verbose || strings.EqualFold(cfg.LogLevel, "debug") {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if logger == nil {
			logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
		}
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
