package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bbernstein/weatherhub/internal/config"
	"github.com/spf13/cobra"
)

var (
	envFiles      []string
	catalogSource string
	cfg           *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "weatherhub",
	Short: "WeatherHub - read-only weather station directory",
	Long: `WeatherHub serves a fixed catalog of weather stations, conditions, forecasts,
alerts and air quality over REST, GraphQL and Model Context Protocol tools.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "environment files to load (default .env)")
	rootCmd.PersistentFlags().StringVar(&catalogSource, "catalog", "", "catalog source: builtin, a file path, s3://bucket/key or dynamodb://table/id")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(envFiles...); err != nil {
		return fmt.Errorf("loading environment files: %w", err)
	}
	cfg = config.LoadFromEnv()
	if catalogSource != "" {
		config.WithCatalogSource(catalogSource)(cfg)
	}
	cfg.InitializeLogging()
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
