package main

import (
	"github.com/bbernstein/weatherhub/internal/seed"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Export or publish station catalogs",
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the catalog as JSON to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := seed.NewLoader().Load(cmd.Context(), cfg.CatalogSource)
		if err != nil {
			return err
		}
		return seed.Encode(cmd.OutOrStdout(), catalog)
	},
}

var catalogPublishCmd = &cobra.Command{
	Use:   "publish <s3://bucket/key | dynamodb://table/id>",
	Short: "Copy the catalog to S3 or DynamoDB",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := seed.NewLoader().Load(cmd.Context(), cfg.CatalogSource)
		if err != nil {
			return err
		}
		return seed.NewPublisher().Publish(cmd.Context(), args[0], catalog)
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	catalogCmd.AddCommand(catalogPublishCmd)
}
