package main

import (
	"fmt"
	"time"

	"github.com/bbernstein/weatherhub/internal/present"
	"github.com/bbernstein/weatherhub/internal/seed"
	"github.com/bbernstein/weatherhub/internal/weather"
	"github.com/spf13/cobra"
)

var stationState string

var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "List the stations in the catalog",
	RunE:  runStations,
}

func init() {
	stationsCmd.Flags().StringVar(&stationState, "state", "", "only stations in this state")
	rootCmd.AddCommand(stationsCmd)
}

func runStations(cmd *cobra.Command, args []string) error {
	catalog, err := seed.NewLoader().Load(cmd.Context(), cfg.CatalogSource)
	if err != nil {
		return err
	}
	dir, err := weather.NewDirectory(catalog, time.Now())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), present.StationsText(dir.ListStations(stationState)))
	return err
}
