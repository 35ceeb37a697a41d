package main

import (
	"github.com/bbernstein/weatherhub/internal/app"
	"github.com/bbernstein/weatherhub/internal/tools"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the weather tools over stdio",
	Long:  `Run a Model Context Protocol server on stdin and stdout. Logs go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Build(cmd.Context(), cfg, app.Options{})
		if err != nil {
			return err
		}
		return tools.ServeStdio(a.Tools)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
