package cmd

import (
	"chinook/server"

	"github.com/spf13/cobra"
)

var serverPort string

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the Chinook API server",
	Long:  `Start the HTTP server exposing the genre, artist, album, track and playlist endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serverPort != "" {
			cfg.Port = serverPort
		}
		return server.Start(cfg)
	},
}

func init() {
	serverCmd.Flags().StringVarP(&serverPort, "port", "p", "", "listen port (overrides PORT)")
	rootCmd.AddCommand(serverCmd)
}
