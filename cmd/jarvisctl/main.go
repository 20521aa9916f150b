// Package main implements the jarvisctl CLI, thin glue over the server's
// HTTP API.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "jarvisctl",
	Short: "Jarvis CLI - your assistant from the terminal",
}

func main() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server-url", "http://localhost:8080", "Backend server URL")
	rootCmd.AddCommand(tasksCmd, syncCmd, permissionsCmd, aiCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
