// Command ecotrack is the operations CLI: feed stats, report status
// changes and database seeding.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	apiBase string
	token   string
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "ecotrack",
		Short:         "EcoTrack backend operations CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&apiBase, "api", envOr("ECOTRACK_API", "http://localhost:3001"), "API base URL")
	root.PersistentFlags().StringVar(&token, "token", os.Getenv("ECOTRACK_TOKEN"), "Bearer token for authenticated commands")

	root.AddCommand(statsCmd(), reportStatusCmd(), seedCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
