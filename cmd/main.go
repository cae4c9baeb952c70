package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"helpqueue/pkg/schema"
	"helpqueue/pkg/utils"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "helpqueue",
		Short: "Classroom help queue for Discord",
		Long:  "helpqueue keeps the line of student groups waiting for a helper and serves it over HTTP to a Discord bot.",
	}

	rootCmd.AddCommand(serveCommand())

	rootCmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schemas of the request payloads",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), utils.PrettyJSON(schema.Requests))
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
