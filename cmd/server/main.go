// Package main is the entry point for the hexgame gRPC server and client
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/hexgame-api/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "hexgame",
	Short: "Hexgame gRPC Server",
	Long:  `Hexgame runs turn-based hex map matches: exploration, cards, and battles between players.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
