// Package main is the entry point for the build gRPC server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/build-api/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "build-api",
	Short: "Build API gRPC Server",
	Long: `Build API serves option-picker documents: players select options from categories,
spend and earn points, and export or import their builds.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
