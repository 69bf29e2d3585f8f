package main

// cmd/routerctl is the operator CLI for a running routerd (spec §6.1),
// grounded on cmd/synnergy/main.go's root-command composition (one rootCmd,
// each subcommand file's init() mounts itself via rootCmd.AddCommand) and
// cmd/cli/amm.go's controller-plus-Cobra-command shape per subcommand.

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "routerctl",
	Short: "Query and operate a routerd instance",
}

func init() {
	rootCmd.PersistentFlags().String("server", "http://localhost:8080", "routerd base URL")
}

// serverAddr reads the --server flag, walking up to a parent command if the
// flag was set on rootCmd rather than the invoked subcommand directly.
func serverAddr(cmd *cobra.Command) string {
	addr, _ := cmd.Flags().GetString("server")
	return addr
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
