package main

import (
	"os"

	"github.com/spf13/cobra"

	"atrium/internal/interfaces/cli/migrate"
	"atrium/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "atrium",
		Short: "Atrium - multi-tenant access and licensing service",
		Long:  `Atrium manages company access evaluation, license lifecycle, and partner billing across the tenant hierarchy.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
