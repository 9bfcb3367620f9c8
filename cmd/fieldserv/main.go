package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldserv-inc/fieldserv/internal/interfaces/cli/migrate"
	"github.com/fieldserv-inc/fieldserv/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fieldserv",
		Short: "FieldServ - job engagement and settlement engine",
		Long:  `FieldServ runs the service-ticketing engine: ticket lifecycle, contractor invoicing, payment batch settlement and contractor ratings.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
