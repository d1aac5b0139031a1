package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	serve := newServeCmd(&configPath)
	root := &cobra.Command{
		Use:           "employee-directory",
		Short:         "Employee directory web application",
		Long:          "Serves the employee directory. Records come from API_BASE_URL when it is set and reachable, otherwise from the bundled sample data.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (default $CONFIG_PATH or ./config.yaml)")

	root.AddCommand(serve, newEmployeesCmd(&configPath), newExportCmd(&configPath))
	return root
}
