package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "tellergo",
		Short:         "In-memory retail bank with savings and checking accounts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newMenuCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
