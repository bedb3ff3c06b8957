package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/translevel/internal/infrastructure/build"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of translevel",
		Run: func(cmd *cobra.Command, _ []string) {
			info := build.Get()
			fmt.Fprintf(cmd.OutOrStdout(), "translevel version %s\n", info.Full())
		},
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
}
