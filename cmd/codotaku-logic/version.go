package main

import (
	"fmt"

	"github.com/spf13/cobra"

	logic "github.com/ilyas-taouaou/codotaku-logic"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of codotaku-logic",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("codotaku-logic version %s\n", logic.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
