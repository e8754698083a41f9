package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "codotaku-logic",
	Short: "A tick driven digital logic circuit simulator",
	Long: `codotaku-logic simulates digital logic circuits built as directed graphs
of gates and wires, including feedback circuits such as latches.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Log simulation events to stderr")
}
