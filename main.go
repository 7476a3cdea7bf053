package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"pce-validator/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pce-validator",
		Short: "Validate Private Computation Environments on AWS",
	}

	rootCmd.AddCommand(cmd.NewValidateCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
