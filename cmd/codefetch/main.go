package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "codefetch",
		Short:         "Recover one-time verification codes from a mailbox account",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(fetchCmd(), addCmd(), listCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
