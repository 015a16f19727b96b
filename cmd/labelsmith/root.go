package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "labelsmith",
	Short: "Serial scanner to barcode label station",
	Long: `labelsmith reads a byte stream from a serial-attached scanner, extracts
the numeric identifier embedded as /m/<digits>/ in each scanned line, and
composes a print-ready PNG label: fixed header text, logo artwork and a
Code 128 barcode carrying the prefixed identifier.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on any error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
