package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/banshee-data/labelsmith/internal/serialport"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List candidate scanner serial ports",
	RunE: func(cmd *cobra.Command, args []string) error {
		candidates, err := serialport.Enumerate(nil)
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			fmt.Println("No candidate scanner ports found.")
			return nil
		}
		for _, p := range candidates {
			fmt.Println(p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}
