package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"catlog/internal/adb"
	"catlog/internal/constants"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the device's log buffer",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		serial, err := resolveDevice(cfg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), constants.DefaultCommandTimeout)
		defer cancel()

		if err := adb.ClearLog(ctx, cfg.ADB, serial); err != nil {
			return err
		}
		if verbose {
			fmt.Printf("cleared log buffer on %s\n", serial)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
