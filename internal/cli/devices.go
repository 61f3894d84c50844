package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"catlog/internal/adb"
	"catlog/internal/config"
	"catlog/internal/constants"
	"catlog/internal/domain"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List connected devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), constants.DefaultCommandTimeout)
		defer cancel()

		devices, err := adb.Devices(ctx, cfg.ADB)
		if err != nil {
			return err
		}
		if len(devices) == 0 {
			fmt.Println("no devices connected")
			return nil
		}

		fmt.Printf("%-24s %-14s %s\n", "SERIAL", "STATE", "MODEL")
		for _, d := range devices {
			fmt.Printf("%-24s %-14s %s\n", d.Serial, d.State, d.Model)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}

// resolveDevice picks the session device: the configured serial if set,
// otherwise the sole online device. Ambiguity is an error rather than a
// guess.
func resolveDevice(cfg *config.Config) (string, error) {
	if cfg.Device != "" {
		return cfg.Device, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultCommandTimeout)
	defer cancel()

	devices, err := adb.Devices(ctx, cfg.ADB)
	if err != nil {
		return "", err
	}

	var online []domain.Device
	for _, d := range devices {
		if d.Online() {
			online = append(online, d)
		}
	}

	switch len(online) {
	case 0:
		return "", domain.ErrNoDeviceSelected
	case 1:
		return online[0].Serial, nil
	default:
		return "", fmt.Errorf("%w: %d devices online, pick one with --serial", domain.ErrNoDeviceSelected, len(online))
	}
}
