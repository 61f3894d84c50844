package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"catlog/internal/config"
	"catlog/internal/constants"
)

// Version is set during build
var Version = "dev"

// Global flags
var (
	configPath string
	adbPath    string
	device     string
	verbose    bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "catlog",
	Short: "A logcat stream viewer",
	Long: `catlog streams Android logcat output into a bounded in-memory buffer
that you can pause, filter, and search. It supports:
  - Structured threadtime parsing with lossless fallback for odd lines
  - Level, tag, and regex/substring filtering
  - Pause and resume with bounded, counted backlog
  - Disconnect detection via an inactivity watchdog
  - An interactive TUI and a plain tail mode`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("catlog version %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: "+constants.DefaultConfigFile+")")
	rootCmd.PersistentFlags().StringVar(&adbPath, "adb", "", "Path to the adb executable")
	rootCmd.PersistentFlags().StringVarP(&device, "serial", "s", "", "Device serial to stream from")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.SetVersionTemplate("catlog version {{.Version}}\n")

	rootCmd.AddCommand(versionCmd)
}

// loadConfig builds the effective configuration from the config file, the
// environment, and command-line flags, in increasing precedence.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config

	path := configPath
	if path == "" {
		// Without an explicit --config, a missing file just means defaults.
		found, err := config.FindConfigFile()
		if err == nil {
			path = found
		}
	}

	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	env, err := config.LoadEnvFile(cfg.EnvFile)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(env)

	if adbPath != "" {
		cfg.ADB = adbPath
	}
	if device != "" {
		cfg.Device = device
	}

	return cfg, nil
}
