package cli

import (
	"catlog/internal/logs"
	"catlog/internal/stream"
	"catlog/internal/tui"
)

// runTUI wires the store and stream source together and hands them to the
// interactive UI. The stream keeps running until the UI exits.
func runTUI() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	filter, err := cfg.ToFilter()
	if err != nil {
		return err
	}

	serial, err := resolveDevice(cfg)
	if err != nil {
		return err
	}

	store := logs.NewStore(cfg.ToStoreConfig())
	defer store.Close()
	if err := store.SetFilter(filter); err != nil {
		return err
	}

	source := stream.NewSource(stream.NewExecRunner(), store, cfg.ToSourceConfig())
	if err := source.Start(serial); err != nil {
		return err
	}
	defer source.Stop()

	return tui.Run(store, source)
}
