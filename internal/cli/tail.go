package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"catlog/internal/domain"
	"catlog/internal/logs"
	"catlog/internal/stream"
)

// tail flags
var (
	tailMinLevel    string
	tailTags        []string
	tailExcludeTags []string
	tailSearch      string
	tailRegex       bool
	tailCaseSens    bool
	tailNoColor     bool
)

var tailCmd = &cobra.Command{
	Use:   "tail [filterspec...]",
	Short: "Stream device logs to the terminal",
	Long: `Stream logs from a connected device to stdout. Extra arguments are
passed to logcat as filterspec tokens (e.g. "ActivityManager:W" "*:S").`,
	RunE: runTail,
}

func init() {
	tailCmd.Flags().StringVarP(&tailMinLevel, "level", "l", "", "Minimum level to show (verbose..fatal)")
	tailCmd.Flags().StringArrayVarP(&tailTags, "tag", "t", nil, "Only show these tags (repeatable)")
	tailCmd.Flags().StringArrayVarP(&tailExcludeTags, "exclude-tag", "x", nil, "Hide these tags (repeatable)")
	tailCmd.Flags().StringVar(&tailSearch, "search", "", "Only show lines matching this term")
	tailCmd.Flags().BoolVar(&tailRegex, "regex", false, "Treat the search term as a regular expression")
	tailCmd.Flags().BoolVar(&tailCaseSens, "case-sensitive", false, "Match the search term case-sensitively")
	tailCmd.Flags().BoolVar(&tailNoColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(tailCmd)
}

func runTail(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	filter, err := tailFilter(cfg)
	if err != nil {
		return err
	}
	matcher, err := logs.NewMatcher(filter)
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
	if err := source.Start(serial, args...); err != nil {
		return err
	}
	defer source.Stop()

	if verbose {
		fmt.Fprintf(os.Stderr, "streaming from %s (press Ctrl+C to stop)\n", serial)
	}

	subID, events := store.Subscribe()
	defer store.Unsubscribe(subID)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	printer := NewEntryPrinter(os.Stdout, !tailNoColor)
	lastState := source.State()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	reportState := func() {
		state := source.State()
		if state == lastState {
			return
		}
		lastState = state
		if state == domain.ConnDisconnected {
			msg := source.LastError()
			if msg == "" {
				msg = "no data from device"
			}
			fmt.Fprintf(os.Stderr, "catlog: disconnected: %s\n", msg)
		} else if state == domain.ConnStreaming && verbose {
			fmt.Fprintln(os.Stderr, "catlog: streaming")
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			reportState()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Type != logs.EventFlushed {
				continue
			}
			for _, e := range ev.Appended {
				if matcher.Matches(e) {
					printer.PrintEntry(e)
				}
			}
			reportState()
		}
	}
}

func tailFilter(cfg configProvider) (domain.Filter, error) {
	filter, err := cfg.ToFilter()
	if err != nil {
		return filter, err
	}

	if tailMinLevel != "" {
		level, ok := domain.ParseLevelName(tailMinLevel)
		if !ok {
			return filter, fmt.Errorf("%w: unknown level %q", domain.ErrInvalidConfig, tailMinLevel)
		}
		filter.MinLevel = level
	}
	if len(tailTags) > 0 {
		filter.Tags = tailTags
	}
	if len(tailExcludeTags) > 0 {
		filter.ExcludeTags = tailExcludeTags
	}
	if tailSearch != "" {
		filter.Search = tailSearch
		filter.IsRegex = tailRegex
		filter.CaseSensitive = tailCaseSens
	}
	return filter, nil
}

// configProvider lets tests supply a minimal config for filter assembly.
type configProvider interface {
	ToFilter() (domain.Filter, error)
}
