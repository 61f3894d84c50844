// Package constants provides shared configuration values used across the catlog application.
package constants

import "time"

// Configuration file defaults
const (
	// DefaultConfigFile is the default configuration filename
	DefaultConfigFile = "catlog.yaml"

	// DefaultADBPath is the adb executable resolved from PATH
	DefaultADBPath = "adb"
)

// Timeout and duration defaults
const (
	// DefaultWatchdogInterval is how long the stream source waits without
	// receiving a chunk before flipping to disconnected
	DefaultWatchdogInterval = 500 * time.Millisecond

	// DefaultFlushInterval is the store's batch flush cadence (~60/sec)
	DefaultFlushInterval = 16 * time.Millisecond

	// DefaultCommandTimeout bounds one-shot adb invocations such as
	// device listing
	DefaultCommandTimeout = 10 * time.Second
)

// Buffer sizes
const (
	// DefaultBufferSize is the maximum number of entries the store keeps
	DefaultBufferSize = 10000

	// DefaultFlushBatchLimit flushes the batch early once it reaches this size
	DefaultFlushBatchLimit = 100

	// DefaultPendingLimit caps the queue of entries held while paused;
	// entries beyond it are dropped and counted
	DefaultPendingLimit = 10000

	// DefaultSubscriptionBuffer is the channel buffer for store subscribers
	DefaultSubscriptionBuffer = 256

	// ReadChunkSize is the read buffer for the logcat stdout stream
	ReadChunkSize = 64 * 1024 // 64KB

	// MaxPatternLength caps filter search patterns to prevent
	// pathologically expensive regexes
	MaxPatternLength = 256
)

// ANSI color codes for terminal output, indexed by severity
var (
	// LevelColors maps each severity (verbose..silent) to a terminal color
	LevelColors = []string{
		"\033[37m", // verbose: white
		"\033[36m", // debug: cyan
		"\033[32m", // info: green
		"\033[33m", // warning: yellow
		"\033[31m", // error: red
		"\033[91m", // fatal: bright red
		"\033[90m", // silent: gray
	}

	// ColorReset resets the terminal color
	ColorReset = "\033[0m"
)
