package stream

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"time"

	"catlog/internal/adb"
	"catlog/internal/constants"
	"catlog/internal/domain"
	"catlog/internal/parse"
)

// Sink receives parsed entries. Satisfied by *logs.Store.
type Sink interface {
	Append(entries ...domain.Entry)
}

// Config holds tunables for the stream source.
type Config struct {
	ADBPath          string
	WatchdogInterval time.Duration
	ReadChunkSize    int
}

// DefaultConfig returns the default source configuration.
func DefaultConfig() Config {
	return Config{
		ADBPath:          constants.DefaultADBPath,
		WatchdogInterval: constants.DefaultWatchdogInterval,
		ReadChunkSize:    constants.ReadChunkSize,
	}
}

// Source manages one logcat process per session. A session's read loop is
// the only goroutine feeding the parser, so partial-line reconstruction
// and ordering stay intact. The connection state is owned exclusively by
// the source.
//
// Every session carries a generation number. Delivery, watchdog firing,
// and exit notifications all check it under the mutex, so nothing from a
// cancelled session can reach the sink or flip state after a later Start.
type Source struct {
	mu     sync.Mutex
	runner Runner
	sink   Sink
	cfg    Config

	state   domain.ConnState
	lastErr string
	device  string

	gen    uint64
	proc   Process
	parser *parse.Parser
	cancel context.CancelFunc
	kick   chan struct{}
	wg     *sync.WaitGroup
}

// NewSource creates a source. Zero config fields fall back to defaults.
func NewSource(runner Runner, sink Sink, cfg Config) *Source {
	def := DefaultConfig()
	if cfg.ADBPath == "" {
		cfg.ADBPath = def.ADBPath
	}
	if cfg.WatchdogInterval <= 0 {
		cfg.WatchdogInterval = def.WatchdogInterval
	}
	if cfg.ReadChunkSize <= 0 {
		cfg.ReadChunkSize = def.ReadChunkSize
	}
	return &Source{
		runner: runner,
		sink:   sink,
		cfg:    cfg,
		state:  domain.ConnIdle,
	}
}

// Start begins streaming from the given device. An active session is fully
// stopped first, so Start is safe to call at any time. Extra filterspec
// tokens are passed through to logcat.
func (s *Source) Start(device string, filterSpec ...string) error {
	if device == "" {
		return domain.ErrNoDeviceSelected
	}

	// A full stop settles the previous session's goroutines before the
	// new generation begins.
	s.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	gen := s.gen
	s.device = device
	s.lastErr = ""
	s.state = domain.ConnStarting

	ctx, cancel := context.WithCancel(context.Background())

	proc, err := s.runner.Start(ctx, s.cfg.ADBPath, adb.LogcatArgs(device, filterSpec...))
	if err != nil {
		cancel()
		s.state = domain.ConnIdle
		wrapped := wrapStartError(err, s.cfg.ADBPath)
		s.lastErr = wrapped.Error()
		return wrapped
	}

	s.proc = proc
	s.parser = parse.NewParser()
	s.cancel = cancel
	s.kick = make(chan struct{}, 1)
	s.state = domain.ConnStreaming

	wg := &sync.WaitGroup{}
	s.wg = wg

	wg.Add(3)
	go func() {
		defer wg.Done()
		s.readLoop(ctx, gen, proc)
	}()
	go func() {
		defer wg.Done()
		s.stderrLoop(ctx, gen, proc)
	}()
	go func() {
		defer wg.Done()
		s.watchdogLoop(ctx, gen, s.kick)
	}()

	// The exit monitor is not part of the session WaitGroup: Wait may not
	// return until the process dies, which Stop itself triggers.
	go s.monitor(gen, proc)

	return nil
}

// Stop terminates the session and waits for its goroutines to settle, so
// no stale chunk can be delivered once a subsequent Start runs. Safe to
// call repeatedly and when idle.
func (s *Source) Stop() {
	s.mu.Lock()
	// Bumping the generation invalidates every in-flight delivery,
	// watchdog firing, and exit notification immediately.
	s.gen++
	cancel := s.cancel
	proc := s.proc
	wg := s.wg
	s.cancel = nil
	s.proc = nil
	s.wg = nil
	s.parser = nil
	s.kick = nil
	if s.state != domain.ConnIdle {
		s.state = domain.ConnStopped
	}
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if proc != nil {
		_ = proc.Signal(sigterm)
	}
	if wg != nil {
		wg.Wait()
	}
}

// Reset returns a settled source to idle and clears the error slot. It is
// a no-op while a session is live.
func (s *Source) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil && (s.state == domain.ConnStopped || s.state == domain.ConnDisconnected) {
		s.state = domain.ConnIdle
		s.lastErr = ""
	}
}

// State returns the current connection state.
func (s *Source) State() domain.ConnState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastError returns the most recent session error text, if any.
func (s *Source) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Device returns the serial of the current (or last) session's device.
func (s *Source) Device() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.device
}

// readLoop reads stdout chunks and delivers them sequentially. It is the
// only feeder of this session's parser.
func (s *Source) readLoop(ctx context.Context, gen uint64, proc Process) {
	buf := make([]byte, s.cfg.ReadChunkSize)
	r := proc.Stdout()

	for {
		n, err := r.Read(buf)
		if n > 0 {
			if !s.deliver(ctx, gen, buf[:n]) {
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// deliver parses a chunk and appends the records under the source mutex.
// Holding the mutex across parse+append means a concurrent Stop/Start
// cannot interleave a stale chunk into the new session.
func (s *Source) deliver(ctx context.Context, gen uint64, chunk []byte) bool {
	s.mu.Lock()
	if gen != s.gen || ctx.Err() != nil {
		s.mu.Unlock()
		return false
	}

	// Data arriving clears a watchdog-declared disconnect.
	s.state = domain.ConnStreaming

	select {
	case s.kick <- struct{}{}:
	default:
	}

	entries := s.parser.Parse(chunk)
	for i := range entries {
		if entries[i].Device == "" {
			entries[i].Device = s.device
		}
	}
	s.mu.Unlock()

	if len(entries) > 0 {
		s.sink.Append(entries...)
	}
	return true
}

// stderrLoop surfaces stderr text through the error slot and flips the
// state to disconnected. It never interrupts stdout processing.
func (s *Source) stderrLoop(ctx context.Context, gen uint64, proc Process) {
	scanner := bufio.NewScanner(proc.Stderr())
	scanner.Buffer(make([]byte, 4096), constants.ReadChunkSize)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		s.mu.Lock()
		if gen != s.gen || ctx.Err() != nil {
			s.mu.Unlock()
			return
		}
		s.lastErr = line
		s.state = domain.ConnDisconnected
		s.mu.Unlock()
	}
}

// watchdogLoop flips the state to disconnected when no chunk arrives
// within the interval. It keeps running: a later chunk rearms it and the
// session recovers.
func (s *Source) watchdogLoop(ctx context.Context, gen uint64, kick <-chan struct{}) {
	timer := time.NewTimer(s.cfg.WatchdogInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-kick:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(s.cfg.WatchdogInterval)
		case <-timer.C:
			s.mu.Lock()
			if gen == s.gen && s.state == domain.ConnStreaming {
				s.state = domain.ConnDisconnected
			}
			s.mu.Unlock()
			timer.Reset(s.cfg.WatchdogInterval)
		}
	}
}

// monitor reports process exit. Exit is a distinct, terminal signal for
// the session; the watchdog's "no data" condition is handled separately.
func (s *Source) monitor(gen uint64, proc Process) {
	err := proc.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		// Stop owned this exit; state is already settled.
		return
	}
	s.state = domain.ConnDisconnected
	if err != nil {
		s.lastErr = fmt.Sprintf("logcat exited: %v", err)
	} else {
		s.lastErr = "logcat exited"
	}
}

func wrapStartError(err error, adbPath string) error {
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w: %s", domain.ErrADBNotFound, adbPath)
	}
	return fmt.Errorf("%w: %v", domain.ErrCommandFailed, err)
}
