// Package wal implements the durable, append-only write-ahead log described
// in spec.md §4.1: one active writer per path, JSON-per-line records, and a
// replay stream that rebuilds engine state on startup.
package wal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// SyncPolicy controls when Append durably persists a record to disk.
type SyncPolicy int

const (
	// SyncAlways flushes and fsyncs after every Append.
	SyncAlways SyncPolicy = iota
	// SyncOSBuffered relies on the OS's own page-cache writeback.
	SyncOSBuffered
)

// Config configures Open.
type Config struct {
	Path       string
	SyncPolicy SyncPolicy
}

// ErrClosed is returned by Append/Replay on a WAL that has been Close'd.
var ErrClosed = errors.New("wal: closed")

// ErrFailedToPersist wraps the underlying I/O error from a failed Append.
// The caller must treat the mutation as not applied (spec.md §4.1).
var ErrFailedToPersist = errors.New("wal: failed to persist record")

// WAL is a single-writer, append-only durable log. Appends are serialised
// by mu, held across serialise+write+(optional fsync), per spec.md §4.1's
// "Ordering and atomicity" rule.
type WAL struct {
	mu     sync.Mutex
	path   string
	policy SyncPolicy
	file   *os.File
	writer *bufio.Writer
	logger *zap.Logger
	closed bool
}

var (
	registryMu sync.Mutex
	registry   = map[string]*WAL{}
)

// Open opens or creates the WAL file at cfg.Path in append mode. At most one
// handle exists per path at a time: a second Open for the same path returns
// the already-open handle (spec.md §4.1 "Handle registry"), mirroring the
// original's per-path singleton.
func Open(cfg Config, logger *zap.Logger) (*WAL, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if w, ok := registry[cfg.Path]; ok {
		return w, nil
	}

	f, err := os.OpenFile(cfg.Path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("wal: open %s: %w", cfg.Path, err)
	}

	w := &WAL{
		path:   cfg.Path,
		policy: cfg.SyncPolicy,
		file:   f,
		writer: bufio.NewWriter(f),
		logger: logger,
	}
	registry[cfg.Path] = w
	return w, nil
}

// Append encodes and durably records a mutation intent. Under SyncAlways the
// record is guaranteed to be on stable storage before Append returns.
func (w *WAL) Append(e Entry) error {
	line, err := EncodeRecord(e)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}

	if _, err := w.writer.WriteString(line); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToPersist, err)
	}
	if err := w.writer.Flush(); err != nil {
		return fmt.Errorf("%w: flush: %v", ErrFailedToPersist, err)
	}

	if w.policy == SyncAlways {
		if err := w.file.Sync(); err != nil {
			return fmt.Errorf("%w: fsync: %v", ErrFailedToPersist, err)
		}
	}
	return nil
}

// Replay re-reads the log from the start and invokes apply for each
// successfully decoded record, in file order. Lines that fail to parse as
// JSON are skipped and logged (spec.md §4.1, §7 "Replay"); a trailing line
// with no terminating newline (a torn write) is discarded without error
// (spec.md I5).
func (w *WAL) Replay(apply func(Entry) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}

	if err := w.writer.Flush(); err != nil {
		return fmt.Errorf("wal: flush before replay: %w", err)
	}

	f, err := os.Open(w.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("wal: open for replay: %w", err)
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				if strings.TrimSpace(line) != "" {
					w.logger.Warn("wal: discarding partial trailing record", zap.String("path", w.path))
				}
				break
			}
			return fmt.Errorf("wal: read: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		entry, decErr := DecodeRecord(line)
		if decErr != nil {
			w.logger.Warn("wal: skipping corrupt record", zap.Error(decErr))
			continue
		}

		if err := apply(entry); err != nil {
			return fmt.Errorf("wal: apply record: %w", err)
		}
	}
	return nil
}

// Close flushes and closes the file handle, removing it from the path
// registry. Idempotent. Per spec.md §9, Close does not delete the file.
func (w *WAL) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true

	flushErr := w.writer.Flush()
	syncErr := w.file.Sync()
	closeErr := w.file.Close()
	w.mu.Unlock()

	registryMu.Lock()
	if registry[w.path] == w {
		delete(registry, w.path)
	}
	registryMu.Unlock()

	w.logger.Info("wal: closed", zap.String("path", w.Path()))

	if flushErr != nil {
		return fmt.Errorf("wal: close: flush: %w", flushErr)
	}
	if syncErr != nil {
		return fmt.Errorf("wal: close: fsync: %w", syncErr)
	}
	if closeErr != nil {
		return fmt.Errorf("wal: close: %w", closeErr)
	}
	return nil
}

// Path reports the filesystem path this handle was opened for.
func (w *WAL) Path() string {
	return w.path
}
