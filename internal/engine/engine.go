// Package engine implements the typed keyspace: the command surface spec.md
// §4 describes, layered over a pluggable keyspace.Backend and durable
// through a wal.WAL. None of the methods on Engine take any lock of their
// own — every one of them assumes the caller already holds the backend's
// single keyspace lock, acquired once per command (or once for a whole
// EXEC batch) by the dispatch layer above. That is what lets EXEC batch
// many Engine calls under one Lock/Unlock pair without any risk of
// re-entering a non-reentrant mutex.
package engine

import (
	"go.uber.org/zap"

	"typedkv/internal/keyspace"
	"typedkv/internal/types"
	"typedkv/internal/wal"
)

// Engine owns the in-memory keyspace and the write-ahead log backing it.
type Engine struct {
	backend keyspace.Backend
	wal     *wal.WAL
	logger  *zap.Logger
}

// New builds an Engine over the given backend and WAL, replaying the WAL's
// existing contents into the backend before returning.
func New(backend keyspace.Backend, w *wal.WAL, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{backend: backend, wal: w, logger: logger}
	backend.Lock()
	defer backend.Unlock()
	if err := w.Replay(e.applyRecord); err != nil {
		return nil, err
	}
	return e, nil
}

// Lock/Unlock expose the backend's keyspace lock to the dispatch layer,
// which brackets every command (or EXEC batch) with exactly one pair.
func (e *Engine) Lock()   { e.backend.Lock() }
func (e *Engine) Unlock() { e.backend.Unlock() }

// applyRecord installs one WAL record into the backend during replay. WAL
// records carry the full post-mutation container, so applying one is
// always a plain install-or-delete, never a delta.
func (e *Engine) applyRecord(entry wal.Entry) error {
	switch entry.Operation {
	case wal.OpDel:
		e.backend.DeleteLocked(entry.Key)
		return nil
	case wal.OpSet, wal.OpLPush, wal.OpRPush, wal.OpLPop, wal.OpRPop,
		wal.OpHSet, wal.OpHDel, wal.OpSAdd, wal.OpSRem, wal.OpSPop:
		if entry.Value == nil {
			e.logger.Warn("replay: record missing value, skipping",
				zap.String("op", string(entry.Operation)), zap.String("key", entry.Key))
			return nil
		}
		if entry.Value.Empty() {
			e.backend.DeleteLocked(entry.Key)
		} else {
			e.backend.SetLocked(entry.Key, *entry.Value)
		}
		return nil
	default:
		e.logger.Warn("replay: unknown operation, skipping", zap.String("op", string(entry.Operation)))
		return nil
	}
}

// persist writes the full post-mutation value to the WAL before any caller
// makes it visible in the backend (spec.md I2: WAL write precedes the
// in-memory mutation becoming visible).
func (e *Engine) persist(op wal.Op, key string, v types.TypedValue) error {
	return e.wal.Append(wal.Entry{Operation: op, Key: key, Value: &v})
}

// persistDelete writes a DEL record for a key leaving the keyspace, whether
// by an explicit Delete or a container emptied down to nothing (I4).
func (e *Engine) persistDelete(key string) error {
	return e.wal.Append(wal.Entry{Operation: wal.OpDel, Key: key})
}

// Set installs key as a STRING holding value, replacing whatever was there
// regardless of its previous tag.
func (e *Engine) Set(key, value string) error {
	tv := types.NewString(value)
	if err := e.persist(wal.OpSet, key, tv); err != nil {
		return err
	}
	e.backend.SetLocked(key, tv)
	return nil
}

// GetResult distinguishes "key absent" from "key present but not a STRING",
// since spec.md §4.3 renders the latter as a literal NULL rather than the
// absent-key nil response.
type GetResult struct {
	Found     bool
	WrongType bool
	Value     string
}

// Get returns the STRING stored at key, if any.
func (e *Engine) Get(key string) GetResult {
	v, ok := e.backend.GetLocked(key)
	if !ok {
		return GetResult{Found: false}
	}
	if v.Tag != types.String {
		return GetResult{Found: true, WrongType: true}
	}
	return GetResult{Found: true, Value: v.Str}
}

// Delete removes key regardless of its tag, returning whether it existed.
func (e *Engine) Delete(key string) (bool, error) {
	if _, ok := e.backend.GetLocked(key); !ok {
		return false, nil
	}
	if err := e.persistDelete(key); err != nil {
		return false, err
	}
	e.backend.DeleteLocked(key)
	return true, nil
}

// Type reports the tag stored at key.
func (e *Engine) Type(key string) (types.Tag, bool) {
	v, ok := e.backend.GetLocked(key)
	if !ok {
		return "", false
	}
	return v.Tag, true
}
