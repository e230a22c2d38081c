package engine

import (
	"typedkv/internal/types"
	"typedkv/internal/wal"
)

func (e *Engine) loadHash(key string) (types.TypedValue, bool, error) {
	v, ok := e.backend.GetLocked(key)
	if !ok {
		return types.TypedValue{}, false, nil
	}
	if v.Tag != types.Hash {
		return types.TypedValue{}, false, wrongType(key, v.Tag, types.Hash)
	}
	return v, true, nil
}

// HSet sets each field to its paired value in key's HASH, creating the
// HASH if absent. Returns the number of fields that did not previously
// exist.
func (e *Engine) HSet(key string, fields []string, values []string) (int, error) {
	cur, ok, err := e.loadHash(key)
	if err != nil {
		return 0, err
	}

	next := map[string]string{}
	if ok {
		for k, v := range cur.Hash {
			next[k] = v
		}
	}

	created := 0
	for i, f := range fields {
		if _, exists := next[f]; !exists {
			created++
		}
		next[f] = values[i]
	}

	tv := types.NewHash(next)
	if err := e.persist(wal.OpHSet, key, tv); err != nil {
		return 0, err
	}
	e.backend.SetLocked(key, tv)
	return created, nil
}

// HGet returns the value at field in key's HASH.
func (e *Engine) HGet(key, field string) (string, bool, error) {
	cur, ok, err := e.loadHash(key)
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	v, exists := cur.Hash[field]
	return v, exists, nil
}

// HMGetResult pairs a field's value with whether it existed.
type HMGetResult struct {
	Found bool
	Value string
}

// HMGet returns the value for each requested field.
func (e *Engine) HMGet(key string, fields []string) ([]HMGetResult, error) {
	cur, ok, err := e.loadHash(key)
	if err != nil {
		return nil, err
	}
	out := make([]HMGetResult, len(fields))
	if !ok {
		return out, nil
	}
	for i, f := range fields {
		v, exists := cur.Hash[f]
		out[i] = HMGetResult{Found: exists, Value: v}
	}
	return out, nil
}

// HGetAll returns every field/value pair in key's HASH.
func (e *Engine) HGetAll(key string) (map[string]string, error) {
	cur, ok, err := e.loadHash(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[string]string{}, nil
	}
	out := make(map[string]string, len(cur.Hash))
	for k, v := range cur.Hash {
		out[k] = v
	}
	return out, nil
}

// HDel removes the given fields from key's HASH, deleting the key entirely
// if it becomes empty. Returns the number of fields actually removed.
func (e *Engine) HDel(key string, fields []string) (int, error) {
	cur, ok, err := e.loadHash(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}

	next := map[string]string{}
	for k, v := range cur.Hash {
		next[k] = v
	}
	removed := 0
	for _, f := range fields {
		if _, exists := next[f]; exists {
			delete(next, f)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}

	tv := types.NewHash(next)
	if tv.Empty() {
		if err := e.persistDelete(key); err != nil {
			return 0, err
		}
		e.backend.DeleteLocked(key)
	} else {
		if err := e.persist(wal.OpHDel, key, tv); err != nil {
			return 0, err
		}
		e.backend.SetLocked(key, tv)
	}
	return removed, nil
}

// HLen reports the number of fields in key's HASH.
func (e *Engine) HLen(key string) (int, error) {
	cur, ok, err := e.loadHash(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return len(cur.Hash), nil
}

// HExists reports whether field is present in key's HASH.
func (e *Engine) HExists(key, field string) (bool, error) {
	cur, ok, err := e.loadHash(key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	_, exists := cur.Hash[field]
	return exists, nil
}
