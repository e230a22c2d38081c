package engine

import (
	"math/rand"

	"typedkv/internal/types"
	"typedkv/internal/wal"
)

func (e *Engine) loadSet(key string) (types.TypedValue, bool, error) {
	v, ok := e.backend.GetLocked(key)
	if !ok {
		return types.TypedValue{}, false, nil
	}
	if v.Tag != types.Set {
		return types.TypedValue{}, false, wrongType(key, v.Tag, types.Set)
	}
	return v, true, nil
}

// SAdd adds members to key's SET, creating it if absent. Returns the
// number of members not already present.
func (e *Engine) SAdd(key string, members []string) (int, error) {
	cur, ok, err := e.loadSet(key)
	if err != nil {
		return 0, err
	}

	next := map[string]struct{}{}
	if ok {
		for m := range cur.Set {
			next[m] = struct{}{}
		}
	}

	added := 0
	for _, m := range members {
		if _, exists := next[m]; !exists {
			added++
			next[m] = struct{}{}
		}
	}
	if added == 0 && ok {
		return 0, nil
	}

	tv := types.NewSet(next)
	if err := e.persist(wal.OpSAdd, key, tv); err != nil {
		return 0, err
	}
	e.backend.SetLocked(key, tv)
	return added, nil
}

// SRem removes members from key's SET, deleting the key entirely if it
// becomes empty. Returns the number of members actually removed.
func (e *Engine) SRem(key string, members []string) (int, error) {
	cur, ok, err := e.loadSet(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}

	next := map[string]struct{}{}
	for m := range cur.Set {
		next[m] = struct{}{}
	}
	removed := 0
	for _, m := range members {
		if _, exists := next[m]; exists {
			delete(next, m)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}

	tv := types.NewSet(next)
	if tv.Empty() {
		if err := e.persistDelete(key); err != nil {
			return 0, err
		}
		e.backend.DeleteLocked(key)
	} else {
		if err := e.persist(wal.OpSRem, key, tv); err != nil {
			return 0, err
		}
		e.backend.SetLocked(key, tv)
	}
	return removed, nil
}

// SIsMember reports whether member belongs to key's SET.
func (e *Engine) SIsMember(key, member string) (bool, error) {
	cur, ok, err := e.loadSet(key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	_, exists := cur.Set[member]
	return exists, nil
}

// SMIsMember reports membership for each of the given members.
func (e *Engine) SMIsMember(key string, members []string) ([]bool, error) {
	cur, ok, err := e.loadSet(key)
	if err != nil {
		return nil, err
	}
	out := make([]bool, len(members))
	if !ok {
		return out, nil
	}
	for i, m := range members {
		_, out[i] = cur.Set[m]
	}
	return out, nil
}

// SMembers returns every member of key's SET, in no particular order.
func (e *Engine) SMembers(key string) ([]string, error) {
	cur, ok, err := e.loadSet(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{}, nil
	}
	out := make([]string, 0, len(cur.Set))
	for m := range cur.Set {
		out = append(out, m)
	}
	return out, nil
}

// SCard reports the number of members in key's SET.
func (e *Engine) SCard(key string) (int, error) {
	cur, ok, err := e.loadSet(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return len(cur.Set), nil
}

// SRandMember returns a random sample from key's SET without removing
// anything. count == nil requests a single element (the "no count" form);
// a non-negative count requests up to that many distinct members; a
// negative count requests exactly abs(count) members, possibly repeating.
func (e *Engine) SRandMember(key string, count *int) ([]string, error) {
	cur, ok, err := e.loadSet(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{}, nil
	}

	members := make([]string, 0, len(cur.Set))
	for m := range cur.Set {
		members = append(members, m)
	}

	if count == nil {
		if len(members) == 0 {
			return []string{}, nil
		}
		return []string{members[rand.Intn(len(members))]}, nil
	}

	n := *count
	if n >= 0 {
		rand.Shuffle(len(members), func(i, j int) { members[i], members[j] = members[j], members[i] })
		if n > len(members) {
			n = len(members)
		}
		return append([]string{}, members[:n]...), nil
	}

	k := -n
	out := make([]string, 0, k)
	for i := 0; i < k; i++ {
		if len(members) == 0 {
			break
		}
		out = append(out, members[rand.Intn(len(members))])
	}
	return out, nil
}

// SPop removes and returns a random member of key's SET, deleting the key
// entirely if it becomes empty.
func (e *Engine) SPop(key string) (PopResult, error) {
	cur, ok, err := e.loadSet(key)
	if err != nil {
		return PopResult{}, err
	}
	if !ok || len(cur.Set) == 0 {
		return PopResult{}, nil
	}

	members := make([]string, 0, len(cur.Set))
	for m := range cur.Set {
		members = append(members, m)
	}
	chosen := members[rand.Intn(len(members))]

	next := map[string]struct{}{}
	for m := range cur.Set {
		if m != chosen {
			next[m] = struct{}{}
		}
	}

	tv := types.NewSet(next)
	if tv.Empty() {
		if err := e.persistDelete(key); err != nil {
			return PopResult{}, err
		}
		e.backend.DeleteLocked(key)
	} else {
		if err := e.persist(wal.OpSPop, key, tv); err != nil {
			return PopResult{}, err
		}
		e.backend.SetLocked(key, tv)
	}
	return PopResult{Found: true, Value: chosen}, nil
}
