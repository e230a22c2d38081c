package dispatch

import (
	"path/filepath"
	"testing"

	"typedkv/internal/engine"
	"typedkv/internal/keyspace"
	"typedkv/internal/protocol"
	"typedkv/internal/wal"
)

func newDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.wal")
	w, err := wal.Open(wal.Config{Path: path, SyncPolicy: wal.SyncOSBuffered}, nil)
	if err != nil {
		t.Fatalf("wal.Open: %v", err)
	}
	t.Cleanup(func() { w.Close() })

	e, err := engine.New(keyspace.NewLocked(), w, nil)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return New(e)
}

func run(t *testing.T, d *Dispatcher, line string) string {
	t.Helper()
	cmd, err := protocol.ParseLine(line)
	if err != nil {
		t.Fatalf("ParseLine(%q): %v", line, err)
	}
	return d.Dispatch(cmd)
}

func TestScenario_StringLifecycle(t *testing.T) {
	d := newDispatcher(t)

	if got := run(t, d, "SET foo bar"); got != "OK" {
		t.Fatalf("SET = %q", got)
	}
	if got := run(t, d, "GET foo"); got != "bar" {
		t.Fatalf("GET = %q", got)
	}
	if got := run(t, d, "DEL foo"); got != "OK" {
		t.Fatalf("DEL = %q", got)
	}
	if got := run(t, d, "GET foo"); got != "(nil)" {
		t.Fatalf("GET after DEL = %q", got)
	}
}

// LPUSH keeps the pushed block in argument order (original_source's
// `list(values) + typed_val.value`, per spec.md §4.3): "L a b c" lands as
// [a,b,c], not Redis's one-at-a-time [c,b,a].
func TestScenario_ListPushRange(t *testing.T) {
	d := newDispatcher(t)

	if got := run(t, d, "LPUSH L a b c"); got != "(integer) 3" {
		t.Fatalf("LPUSH = %q", got)
	}
	if got := run(t, d, "LRANGE L 0 -1"); got != "1) a\n2) b\n3) c" {
		t.Fatalf("LRANGE = %q", got)
	}
	if got := run(t, d, "RPUSH L x"); got != "(integer) 4" {
		t.Fatalf("RPUSH = %q", got)
	}
	if got := run(t, d, "LRANGE L 0 -1"); got != "1) a\n2) b\n3) c\n4) x" {
		t.Fatalf("LRANGE after RPUSH = %q", got)
	}
}

func TestScenario_WrongTypeLeavesStringUnchanged(t *testing.T) {
	d := newDispatcher(t)

	run(t, d, "SET s hello")
	got := run(t, d, "LPUSH s x")
	if got[:11] != "ERR WRONGTY" {
		t.Fatalf("LPUSH on string = %q", got)
	}
	if got := run(t, d, "GET s"); got != "hello" {
		t.Fatalf("GET s after failed LPUSH = %q", got)
	}
}

func TestScenario_HashLifecycleAndGC(t *testing.T) {
	d := newDispatcher(t)

	if got := run(t, d, "HSET h f1 v1 f2 v2"); got != "(integer) 2" {
		t.Fatalf("HSET = %q", got)
	}
	if got := run(t, d, "HGET h f1"); got != "v1" {
		t.Fatalf("HGET = %q", got)
	}
	if got := run(t, d, "HDEL h f1 f2"); got != "(integer) 2" {
		t.Fatalf("HDEL = %q", got)
	}
	if got := run(t, d, "TYPE h"); got != "NULL" {
		t.Fatalf("TYPE after GC = %q", got)
	}
}

func TestUnknownCommand(t *testing.T) {
	d := newDispatcher(t)
	if got := run(t, d, "FROBNICATE x"); got != "ERR unknown command" {
		t.Fatalf("unknown command = %q", got)
	}
}

func TestArityMismatch(t *testing.T) {
	d := newDispatcher(t)
	if got := run(t, d, "GET"); got != "ERR unknown command" {
		t.Fatalf("GET with no args = %q", got)
	}
	if got := run(t, d, "SET onlykey"); got != "ERR unknown command" {
		t.Fatalf("SET with 1 arg = %q", got)
	}
}

func TestSetConsumesTrailingTokensJoinedBySpace(t *testing.T) {
	d := newDispatcher(t)
	run(t, d, "SET greeting hello   there  world")
	if got := run(t, d, "GET greeting"); got != "hello there world" {
		t.Fatalf("GET greeting = %q", got)
	}
}

func TestDispatchBatch_ExecutesUnderOneLock(t *testing.T) {
	d := newDispatcher(t)

	cmds := []protocol.Command{
		{Name: "SET", Args: []string{"a", "1"}},
		{Name: "SET", Args: []string{"b", "2"}},
	}
	results := d.DispatchBatch(cmds)
	if len(results) != 2 || results[0] != "OK" || results[1] != "OK" {
		t.Fatalf("DispatchBatch = %v", results)
	}

	if got := run(t, d, "GET a"); got != "1" {
		t.Fatalf("GET a = %q", got)
	}
	if got := run(t, d, "GET b"); got != "2" {
		t.Fatalf("GET b = %q", got)
	}
}

func TestSetOverwritesAnyTagWithoutWrongType(t *testing.T) {
	d := newDispatcher(t)
	run(t, d, "LPUSH l x")
	if got := run(t, d, "SET l newvalue"); got != "OK" {
		t.Fatalf("SET over LIST key = %q", got)
	}
	if got := run(t, d, "GET l"); got != "newvalue" {
		t.Fatalf("GET l = %q", got)
	}
}
