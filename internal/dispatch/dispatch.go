// Package dispatch turns a parsed protocol.Command into an engine call and
// renders the result as the wire response spec.md §6 describes. Arity
// checking, argument coercion, and WRONGTYPE/error translation all happen
// here — the engine itself only ever returns typed results and errors.
package dispatch

import (
	"errors"
	"strconv"

	"typedkv/internal/engine"
	"typedkv/internal/protocol"
)

// Dispatcher renders commands against a shared Engine.
type Dispatcher struct {
	engine *engine.Engine
}

// New builds a Dispatcher over the given engine.
func New(e *engine.Engine) *Dispatcher {
	return &Dispatcher{engine: e}
}

// Dispatch executes a single command to completion under the engine's
// keyspace lock and returns its rendered response.
func (d *Dispatcher) Dispatch(cmd protocol.Command) string {
	d.engine.Lock()
	defer d.engine.Unlock()
	return d.dispatchLocked(cmd)
}

// DispatchBatch executes every command in order under a single acquisition
// of the engine's keyspace lock — the mechanism behind EXEC's atomicity
// (spec.md §4.5, P4). A failing command's rendered error is still appended
// to the result; there is no rollback.
func (d *Dispatcher) DispatchBatch(cmds []protocol.Command) []string {
	d.engine.Lock()
	defer d.engine.Unlock()

	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = d.dispatchLocked(c)
	}
	return out
}

func (d *Dispatcher) dispatchLocked(cmd protocol.Command) string {
	switch cmd.Name {
	case "SET":
		return d.cmdSet(cmd.Args)
	case "GET":
		return d.cmdGet(cmd.Args)
	case "DEL":
		return d.cmdDel(cmd.Args)
	case "TYPE":
		return d.cmdType(cmd.Args)

	case "LPUSH":
		return d.cmdPush(cmd.Args, true)
	case "RPUSH":
		return d.cmdPush(cmd.Args, false)
	case "LPOP":
		return d.cmdPop(cmd.Args, true)
	case "RPOP":
		return d.cmdPop(cmd.Args, false)
	case "LRANGE":
		return d.cmdLRange(cmd.Args)
	case "LLEN":
		return d.cmdLLen(cmd.Args)

	case "HSET":
		return d.cmdHSet(cmd.Args)
	case "HGET":
		return d.cmdHGet(cmd.Args)
	case "HMGET":
		return d.cmdHMGet(cmd.Args)
	case "HGETALL":
		return d.cmdHGetAll(cmd.Args)
	case "HDEL":
		return d.cmdHDel(cmd.Args)
	case "HLEN":
		return d.cmdHLen(cmd.Args)
	case "HEXISTS":
		return d.cmdHExists(cmd.Args)

	case "SADD":
		return d.cmdSAdd(cmd.Args)
	case "SREM":
		return d.cmdSRem(cmd.Args)
	case "SISMEMBER":
		return d.cmdSIsMember(cmd.Args)
	case "SMISMEMBER":
		return d.cmdSMIsMember(cmd.Args)
	case "SMEMBERS":
		return d.cmdSMembers(cmd.Args)
	case "SCARD":
		return d.cmdSCard(cmd.Args)
	case "SRANDMEMBER":
		return d.cmdSRandMember(cmd.Args)
	case "SPOP":
		return d.cmdSPop(cmd.Args)

	default:
		return errUnknownCommand
	}
}

// renderErr converts an engine error into its wire form. WRONGTYPE gets its
// own literal prefix per spec.md §7; everything else becomes a generic
// ERR with the underlying message.
func renderErr(err error) string {
	var wt *engine.WrongTypeError
	if errors.As(err, &wt) {
		return renderError(wt.Error())
	}
	return renderError(err.Error())
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("invalid argument: " + s)
	}
	return n, nil
}
