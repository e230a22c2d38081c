package dispatch

import (
	"fmt"
	"sort"
	"strings"
)

const (
	respOK        = "OK"
	respNil       = "(nil)"
	respNull      = "NULL"
	respEmptyList = "(EMPTY LIST)"
	respEmptyHash = "(empty hash)"
	respEmptySet  = "(empty set)"
)

func renderError(msg string) string {
	return "ERR " + msg
}

var errUnknownCommand = renderError("unknown command")

func renderInteger(n int) string {
	return fmt.Sprintf("(integer) %d", n)
}

func renderBool(b bool) string {
	if b {
		return "(bool) True"
	}
	return "(bool) False"
}

// renderSequence numbers items 1) v1, 2) v2, ... joined by newlines, or
// empty when the sequence has nothing in it.
func renderSequence(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	lines := make([]string, len(items))
	for i, v := range items {
		lines[i] = fmt.Sprintf("%d) %s", i+1, v)
	}
	return strings.Join(lines, "\n")
}

// renderOptionalSequence is renderSequence for results that may contain
// nils aligned with the caller's input (HMGET).
func renderOptionalSequence(values []string, found []bool) string {
	if len(values) == 0 {
		return respEmptyList
	}
	lines := make([]string, len(values))
	for i, v := range values {
		if found[i] {
			lines[i] = fmt.Sprintf("%d) %s", i+1, v)
		} else {
			lines[i] = fmt.Sprintf("%d) %s", i+1, respNil)
		}
	}
	return strings.Join(lines, "\n")
}

func renderBoolSequence(values []bool) string {
	if len(values) == 0 {
		return respEmptyList
	}
	lines := make([]string, len(values))
	for i, v := range values {
		lines[i] = fmt.Sprintf("%d) %s", i+1, renderBool(v))
	}
	return strings.Join(lines, "\n")
}

func renderHash(fields map[string]string) string {
	if len(fields) == 0 {
		return respEmptyHash
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = fmt.Sprintf("%d) %s: %s", i+1, k, fields[k])
	}
	return strings.Join(lines, "\n")
}

func sortedCopy(items []string) []string {
	out := append([]string{}, items...)
	sort.Strings(out)
	return out
}
