package battle

import (
	"fmt"
	"strings"
)

// LogEntry is one recorded event during a battle.
type LogEntry struct {
	Round    int
	Actor    string  // combatant label e.g. "A0", "B3", or "--" for team/battle events
	Side     string  // "A", "B", or "--"
	Category string  // action, damage, faint, reorder, battle, xp, invariant
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[R=042] A0   damage    dealt            18 (super_effective)
func (e LogEntry) String() string {
	return fmt.Sprintf("[R=%03d] %-4s %-9s %-16s %s",
		e.Round, e.Actor, e.Category, e.Key, e.Value)
}

// BattleLog collects the ordered turn log of an encounter. Unlike a display
// buffer it is unbounded and machine-readable; tests and reports query it.
type BattleLog struct {
	entries []LogEntry
	verbose bool
}

// NewBattleLog creates a log. If verbose is true, per-action HP snapshots are
// also recorded.
func NewBattleLog(verbose bool) *BattleLog {
	return &BattleLog{verbose: verbose}
}

// Add records a new entry.
func (bl *BattleLog) Add(round int, actor, side, category, key, value string, numVal float64) {
	bl.entries = append(bl.entries, LogEntry{
		Round:    round,
		Actor:    actor,
		Side:     side,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (bl *BattleLog) AddVerbose(round int, actor, side, category, key, value string, numVal float64) {
	if !bl.verbose {
		return
	}
	bl.Add(round, actor, side, category, key, value, numVal)
}

// Entries returns all recorded entries in order.
func (bl *BattleLog) Entries() []LogEntry {
	return bl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (bl *BattleLog) Filter(category, key string) []LogEntry {
	var out []LogEntry
	for _, e := range bl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterActor returns entries for a specific combatant label.
func (bl *BattleLog) FilterActor(label string) []LogEntry {
	var out []LogEntry
	for _, e := range bl.entries {
		if e.Actor == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterRoundRange returns entries within [from, to] inclusive.
func (bl *BattleLog) FilterRoundRange(from, to int) []LogEntry {
	var out []LogEntry
	for _, e := range bl.entries {
		if e.Round >= from && e.Round <= to {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (bl *BattleLog) CountCategory(category, key string) int {
	return len(bl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (bl *BattleLog) LastOf(category, key string) (LogEntry, bool) {
	entries := bl.Filter(category, key)
	if len(entries) == 0 {
		return LogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and
// value substring.
func (bl *BattleLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range bl.entries {
		if e.Category == category && e.Key == key && strings.Contains(e.Value, valueSubstr) {
			return true
		}
	}
	return false
}

// Dump renders the whole log as one newline-joined string.
func (bl *BattleLog) Dump() string {
	var b strings.Builder
	for _, e := range bl.entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}
