package stats

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"elprimobot/logger"
)

// Ledger is the durable record of when each member was last seen,
// stored as one "username;timestamp" line per member (ms since epoch).
// It is read in full at the start of a cycle and rewritten in full at
// the end; a crash mid-cycle loses only that cycle's update.
type Ledger struct {
	path string
}

func NewLedger(path string) *Ledger {
	return &Ledger{path: path}
}

// Load reads the ledger file. A missing or unreadable file means "no
// history" and yields an empty map; it never fails the cycle. Malformed
// lines and blank usernames are skipped.
func (l *Ledger) Load() map[string]int64 {
	entries := make(map[string]int64)

	data, err := os.ReadFile(l.path)
	if err != nil {
		logger.Log.WithError(err).Infof("No activity ledger at %s, starting fresh", l.path)
		return entries
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		username, value, found := strings.Cut(line, ";")
		if !found || username == "" {
			continue
		}
		ts, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			logger.Log.Debugf("Skipping malformed ledger line %q", line)
			continue
		}
		entries[username] = ts
	}

	return entries
}

// Persist overwrites the ledger file with the full set of entries in a
// single write. Callers log the returned error and move on; a failed
// write only means the next cycle re-derives from the previous state.
func (l *Ledger) Persist(entries map[string]int64) error {
	usernames := make([]string, 0, len(entries))
	for username := range entries {
		usernames = append(usernames, username)
	}
	sort.Strings(usernames)

	lines := make([]string, 0, len(usernames))
	for _, username := range usernames {
		lines = append(lines, fmt.Sprintf("%s;%d", username, entries[username]))
	}

	if err := os.WriteFile(l.path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return fmt.Errorf("error writing activity ledger: %w", err)
	}
	return nil
}
