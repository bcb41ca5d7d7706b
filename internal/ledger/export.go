package ledger

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Export serializes the full set of ledger keys to a flat key-value
// document, suitable for backup or moving to another device.
func (l *Ledger) Export() (map[string]string, error) {
	doc, err := l.store.All()
	if err != nil {
		return nil, fmt.Errorf("reading store: %w", err)
	}
	return doc, nil
}

// Import overwrites the keys present in the document and leaves all others
// untouched. The whole document is validated first; a malformed document is
// rejected with no partial mutation of the store. On success the in-memory
// ledger is reloaded from the store.
func (l *Ledger) Import(doc map[string]string) error {
	for key, value := range doc {
		if err := validateEntry(key, value); err != nil {
			return fmt.Errorf("import rejected: %w", err)
		}
	}
	for key, value := range doc {
		if err := l.store.Set(key, value); err != nil {
			return fmt.Errorf("writing %q: %w", key, err)
		}
	}
	return l.reload()
}

// validateEntry checks one document entry against the key naming scheme and
// the expected value shape.
func validateEntry(key, value string) error {
	switch {
	case key == keyLastWorkoutDate:
		if value == "" {
			return nil
		}
		if _, err := time.Parse(dateLayout, value); err != nil {
			return fmt.Errorf("key %q: %q is not a calendar date", key, value)
		}
		return nil

	case key == keyTotalXP, key == keyStreak, key == keyDailyTotal,
		key == keyTotalReps, key == keyChallengeCompletions,
		strings.HasPrefix(key, keyMusclePrefix),
		strings.HasPrefix(key, keyBestPrefix):
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("key %q: %q is not an integer", key, value)
		}
		if n < 0 {
			return fmt.Errorf("key %q: negative value %d", key, n)
		}
		return nil

	case strings.HasPrefix(key, keyHistoryPrefix):
		var recs []SetRecord
		if err := json.Unmarshal([]byte(value), &recs); err != nil {
			return fmt.Errorf("key %q: invalid history JSON: %w", key, err)
		}
		return nil

	case key == keyTrophies:
		var ids []string
		if err := json.Unmarshal([]byte(value), &ids); err != nil {
			return fmt.Errorf("key %q: invalid trophy JSON: %w", key, err)
		}
		return nil

	case key == keyActivityCalendar:
		var cal map[string]bool
		if err := json.Unmarshal([]byte(value), &cal); err != nil {
			return fmt.Errorf("key %q: invalid calendar JSON: %w", key, err)
		}
		return nil
	}
	return fmt.Errorf("unknown key %q", key)
}
