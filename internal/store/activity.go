package store

import (
	"context"
	"fmt"
	"time"

	"github.com/afjrotc/logistics/internal/kv"
	"github.com/afjrotc/logistics/internal/model"
)

// MaxActivityEntries is the number of entries the activity log retains.
const MaxActivityEntries = 50

// TimestampLayout is the ISO-8601 layout of activity timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ActivityLog is the most-recent-first record of user actions. Entries are
// never edited; only the oldest fall off past MaxActivityEntries.
type ActivityLog struct {
	kv      kv.Store
	now     func() time.Time
	entries []model.ActivityEntry
}

// NewActivityLog returns an empty log persisted to s. nil now means time.Now.
func NewActivityLog(s kv.Store, now func() time.Time) *ActivityLog {
	if now == nil {
		now = time.Now
	}
	return &ActivityLog{kv: s, now: now}
}

// Load reads the persisted log. A missing key is an empty log.
func (l *ActivityLog) Load(ctx context.Context) error {
	var entries []model.ActivityEntry
	if _, err := kv.GetJSON(ctx, l.kv, kv.KeyActivity, &entries); err != nil {
		return fmt.Errorf("loading activity: %w", err)
	}
	if len(entries) > MaxActivityEntries {
		entries = entries[:MaxActivityEntries]
	}
	l.entries = entries
	return nil
}

// Record prepends an entry stamped with the current time and drops anything
// beyond MaxActivityEntries.
func (l *ActivityLog) Record(ctx context.Context, actor, action, item string) (model.ActivityEntry, error) {
	entry := model.ActivityEntry{
		Timestamp: l.now().UTC().Format(TimestampLayout),
		User:      actor,
		Action:    action,
		Item:      item,
	}

	n := min(len(l.entries)+1, MaxActivityEntries)
	entries := make([]model.ActivityEntry, 0, n)
	entries = append(entries, entry)
	entries = append(entries, l.entries[:n-1]...)
	l.entries = entries

	if err := kv.SetJSON(ctx, l.kv, kv.KeyActivity, l.entries); err != nil {
		return entry, persistErr(err)
	}
	return entry, nil
}

// Recent returns up to n newest entries, newest first. n <= 0 returns all.
func (l *ActivityLog) Recent(n int) []model.ActivityEntry {
	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]model.ActivityEntry, n)
	copy(out, l.entries[:n])
	return out
}

// Len returns the number of retained entries.
func (l *ActivityLog) Len() int {
	return len(l.entries)
}
