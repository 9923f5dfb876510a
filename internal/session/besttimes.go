package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const (
	bestTimesFile = "besttimes.json"
	maxBestTimes  = 10
)

// BestTimeEntry is one completed run
type BestTimeEntry struct {
	Seconds float64   `json:"seconds"`
	Date    time.Time `json:"date"`
}

// BestTimes holds the fastest runs per level name
type BestTimes struct {
	Levels map[string][]BestTimeEntry `json:"levels"`
	path   string
}

// BestTimesPath is the default best times file in the saves directory.
func BestTimesPath() string {
	return filepath.Join(SaveDir(), bestTimesFile)
}

// LoadBestTimes reads the best times file. A missing or corrupt file yields
// an empty table bound to the same path.
func LoadBestTimes(path string) (*BestTimes, error) {
	bt := &BestTimes{Levels: map[string][]BestTimeEntry{}, path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return bt, nil
		}
		return nil, fmt.Errorf("failed to read best times: %w", err)
	}

	if err := json.Unmarshal(data, bt); err != nil {
		return &BestTimes{Levels: map[string][]BestTimeEntry{}, path: path}, nil
	}
	if bt.Levels == nil {
		bt.Levels = map[string][]BestTimeEntry{}
	}
	return bt, nil
}

// Save writes the table back to the file it was loaded from
func (bt *BestTimes) Save() error {
	data, err := json.MarshalIndent(bt, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(bt.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write best times: %w", err)
	}
	return nil
}

// Add records a run and returns its 1-based rank, or 0 if it did not make
// the table.
func (bt *BestTimes) Add(level string, elapsed time.Duration, when time.Time) int {
	entry := BestTimeEntry{Seconds: elapsed.Seconds(), Date: when}
	entries := append(bt.Levels[level], entry)

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Seconds < entries[j].Seconds
	})
	if len(entries) > maxBestTimes {
		entries = entries[:maxBestTimes]
	}
	bt.Levels[level] = entries

	for i, e := range entries {
		if e == entry {
			return i + 1
		}
	}
	return 0
}

// Best returns the fastest run for a level.
func (bt *BestTimes) Best(level string) (BestTimeEntry, bool) {
	entries := bt.Levels[level]
	if len(entries) == 0 {
		return BestTimeEntry{}, false
	}
	return entries[0], true
}
