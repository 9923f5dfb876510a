package game

import (
	"fmt"
	"log"
	"time"

	"gridcaster/internal/session"
)

// recordBestTime adds a finished run to the best times table and saves it.
// It returns the run's rank, or 0 if it did not place or bt is nil.
func recordBestTime(bt *session.BestTimes, res session.Result, now time.Time) int {
	if bt == nil {
		return 0
	}
	rank := bt.Add(res.Level, res.Elapsed, now)
	if rank == 0 {
		return 0
	}
	if err := bt.Save(); err != nil {
		log.Printf("Warning: %v", err)
	}
	log.Printf("[Level] %s: %.2fs placed #%d", res.Level, res.Elapsed.Seconds(), rank)
	return rank
}

// completionLines is the text of the end-of-run banner.
func completionLines(res session.Result, rank int, best *session.BestTimeEntry) []string {
	lines := []string{
		fmt.Sprintf("Level %s completed in %.2f seconds!", res.Level, res.Elapsed.Seconds()),
	}
	switch {
	case rank == 1:
		lines = append(lines, "New best time!")
	case rank > 1:
		lines = append(lines, fmt.Sprintf("Rank #%d", rank))
	default:
		lines = append(lines, "No new record")
	}
	if best != nil {
		lines = append(lines, fmt.Sprintf("Best: %.2fs (%s)", best.Seconds, best.Date.Format("2006-01-02")))
	}
	return append(lines, "Enter/R: play again  Esc: menu")
}
