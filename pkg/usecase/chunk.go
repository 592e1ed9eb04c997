package usecase

import (
	"github.com/abhiram98920/teamtracker/pkg/domain/types"
)

// DateRange is an inclusive range of days
type DateRange struct {
	Start types.Date `json:"start"`
	Stop  types.Date `json:"stop"`
}

// DateChunks splits the totalDays ending today into ranges of at most
// chunkDays, most recent first. The oldest range is clipped to the window.
func DateChunks(today types.Date, totalDays, chunkDays int) []DateRange {
	if today.IsZero() || totalDays <= 0 || chunkDays <= 0 {
		return nil
	}

	earliest := today.AddDays(-(totalDays - 1))
	chunks := make([]DateRange, 0, (totalDays+chunkDays-1)/chunkDays)

	for stop := today; !earliest.After(stop); {
		start := stop.AddDays(-(chunkDays - 1))
		if earliest.After(start) {
			start = earliest
		}
		chunks = append(chunks, DateRange{Start: start, Stop: stop})
		stop = start.AddDays(-1)
	}
	return chunks
}

// chunkIDs splits ids into consecutive groups of at most size, keeping order
func chunkIDs(ids []int64, size int) [][]int64 {
	if size <= 0 {
		size = len(ids)
	}
	var chunks [][]int64
	for len(ids) > 0 {
		n := min(size, len(ids))
		chunks = append(chunks, ids[:n:n])
		ids = ids[n:]
	}
	return chunks
}
