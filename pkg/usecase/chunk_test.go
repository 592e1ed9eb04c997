package usecase_test

import (
	"testing"

	"github.com/abhiram98920/teamtracker/pkg/domain/types"
	"github.com/abhiram98920/teamtracker/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestDateChunks(t *testing.T) {
	t.Run("splits most recent first and clips the oldest chunk", func(t *testing.T) {
		chunks := usecase.DateChunks("2026-02-11", 70, 31)
		gt.Array(t, chunks).Length(3).Required()

		gt.Value(t, chunks[0]).Equal(usecase.DateRange{Start: "2026-01-12", Stop: "2026-02-11"})
		gt.Value(t, chunks[1]).Equal(usecase.DateRange{Start: "2025-12-12", Stop: "2026-01-11"})
		gt.Value(t, chunks[2]).Equal(usecase.DateRange{Start: "2025-12-04", Stop: "2025-12-11"})
	})

	t.Run("single day window", func(t *testing.T) {
		chunks := usecase.DateChunks("2026-02-11", 1, 31)
		gt.Array(t, chunks).Length(1).Required()
		gt.Value(t, chunks[0]).Equal(usecase.DateRange{Start: "2026-02-11", Stop: "2026-02-11"})
	})

	t.Run("covers the default history window", func(t *testing.T) {
		chunks := usecase.DateChunks("2026-02-11", 730, 31)
		gt.Array(t, chunks).Length(24).Required()

		days := 0
		for _, c := range chunks {
			for d := c.Start; !d.After(c.Stop); d = d.AddDays(1) {
				days++
			}
		}
		gt.Number(t, days).Equal(730)
		gt.Value(t, chunks[len(chunks)-1].Start).Equal(types.Date("2024-02-13"))
	})

	t.Run("invalid arguments", func(t *testing.T) {
		gt.Array(t, usecase.DateChunks("", 10, 5)).Length(0)
		gt.Array(t, usecase.DateChunks("2026-02-11", 0, 5)).Length(0)
		gt.Array(t, usecase.DateChunks("2026-02-11", 10, 0)).Length(0)
	})
}

func TestChunkIDs(t *testing.T) {
	chunks := usecase.ChunkIDs([]int64{1, 2, 3, 4, 5}, 2)
	gt.Value(t, chunks).Equal([][]int64{{1, 2}, {3, 4}, {5}})

	gt.Array(t, usecase.ChunkIDs(nil, 20)).Length(0)
}
