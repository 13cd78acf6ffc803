package extract

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchStatsSnapshotPercentiles(t *testing.T) {
	stats := NewFetchStats()
	for _, ms := range []int64{500, 100, 300, 200, 400} {
		stats.Record(ms)
	}

	snap := stats.Snapshot()
	assert.Equal(t, 5, snap.Count)
	assert.Equal(t, int64(100), snap.MinMs)
	assert.Equal(t, int64(500), snap.MaxMs)
	assert.Equal(t, 300.0, snap.AvgMs)
	assert.Equal(t, 300.0, snap.P50Ms)
	assert.Equal(t, 480.0, snap.P95Ms)
	assert.Equal(t, 496.0, snap.P99Ms)
}

func TestFetchStatsEmpty(t *testing.T) {
	assert.Equal(t, StatsSnapshot{}, NewFetchStats().Snapshot())
}

func TestFetchStatsRecordClampsNegativeDuration(t *testing.T) {
	stats := NewFetchStats()
	stats.Record(-10)
	snap := stats.Snapshot()
	assert.Equal(t, 1, snap.Count)
	assert.Equal(t, int64(0), snap.MaxMs)
}

func TestFetchStatsConcurrentRecord(t *testing.T) {
	stats := NewFetchStats()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			stats.Record(int64(i))
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, stats.Snapshot().Count)
}
