// FILE: lixenwraith/loclog/integration_test.go
package loclog

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFullLifecycle drives two loggers across two midnights with a fake clock
func TestFullLifecycle(t *testing.T) {
	dir := t.TempDir()
	clock := newFakeClock(localTime(9, 18, 30, 0))
	reg := NewRegistry(WithTimeSource(clock.Now))

	api := reg.GetLoggerInDir("api", dir, LevelInfo)
	db := reg.GetLogger("db", filepath.Join(dir, "db.log"))

	api.Debug("hidden")
	api.Info("day one")
	db.Debug("query")

	clock.Set(localTime(10, 0, 0, 0))
	api.Warning("day two")

	// db writes nothing on day two, so it rotates once on day three
	clock.Set(localTime(11, 7, 15, 0))
	api.Error("day three")
	db.Info("day three")

	require.NoError(t, reg.Close())

	assert.Equal(t, []string{
		"api",
		"api.20240609.183000.log",
		"api.20240610.000000.log",
		"db.log",
		"db.log.20240609.183000.log",
	}, dirEntries(t, dir))

	archived := readLines(t, filepath.Join(dir, "api.20240609.183000.log"))
	require.Len(t, archived, 1)
	assert.True(t, strings.HasPrefix(archived[0], "api          2024-06-09 18:30:00 INFO     (integration_test.go:"), archived[0])
	assert.True(t, strings.HasSuffix(archived[0], ":TestFullLifecycle() - day one"), archived[0])

	dayTwo := readLines(t, filepath.Join(dir, "api.20240610.000000.log"))
	require.Len(t, dayTwo, 1)
	assert.Contains(t, dayTwo[0], " 2024-06-10 00:00:00 WARNING  ")

	live := readLines(t, filepath.Join(dir, "api"))
	require.Len(t, live, 1)
	assert.Contains(t, live[0], " 2024-06-11 07:15:00 ERROR    ")

	dbArchive := readLines(t, filepath.Join(dir, "db.log.20240609.183000.log"))
	require.Len(t, dbArchive, 1)
	assert.True(t, strings.HasSuffix(dbArchive[0], " - query"))
	assert.Len(t, readLines(t, filepath.Join(dir, "db.log")), 1)
}

// TestConcurrentLoggingAcrossRollover checks that no line is lost or split when
// many goroutines log while the day changes
func TestConcurrentLoggingAcrossRollover(t *testing.T) {
	dir := t.TempDir()
	clock := newFakeClock(localTime(9, 23, 59, 0))
	reg := NewRegistry(WithTimeSource(clock.Now))
	defer reg.Close()

	logger := reg.GetLoggerInDir("busy", dir)

	const workers, perWorker = 8, 100
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if id == 0 && i == perWorker/2 {
					clock.Set(localTime(10, 0, 0, 1))
				}
				logger.Infof("worker=%d seq=%d", id, i)
			}
		}(w)
	}
	wg.Wait()

	st := logger.Stats()
	assert.Equal(t, uint64(workers*perWorker), st.Logged)
	assert.Equal(t, uint64(0), st.Dropped)
	require.NotNil(t, st.File)
	assert.Equal(t, uint64(1), st.File.Rotations)

	seen := make(map[string]bool)
	for _, name := range dirEntries(t, dir) {
		for _, line := range readLines(t, filepath.Join(dir, name)) {
			require.True(t, strings.HasPrefix(line, "busy "), line)
			idx := strings.Index(line, " - worker=")
			require.GreaterOrEqual(t, idx, 0, line)
			seen[line[idx+3:]] = true
		}
	}
	assert.Len(t, seen, workers*perWorker)
	assert.True(t, seen[fmt.Sprintf("worker=%d seq=%d", workers-1, perWorker-1)])
}
