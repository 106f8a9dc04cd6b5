package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mshel/micromouse/internal/maze"
)

func newTestService(t *testing.T) *RunHistoryService {
	t.Helper()
	service, err := NewRunHistoryService(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { service.Close() })
	return service
}

func TestSaveAndListRuns(t *testing.T) {
	service := newTestService(t)

	first := NewRun("wilson", "left-wall", maze.RunResult{Steps: 120, Crashes: 1, FinalX: 7, FinalY: 8, FinalHeading: maze.South})
	firstID, err := service.SaveRun(first)
	require.NoError(t, err)

	secondID, err := service.SaveRun(NewRun("open", "lua", maze.RunResult{Steps: 64, FinalHeading: maze.West}))
	require.NoError(t, err)
	assert.Greater(t, secondID, firstID)

	count, err := service.GetTotalRunCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	runs, err := service.GetRuns(10, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "open", runs[0].Layout, "newest first")
	got := runs[1]
	assert.Equal(t, firstID, got.ID)
	assert.Equal(t, "left-wall", got.Finder)
	assert.Equal(t, 120, got.Steps)
	assert.Equal(t, 1, got.Crashes)
	assert.Equal(t, 7, got.FinalX)
	assert.Equal(t, 8, got.FinalY)
	assert.Equal(t, "South", got.Heading)
	assert.WithinDuration(t, time.Now(), got.CreatedAt, 24*time.Hour)
}

func TestGetRunsPaging(t *testing.T) {
	service := newTestService(t)
	for i := 0; i < 5; i++ {
		_, err := service.SaveRun(Run{Layout: "open", Finder: "lua", Steps: i, Heading: "North"})
		require.NoError(t, err)
	}

	page, err := service.GetRuns(2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 2, page[0].Steps)
	assert.Equal(t, 1, page[1].Steps)

	empty, err := service.GetRuns(10, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestHistorySurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	service, err := NewRunHistoryService(path)
	require.NoError(t, err)
	_, err = service.SaveRun(Run{Layout: "serpentine", Finder: "left-wall", Heading: "South"})
	require.NoError(t, err)
	require.NoError(t, service.Close())

	reopened, err := NewRunHistoryService(path)
	require.NoError(t, err)
	defer reopened.Close()

	count, err := reopened.GetTotalRunCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
