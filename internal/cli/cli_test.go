package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomopro/internal/core/model"
	"pomopro/internal/storage"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	jsonOutput = false
	historyLimit = 20
	statsDays = heatmapDays

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func seedLog(t *testing.T, dir string) {
	t.Helper()
	now := time.Now()
	records := []model.SessionRecord{
		{ID: "a", Phase: model.PhaseFocus, DurationMinutes: 25, Completed: true, Timestamp: now, Task: "docs", Notes: "outlined the guide"},
		{ID: "b", Phase: model.PhaseShortBreak, DurationMinutes: 5, Completed: true, Timestamp: now},
		{ID: "c", Phase: model.PhaseFocus, DurationMinutes: 25, Skipped: true, PauseCount: 2, Timestamp: now},
	}
	for _, record := range records {
		require.NoError(t, storage.AppendSessionRecord(dir, record))
	}
	require.NoError(t, storage.SaveStatistics(dir, model.Statistics{
		TotalFocusSessions: 1,
		TotalFocusMinutes:  25,
		CurrentStreak:      1,
		LastStreakDate:     now.Format("2006-01-02"),
	}))
}

func TestStatsCommand(t *testing.T) {
	dir := t.TempDir()
	seedLog(t, dir)

	out, err := executeCommand(t, "stats", "--data-dir", dir)

	require.NoError(t, err)
	assert.Contains(t, out, "Focus statistics")
	assert.Contains(t, out, "1 day(s)")
	assert.Contains(t, out, time.Now().Format("2006-01-02"))
}

func TestStatsCommandJSON(t *testing.T) {
	dir := t.TempDir()
	seedLog(t, dir)

	out, err := executeCommand(t, "stats", "--data-dir", dir, "--json", "--days", "3")
	require.NoError(t, err)

	var got statsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.TotalFocusSessions)
	assert.Equal(t, 25, got.TotalFocusMinutes)
	require.Len(t, got.Heatmap, 3)
	assert.Equal(t, 1, got.Heatmap[2].Count)
}

func TestStatsCommandRejectsDays(t *testing.T) {
	_, err := executeCommand(t, "stats", "--data-dir", t.TempDir(), "--days", "0")

	assert.Error(t, err)
}

func TestHistoryCommandNewestFirst(t *testing.T) {
	dir := t.TempDir()
	seedLog(t, dir)

	out, err := executeCommand(t, "history", "--data-dir", dir, "-n", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "skipped")
	assert.Contains(t, out, "Short Break")
	assert.NotContains(t, out, "[docs]")
	assert.Less(t, bytes.Index([]byte(out), []byte("skipped")), bytes.Index([]byte(out), []byte("Short Break")))
}

func TestHistoryCommandEmpty(t *testing.T) {
	out, err := executeCommand(t, "history", "--data-dir", t.TempDir())

	require.NoError(t, err)
	assert.Contains(t, out, "No sessions yet.")
}

func TestJournalCommand(t *testing.T) {
	dir := t.TempDir()
	seedLog(t, dir)

	out, err := executeCommand(t, "journal", "--data-dir", dir)

	require.NoError(t, err)
	assert.Contains(t, out, "outlined the guide")
	assert.Contains(t, out, "[docs]")
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	seedLog(t, dir)
	dest := filepath.Join(t.TempDir(), "export.csv")

	out, err := executeCommand(t, "export", dest, "--data-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 3 sessions")

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "outlined the guide")
}

func TestClearStatsKeepsLog(t *testing.T) {
	dir := t.TempDir()
	seedLog(t, dir)

	_, err := executeCommand(t, "clear-stats", "--data-dir", dir)
	require.NoError(t, err)

	stats, err := storage.LoadStatistics(dir)
	require.NoError(t, err)
	assert.Equal(t, model.Statistics{}, stats)

	records, err := storage.LoadSessionLog(dir)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestAlarmCommandRejectsBadTime(t *testing.T) {
	_, err := executeCommand(t, "alarm", "25:00", "--data-dir", t.TempDir())

	assert.Error(t, err)
}

func TestNewestFirst(t *testing.T) {
	records := []model.SessionRecord{{ID: "1"}, {ID: "2"}, {ID: "3"}}

	assert.Equal(t, []model.SessionRecord{{ID: "3"}, {ID: "2"}}, newestFirst(records, 2))
	assert.Len(t, newestFirst(records, 0), 3)
	assert.Empty(t, newestFirst(nil, 5))
}

func TestSettingsCommandShowsDefaultsAndOverrides(t *testing.T) {
	out, err := executeCommand(t, "settings", "--data-dir", t.TempDir())

	require.NoError(t, err)
	assert.Contains(t, out, "settings.yaml")
	assert.Contains(t, out, "focus:              25 min")
	assert.Contains(t, out, "POMOPRO_FOCUS_MINUTES")
}
