package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomopro/internal/core/model"
)

func day(value string) time.Time {
	parsed, err := time.ParseInLocation(model.DateLayout, value, time.Local)
	if err != nil {
		panic(err)
	}
	return parsed.Add(10 * time.Hour)
}

func focus(at time.Time) model.SessionRecord {
	return model.SessionRecord{
		Phase:           model.PhaseFocus,
		DurationMinutes: 25,
		Completed:       true,
		Timestamp:       at,
	}
}

type failingStore struct {
	appendCalls int
	saveCalls   int
}

var errDiskFull = errors.New("disk full")

func (store *failingStore) LoadSessionLog() ([]model.SessionRecord, error) {
	return nil, errDiskFull
}

func (store *failingStore) AppendSessionRecord(model.SessionRecord) error {
	store.appendCalls++
	return errDiskFull
}

func (store *failingStore) LoadStatistics() (model.Statistics, error) {
	return model.Statistics{}, errDiskFull
}

func (store *failingStore) SaveStatistics(model.Statistics) error {
	store.saveCalls++
	return errDiskFull
}

func TestSameDaySessionsDoNotDoubleCountStreak(t *testing.T) {
	ledger := New(NewMemoryStore())

	stats := ledger.Record(focus(day("2024-01-01")))
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, "2024-01-01", stats.LastStreakDate)
	assert.Equal(t, 1, stats.TotalFocusSessions)

	stats = ledger.Record(focus(day("2024-01-01").Add(3 * time.Hour)))
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 2, stats.TotalFocusSessions)
	assert.Equal(t, 50, stats.TotalFocusMinutes)
}

func TestStreakContinuesOnConsecutiveDays(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.SaveStatistics(model.Statistics{CurrentStreak: 3, LastStreakDate: "2024-01-01"}))
	ledger := New(store)

	stats := ledger.Record(focus(day("2024-01-02")))
	assert.Equal(t, 4, stats.CurrentStreak)
	assert.Equal(t, "2024-01-02", stats.LastStreakDate)
}

func TestStreakResetsAfterGap(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.SaveStatistics(model.Statistics{CurrentStreak: 3, LastStreakDate: "2024-01-01"}))
	ledger := New(store)

	stats := ledger.Record(focus(day("2024-01-05")))
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, "2024-01-05", stats.LastStreakDate)
}

func TestStreakCrossesMonthBoundary(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.SaveStatistics(model.Statistics{CurrentStreak: 7, LastStreakDate: "2024-02-29"}))
	ledger := New(store)

	stats := ledger.Record(focus(day("2024-03-01")))
	assert.Equal(t, 8, stats.CurrentStreak)
}

func TestOnlyCompletedFocusSessionsCount(t *testing.T) {
	store := NewMemoryStore()
	ledger := New(store)

	skipped := focus(day("2024-01-01"))
	skipped.Completed = false
	skipped.Skipped = true
	breakRecord := model.SessionRecord{Phase: model.PhaseShortBreak, DurationMinutes: 5, Completed: true, Timestamp: day("2024-01-01")}
	incomplete := focus(day("2024-01-01"))
	incomplete.Completed = false

	ledger.Record(skipped)
	ledger.Record(breakRecord)
	ledger.Record(incomplete)

	assert.Equal(t, model.Statistics{}, ledger.Statistics())
	assert.Len(t, ledger.History(), 3)

	logged, err := store.LoadSessionLog()
	require.NoError(t, err)
	assert.Len(t, logged, 3)
}

func TestPersistenceFailuresAreSwallowed(t *testing.T) {
	store := &failingStore{}
	ledger := New(store)

	stats := ledger.Record(focus(day("2024-01-01")))

	assert.Equal(t, 1, stats.TotalFocusSessions)
	assert.Equal(t, 1, store.appendCalls)
	assert.Equal(t, 1, store.saveCalls)
	assert.Len(t, ledger.History(), 1)
}

func TestStatisticsOnlySavedWhenChanged(t *testing.T) {
	store := &failingStore{}
	ledger := New(store)

	ledger.Record(model.SessionRecord{Phase: model.PhaseShortBreak, Completed: true})

	assert.Equal(t, 1, store.appendCalls)
	assert.Equal(t, 0, store.saveCalls)
}

func TestRecentReturnsTail(t *testing.T) {
	ledger := New(NewMemoryStore())
	for i := 1; i <= 10; i++ {
		ledger.Record(model.SessionRecord{Phase: model.PhaseShortBreak, DurationMinutes: i})
	}

	recent := ledger.Recent(8)
	require.Len(t, recent, 8)
	assert.Equal(t, 3, recent[0].DurationMinutes)
	assert.Equal(t, 10, recent[7].DurationMinutes)

	assert.Len(t, ledger.Recent(20), 10)
}

func TestHistoryStartsEmptyButHeatmapUsesLog(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.AppendSessionRecord(focus(day("2024-01-06"))))
	require.NoError(t, store.AppendSessionRecord(focus(day("2024-01-06"))))
	require.NoError(t, store.AppendSessionRecord(focus(day("2023-12-01"))))

	ledger := New(store, WithClock(func() time.Time { return day("2024-01-07") }))
	assert.Empty(t, ledger.History())

	ledger.Record(focus(day("2024-01-07")))

	heatmap := ledger.Heatmap(3)
	assert.Equal(t, []model.DayCount{
		{Date: "2024-01-05", Count: 0},
		{Date: "2024-01-06", Count: 2},
		{Date: "2024-01-07", Count: 1},
	}, heatmap)
}

func TestClearStatistics(t *testing.T) {
	store := NewMemoryStore()
	ledger := New(store)
	ledger.Record(focus(day("2024-01-01")))

	ledger.ClearStatistics()

	assert.Equal(t, model.Statistics{}, ledger.Statistics())
	saved, err := store.LoadStatistics()
	require.NoError(t, err)
	assert.Equal(t, model.Statistics{}, saved)

	stats := ledger.Record(focus(day("2024-01-01")))
	assert.Equal(t, 1, stats.CurrentStreak)
}

func TestJournalGroupsNotesByDay(t *testing.T) {
	first := focus(day("2024-02-01"))
	first.Notes = "outline"
	silent := focus(day("2024-02-01").Add(time.Hour))
	second := focus(day("2024-02-01").Add(2 * time.Hour))
	second.Notes = "draft"
	third := focus(day("2024-02-03"))
	third.Notes = "review"

	days := Journal([]model.SessionRecord{first, silent, second, third})

	require.Len(t, days, 2)
	assert.Equal(t, "2024-02-01", days[0].Date)
	require.Len(t, days[0].Entries, 2)
	assert.Equal(t, "draft", days[0].Entries[1].Notes)
	assert.Equal(t, "2024-02-03", days[1].Date)
	assert.Empty(t, Journal(nil))
}
