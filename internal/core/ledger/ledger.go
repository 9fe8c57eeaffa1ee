// Package ledger keeps the history of finalized sessions and the focus statistics.
package ledger

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pomopro/internal/core/model"
)

// Store is the durable side of the ledger.
type Store interface {
	LoadSessionLog() ([]model.SessionRecord, error)
	AppendSessionRecord(record model.SessionRecord) error
	LoadStatistics() (model.Statistics, error)
	SaveStatistics(stats model.Statistics) error
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger used for persistence failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(ledger *Ledger) {
		ledger.logger = logger
	}
}

// WithClock overrides the wall clock used for the heatmap.
func WithClock(now func() time.Time) Option {
	return func(ledger *Ledger) {
		ledger.now = now
	}
}

// Ledger records finalized sessions. It is the only writer of the statistics.
//
// History holds the sessions finalized by this process, in order; it feeds the
// adaptive estimator. Sessions loaded from the durable log are kept apart and
// only used for reporting.
type Ledger struct {
	mu      sync.Mutex
	store   Store
	logger  zerolog.Logger
	now     func() time.Time
	past    []model.SessionRecord
	history []model.SessionRecord
	stats   model.Statistics
}

// New loads the persisted log and statistics. Load failures are logged and the
// ledger starts empty.
func New(store Store, options ...Option) *Ledger {
	ledger := &Ledger{
		store:  store,
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, option := range options {
		option(ledger)
	}

	past, err := store.LoadSessionLog()
	if err != nil {
		ledger.logger.Warn().Err(err).Msg("load session log")
	}
	ledger.past = past

	stats, err := store.LoadStatistics()
	if err != nil {
		ledger.logger.Warn().Err(err).Msg("load statistics")
		stats = model.Statistics{}
	}
	ledger.stats = stats
	return ledger
}

// Record appends a finalized session and updates the statistics when it is a
// completed, non-skipped focus session. It returns the statistics after the update.
func (ledger *Ledger) Record(record model.SessionRecord) model.Statistics {
	ledger.mu.Lock()
	ledger.history = append(ledger.history, record)
	changed := record.CountsTowardStats()
	if changed {
		day := record.Timestamp
		if day.IsZero() {
			day = ledger.now()
		}
		ledger.stats.TotalFocusSessions++
		ledger.stats.TotalFocusMinutes += record.DurationMinutes
		ledger.stats = advanceStreak(ledger.stats, day)
	}
	stats := ledger.stats
	ledger.mu.Unlock()

	if err := ledger.store.AppendSessionRecord(record); err != nil {
		ledger.logger.Error().Err(err).
			Str("session_id", record.ID).
			Str("phase", string(record.Phase)).
			Msg("append session record")
	}
	if changed {
		if err := ledger.store.SaveStatistics(stats); err != nil {
			ledger.logger.Error().Err(err).Msg("save statistics")
		}
	}
	return stats
}

// Recent returns up to n of the most recent sessions of this process, oldest first.
func (ledger *Ledger) Recent(n int) []model.SessionRecord {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	start := 0
	if n >= 0 && len(ledger.history) > n {
		start = len(ledger.history) - n
	}
	return append([]model.SessionRecord(nil), ledger.history[start:]...)
}

// History returns every session finalized by this process.
func (ledger *Ledger) History() []model.SessionRecord {
	return ledger.Recent(-1)
}

// Statistics returns a copy of the current statistics.
func (ledger *Ledger) Statistics() model.Statistics {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	return ledger.stats
}

// Heatmap counts completed focus sessions for each of the last days days, oldest first.
func (ledger *Ledger) Heatmap(days int) []model.DayCount {
	ledger.mu.Lock()
	records := make([]model.SessionRecord, 0, len(ledger.past)+len(ledger.history))
	records = append(records, ledger.past...)
	records = append(records, ledger.history...)
	ledger.mu.Unlock()

	return Heatmap(records, ledger.now(), days)
}

// ClearStatistics zeroes the totals and the streak.
func (ledger *Ledger) ClearStatistics() {
	ledger.mu.Lock()
	ledger.stats = model.Statistics{}
	ledger.mu.Unlock()

	if err := ledger.store.SaveStatistics(model.Statistics{}); err != nil {
		ledger.logger.Error().Err(err).Msg("save cleared statistics")
	}
}

// Heatmap counts completed focus sessions per calendar day for the days ending at today.
func Heatmap(records []model.SessionRecord, today time.Time, days int) []model.DayCount {
	if days <= 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, record := range records {
		if record.CountsTowardStats() {
			counts[record.Day()]++
		}
	}

	heatmap := make([]model.DayCount, 0, days)
	for offset := days - 1; offset >= 0; offset-- {
		date := today.AddDate(0, 0, -offset).Format(model.DateLayout)
		heatmap = append(heatmap, model.DayCount{Date: date, Count: counts[date]})
	}
	return heatmap
}

// advanceStreak counts day toward the streak: a second session on the same day
// leaves it unchanged, the day after the last one extends it, any gap restarts it.
func advanceStreak(stats model.Statistics, day time.Time) model.Statistics {
	today := day.Format(model.DateLayout)
	yesterday := day.AddDate(0, 0, -1).Format(model.DateLayout)

	switch stats.LastStreakDate {
	case today:
	case yesterday:
		stats.CurrentStreak++
	default:
		stats.CurrentStreak = 1
	}
	stats.LastStreakDate = today
	return stats
}

// JournalDay holds the journaled sessions of one calendar day.
type JournalDay struct {
	Date    string
	Entries []model.SessionRecord
}

// Journal groups records that carry notes by day, keeping their order.
func Journal(records []model.SessionRecord) []JournalDay {
	var days []JournalDay
	index := make(map[string]int)
	for _, record := range records {
		if record.Notes == "" {
			continue
		}
		day := record.Day()
		position, ok := index[day]
		if !ok {
			position = len(days)
			index[day] = position
			days = append(days, JournalDay{Date: day})
		}
		days[position].Entries = append(days[position].Entries, record)
	}
	return days
}
