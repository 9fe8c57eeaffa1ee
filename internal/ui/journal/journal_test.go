package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pomopro/internal/core/ledger"
	"pomopro/internal/core/model"
)

func TestFormatEmpty(t *testing.T) {
	assert.Equal(t, "No journal entries yet.", Format(nil))
}

func TestFormatGroupsByDay(t *testing.T) {
	at := time.Date(2024, 2, 1, 9, 30, 0, 0, time.Local)
	days := []ledger.JournalDay{
		{Date: "2024-02-01", Entries: []model.SessionRecord{
			{Timestamp: at, Task: "parser", Notes: "tokens done"},
			{Timestamp: at.Add(time.Hour), Notes: "line one\nline two"},
		}},
		{Date: "2024-02-02", Entries: []model.SessionRecord{
			{Timestamp: at.AddDate(0, 0, 1), Notes: "review"},
		}},
	}

	want := "2024-02-01\n" +
		"  09:30 [parser] tokens done\n" +
		"  10:30 line one\n        line two\n" +
		"\n2024-02-02\n" +
		"  09:30 review\n"
	assert.Equal(t, want, Format(days))
}
