package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"pomopro/internal/core/model"
)

// SessionLogFileName is the session log inside the data directory.
const SessionLogFileName = "sessions_log.csv"

const timeLayout = "15:04:05"

var sessionLogHeader = []string{
	"id", "date", "time", "phase", "duration_min", "completed", "skipped", "pause_count", "task", "notes",
}

// ErrMalformedRow marks a session log row that could not be parsed.
var ErrMalformedRow = errors.New("malformed session log row")

// SessionLogPath returns the session log location inside dir.
func SessionLogPath(dir string) string {
	return filepath.Join(dir, SessionLogFileName)
}

// AppendSessionRecord appends one row, writing the header first when the log is new.
func AppendSessionRecord(dir string, record model.SessionRecord) error {
	file, err := openSessionLog(dir)
	if err != nil {
		return err
	}
	return appendAndClose(file, record)
}

// sessionLogFile is the open session log as appendAndClose uses it.
type sessionLogFile interface {
	io.WriteCloser
	Stat() (os.FileInfo, error)
}

// appendAndClose writes one row and closes file. A failed close is reported,
// since buffered data may not have reached the disk.
func appendAndClose(file sessionLogFile, record model.SessionRecord) error {
	if err := appendRow(file, record); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close session log: %w", err)
	}
	return nil
}

func openSessionLog(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	file, err := os.OpenFile(SessionLogPath(dir), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open session log: %w", err)
	}
	return file, nil
}

// appendRow writes record, preceded by the header when the file is empty.
func appendRow(file sessionLogFile, record model.SessionRecord) error {
	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat session log: %w", err)
	}

	writer := csv.NewWriter(file)
	if info.Size() == 0 {
		if err := writer.Write(sessionLogHeader); err != nil {
			return fmt.Errorf("write session log header: %w", err)
		}
	}
	if err := writer.Write(encodeRecord(record)); err != nil {
		return fmt.Errorf("write session log row: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush session log: %w", err)
	}
	return nil
}

// LoadSessionLog reads every row of the session log in file order. Malformed rows
// are skipped and reported together in the returned error; the parsed rows are
// returned either way. A missing log yields no records.
func LoadSessionLog(dir string) ([]model.SessionRecord, error) {
	file, err := os.Open(SessionLogPath(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open session log: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var (
		records []model.SessionRecord
		errs    []error
	)
	for line := 1; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			errs = append(errs, fmt.Errorf("%w: %w", ErrMalformedRow, err))
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("read session log: %w", err))
			break
		}
		if line == 1 && len(row) > 0 && row[0] == sessionLogHeader[0] {
			continue
		}
		record, err := decodeRecord(row)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		records = append(records, record)
	}
	return records, errors.Join(errs...)
}

// ExportSessionLog writes the session log as CSV to dest and returns the number of rows.
func ExportSessionLog(dir, dest string) (int, error) {
	records, err := LoadSessionLog(dir)
	if err != nil && len(records) == 0 {
		return 0, err
	}

	file, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()

	if err := WriteSessionLog(file, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// WriteSessionLog encodes records with the session log header.
func WriteSessionLog(w io.Writer, records []model.SessionRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(sessionLogHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, record := range records {
		if err := writer.Write(encodeRecord(record)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func encodeRecord(record model.SessionRecord) []string {
	local := record.Timestamp.Local()
	return []string{
		record.ID,
		local.Format(model.DateLayout),
		local.Format(timeLayout),
		string(record.Phase),
		strconv.Itoa(record.DurationMinutes),
		strconv.FormatBool(record.Completed),
		strconv.FormatBool(record.Skipped),
		strconv.Itoa(record.PauseCount),
		record.Task,
		record.Notes,
	}
}

func decodeRecord(row []string) (model.SessionRecord, error) {
	if len(row) != len(sessionLogHeader) {
		return model.SessionRecord{}, fmt.Errorf("%w: %d fields", ErrMalformedRow, len(row))
	}

	timestamp, err := time.ParseInLocation(model.DateLayout+" "+timeLayout, row[1]+" "+row[2], time.Local)
	if err != nil {
		return model.SessionRecord{}, fmt.Errorf("%w: timestamp: %v", ErrMalformedRow, err)
	}
	phase, ok := model.ParsePhase(row[3])
	if !ok {
		return model.SessionRecord{}, fmt.Errorf("%w: phase %q", ErrMalformedRow, row[3])
	}
	duration, err := strconv.Atoi(row[4])
	if err != nil {
		return model.SessionRecord{}, fmt.Errorf("%w: duration: %v", ErrMalformedRow, err)
	}
	completed, err := strconv.ParseBool(row[5])
	if err != nil {
		return model.SessionRecord{}, fmt.Errorf("%w: completed: %v", ErrMalformedRow, err)
	}
	skipped, err := strconv.ParseBool(row[6])
	if err != nil {
		return model.SessionRecord{}, fmt.Errorf("%w: skipped: %v", ErrMalformedRow, err)
	}
	pauses, err := strconv.Atoi(row[7])
	if err != nil {
		return model.SessionRecord{}, fmt.Errorf("%w: pause count: %v", ErrMalformedRow, err)
	}

	return model.SessionRecord{
		ID:              row[0],
		Phase:           phase,
		DurationMinutes: duration,
		Completed:       completed,
		Skipped:         skipped,
		PauseCount:      pauses,
		Timestamp:       timestamp,
		Task:            row[8],
		Notes:           row[9],
	}, nil
}
