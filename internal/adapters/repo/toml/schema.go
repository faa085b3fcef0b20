package toml

import (
	"time"

	"github.com/eventer/runsheet-cli/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Sessions []sessionSchema `toml:"sessions"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) versionSupported() bool {
	return s.Version <= currentSchemaVersion
}

type sessionSchema struct {
	SlotID            string `toml:"slot_id"`
	ActualEnd         string `toml:"actual_end"`
	ScheduledEnd      string `toml:"scheduled_end"`
	DifferenceMinutes int    `toml:"difference_minutes"`
}

func toSchema(record domain.SessionEndRecord) sessionSchema {
	return sessionSchema{
		SlotID:            string(record.SlotID),
		ActualEnd:         formatTime(record.ActualEnd),
		ScheduledEnd:      formatTime(record.ScheduledEnd),
		DifferenceMinutes: record.DifferenceMinutes,
	}
}

// fromSchema rejects entries whose instants do not parse; a record without a
// valid actual end is meaningless for ordering and adjustment.
func fromSchema(entry sessionSchema) (domain.SessionEndRecord, bool) {
	actualEnd := parseTime(entry.ActualEnd)
	scheduledEnd := parseTime(entry.ScheduledEnd)
	if entry.SlotID == "" || actualEnd.IsZero() || scheduledEnd.IsZero() {
		return domain.SessionEndRecord{}, false
	}

	return domain.SessionEndRecord{
		SlotID:            domain.SlotID(entry.SlotID),
		ActualEnd:         actualEnd,
		ScheduledEnd:      scheduledEnd,
		DifferenceMinutes: entry.DifferenceMinutes,
	}, true
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
