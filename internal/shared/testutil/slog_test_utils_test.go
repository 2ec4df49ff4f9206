package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures log records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("test message", slog.String("key", "value"))
		logger.Error("error message", slog.Int("code", 500))

		assert.Equal(t, 2, handler.Count())
		assert.True(t, handler.ContainsMessage("test message"))
		assert.True(t, handler.ContainsAttr("key", "value"))
	})

	t.Run("filters by level", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Debug("debug msg")
		logger.Info("info msg")
		logger.Warn("warn msg")
		logger.Error("error msg")

		assert.Len(t, handler.GetRecordsByLevel(slog.LevelInfo), 1)
		assert.Len(t, handler.GetRecordsByLevel(slog.LevelError), 1)
		AssertLogContains(t, handler, slog.LevelWarn, "warn")
	})

	t.Run("keeps attributes bound with With", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With("component", "engine").Info("started")
		logger.Info("plain")

		assert.True(t, handler.ContainsAttr("component", "engine"))
		records := handler.GetRecords()
		assert.NotContains(t, records[1].Attrs, "component")
	})
}

func TestFixtures(t *testing.T) {
	p := Punch("E1", "Ana", "2024-01-02 08:00")
	assert.Equal(t, "E1", p.Employee.Key())
	assert.Equal(t, 8, p.Timestamp.Hour())

	s := CompleteShift("E1", "2024-01-06", 9)
	assert.True(t, s.IsComplete())
	assert.True(t, s.IsWeekend)
	assert.Equal(t, 5, s.Weekday)
	h, ok := s.Hours()
	assert.True(t, ok)
	assert.InDelta(t, 9.0, h, 1e-9)

	shifts := ShiftsWithHours("Luis", "2024-01-01", 8, 8, 2)
	assert.Len(t, shifts, 3)
	assert.Equal(t, "2024-01-03", shifts[2].Date.Format(DateLayout))
}
