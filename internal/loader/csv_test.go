package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadCSV(t *testing.T) {
	t.Run("parses well-formed rows", func(t *testing.T) {
		path := writeCSV(t, `activity name,time started,time ended,duration minutes,categories,comment
Alice,2024-01-01 09:00:00,2024-01-01 10:00:00,60,Enablement,onboarding session
:Development,2024-01-02 09:00:00,2024-01-02 11:00:00,120,Development,
`)
		records, err := ReadCSV(path, zap.NewNop())
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, "Alice", records[0].Actor)
		assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), records[0].StartedAt)
		assert.Equal(t, 60.0, records[0].Minutes)
		assert.Equal(t, "Enablement", records[0].Category)
		assert.Equal(t, "onboarding session", records[0].Comment)

		assert.Equal(t, ":Development", records[1].Actor)
		assert.Empty(t, records[1].Comment)
	})

	t.Run("header matching is case-insensitive", func(t *testing.T) {
		path := writeCSV(t, `Activity Name,Time Started,Time Ended,Duration Minutes,Categories,Comment
Alice,2024-01-01,2024-01-01,30,Enablement,notes
`)
		records, err := ReadCSV(path, zap.NewNop())
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("missing required column fails", func(t *testing.T) {
		path := writeCSV(t, `activity name,time started,categories
Alice,2024-01-01,Enablement
`)
		_, err := ReadCSV(path, zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duration minutes")
	})

	t.Run("invalid rows are skipped, valid rows kept", func(t *testing.T) {
		path := writeCSV(t, `activity name,time started,time ended,duration minutes,categories,comment
Alice,2024-01-01 09:00:00,2024-01-01 10:00:00,60,Enablement,ok
Bob,not-a-date,2024-01-01 10:00:00,60,Enablement,bad start
Carol,2024-01-01 09:00:00,2024-01-01 10:00:00,-5,Enablement,negative duration
,2024-01-01 09:00:00,2024-01-01 10:00:00,60,Enablement,missing actor
Dave,2024-01-03 09:00:00,2024-01-03 09:30:00,30,Support,fine too
`)
		records, err := ReadCSV(path, zap.NewNop())
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "Alice", records[0].Actor)
		assert.Equal(t, "Dave", records[1].Actor)
	})

	t.Run("accepts several timestamp layouts", func(t *testing.T) {
		path := writeCSV(t, `activity name,time started,time ended,duration minutes,categories,comment
Alice,2024-01-01T09:00:00Z,2024-01-01T10:00:00Z,60,Enablement,rfc3339
Bob,2024-01-02,2024-01-02,45,Enablement,date only
`)
		records, err := ReadCSV(path, zap.NewNop())
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, 9, records[0].StartedAt.Hour())
		assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), records[1].StartedAt)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"), zap.NewNop())
		assert.Error(t, err)
	})
}
