package timestamps

import (
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agristack/fieldscope/pkg/constants"
)

func TestParseKnownLayouts(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"iso seconds", "2024-01-01 10:00:30", time.Date(2024, 1, 1, 10, 0, 30, 0, time.UTC)},
		{"iso minutes", "2024-01-01 10:00", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"report day-first", "02/01/2024 10:00:30", time.Date(2024, 1, 2, 10, 0, 30, 0, time.UTC)},
		{"date only", "2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.raw, "")
			require.True(t, ok)
			assert.True(t, got.Equal(utc.New(tt.want)))
		})
	}
}

func TestParseSoftFailure(t *testing.T) {
	for _, raw := range []string{"", "  ", "not a date", "32/13/2024 99:99:99"} {
		_, ok := Parse(raw, "")
		assert.False(t, ok, "raw=%q", raw)
	}
}

func TestParseWithExplicitLayout(t *testing.T) {
	got, ok := Parse("05/04/2024 08:30:00", constants.ReportTimeLayout)
	require.True(t, ok)
	assert.True(t, got.Equal(utc.New(time.Date(2024, 4, 5, 8, 30, 0, 0, time.UTC))), "day-first layout")

	// The explicit layout is binding: no fallback to the known set.
	_, ok = Parse("2024-01-01 10:00:00", constants.ReportTimeLayout)
	assert.False(t, ok)
}

func TestNormalizeTruncatesToMinute(t *testing.T) {
	got, ok := Normalize("2024-01-01 10:00:59", "")
	require.True(t, ok)
	assert.True(t, got.Equal(utc.New(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))))
}

func TestRoundTrip(t *testing.T) {
	// Normalizer→format→reparse yields an equal minute-truncated instant.
	for _, raw := range []string{"2024-01-01 10:00:30", "15/06/2024 23:59:59"} {
		first, ok := Normalize(raw, "")
		require.True(t, ok, raw)

		second, ok := Normalize(Key(first), "")
		require.True(t, ok, raw)
		assert.True(t, first.Equal(second), raw)
	}
}

func TestFloorHour(t *testing.T) {
	in := utc.New(time.Date(2024, 1, 1, 10, 59, 59, 0, time.UTC))
	assert.True(t, FloorHour(in).Equal(utc.New(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))))
}

func TestDisplayLayout(t *testing.T) {
	in := utc.New(time.Date(2024, 1, 2, 10, 5, 0, 0, time.UTC))
	assert.Equal(t, "02/01/2024 10:05:00", Display(in))
}

func TestKeyLayout(t *testing.T) {
	in := utc.New(time.Date(2024, 1, 2, 10, 5, 0, 0, time.UTC))
	assert.Equal(t, "2024-01-02 10:05", Key(in))
}
