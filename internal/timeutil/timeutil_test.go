package timeutil_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"suilog/internal/timeutil"
)

func TestParseClock(t *testing.T) {
	minutes, err := timeutil.ParseClock("13:00")
	require.NoError(t, err)
	require.Equal(t, 780, minutes)

	minutes, err = timeutil.ParseClock("00:00")
	require.NoError(t, err)
	require.Equal(t, 0, minutes)

	minutes, err = timeutil.ParseClock("23:59")
	require.NoError(t, err)
	require.Equal(t, 1439, minutes)
}

func TestParseClockRejectsMalformedInput(t *testing.T) {
	for _, input := range []string{"", "13", "13:00:00", "ab:cd", "24:00", "12:60", "-1:30"} {
		_, err := timeutil.ParseClock(input)
		require.Error(t, err, "input %q", input)
	}
}

func TestDuration(t *testing.T) {
	d, err := timeutil.Duration("13:00", "14:30")
	require.NoError(t, err)
	require.Equal(t, 90, d)
}

func TestDurationDoesNotClampNegative(t *testing.T) {
	d, err := timeutil.Duration("14:30", "13:00")
	require.NoError(t, err)
	require.Equal(t, -90, d)
}
