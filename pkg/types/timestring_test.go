package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("08:30")
	require.NoError(t, err)
	assert.Equal(t, "08:30", ts.String())

	_, err = NewTimeStringFromString("8:30am")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("24:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeStringToMinutes(t *testing.T) {
	min, err := TimeString("08:30").ToMinutes()
	require.NoError(t, err)
	assert.Equal(t, 510, min)

	min, err = TimeString("00:00").ToMinutes()
	require.NoError(t, err)
	assert.Equal(t, 0, min)
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts, err := TimeString("23:50").AddMinutes(20)
	require.NoError(t, err)
	assert.Equal(t, "00:10", ts.String())

	ts, err = TimeString("08:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())
}

func TestTimeStringComparison(t *testing.T) {
	assert.True(t, TimeString("08:00").IsBefore("09:00"))
	assert.False(t, TimeString("09:00").IsBefore("08:00"))
	assert.True(t, TimeString("09:00").IsAfter("08:00"))
	assert.False(t, TimeString("08:00").IsBefore("08:00"))
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("08:00:00"))
	assert.Equal(t, "08:00", ts.String())

	require.NoError(t, ts.Scan([]byte("17:45")))
	assert.Equal(t, "17:45", ts.String())

	require.NoError(t, ts.Scan(time.Date(2025, 6, 1, 9, 15, 0, 0, time.UTC)))
	assert.Equal(t, "09:15", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeStringValue(t *testing.T) {
	v, err := TimeString("08:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "08:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("bad").Value()
	assert.Error(t, err)
}
