package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	v, err := ParseTimeOfDay("08:30")
	require.NoError(t, err)
	assert.Equal(t, 510, v.Minutes())
	assert.Equal(t, "08:30", v.String())

	v, err = ParseTimeOfDay("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, v.Minutes())

	v, err = ParseTimeOfDay("23:59")
	require.NoError(t, err)
	assert.Equal(t, 1439, v.Minutes())

	for _, bad := range []string{"24:00", "12:60", "-1:00", "noon", ""} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestTimeOfDayOn(t *testing.T) {
	d := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	at := tod(t, "09:15").On(d)

	assert.Equal(t, time.Date(2025, 6, 2, 9, 15, 0, 0, time.UTC), at)
}

func TestHaversineMeters(t *testing.T) {
	// Downtown Eau Claire to Chippewa Falls, roughly 15 km apart.
	a := Coordinates{Lat: 44.8113, Lon: -91.4985}
	b := Coordinates{Lat: 44.9369, Lon: -91.3929}

	d := HaversineMeters(a, b)
	assert.InDelta(t, 16200, d, 1000)
	assert.InDelta(t, d, HaversineMeters(b, a), 0.001, "symmetric")
	assert.Zero(t, HaversineMeters(a, a))
}

func TestCoordinatesKey(t *testing.T) {
	c := Coordinates{Lat: 44.8113, Lon: -91.4985}
	assert.Equal(t, "44.81130,-91.49850", c.Key())
}
