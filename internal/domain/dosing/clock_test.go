package dosing

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateArithmetic(t *testing.T) {
	d, err := ParseDate("2024-02-28")
	require.NoError(t, err)

	assert.Equal(t, "2024-02-29", d.AddDays(1).String())
	assert.Equal(t, "2024-03-01", d.AddDays(2).String())
	assert.Equal(t, 2, d.AddDays(2).DaysSince(d))
	assert.Equal(t, -1, d.AddDays(-1).DaysSince(d))
	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.AddDays(1).After(d))
	assert.Equal(t, NewDate(2024, time.February, 28), d)
}

func TestParseDateRejectsGarbage(t *testing.T) {
	_, err := ParseDate("06/01/2024")
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestDateJSON(t *testing.T) {
	var p struct {
		D Date `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"d":"2024-06-01"}`), &p))
	assert.Equal(t, NewDate(2024, time.June, 1), p.D)

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2024-06-01"}`, string(b))

	require.Error(t, json.Unmarshal([]byte(`{"d":"junio"}`), &p))
}

func TestTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("08:00")
	require.NoError(t, err)
	assert.Equal(t, "13:00", tod.AddHours(5).String())
	assert.Equal(t, "09:30", tod.AddHours(1.5).String())

	late, err := ParseTimeOfDay("22:00")
	require.NoError(t, err)
	assert.Equal(t, "03:00", late.AddHours(5).String(), "crossing midnight only wraps the clock")

	for _, bad := range []string{"8:00", "24:00", "08:60", "", "0800"} {
		_, err := ParseTimeOfDay(bad)
		assert.ErrorIs(t, err, ErrInvalidTime, bad)
	}
}

func TestDateAtUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*3600)
	d := NewDate(2024, time.June, 1)
	at := d.At(TimeOfDay(8*60), loc)
	assert.Equal(t, 11, at.UTC().Hour())
	assert.Equal(t, d, DateOf(at, loc))
}
