package dtg_test

import (
	"testing"
	"time"

	"github.com/ngageoint/six-library-sub016/dtg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat21RoundTrip(t *testing.T) {
	s := "20260725121500"
	parsed, err := dtg.ParseVersion(s, 21)
	require.NoError(t, err)
	assert.Equal(t, 2026, parsed.Year())
	assert.Equal(t, time.July, parsed.Month())
	assert.Equal(t, s, dtg.Format(parsed, 21))
}

func TestParseFormat20RoundTrip(t *testing.T) {
	s := "25121500ZJUL26"
	parsed, err := dtg.ParseVersion(s, 20)
	require.NoError(t, err)
	assert.Equal(t, 25, parsed.Day())
	assert.Equal(t, time.July, parsed.Month())
	assert.Equal(t, s, dtg.Format(parsed, 20))
}

func TestParseUnconditional(t *testing.T) {
	for _, s := range []string{"20260725121500", "25121500ZJUL26"} {
		_, err := dtg.Parse(s)
		assert.NoError(t, err, s)
	}
}

func TestDMSCornerRoundTrip(t *testing.T) {
	s := "123456N0765432W"
	c, err := dtg.ParseDMS(s)
	require.NoError(t, err)
	assert.InDelta(t, 12.58, c.Lat, 0.01)
	assert.InDelta(t, -76.9, c.Lon, 0.01)
	assert.Equal(t, s, dtg.FormatDMS(c))
}
