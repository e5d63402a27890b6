package timezone

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/uv-exposure/internal/domain/uvexposure"
)

func TestLocalizeResolvedZone(t *testing.T) {
	c := NewConverter()
	fixed := time.FixedZone("Europe/Madrid", 2*60*60)
	c.load = func(name string) (*time.Location, error) {
		require.Equal(t, "Europe/Madrid", name)
		return fixed, nil
	}

	lt := c.Localize(1718949600, "Europe/Madrid")
	require.Equal(t, uvexposure.Resolved, lt.Resolution)
	require.Empty(t, lt.Reason)
	require.Equal(t, 8, lt.Time.Hour())
	require.Equal(t, int64(1718949600), lt.Time.Unix())
}

func TestLocalizeMemoizesLocations(t *testing.T) {
	c := NewConverter()
	loads := 0
	c.load = func(name string) (*time.Location, error) {
		loads++
		return time.UTC, nil
	}
	c.Localize(1, "Etc/UTC")
	c.Localize(2, "Etc/UTC")
	require.Equal(t, 1, loads)
}

func TestLocalizeFallsBackToUTC(t *testing.T) {
	c := NewConverter()
	c.load = func(name string) (*time.Location, error) {
		return nil, errors.New("unknown time zone Mars/Olympus")
	}

	lt := c.Localize(1718949600, "Mars/Olympus")
	require.Equal(t, uvexposure.FallbackUTC, lt.Resolution)
	require.Contains(t, lt.Reason, "Mars/Olympus")
	require.Equal(t, time.UTC, lt.Time.Location())
	require.Equal(t, 6, lt.Time.Hour())
}

func TestLocalizeEmptyZoneIsFallback(t *testing.T) {
	lt := NewConverter().Localize(0, "")
	require.Equal(t, uvexposure.FallbackUTC, lt.Resolution)
	require.Equal(t, "fallback_utc", lt.Resolution.String())
}

func TestFinderTimezoneAt(t *testing.T) {
	f, err := NewFinder()
	require.NoError(t, err)
	require.Equal(t, "Europe/Madrid", f.TimezoneAt(40.4168, -3.7038))
	require.Equal(t, "Asia/Tokyo", f.TimezoneAt(35.6762, 139.6503))
}
