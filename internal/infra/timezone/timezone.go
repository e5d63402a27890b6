// Package timezone resolves zone names for coordinates and converts epoch
// timestamps into a zone's civil time.
package timezone

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ringsaturn/tzf"

	"github.com/yanqian/uv-exposure/internal/domain/uvexposure"
)

// Finder looks up IANA zone names from coordinates using the tzf dataset.
type Finder struct {
	finder tzf.F
}

// NewFinder loads the default tzf dataset. Loading takes a noticeable moment, so
// build one Finder per process.
func NewFinder() (*Finder, error) {
	f, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("load timezone finder: %w", err)
	}
	return &Finder{finder: f}, nil
}

// TimezoneAt returns the zone name at lat/lon, or "" when none is known.
func (f *Finder) TimezoneAt(lat, lon float64) string {
	return f.finder.GetTimezoneName(lon, lat)
}

// Converter turns epoch seconds into local time. Loaded locations are memoized.
type Converter struct {
	mu    sync.RWMutex
	zones map[string]*time.Location
	load  func(name string) (*time.Location, error)
}

// NewConverter builds a converter backed by the system zone database.
func NewConverter() *Converter {
	return &Converter{
		zones: make(map[string]*time.Location),
		load:  time.LoadLocation,
	}
}

// Localize converts epoch into zone's civil time. An empty or unknown zone falls
// back to UTC and reports why.
func (c *Converter) Localize(epoch int64, zone string) uvexposure.LocalTime {
	instant := time.Unix(epoch, 0)
	loc, err := c.location(zone)
	if err != nil {
		return uvexposure.LocalTime{
			Time:       instant.UTC(),
			Resolution: uvexposure.FallbackUTC,
			Reason:     err.Error(),
		}
	}
	return uvexposure.LocalTime{Time: instant.In(loc), Resolution: uvexposure.Resolved}
}

func (c *Converter) location(zone string) (*time.Location, error) {
	zone = strings.TrimSpace(zone)
	if zone == "" {
		// time.LoadLocation("") silently yields UTC; report it as a fallback.
		return nil, errors.New("timezone unknown for location")
	}
	c.mu.RLock()
	loc, ok := c.zones[zone]
	c.mu.RUnlock()
	if ok {
		return loc, nil
	}
	loc, err := c.load(zone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", zone, err)
	}
	c.mu.Lock()
	c.zones[zone] = loc
	c.mu.Unlock()
	return loc, nil
}
