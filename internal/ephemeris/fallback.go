package ephemeris

import (
	"sync"
	"time"
)

// Fallback is a last-resort position source for when the primary engine is
// unavailable: a linear degree drift per planet from a fixed baseline,
// plus an explicit last-known-good memo the caller may feed from engine
// output. It agrees with the engine at sign granularity near the baseline;
// exact numeric matching is not a goal.
type Fallback struct {
	mu       sync.Mutex
	lastGood map[string]Position
}

// Baseline geocentric longitudes at the J2000 epoch and mean daily drift
// rates. The inner planets track the Sun's mean motion when averaged over
// their synodic cycles; the outer planets drift at their own mean motion.
var (
	baselineInstant = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

	baselineLongitudes = map[string]float64{
		"Mercury": 271.91,
		"Venus":   241.58,
		"Mars":    327.98,
		"Jupiter": 25.35,
		"Saturn":  40.24,
	}

	dailyDrift = map[string]float64{
		"Mercury": 0.9856,
		"Venus":   0.9856,
		"Mars":    0.5240,
		"Jupiter": 0.0831,
		"Saturn":  0.0334,
	}
)

func NewFallback() *Fallback {
	return &Fallback{lastGood: map[string]Position{}}
}

// Positions returns the memoized last-known-good position per planet when
// one exists, otherwise the linear-drift estimate for t. Retrograde state is
// only meaningful on memoized entries; the drift model always reports direct
// motion.
func (f *Fallback) Positions(t time.Time) []Position {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Position, 0, len(Planets))
	for _, planet := range Planets {
		if pos, ok := f.lastGood[planet]; ok {
			out = append(out, pos)
			continue
		}
		out = append(out, driftPosition(planet, t))
	}
	return out
}

// Remember records engine output as the last-known-good table.
func (f *Fallback) Remember(positions []Position) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, pos := range positions {
		if pos.Planet == "" {
			continue
		}
		f.lastGood[pos.Planet] = pos
	}
}

// LastKnown returns the memoized position for one planet, if any.
func (f *Fallback) LastKnown(planet string) (Position, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pos, ok := f.lastGood[planet]
	return pos, ok
}

func driftPosition(planet string, t time.Time) Position {
	days := t.Sub(baselineInstant).Hours() / 24
	lon := normalizeDeg(baselineLongitudes[planet] + dailyDrift[planet]*days)
	sign, degree, rounded := roundedPlace(lon)
	return Position{
		Planet:    planet,
		Sign:      sign,
		Degree:    degree,
		Longitude: rounded,
	}
}
