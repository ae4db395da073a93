package ephemeris

import (
	"math"
	"time"
)

// MoonPhase describes the lunar cycle at an instant: phase name, fraction of
// the disc illuminated, and age in days since the last new moon.
type MoonPhase struct {
	Phase        string  `json:"phase"`
	Illumination float64 `json:"illumination"`
	AgeDays      float64 `json:"age_days"`
}

const (
	// Mean synodic month in days.
	synodicMonth = 29.530588853
	// Julian day of the first new moon after J2000 (2000-01-06 18:14 UTC).
	referenceNewMoonJD = 2451550.26
)

var phaseNames = []string{
	"New Moon",
	"Waxing Crescent",
	"First Quarter",
	"Waxing Gibbous",
	"Full Moon",
	"Waning Gibbous",
	"Last Quarter",
	"Waning Crescent",
}

// MoonPhaseAt computes the mean-cycle moon phase for t. Like the planetary
// engine this is an approximation: mean cycle length, no perturbation terms,
// good to several hours around the true phase instants.
func MoonPhaseAt(t time.Time) MoonPhase {
	age := math.Mod(JulianDay(t)-referenceNewMoonJD, synodicMonth)
	if age < 0 {
		age += synodicMonth
	}
	fraction := age / synodicMonth
	illumination := (1 - math.Cos(2*math.Pi*fraction)) / 2

	// Eight equal buckets centered on the four principal phases.
	idx := int(math.Floor(fraction*8 + 0.5)) % 8
	return MoonPhase{
		Phase:        phaseNames[idx],
		Illumination: round2(illumination),
		AgeDays:      round2(age),
	}
}
