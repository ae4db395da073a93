package ephemeris

import (
	"math"
	"time"

	"astrolabe/internal/zodiac"
)

// Position is one planet's place on the zodiac wheel at an instant.
type Position struct {
	Planet     string  `json:"planet"`
	Sign       string  `json:"sign"`
	Degree     float64 `json:"degree"`
	Retrograde bool    `json:"retrograde"`
	Longitude  float64 `json:"longitude"`
}

// Engine computes approximate geocentric positions from simplified Keplerian
// elements. It is a pure function of the input instant and cannot fail for
// any real calendar date.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

const (
	j2000JD         = 2451545.0
	daysPerCentury  = 36525.0
	keplerTolerance = 1e-12
	keplerMaxIters  = 20
)

// JulianDay converts an instant to a continuous day count.
func JulianDay(t time.Time) float64 {
	return float64(t.UnixMilli())/86400000.0 + 2440587.5
}

// Positions returns one entry per tracked planet at t, in Planets order.
func (e *Engine) Positions(t time.Time) []Position {
	out := make([]Position, 0, len(Planets))
	for _, planet := range Planets {
		lon := GeocentricLongitude(planet, t)
		next := GeocentricLongitude(planet, t.Add(24*time.Hour))
		sign, degree, rounded := roundedPlace(lon)
		out = append(out, Position{
			Planet:     planet,
			Sign:       sign,
			Degree:     degree,
			Retrograde: deltaDeg(lon, next) < 0,
			Longitude:  rounded,
		})
	}
	return out
}

// roundedPlace rounds the longitude to output precision first and derives
// sign and degree from the rounded value. Rounding the degree on its own
// lets a longitude just under a cusp report degree 30 of the lower sign
// (or longitude 360); re-normalizing after the round keeps the triple
// consistent and inside [0, 360) / [0, 30).
func roundedPlace(lon float64) (sign string, degree, rounded float64) {
	rounded = normalizeDeg(round2(lon))
	sign, degree = zodiac.SignForLongitude(rounded)
	return sign, round2(degree), rounded
}

// GeocentricLongitude is the body's ecliptic longitude as seen from Earth,
// normalized to [0, 360).
func GeocentricLongitude(body string, t time.Time) float64 {
	T := (JulianDay(t) - j2000JD) / daysPerCentury
	x, y, _ := heliocentric(body, T)
	xe, ye, _ := heliocentric(earth, T)
	lon := math.Atan2(y-ye, x-xe) * 180 / math.Pi
	return normalizeDeg(lon)
}

// heliocentric returns ecliptic Cartesian coordinates (AU) of a body at T
// centuries past J2000, via the element rows and Kepler's equation.
func heliocentric(body string, T float64) (x, y, z float64) {
	row := elements[body]

	a := row.a + row.aDot*T
	ecc := row.e + row.eDot*T
	inc := rad(row.i + row.iDot*T)
	meanLon := row.l + row.lDot*T
	periLon := row.peri + row.periDot*T
	nodeLon := row.node + row.nodeDot*T

	// Argument of perihelion and mean anomaly follow from the combined
	// longitudes used by this element set.
	argPeri := rad(periLon - nodeLon)
	node := rad(nodeLon)
	M := rad(centerDeg(meanLon - periLon))

	E := solveKepler(M, ecc)

	// Orbital-plane coordinates, perihelion toward +x.
	xp := a * (math.Cos(E) - ecc)
	yp := a * math.Sqrt(1-ecc*ecc) * math.Sin(E)

	cw, sw := math.Cos(argPeri), math.Sin(argPeri)
	cn, sn := math.Cos(node), math.Sin(node)
	ci, si := math.Cos(inc), math.Sin(inc)

	x = (cw*cn-sw*sn*ci)*xp + (-sw*cn-cw*sn*ci)*yp
	y = (cw*sn+sw*cn*ci)*xp + (-sw*sn+cw*cn*ci)*yp
	z = sw*si*xp + cw*si*yp
	return x, y, z
}

// solveKepler finds the eccentric anomaly E with M = E - e*sin(E) by
// Newton-Raphson. Planetary eccentricities (< 0.25) converge well inside the
// iteration budget; there is no divergence case to handle.
func solveKepler(M, ecc float64) float64 {
	E := M + ecc*math.Sin(M)*(1+ecc*math.Cos(M))
	for i := 0; i < keplerMaxIters; i++ {
		dE := (E - ecc*math.Sin(E) - M) / (1 - ecc*math.Cos(E))
		E -= dE
		if math.Abs(dE) < keplerTolerance {
			break
		}
	}
	return E
}

func rad(deg float64) float64 {
	return deg * math.Pi / 180
}

// normalizeDeg maps an angle to [0, 360).
func normalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// centerDeg maps an angle to (-180, 180].
func centerDeg(deg float64) float64 {
	deg = math.Mod(deg+180, 360)
	if deg <= 0 {
		deg += 360
	}
	return deg - 180
}

// deltaDeg is the signed angular change between two longitudes, normalized
// to [-180, 180); negative means apparent backward (retrograde) motion.
func deltaDeg(from, to float64) float64 {
	d := math.Mod(to-from+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
