package ephemeris

// elementRow holds simplified Keplerian orbital elements for one body:
// values at the J2000 epoch plus linear rates per Julian century. Angles are
// degrees, the semi-major axis is AU. The set is the standard published
// approximation table valid for 1800-2050; it yields geocentric longitudes
// good to roughly a degree or two, which is the accuracy class this engine
// is specified for.
type elementRow struct {
	a, e, i, l, peri, node                   float64
	aDot, eDot, iDot, lDot, periDot, nodeDot float64
}

// Planets tracked by the engine, in output order. Earth appears in the
// element table only as the observer's reference frame.
var Planets = []string{"Mercury", "Venus", "Mars", "Jupiter", "Saturn"}

const earth = "Earth"

var elements = map[string]elementRow{
	"Mercury": {
		a: 0.38709927, e: 0.20563593, i: 7.00497902,
		l: 252.25032350, peri: 77.45779628, node: 48.33076593,
		aDot: 0.00000037, eDot: 0.00001906, iDot: -0.00594749,
		lDot: 149472.67411175, periDot: 0.16047689, nodeDot: -0.12534081,
	},
	"Venus": {
		a: 0.72333566, e: 0.00677672, i: 3.39467605,
		l: 181.97909950, peri: 131.60246718, node: 76.67984255,
		aDot: 0.00000390, eDot: -0.00004107, iDot: -0.00078890,
		lDot: 58517.81538729, periDot: 0.00268329, nodeDot: -0.27769418,
	},
	earth: {
		a: 1.00000261, e: 0.01671123, i: -0.00001531,
		l: 100.46457166, peri: 102.93768193, node: 0,
		aDot: 0.00000562, eDot: -0.00004392, iDot: -0.01294668,
		lDot: 35999.37244981, periDot: 0.32327364, nodeDot: 0,
	},
	"Mars": {
		a: 1.52371034, e: 0.09339410, i: 1.84969142,
		l: -4.55343205, peri: -23.94362959, node: 49.55953891,
		aDot: 0.00001847, eDot: 0.00007882, iDot: -0.00813131,
		lDot: 19140.30268499, periDot: 0.44441088, nodeDot: -0.29257343,
	},
	"Jupiter": {
		a: 5.20288700, e: 0.04838624, i: 1.30439695,
		l: 34.39644051, peri: 14.72847983, node: 100.47390909,
		aDot: -0.00011607, eDot: -0.00013253, iDot: -0.00183714,
		lDot: 3034.74612775, periDot: 0.21252668, nodeDot: 0.20469106,
	},
	"Saturn": {
		a: 9.53667594, e: 0.05386179, i: 2.48599187,
		l: 49.95424423, peri: 92.59887831, node: 113.66242448,
		aDot: -0.00125060, eDot: -0.00050991, iDot: 0.00193609,
		lDot: 1222.49362201, periDot: -0.41897216, nodeDot: -0.28867794,
	},
}
