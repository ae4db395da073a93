package zodiac

import (
	"math"
	"strings"
)

// Signs is the fixed zodiac wheel; index i covers ecliptic longitude
// [i*30, (i+1)*30).
var Signs = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

const cuspSuffix = "Cusp"

var dashReplacer = strings.NewReplacer(
	"‐", "-", // hyphen
	"‑", "-", // non-breaking hyphen
	"‒", "-", // figure dash
	"–", "-", // en dash
	"—", "-", // em dash
	"−", "-", // minus sign
	"_", "-",
)

// SignForLongitude maps a geocentric ecliptic longitude in degrees to its
// sign name and the degree within that sign.
func SignForLongitude(lon float64) (string, float64) {
	lon = math.Mod(lon, 360)
	if lon < 0 {
		lon += 360
	}
	idx := int(lon / 30)
	if idx > 11 {
		idx = 11
	}
	return Signs[idx], lon - float64(idx)*30
}

// IsSign reports whether name is one of the twelve canonical signs.
func IsSign(name string) bool {
	for _, s := range Signs {
		if s == name {
			return true
		}
	}
	return false
}

// Normalize canonicalizes a free-text sign label: dash variants become a
// plain hyphen, whitespace collapses, each word is title-cased, and spaces
// around hyphens are removed ("aries - taurus" -> "Aries-Taurus"). A
// trailing "Cusp" qualifier is kept as a separate word.
func Normalize(label string) string {
	label = dashReplacer.Replace(label)
	words := strings.Fields(label)
	for i, w := range words {
		parts := strings.Split(w, "-")
		for j, p := range parts {
			parts[j] = titleWord(p)
		}
		words[i] = strings.Join(parts, "-")
	}
	out := strings.Join(words, " ")
	// "Aries - Taurus" and "Aries -Taurus" both mean the compound form.
	out = strings.ReplaceAll(out, " - ", "-")
	out = strings.ReplaceAll(out, "- ", "-")
	out = strings.ReplaceAll(out, " -", "-")
	return out
}

// Candidates produces the ordered sign-label variants tried during
// resolution. A cusp label (compound or "Cusp"-suffixed) yields the compound
// form with "Cusp" first, then without; its component signs are appended
// only when permissive is set. A plain single-sign label yields itself. The
// output is de-duplicated and deterministic for a given input.
func Candidates(label string, permissive bool) []string {
	base, components, wasCusp := parse(label)
	if base == "" {
		return nil
	}

	out := make([]string, 0, 2+len(components))
	if wasCusp {
		out = append(out, base+" "+cuspSuffix)
	}
	out = append(out, base)
	if !wasCusp || permissive {
		out = append(out, components...)
	}
	return dedup(out)
}

// parse splits a normalized label into its compound base, component signs,
// and whether the input counts as a cusp (explicit suffix or multi-part).
func parse(label string) (base string, components []string, wasCusp bool) {
	norm := Normalize(label)
	if norm == "" {
		return "", nil, false
	}
	if strings.HasSuffix(norm, " "+cuspSuffix) {
		wasCusp = true
		norm = strings.TrimSpace(strings.TrimSuffix(norm, " "+cuspSuffix))
	}
	components = strings.Split(norm, "-")
	for i := range components {
		components[i] = strings.TrimSpace(components[i])
	}
	if len(components) > 1 {
		wasCusp = true
	}
	return norm, components, wasCusp
}

// Matches reports whether a candidate label and a stored row label refer to
// the same sign, tolerating a "Cusp" suffix present on either side but not
// the other.
func Matches(candidate, stored string) bool {
	a := comparable(candidate)
	b := comparable(stored)
	if a == b {
		return true
	}
	return stripCusp(a) == stripCusp(b)
}

func comparable(label string) string {
	return strings.ToLower(Normalize(label))
}

func stripCusp(lowered string) string {
	return strings.TrimSpace(strings.TrimSuffix(lowered, strings.ToLower(" "+cuspSuffix)))
}

func titleWord(w string) string {
	if w == "" {
		return w
	}
	lower := strings.ToLower(w)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

func dedup(items []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it == "" {
			continue
		}
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
