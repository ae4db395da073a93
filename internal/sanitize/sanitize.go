package sanitize

import "strings"

// DefaultMarkers are the seasonal-content markers stripped from user-facing
// text. A line containing any marker (case-insensitive substring) is dropped
// whole. Markers are matched against generated content verbatim, so keep
// them in the exact form the content pipeline emits.
var DefaultMarkers = []string{
	"[seasonal]",
	"[holiday]",
	"[eclipse-season]",
	"[retrograde-special]",
}

var dashReplacer = strings.NewReplacer(
	"‐", "-",
	"‑", "-",
	"‒", "-",
	"–", "-",
	"—", "-",
	"−", "-",
)

// Filter normalizes dash characters and removes denylisted lines. It runs on
// both freshly fetched and cache-hit content: the marker list can grow after
// a row was cached, and cached copies must not re-surface dropped lines.
type Filter struct {
	markers []string
}

func NewFilter(markers []string) *Filter {
	if markers == nil {
		markers = DefaultMarkers
	}
	lowered := make([]string, 0, len(markers))
	for _, m := range markers {
		m = strings.ToLower(strings.TrimSpace(m))
		if m == "" {
			continue
		}
		lowered = append(lowered, m)
	}
	return &Filter{markers: lowered}
}

func (f *Filter) Text(s string) string {
	if s == "" {
		return s
	}
	s = dashReplacer.Replace(s)
	if len(f.markers) == 0 {
		return s
	}
	if !f.containsMarker(s) {
		return s
	}
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if f.containsMarker(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func (f *Filter) containsMarker(s string) bool {
	lowered := strings.ToLower(s)
	for _, m := range f.markers {
		if strings.Contains(lowered, m) {
			return true
		}
	}
	return false
}
