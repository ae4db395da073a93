package resolver

import (
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

// anchorDays builds the ordered, de-duplicated list of candidate calendar
// days for one resolution: the user-local day, that instant's UTC day, the
// device-local day, then the user-local day minus and plus one to absorb
// midnight-boundary skew between the content generator's time zone and the
// reader's.
func anchorDays(now time.Time, userLoc, deviceLoc *time.Location) []string {
	if userLoc == nil {
		userLoc = time.UTC
	}
	if deviceLoc == nil {
		deviceLoc = time.Local
	}
	userDay := now.In(userLoc)
	candidates := []string{
		userDay.Format(dayLayout),
		now.UTC().Format(dayLayout),
		now.In(deviceLoc).Format(dayLayout),
		userDay.AddDate(0, 0, -1).Format(dayLayout),
		userDay.AddDate(0, 0, 1).Format(dayLayout),
	}
	seen := map[string]struct{}{}
	out := make([]string, 0, len(candidates))
	for _, day := range candidates {
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		out = append(out, day)
	}
	return out
}

// parseDayOverride validates an explicit date override. An unparsable value
// is treated as absent rather than an error; resolution then uses the
// ordinary anchor set.
func parseDayOverride(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	t, err := time.Parse(dayLayout, raw)
	if err != nil {
		return "", false
	}
	return t.Format(dayLayout), true
}
