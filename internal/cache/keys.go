package cache

import (
	"strconv"
	"strings"
)

// SchemaVersion participates in every daily-content cache key. Bumping it
// turns all previously written entries into unconditional misses, so payload
// format changes never require manual cleanup; stale entries age out via TTL.
const SchemaVersion = 2

const anonymousUser = "anonymous"

// DailyContentKey builds the cache key for one resolved row. Key parts are
// lowercased and space-free so equivalent lookups collide as intended.
func DailyContentKey(userID, sign, hemisphere, date string) string {
	user := keyPart(userID)
	if user == "" {
		user = anonymousUser
	}
	return strings.Join([]string{
		"daily",
		"v" + strconv.Itoa(SchemaVersion),
		user,
		keyPart(sign),
		keyPart(hemisphere),
		keyPart(date),
	}, ":")
}

func keyPart(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "-")
}
