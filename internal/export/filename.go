package export

import (
	"fmt"
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Filename derives a download filename from the quiz topic: lowercased,
// runs of non-alphanumeric characters collapsed to underscores, prefixed
// with "quiz_". A topic that normalizes to nothing falls back to "results".
func Filename(topic, extension string) string {
	normalized := strings.ToLower(topic)
	normalized = nonAlphanumeric.ReplaceAllString(normalized, "_")
	normalized = strings.Trim(normalized, "_")
	if normalized == "" {
		normalized = "results"
	}
	return fmt.Sprintf("quiz_%s.%s", normalized, extension)
}
