package util

import (
	"regexp"
	"strings"
)

// SearchQuery represents the parsed components of a task filter string.
type SearchQuery struct {
	Status   []string
	Major    []string
	Resource []string
	Text     []string
}

var (
	statusRegex   = regexp.MustCompile(`status:([\w-]+)`)
	majorRegex    = regexp.MustCompile(`major:(\S+)`)
	resourceRegex = regexp.MustCompile(`resource:(\S+)`)
)

// ParseSearchQuery breaks down a raw query string into its structured components.
func ParseSearchQuery(query string) SearchQuery {
	sq := SearchQuery{}

	extract := func(re *regexp.Regexp) []string {
		matches := re.FindAllStringSubmatch(query, -1)
		if matches == nil {
			return nil
		}
		var values []string
		for _, match := range matches {
			if len(match) > 1 {
				values = append(values, match[1])
			}
		}
		query = re.ReplaceAllString(query, "")
		return values
	}

	sq.Status = extract(statusRegex)
	sq.Major = extract(majorRegex)
	sq.Resource = extract(resourceRegex)
	sq.Text = strings.Fields(query)

	return sq
}

// IsEmpty reports whether the query filters nothing.
func (q SearchQuery) IsEmpty() bool {
	return len(q.Status) == 0 && len(q.Major) == 0 && len(q.Resource) == 0 && len(q.Text) == 0
}

// ContainsFold reports whether any of needles appears in haystack, case-insensitively.
func ContainsFold(haystack string, needles ...string) bool {
	h := strings.ToLower(haystack)
	for _, n := range needles {
		if strings.Contains(h, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
