package tags

import (
	"regexp"
	"strconv"
	"strings"
)

// skipKeywords flag a tag as pre-release when present anywhere in its
// lowercased form.
var skipKeywords = []string{
	"alpha",
	"beta",
	"rc",
	"test",
	"pre",
	"preview",
	"dev",
	"snapshot",
}

// IsStable reports whether tag carries none of the pre-release markers.
func IsStable(tag string) bool {
	lowered := strings.ToLower(tag)
	for _, kw := range skipKeywords {
		if strings.Contains(lowered, kw) {
			return false
		}
	}
	return true
}

// Normalizer maps a raw tag to its canonical form, or rejects it.
type Normalizer func(tag string) (string, bool)

var digitsRe = regexp.MustCompile(`\d+`)

// ForPrefix builds a Normalizer accepting tags that are the literal
// prefix followed by a dotted numeric version, e.g. "tor-0.4.8.12".
// The prefix is retained in the canonical form. An empty prefix
// matches bare versions like "20230206.0".
func ForPrefix(prefix string) Normalizer {
	re := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `\d+(?:\.\d+)+$`)
	return func(tag string) (string, bool) {
		if !re.MatchString(tag) {
			return "", false
		}
		return tag, true
	}
}

// PickLatest filters tags through IsStable and norm, then returns the
// candidate whose integer tuple is greatest. Ties on equal tuples go to
// the last candidate seen. The second return is false when nothing
// survives filtering.
func PickLatest(tags []string, norm Normalizer) (string, bool) {
	best := ""
	var bestKey []int
	found := false
	for _, tag := range tags {
		if !IsStable(tag) {
			continue
		}
		canonical, ok := norm(tag)
		if !ok {
			continue
		}
		key := versionKey(canonical)
		if !found || compareKeys(key, bestKey) >= 0 {
			best, bestKey, found = canonical, key, true
		}
	}
	return best, found
}

// versionKey extracts every digit run in the tag as an integer,
// ignoring separators and prefixes.
func versionKey(tag string) []int {
	parts := digitsRe.FindAllString(tag, -1)
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			n = 0
		}
		out = append(out, n)
	}
	return out
}

// compareKeys orders integer tuples the standard way: first differing
// component decides, and a tuple that is a prefix of a longer one sorts
// before it.
func compareKeys(a, b []int) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] > b[i] {
				return 1
			}
			return -1
		}
	}
	switch {
	case len(a) > len(b):
		return 1
	case len(a) < len(b):
		return -1
	}
	return 0
}
