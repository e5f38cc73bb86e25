package cache

import (
	"regexp"
	"strings"
)

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "::"

// KeyMatcher is a predicate over cache keys, used to select entries for bulk
// invalidation. The store applies it to the caller-chosen key, never to the
// namespaced form the durable tier stores.
type KeyMatcher func(key string) bool

// MatchPrefix matches every key that starts with prefix.
func MatchPrefix(prefix string) KeyMatcher {
	return func(key string) bool {
		return strings.HasPrefix(key, prefix)
	}
}

// MatchSubstring matches every key that contains substr.
func MatchSubstring(substr string) KeyMatcher {
	return func(key string) bool {
		return strings.Contains(key, substr)
	}
}

// MatchRegexp matches every key the expression matches.
func MatchRegexp(re *regexp.Regexp) KeyMatcher {
	return re.MatchString
}

// Key joins segments with the key separator. Callers own their key layout;
// this helper only keeps the delimiter consistent across packages.
func Key(segments ...string) string {
	return strings.Join(segments, KeySeparator)
}
