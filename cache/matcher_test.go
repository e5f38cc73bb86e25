package cache

import (
	"regexp"
	"testing"
)

func TestKeyMatchers(t *testing.T) {
	tests := []struct {
		name    string
		matcher KeyMatcher
		key     string
		want    bool
	}{
		{"prefix hit", MatchPrefix("forms::"), "forms::list", true},
		{"prefix miss", MatchPrefix("forms::"), "responses::list", false},
		{"prefix is anchored", MatchPrefix("forms::"), "public::forms::1", false},
		{"substring hit mid-key", MatchSubstring("form-1"), "responses::list::form-1", true},
		{"substring miss", MatchSubstring("form-2"), "responses::list::form-1", false},
		{"regexp hit", MatchRegexp(regexp.MustCompile(`^a_`)), "a_1", true},
		{"regexp miss", MatchRegexp(regexp.MustCompile(`^a_`)), "b_1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.matcher(tt.key); got != tt.want {
				t.Errorf("matcher(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestKey(t *testing.T) {
	if got := Key("forms", "get", "abc"); got != "forms::get::abc" {
		t.Errorf("unexpected key %q", got)
	}
	if got := Key("host"); got != "host" {
		t.Errorf("unexpected key %q", got)
	}
}
