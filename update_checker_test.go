package main

import "testing"

func TestIsNewerVersion(t *testing.T) {
	cases := []struct {
		current, latest string
		want            bool
	}{
		{"v0.1.0", "v0.2.0", true},
		{"v0.2.0", "v0.1.0", false},
		{"v1.0.0", "v1.0.0", false},
		{"v1.0.0", "v1.0.1", true},
		{"v1.9.0", "v2.0.0", true},
		{"0.1.0", "v0.1.1", true},
		{"v0.1.0-alpha", "v0.1.0", false},
		{"v1.2.3", "v1.2.3+build5", false},
	}

	for _, tc := range cases {
		if got := isNewerVersion(tc.current, tc.latest); got != tc.want {
			t.Errorf("isNewerVersion(%q, %q) = %v, want %v", tc.current, tc.latest, got, tc.want)
		}
	}
}

func TestParseVersionParts(t *testing.T) {
	parts := parseVersionParts("v1.2.3-rc1")
	if parts != [3]int{1, 2, 3} {
		t.Errorf("parseVersionParts = %v, want [1 2 3]", parts)
	}

	parts = parseVersionParts("2.0")
	if parts != [3]int{2, 0, 0} {
		t.Errorf("parseVersionParts = %v, want [2 0 0]", parts)
	}
}
