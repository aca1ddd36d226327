package safety

import "testing"

func TestFlaggedMatchesCrisisPhrases(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"I want to end my life", true},
		{"I WANT TO END MY LIFE", true},
		{"i've been thinking about Suicide lately", true},
		{"sometimes I want to hurt myself", true},
		{"thinking about self-harm again", true},
		{"I feel anxious about my exam", false},
		{"today was a killer workout", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := Flagged(tc.text); got != tc.want {
			t.Errorf("Flagged(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestFlaggedMixedCase(t *testing.T) {
	for _, text := range []string{"Kill Myself", "kIlL mYsElF", "KILL MYSELF"} {
		if !Flagged("maybe I should " + text) {
			t.Errorf("Flagged should be case-insensitive for %q", text)
		}
	}
}
