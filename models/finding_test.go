package models

import "testing"

func TestNormalizeSeverity(t *testing.T) {
	cases := []struct {
		raw  string
		want Severity
	}{
		{"critical", SeverityCritical},
		{"CRITICAL", SeverityCritical},
		{"HIGH", SeverityHigh},
		{"error", SeverityHigh},
		{"moderate", SeverityMedium},
		{"WARNING", SeverityMedium},
		{"low", SeverityLow},
		{"info", SeverityInfo},
		{"", SeverityInfo},
		{"bogus", SeverityInfo},
	}

	for _, tc := range cases {
		if got := NormalizeSeverity(tc.raw); got != tc.want {
			t.Errorf("NormalizeSeverity(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeCVEIDs(t *testing.T) {
	// Two scanners reporting the same CVE in different case must yield
	// the same canonical id, or correlation splits the group.
	got := NormalizeCVEIDs([]string{"cve-2021-44228", " CVE-2021-44228 ", "", "CVE-2023-1234"})
	want := []string{"CVE-2021-44228", "CVE-2021-44228", "CVE-2023-1234"}

	if len(got) != len(want) {
		t.Fatalf("expected %d ids, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("id %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if got[0] != got[1] {
		t.Errorf("case variants should normalize to one form: %q vs %q", got[0], got[1])
	}
}

func TestSeverityWeightOrdering(t *testing.T) {
	ordered := []Severity{SeverityInfo, SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Weight() <= ordered[i-1].Weight() {
			t.Errorf("%s should outweigh %s", ordered[i], ordered[i-1])
		}
	}
	if Severity("unknown").Weight() != 0 {
		t.Error("unknown severity should weigh 0")
	}
}
