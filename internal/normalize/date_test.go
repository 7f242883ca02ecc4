package normalize

import (
	"regexp"
	"testing"
	"time"
)

func TestDateCanonicalPassthrough(t *testing.T) {
	if got := Date("2024-03-05"); got != "2024-03-05" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}

func TestDateUnparseablePassthrough(t *testing.T) {
	for _, in := range []string{"not a date", "---", "2024-13"} {
		if got := Date(in); got != in {
			t.Fatalf("Date(%q) = %q, want input unchanged", in, got)
		}
	}
}

func TestDateEmpty(t *testing.T) {
	if got := Date(""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestDateFormats(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	cases := []struct {
		in, want string
	}{
		{"2024/03/05", "2024-03-05"},
		{"2024/3/5", "2024-03-05"},
		{"2024-3-5", "2024-03-05"},
		{"2024-03-05 09:30:00", "2024-03-05"},
		{"2024/03/05 09:30:00", "2024-03-05"},
		{"2024年3月5日", "2024-03-05"},
		{"Mar 5, 2024", "2024-03-05"},
	}
	for _, c := range cases {
		got := Date(c.in)
		if got != c.want {
			t.Fatalf("Date(%q) = %q, want %q", c.in, got, c.want)
		}
		if len(got) != 10 || !pattern.MatchString(got) {
			t.Fatalf("Date(%q) = %q, not canonical", c.in, got)
		}
	}
}

func TestDateUsesLocalCalendarDay(t *testing.T) {
	// 23:30 on the 5th in +09:00 is still the 5th there, even though the
	// UTC day is already correct; the inverse (UTC 14:30 on the 5th being
	// the 6th in +09:00) is the case that bites.
	old := loc
	defer SetLocation(old)

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("zone data unavailable: %v", err)
	}
	SetLocation(tokyo)

	if got := Date("2024-03-05T23:30:00+09:00"); got != "2024-03-05" {
		t.Fatalf("same-zone instant shifted: %q", got)
	}
	if got := Date("2024-03-05T16:30:00Z"); got != "2024-03-06" {
		t.Fatalf("expected UTC evening to land on the 6th in Tokyo, got %q", got)
	}
}
