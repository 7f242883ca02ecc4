package normalize

import "testing"

func TestName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"田中", "田中"},
		{" 田中 01", "田中"},
		{"田中　太郎", "田中太郎"}, // full-width space
		{"Tanaka01", "Tanaka"},
		{"佐藤０１", "佐藤"}, // full-width digits fold to ASCII before stripping
		{"  鈴木  ", "鈴木"},
		{"山田 123", "山田"},
		{"123", ""}, // nothing left after suffix strip
	}
	for _, c := range cases {
		if got := Name(c.in); got != c.want {
			t.Fatalf("Name(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNameIdempotent(t *testing.T) {
	inputs := []string{"", " 田中 01", "Tanaka01", "佐藤　花子２", "山田123abc45"}
	for _, in := range inputs {
		once := Name(in)
		if twice := Name(once); twice != once {
			t.Fatalf("Name not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}
