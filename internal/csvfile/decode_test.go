package csvfile

import (
	"strings"
	"testing"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

func shiftJIS(t *testing.T, s string) []byte {
	t.Helper()
	b, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(s))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return b
}

func TestDecodeShiftJIS(t *testing.T) {
	content := header + "\n2024-03-05,田中太郎,1,-,-,-,-\n"
	got := Decode(shiftJIS(t, content))
	if got != content {
		t.Fatalf("Shift-JIS round trip failed:\ngot:  %q\nwant: %q", got, content)
	}
}

func TestDecodeUTF8Fallback(t *testing.T) {
	content := header + "\n2024-03-05,田中太郎,1,-,-,-,-\n"
	got := Decode([]byte(content))
	if !strings.Contains(got, dateKeyword) {
		t.Fatalf("expected UTF-8 fallback to win, got %q", got)
	}
	if got != content {
		t.Fatalf("UTF-8 content altered:\ngot:  %q\nwant: %q", got, content)
	}
}

func TestDecodeUTF8WithBOM(t *testing.T) {
	content := header + "\n"
	raw := append(append([]byte{}, utf8BOM...), content...)
	got := Decode(raw)
	if got != content {
		t.Fatalf("expected BOM stripped, got %q", got)
	}
}

func TestDecodeGarbageStaysShiftJIS(t *testing.T) {
	// Neither decoding yields the keywords; the Shift-JIS reading is kept
	// and the parser reports header-not-found downstream.
	got := Decode([]byte("plain ascii,no keywords\n"))
	if strings.Contains(got, dateKeyword) {
		t.Fatalf("unexpected keyword in %q", got)
	}
	res := Parse(got)
	if res.Err == "" {
		t.Fatal("expected header-not-found for keywordless file")
	}
}
