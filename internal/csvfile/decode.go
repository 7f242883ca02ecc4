// Package csvfile turns raw reference CSV exports into normalized
// attendance events. The exports are semi-structured: encoding is
// ambiguous (Shift-JIS from the payroll system, UTF-8 when re-saved by a
// spreadsheet tool), the header row floats within a preamble, and column
// positions vary between exports.
package csvfile

import (
	"bytes"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Header keywords that identify both the encoding and the header row.
const (
	dateKeyword   = "日付"
	personKeyword = "報告者"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode converts raw file bytes to text. Shift-JIS is tried first; if the
// decoded text contains neither header keyword, the bytes are re-read as
// UTF-8, and that reading wins iff it contains the date keyword. A wrong
// decode never fails outright — it garbles — so keyword presence is the
// only usable heuristic.
func Decode(raw []byte) string {
	decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), raw)
	if err != nil {
		decoded = nil
	}

	if !bytes.Contains(decoded, []byte(dateKeyword)) && !bytes.Contains(decoded, []byte(personKeyword)) {
		utf8Text := bytes.TrimPrefix(raw, utf8BOM)
		if bytes.Contains(utf8Text, []byte(dateKeyword)) {
			return string(utf8Text)
		}
	}
	return string(decoded)
}
