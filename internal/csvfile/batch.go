package csvfile

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/hayate-io/kintai/internal/model"
)

// NamedFile is one uploaded file: its display name and raw bytes. Err
// carries a read failure so unreadable files flow through the same per-file
// error reporting as parse failures.
type NamedFile struct {
	Name string
	Data []byte
	Err  error
}

// BatchResult aggregates a multi-file parse. Records concatenates every
// successful file's events; Errors holds one "name: message" string per
// failed file. The batch as a whole fails only when every file did.
type BatchResult struct {
	Records   []model.Event
	FileCount int // successfully parsed files only
	Errors    []string
	AllFailed bool
	Skipped   Diagnostics
}

// ParseFiles decodes and parses the given files concurrently. Per-file
// record order is preserved and files contribute in input order. Files not
// ending in .csv are rejected up front.
func ParseFiles(files []NamedFile) BatchResult {
	csvFiles := make([]NamedFile, 0, len(files))
	for _, f := range files {
		if strings.HasSuffix(f.Name, ".csv") {
			csvFiles = append(csvFiles, f)
		}
	}
	if len(csvFiles) == 0 {
		return BatchResult{AllFailed: true, Errors: []string{"CSVファイルが選択されていません"}}
	}

	results := make([]ParseResult, len(csvFiles))
	var wg sync.WaitGroup
	for i, f := range csvFiles {
		wg.Add(1)
		go func(i int, f NamedFile) {
			defer wg.Done()
			if f.Err != nil {
				results[i] = ParseResult{Err: fmt.Sprintf("読み込み失敗: %v", f.Err)}
				return
			}
			results[i] = Parse(Decode(f.Data))
		}(i, f)
	}
	wg.Wait()

	var batch BatchResult
	for i, res := range results {
		if res.Err != "" {
			batch.Errors = append(batch.Errors, csvFiles[i].Name+": "+res.Err)
			continue
		}
		batch.Records = append(batch.Records, res.Records...)
		batch.Skipped.ShortRows += res.Skipped.ShortRows
		batch.Skipped.BadDates += res.Skipped.BadDates
		batch.FileCount++
	}
	batch.AllFailed = batch.FileCount == 0
	return batch
}

// ReadAll reads the files at the given paths and parses them as a batch.
// Read failures become per-file errors, not aborts.
func ReadAll(paths []string) BatchResult {
	files := make([]NamedFile, len(paths))
	for i, p := range paths {
		data, err := os.ReadFile(p)
		files[i] = NamedFile{Name: p, Data: data, Err: err}
	}
	return ParseFiles(files)
}
