package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

func readAll(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return records, nil
}

func readFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	records, err := readAll(f)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	return records, nil
}

// headerKey folds a header cell to its lookup form: "Seal ID" -> "seal_id".
func headerKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "\ufeff")))
	return strings.Join(strings.Fields(s), "_")
}

// columnIndex maps header keys to their first position.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		k := headerKey(h)
		if _, ok := idx[k]; !ok {
			idx[k] = i
		}
	}
	return idx
}

// lookup returns the position of the first alias present in the header.
func lookup(idx map[string]int, aliases ...string) (int, bool) {
	for _, a := range aliases {
		if i, ok := idx[a]; ok {
			return i, true
		}
	}
	return -1, false
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
