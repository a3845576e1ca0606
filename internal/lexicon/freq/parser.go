// Package freq parses zipf-scale word frequency CSV files.
// Pure function: reader in, table out. No database dependencies.
package freq

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Parse reads a frequency CSV with a "word,zipf" header row. Rows with an
// empty word or an unparsable zipf value are rejected; duplicate words keep
// the last value seen.
func Parse(r io.Reader) (map[string]float64, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow trailing columns

	// Skip header row.
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return map[string]float64{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	table := make(map[string]float64)
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		row++

		if len(record) < 2 {
			return nil, fmt.Errorf("row %d: expected word,zipf", row)
		}
		word := strings.ToLower(strings.TrimSpace(record[0]))
		if word == "" {
			return nil, fmt.Errorf("row %d: empty word", row)
		}
		zipf, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: zipf value: %w", row, err)
		}
		if zipf < 0 {
			return nil, fmt.Errorf("row %d: negative zipf value %v", row, zipf)
		}
		table[word] = zipf
	}
	return table, nil
}

// ParseFile opens and parses a frequency CSV from disk.
func ParseFile(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}
