// Package ingest reads address rosters from CSV and XLSX files and validates
// them before geocoding.
package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/pickup-planner/internal/model"
)

// addressColumn is the required header name, matched case-insensitively.
const addressColumn = "address"

// Normalize collapses internal whitespace and lowercases an address so
// trivially-different duplicates collide.
func Normalize(addr string) string {
	return strings.Join(strings.Fields(strings.ToLower(addr)), " ")
}

// FromFile reads addresses from path, dispatching on the file extension.
// ".xlsx" goes through the Excel reader; everything else is treated as CSV.
func FromFile(path string) ([]model.Address, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return FromXLSX(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: open %s", path)
	}
	defer f.Close()
	return FromCSV(f)
}

// FromCSV reads an address roster from CSV. The first row must be a header
// containing an "address" column; blank addresses are skipped; duplicate
// addresses (after normalization) and an empty roster are fatal.
func FromCSV(r io.Reader) ([]model.Address, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable fields

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("ingest: file is empty; expected a header row with an 'address' column")
	}
	if err != nil {
		return nil, eris.Wrap(err, "ingest: read header")
	}

	col := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), addressColumn) {
			col = i
			break
		}
	}
	if col == -1 {
		return nil, eris.Errorf(
			"ingest: missing %q column; found header %v", addressColumn, header)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "ingest: read row")
		}
		rows = append(rows, record)
	}

	return collect(rows, col)
}

// collect turns raw rows into validated addresses.
func collect(rows [][]string, col int) ([]model.Address, error) {
	var addrs []model.Address
	seen := map[string]bool{}

	for _, record := range rows {
		if col >= len(record) {
			continue
		}
		text := strings.TrimSpace(record[col])
		if text == "" {
			continue
		}

		normalized := Normalize(text)
		if seen[normalized] {
			return nil, eris.Errorf(
				"ingest: duplicate address %q; remove duplicates and retry", text)
		}
		seen[normalized] = true

		addrs = append(addrs, model.Address{Row: len(addrs) + 1, Text: text})
	}

	if len(addrs) == 0 {
		return nil, eris.New("ingest: roster contains no addresses")
	}

	zap.L().Debug("ingest: roster loaded", zap.Int("addresses", len(addrs)))
	return addrs, nil
}
