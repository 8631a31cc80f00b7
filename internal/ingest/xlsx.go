package ingest

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/pickup-planner/internal/model"
)

// FromXLSX reads an address roster from the first sheet of an Excel
// workbook, applying the same header and duplicate validation as FromCSV.
func FromXLSX(path string) ([]model.Address, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: open xlsx %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("ingest: workbook %s has no sheets", path)
	}

	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, eris.New("ingest: file is empty; expected a header row with an 'address' column")
	}

	header := rowStrings(sheet.Rows[0])
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
	for _, row := range sheet.Rows[1:] {
		rows = append(rows, rowStrings(row))
	}

	return collect(rows, col)
}

func rowStrings(row *xlsx.Row) []string {
	out := make([]string, len(row.Cells))
	for i, cell := range row.Cells {
		out[i] = cell.String()
	}
	return out
}
