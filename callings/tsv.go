package callings

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// MakeTSV writes the table as tab separated values, header first.
func MakeTSV(f io.Writer, table *Table) error {
	if table == nil || len(table.Header) == 0 {
		return fmt.Errorf("Missing/invalid header row")
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write(table.Header); err != nil {
		return err
	}

	for _, row := range table.Records {
		record := make([]string, len(table.Header))
		for i := range record {
			if i < len(row) {
				record[i] = clean(row[i])
			}
		}

		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

// ParseTSV reads tab separated values as sheet rows. Rows may have different
// lengths.
func ParseTSV(f io.Reader) ([][]string, error) {
	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("TSV file is empty")
	}

	return rows, nil
}

// Rows returns the table as sheet rows, header first.
func (t *Table) Rows() [][]string {
	rows := make([][]string, 0, len(t.Records)+1)
	rows = append(rows, append([]string{}, t.Header...))

	for _, record := range t.Records {
		rows = append(rows, append([]string{}, record...))
	}

	return rows
}

// Raw wraps sheet rows as a table without renaming or deriving anything. Short
// rows are padded to the header width.
func Raw(rows [][]string) (*Table, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("Empty sheet")
	}

	header := make([]string, len(rows[0]))
	for i, v := range rows[0] {
		header[i] = clean(v)
	}

	records := [][]string{}
	for _, row := range rows[1:] {
		record := make([]string, len(header))
		copy(record, row)
		records = append(records, record)
	}

	return &Table{
		Header:  header,
		Records: records,
	}, nil
}

func clean(v string) string {
	return strings.TrimSpace(v)
}
