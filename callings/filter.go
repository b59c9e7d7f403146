package callings

import (
	"fmt"
)

// Progress lists the columns written to the progress sheet, in order.
var Progress = []string{
	DateRequested,
	PersonToCall,
	Calling,
	Organization,
	FormSubmittedBy,
	IdealStartDate,
	BishopApproval,
	ExtendedAndAccepted,
	Sustained,
	SetApart,
}

// Filter selects the callings that have been approved but not yet recorded and
// projects them onto the progress sheet columns. Row order is preserved.
func Filter(table *Table) (*Table, error) {
	if table == nil {
		return nil, fmt.Errorf("Invalid table (%v)", table)
	}

	flag, ok := table.Column(ApprovalFlag)
	if !ok {
		return nil, fmt.Errorf("Missing '%s' column", ApprovalFlag)
	}

	recorded, ok := table.Column(Recorded)
	if !ok {
		return nil, fmt.Errorf("Missing '%s' column", Recorded)
	}

	columns := make([]int, len(Progress))
	for i, name := range Progress {
		ix, ok := table.Column(name)
		if !ok {
			return nil, fmt.Errorf("Missing '%s' column", name)
		}

		columns[i] = ix
	}

	records := [][]string{}
	for _, row := range table.Records {
		if row[flag] != "y" || row[recorded] != "" {
			continue
		}

		record := make([]string, len(columns))
		for i, ix := range columns {
			record[i] = row[ix]
		}

		records = append(records, record)
	}

	header := make([]string, len(Progress))
	copy(header, Progress)

	return &Table{
		Header:  header,
		Records: records,
	}, nil
}
