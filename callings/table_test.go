package callings

import (
	"errors"
	"reflect"
	"testing"
)

const question = "What is the Name of the Proposed Calling (please refer to General Handbook (https://www.churchofjesuschrist.org/study/manual/general-handbook/30-callings-in-the-church?lang=eng#title_number125) and Callings and Trainings (https://www.churchofjesuschrist.org/callings?lang=eng) for a reference on duties and authorized names for callings)?"

var responses = [][]string{
	[]string{
		"Timestamp",
		question,
		"Full Name of the Person Proposed for the Calling:",
		"Name of the Proposed Organization to which the Person would be Called:",
		"Name of Person Submitting the Form",
		"Ideal Date for Proposed Person to Begin Service",
		"Calling Approval ",
		"Calling extended and accepted",
		"Sustained",
		"Set Apart",
		"Recorded",
	},
	[]string{"4/10/2022 14:32:11", "Primary Teacher", "Jane Doe", "Primary", "Sister Smith", "5/1/2022", " Yes ", "Y", "", "", ""},
	[]string{"4/12/2022 9:05:00", "Ward Clerk", "John Roe", "Bishopric", "Bishop Brown", "5/8/2022", "yes", "Y", "Y", "Y", "Y"},
	[]string{"4/15/2022 19:45:30", "Sunday School Teacher", "Ann Poe", "Sunday School", "Brother Green", "6/1/2022", "No", "", "", "", ""},
}

func TestMakeTable(t *testing.T) {
	expected := Table{
		Header: []string{
			"Timestamp",
			"Calling",
			"PersonToCall",
			"Organization",
			"FormSubmittedBy",
			"IdealStartDate",
			"BishopApproval",
			"ExtendedAndAccepted",
			"Sustained",
			"Set Apart",
			"Recorded",
			"ScheduledMeetingWith",
			"DateRequested",
			"cleaned_approval_text",
		},
		Records: [][]string{
			{"4/10/2022 14:32:11", "Primary Teacher", "Jane Doe", "Primary", "Sister Smith", "5/1/2022", " Yes ", "Y", "", "", "", "", "04/10/2022", "y"},
			{"4/12/2022 9:05:00", "Ward Clerk", "John Roe", "Bishopric", "Bishop Brown", "5/8/2022", "yes", "Y", "Y", "Y", "Y", "", "04/12/2022", "y"},
			{"4/15/2022 19:45:30", "Sunday School Teacher", "Ann Poe", "Sunday School", "Brother Green", "6/1/2022", "No", "", "", "", "", "", "04/15/2022", "n"},
		},
	}

	table, err := MakeTable(responses)
	if err != nil {
		t.Fatalf("Unexpected error returned from MakeTable (%v)", err)
	}

	if table == nil {
		t.Fatalf("MakeTable returned %v", table)
	}

	if !reflect.DeepEqual(*table, expected) {
		t.Errorf("Incorrect table\n   expected: %v\n   got:      %v\n", expected, *table)
	}
}

func TestMakeTableScheduledMeetingWithIsAlwaysBlank(t *testing.T) {
	data := [][]string{
		[]string{"Timestamp", "Calling Approval ", "ScheduledMeetingWith"},
		[]string{"4/10/2022 14:32:11", "yes", "Bishop Brown"},
		[]string{"4/11/2022 14:32:11", "no"},
	}

	table, err := MakeTable(data)
	if err != nil {
		t.Fatalf("Unexpected error returned from MakeTable (%v)", err)
	}

	ix, ok := table.Column(ScheduledMeetingWith)
	if !ok {
		t.Fatalf("Missing '%v' column in %v", ScheduledMeetingWith, table.Header)
	}

	if len(table.Header) != 5 {
		t.Errorf("Incorrect header - expected 5 columns, got %v", table.Header)
	}

	for i, row := range table.Records {
		if row[ix] != "" {
			t.Errorf("row %v: expected blank '%v', got '%v'", i, ScheduledMeetingWith, row[ix])
		}
	}
}

func TestMakeTableWithShortRows(t *testing.T) {
	expected := [][]string{
		{"4/10/2022 14:32:11", "", "", "", "04/10/2022", ""},
	}

	data := [][]string{
		[]string{"Timestamp", "Calling Approval ", "Recorded"},
		[]string{"4/10/2022 14:32:11"},
	}

	table, err := MakeTable(data)
	if err != nil {
		t.Fatalf("Unexpected error returned from MakeTable (%v)", err)
	}

	if !reflect.DeepEqual(table.Records, expected) {
		t.Errorf("Incorrect records\n   expected: %v\n   got:      %v\n", expected, table.Records)
	}
}

func TestMakeTableWithEmptyApproval(t *testing.T) {
	data := [][]string{
		[]string{"Timestamp", "Calling Approval "},
		[]string{"4/10/2022 14:32:11", "   "},
		[]string{"4/10/2022 14:32:11", ""},
	}

	table, err := MakeTable(data)
	if err != nil {
		t.Fatalf("Unexpected error returned from MakeTable (%v)", err)
	}

	ix, _ := table.Column(ApprovalFlag)
	for i, row := range table.Records {
		if row[ix] != "" {
			t.Errorf("row %v: expected blank approval flag, got '%v'", i, row[ix])
		}
	}
}

func TestMakeTableDateFormats(t *testing.T) {
	tests := map[string]string{
		"12/31/2023 23:59:59":       "12/31/2023",
		"1/2/2024 8:00":             "01/02/2024",
		"3/4/2024":                  "03/04/2024",
		"2024-05-06 07:08:09":       "05/06/2024",
		"2024-05-06T07:08:09Z":      "05/06/2024",
		"2024-05-06T07:08:09+02:00": "05/06/2024",
		"2024-05-06":                "05/06/2024",
		"":                          "",
	}

	for timestamp, expected := range tests {
		data := [][]string{
			[]string{"Timestamp", "Calling Approval "},
			[]string{timestamp, "Y"},
		}

		table, err := MakeTable(data)
		if err != nil {
			t.Fatalf("Unexpected error returned from MakeTable for '%v' (%v)", timestamp, err)
		}

		ix, _ := table.Column(DateRequested)
		if date := table.Records[0][ix]; date != expected {
			t.Errorf("Incorrect date for '%v' - expected:%v, got:%v", timestamp, expected, date)
		}
	}
}

func TestMakeTableWithInvalidTimestamp(t *testing.T) {
	data := [][]string{
		[]string{"Timestamp", "Calling Approval "},
		[]string{"4/10/2022 14:32:11", "Y"},
		[]string{"last tuesday", "Y"},
	}

	_, err := MakeTable(data)
	if err == nil {
		t.Fatalf("Expected error return for invalid timestamp, got %v", err)
	}

	if !errors.Is(err, ErrDateParse) {
		t.Errorf("Expected ErrDateParse, got %v", err)
	}
}

func TestMakeTableWithEmptySheet(t *testing.T) {
	_, err := MakeTable([][]string{})
	if err == nil {
		t.Fatalf("Expected error return for empty sheet, got %v", err)
	}
}

func TestMakeTableWithoutHeaders(t *testing.T) {
	_, err := MakeTable([][]string{[]string{}})
	if err == nil {
		t.Fatalf("Expected error return for missing headers, got %v", err)
	}
}

func TestMakeTableWithMissingTimestamp(t *testing.T) {
	data := [][]string{
		[]string{"Calling Approval ", "Recorded"},
	}

	_, err := MakeTable(data)
	if err == nil {
		t.Fatalf("Expected error return for missing 'Timestamp' column, got %v", err)
	}
}

func TestMakeTableWithMissingApproval(t *testing.T) {
	data := [][]string{
		[]string{"Timestamp", "Recorded"},
	}

	_, err := MakeTable(data)
	if err == nil {
		t.Fatalf("Expected error return for missing 'BishopApproval' column, got %v", err)
	}
}

func TestMakeTableWithDuplicateColumns(t *testing.T) {
	data := [][]string{
		[]string{"Timestamp", "Calling Approval ", "BishopApproval"},
	}

	_, err := MakeTable(data)
	if err == nil {
		t.Fatalf("Expected error return for duplicate 'BishopApproval' column, got %v", err)
	}
}

func TestMakeTableWithBlankColumns(t *testing.T) {
	data := [][]string{
		[]string{"Timestamp", "", "Calling Approval ", ""},
		[]string{"4/10/2022 14:32:11", "x", "Y", "z"},
	}

	table, err := MakeTable(data)
	if err != nil {
		t.Fatalf("Unexpected error returned from MakeTable (%v)", err)
	}

	if len(table.Header) != 7 {
		t.Errorf("Incorrect header - expected 7 columns, got %v", table.Header)
	}
}

func TestUnmapped(t *testing.T) {
	expected := []string{"Favourite Colour", "Calling Approval"}

	header := []string{
		"Timestamp",
		question,
		"Favourite Colour",
		"Calling Approval",
		"Calling Approval ",
		"Recorded",
		"Sustained",
		"Set Apart",
		"",
		"Comments",
	}

	unmapped := Unmapped(header)
	if !reflect.DeepEqual(unmapped, expected) {
		t.Errorf("Incorrect unmapped headers\n   expected: %v\n   got:      %v\n", expected, unmapped)
	}
}
