package callings

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Canonical column names.
const (
	Timestamp            = "Timestamp"
	Calling              = "Calling"
	PersonToCall         = "PersonToCall"
	Organization         = "Organization"
	FormSubmittedBy      = "FormSubmittedBy"
	IdealStartDate       = "IdealStartDate"
	BishopApproval       = "BishopApproval"
	ExtendedAndAccepted  = "ExtendedAndAccepted"
	Sustained            = "Sustained"
	SetApart             = "Set Apart"
	Recorded             = "Recorded"
	ScheduledMeetingWith = "ScheduledMeetingWith"
	DateRequested        = "DateRequested"
	ApprovalFlag         = "cleaned_approval_text"
)

// Rename maps the form questions to the canonical column names. Headers not in
// the map are kept as is.
var Rename = map[string]string{
	"What is the Name of the Proposed Calling (please refer to General Handbook (https://www.churchofjesuschrist.org/study/manual/general-handbook/30-callings-in-the-church?lang=eng#title_number125) and Callings and Trainings (https://www.churchofjesuschrist.org/callings?lang=eng) for a reference on duties and authorized names for callings)?": Calling,
	"Full Name of the Person Proposed for the Calling:":                                            PersonToCall,
	"Will this Require they be Released from a Current Calling?":                                   "ReleaseRequired",
	"Name of the Proposed Organization to which the Person would be Called:":                       Organization,
	"Once Again, Will this Require they be Released from a Current Calling?":                       "ReleaseRequired2",
	"If You Know, from which Organization are you Requesting this Person?":                         "CurrentOrganization",
	"Name of Person Submitting the Form":                                                           FormSubmittedBy,
	"Ideal Date for Proposed Person to Begin Service":                                              IdealStartDate,
	"Does this Proposal Require Someone Else be Released from the Calling You are Asking to Fill?": "ReleaseCurrentlyServing",
	"Name of the Person Who Needs to be Released from this Calling:":                               "CurrentlyServing",
	"Is this Person Moving?":        "Moving?",
	"Date they are Moving:":         "MovingDate",
	"Any Additional Comments:":      "Comments",
	"Calling Approval ":             BishopApproval,
	"Calling extended and accepted": ExtendedAndAccepted,
}

// Columns that are expected on the form responses sheet under their own names.
var passthrough = map[string]bool{
	Timestamp:            true,
	Sustained:            true,
	SetApart:             true,
	Recorded:             true,
	ScheduledMeetingWith: true,
}

var ErrDateParse = errors.New("invalid timestamp")

// Google Forms writes timestamps as M/D/YYYY H:MM:SS but a sheet edited by hand
// or exported elsewhere may use ISO-8601.
var layouts = []string{
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

type Table struct {
	Header  []string
	Records [][]string
}

// Column returns the index of the named column.
func (t *Table) Column(name string) (int, bool) {
	for i, h := range t.Header {
		if h == name {
			return i, true
		}
	}

	return -1, false
}

// MakeTable builds a calling table from the raw form responses, renaming the
// form questions and adding the derived ScheduledMeetingWith, DateRequested and
// cleaned_approval_text columns.
func MakeTable(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("Empty sheet")
	}

	// ... header
	header := []string{}
	index := map[string]int{}

	for i, v := range rows[0] {
		name := v
		if k, ok := Rename[v]; ok {
			name = k
		}

		header = append(header, name)
		if strings.TrimSpace(name) == "" {
			continue
		}

		if _, ok := index[name]; ok {
			return nil, fmt.Errorf("Duplicate column name '%s'", name)
		}

		index[name] = i
	}

	if len(header) == 0 {
		return nil, fmt.Errorf("Missing/invalid header row")
	}

	timestamp, ok := index[Timestamp]
	if !ok {
		return nil, fmt.Errorf("Missing '%s' column", Timestamp)
	}

	approval, ok := index[BishopApproval]
	if !ok {
		return nil, fmt.Errorf("Missing '%s' column", BishopApproval)
	}

	// ... derived columns
	width := len(header)
	derived := func(name string) int {
		if ix, ok := index[name]; ok {
			return ix
		}

		index[name] = len(header)
		header = append(header, name)

		return index[name]
	}

	meeting := derived(ScheduledMeetingWith)
	date := derived(DateRequested)
	flag := derived(ApprovalFlag)

	// ... records
	records := [][]string{}
	for i, row := range rows[1:] {
		record := make([]string, len(header))
		copy(record, row[:min(len(row), width)])

		d, err := requested(record[timestamp])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		record[meeting] = ""
		record[date] = d
		record[flag] = approved(record[approval])

		records = append(records, record)
	}

	return &Table{
		Header:  header,
		Records: records,
	}, nil
}

// Unmapped returns the raw headers that are neither renamed nor one of the
// columns expected under their own name.
func Unmapped(header []string) []string {
	known := map[string]bool{}
	for _, v := range Rename {
		known[v] = true
	}

	list := []string{}
	for _, h := range header {
		if _, ok := Rename[h]; ok || strings.TrimSpace(h) == "" {
			continue
		}

		if !passthrough[h] && !known[h] {
			list = append(list, h)
		}
	}

	return list
}

// A blank timestamp yields a blank date.
func requested(v string) (string, error) {
	s := strings.TrimSpace(v)
	if s == "" {
		return "", nil
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("01/02/2006"), nil
		}
	}

	return "", fmt.Errorf("%w '%s'", ErrDateParse, v)
}

func approved(v string) string {
	s := strings.ToLower(strings.TrimSpace(v))
	for _, r := range s {
		return string(r)
	}

	return ""
}
