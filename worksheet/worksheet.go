package worksheet

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"
)

const (
	SHEETS = "https://www.googleapis.com/auth/spreadsheets"
	DRIVE  = "https://www.googleapis.com/auth/drive.readonly"
)

var urlRE = regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`)
var idRE = regexp.MustCompile(`^[a-zA-Z0-9_-]{40,}$`)

// Worksheet reads and writes a single worksheet of a Google Sheets spreadsheet.
type Worksheet struct {
	google        *sheets.Service
	SpreadsheetID string
	Title         string
}

// Open finds the spreadsheet by URL, ID or title and the named worksheet in it.
// A blank worksheet name selects the first worksheet.
func Open(ctx context.Context, google *sheets.Service, gdrive *drive.Service, spreadsheet, worksheet string) (*Worksheet, error) {
	id, err := Resolve(ctx, gdrive, spreadsheet)
	if err != nil {
		return nil, err
	}

	s, err := google.Spreadsheets.Get(id).Fields("spreadsheetId", "sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spreadsheet '%v' (%w)", spreadsheet, err)
	}

	sheet, err := getSheet(s, worksheet)
	if err != nil {
		return nil, err
	}

	return &Worksheet{
		google:        google,
		SpreadsheetID: s.SpreadsheetId,
		Title:         sheet.Properties.Title,
	}, nil
}

// Resolve returns the spreadsheet ID for a spreadsheet URL, ID or title. Titles
// are looked up with the Drive API and the most recently modified match wins.
func Resolve(ctx context.Context, gdrive *drive.Service, spreadsheet string) (string, error) {
	s := strings.TrimSpace(spreadsheet)

	if match := urlRE.FindStringSubmatch(s); len(match) > 1 {
		return match[1], nil
	}

	if idRE.MatchString(s) {
		return s, nil
	}

	if s == "" {
		return "", fmt.Errorf("missing spreadsheet")
	}

	if gdrive == nil {
		return "", fmt.Errorf("unable to look up spreadsheet '%v' without Drive access", s)
	}

	q := fmt.Sprintf("name = '%s' and mimeType = 'application/vnd.google-apps.spreadsheet' and trashed = false", escape(s))

	files, err := gdrive.Files.List().
		Q(q).
		OrderBy("modifiedTime desc").
		Fields("files(id, name, modifiedTime)").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("unable to look up spreadsheet '%v' (%w)", s, err)
	}

	if len(files.Files) == 0 {
		return "", fmt.Errorf("no spreadsheet named '%v' shared with these credentials", s)
	}

	return files.Files[0].Id, nil
}

// Values returns the formatted cell values of the worksheet. Trailing blank rows
// and cells are omitted by the API.
func (w *Worksheet) Values(ctx context.Context) ([][]string, error) {
	response, err := w.google.Spreadsheets.Values.Get(w.SpreadsheetID, w.sheet()).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from worksheet '%v' (%w)", w.Title, err)
	}

	rows := make([][]string, len(response.Values))
	for i, row := range response.Values {
		rows[i] = make([]string, len(row))
		for j, v := range row {
			rows[i][j] = fmt.Sprintf("%v", v)
		}
	}

	return rows, nil
}

// Update overwrites the worksheet cells starting at A1. Cells outside the rows
// are left unchanged.
func (w *Worksheet) Update(ctx context.Context, rows [][]string) error {
	values := sheets.ValueRange{
		Range:  w.area(),
		Values: make([][]interface{}, len(rows)),
	}

	for i, row := range rows {
		values.Values[i] = make([]interface{}, len(row))
		for j, v := range row {
			values.Values[i][j] = v
		}
	}

	if _, err := w.google.Spreadsheets.Values.Update(w.SpreadsheetID, w.area(), &values).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("unable to update worksheet '%v' (%w)", w.Title, err)
	}

	return nil
}

// sheet is the A1 range for the whole worksheet. A bare cell reference would
// read just that cell.
func (w *Worksheet) sheet() string {
	return fmt.Sprintf("'%s'", strings.ReplaceAll(w.Title, "'", "''"))
}

func (w *Worksheet) area() string {
	return w.sheet() + "!A1"
}

func getSheet(spreadsheet *sheets.Spreadsheet, name string) (*sheets.Sheet, error) {
	if len(spreadsheet.Sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet %v has no worksheets", spreadsheet.SpreadsheetId)
	}

	if strings.TrimSpace(name) == "" {
		return spreadsheet.Sheets[0], nil
	}

	for _, sheet := range spreadsheet.Sheets {
		if normalise(sheet.Properties.Title) == normalise(name) {
			return sheet, nil
		}
	}

	return nil, fmt.Errorf("unable to identify worksheet '%s'", name)
}

func escape(v string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v)
}

func normalise(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
