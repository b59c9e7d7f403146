package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/wardtools/callings-app-sheets/callings"
	"github.com/wardtools/callings-app-sheets/joblog"
	"github.com/wardtools/callings-app-sheets/progress"
	"github.com/wardtools/callings-app-sheets/worksheet"
)

var PutCmd = Put{
	command: command{
		credentials: "",
		debug:       false,
	},

	spreadsheet: "",
	worksheet:   "",
	file:        "",
}

type Put struct {
	command
	spreadsheet string
	worksheet   string
	file        string
}

func (cmd *Put) Name() string {
	return "put"
}

func (cmd *Put) Description() string {
	return "Replaces the contents of a Google Sheets worksheet with a TSV file"
}

func (cmd *Put) Usage() string {
	return "[--spreadsheet <spreadsheet>] [--worksheet <worksheet>] --file <file>"
}

func (cmd *Put) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] put [options] --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Replaces the contents of a Google Sheets worksheet with a TSV file. Defaults to the progress worksheet.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s put --file progress.tsv\n", APP)
	fmt.Println()
}

func (cmd *Put) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("put")

	flagset.StringVar(&cmd.spreadsheet, "spreadsheet", cmd.spreadsheet, "Spreadsheet URL, ID or title. Defaults to the configured progress spreadsheet")
	flagset.StringVar(&cmd.worksheet, "worksheet", cmd.worksheet, "Worksheet name. Defaults to the first worksheet")
	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV file")

	return flagset
}

func (cmd *Put) Execute(args ...any) error {
	conf, err := cmd.configure(args...)
	if err != nil {
		return err
	}

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	spreadsheet := conf.Destination.Spreadsheet
	sheet := conf.Destination.Worksheet
	if strings.TrimSpace(cmd.spreadsheet) != "" {
		spreadsheet = cmd.spreadsheet
		sheet = cmd.worksheet
	}

	f, err := os.Open(cmd.file)
	if err != nil {
		return err
	}

	defer f.Close()

	rows, err := callings.ParseTSV(f)
	if err != nil {
		return fmt.Errorf("invalid TSV file (%w)", err)
	}

	log := joblog.Console(cmd.debug)
	ctx := context.Background()

	google, gdrive, err := connect(ctx, conf.Credentials)
	if err != nil {
		return err
	}

	w, err := worksheet.Open(ctx, google, gdrive, spreadsheet, sheet)
	if err != nil {
		return err
	}

	log.Debug(fmt.Sprintf("Spreadsheet - ID:%s  worksheet:%s", w.SpreadsheetID, w.Title))

	if err := progress.Replace(ctx, w, rows, log); err != nil {
		return err
	}

	log.Info(fmt.Sprintf("Uploaded TSV file %v to worksheet '%v'", cmd.file, w.Title))

	return nil
}
