package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wardtools/callings-app-sheets/callings"
	"github.com/wardtools/callings-app-sheets/joblog"
	"github.com/wardtools/callings-app-sheets/worksheet"
)

var GetCmd = Get{
	command: command{
		credentials: "",
		debug:       false,
	},

	spreadsheet: "",
	worksheet:   "",
	file:        time.Now().Format("2006-01-02T150405.tsv"),
	progress:    false,
}

type Get struct {
	command
	spreadsheet string
	worksheet   string
	file        string
	progress    bool
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Downloads a Google Sheets worksheet to a TSV file"
}

func (cmd *Get) Usage() string {
	return "[--spreadsheet <spreadsheet>] [--worksheet <worksheet>] [--progress] [--file <file>]"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] get [options]\n", APP)
	fmt.Println()
	fmt.Println("  Downloads a Google Sheets worksheet to a TSV file. Defaults to the form responses worksheet.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s get --progress --file progress.tsv\n", APP)
	fmt.Printf(`    %s get --spreadsheet "Calling_Approval_Progress" --file current.tsv`+"\n", APP)
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("get")

	flagset.StringVar(&cmd.spreadsheet, "spreadsheet", cmd.spreadsheet, "Spreadsheet URL, ID or title. Defaults to the configured form responses spreadsheet")
	flagset.StringVar(&cmd.worksheet, "worksheet", cmd.worksheet, "Worksheet name. Defaults to the first worksheet")
	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV file name. Defaults to '<yyyy-mm-ddTHHmmss>.tsv'")
	flagset.BoolVar(&cmd.progress, "progress", cmd.progress, "Converts the form responses to the progress worksheet layout")

	return flagset
}

func (cmd *Get) Execute(args ...any) error {
	conf, err := cmd.configure(args...)
	if err != nil {
		return err
	}

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	spreadsheet := conf.Source.Spreadsheet
	sheet := conf.Source.Worksheet
	if strings.TrimSpace(cmd.spreadsheet) != "" {
		spreadsheet = cmd.spreadsheet
		sheet = cmd.worksheet
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

	rows, err := w.Values(ctx)
	if err != nil {
		return err
	}

	var table *callings.Table
	if cmd.progress {
		if table, err = callings.MakeTable(rows); err != nil {
			return err
		} else if table, err = callings.Filter(table); err != nil {
			return err
		}
	} else if table, err = callings.Raw(rows); err != nil {
		return err
	}

	if err := write(cmd.file, table); err != nil {
		return err
	}

	log.Info(fmt.Sprintf("Retrieved worksheet '%s' to file %s", w.Title, cmd.file))

	return nil
}

// write creates the TSV file as a temporary file and then renames it.
func write(file string, table *callings.Table) error {
	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".callings-*.tsv")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := callings.MakeTSV(tmp, table); err != nil {
		return fmt.Errorf("error creating TSV file (%w)", err)
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), file)
}
