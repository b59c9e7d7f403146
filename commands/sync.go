package commands

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/wardtools/callings-app-sheets/config"
	"github.com/wardtools/callings-app-sheets/joblog"
	"github.com/wardtools/callings-app-sheets/progress"
	"github.com/wardtools/callings-app-sheets/worksheet"
)

var SyncCmd = Sync{
	command: command{
		credentials: "",
		debug:       false,
	},

	logfile: "",
	readme:  "",
	retain:  0,
	dryrun:  false,
}

type Sync struct {
	command
	logfile string
	readme  string
	retain  int
	dryrun  bool
}

func (cmd *Sync) Name() string {
	return "sync"
}

func (cmd *Sync) Description() string {
	return "Rebuilds the calling progress worksheet from the calling submission form responses"
}

func (cmd *Sync) Usage() string {
	return "[--log <file>] [--readme <file>] [--dryrun]"
}

func (cmd *Sync) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] sync [options]\n", APP)
	fmt.Println()
	fmt.Println("  Copies the approved callings that have not yet been recorded from the form responses worksheet")
	fmt.Println("  to the progress worksheet, logs the result, trims the log file and updates the last line of the")
	fmt.Println("  README with the result.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s sync\n", APP)
	fmt.Printf("    %s --debug --config callings.yaml sync --credentials church_creds.json --dryrun\n", APP)
	fmt.Println()
}

func (cmd *Sync) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("sync")

	flagset.StringVar(&cmd.logfile, "log", cmd.logfile, "Log file. Overrides the configuration file")
	flagset.StringVar(&cmd.readme, "readme", cmd.readme, "Status document updated with the latest log entry. Overrides the configuration file")
	flagset.IntVar(&cmd.retain, "retain", cmd.retain, "Number of log entries to keep. Overrides the configuration file")
	flagset.BoolVar(&cmd.dryrun, "dryrun", cmd.dryrun, "Builds the progress table without updating the worksheet, log file or README")

	return flagset
}

// Execute runs a sync. A failed sync is logged and does not return an error:
// only configuration, locking and log housekeeping errors are returned.
func (cmd *Sync) Execute(args ...any) error {
	conf, err := cmd.configure(args...)
	if err != nil {
		return err
	}

	if cmd.logfile != "" {
		conf.Log.File = cmd.logfile
	}

	if cmd.readme != "" {
		conf.Status.File = cmd.readme
	}

	if cmd.retain > 0 {
		conf.Log.Retain = cmd.retain
	}

	if cmd.dryrun {
		log := joblog.Console(cmd.debug)
		result := cmd.sync(conf, log)
		if result.Failed() {
			return result.Err
		}

		log.Info(fmt.Sprintf("Dry run: %v callings to copy to the progress worksheet", result.Rows))
		return nil
	}

	// ... one run at a time
	lockfile := conf.Sync.LockFile
	if lockfile == "" {
		dir, file := filepath.Split(conf.Log.File)
		lockfile = filepath.Join(dir, fmt.Sprintf(".%s.lock", file))
	}

	lock, err := acquire(lockfile)
	if err != nil {
		return err
	}

	defer lock.Release()

	// ... sync
	log, err := joblog.Open(joblog.Config{
		File:   conf.Log.File,
		Retain: conf.Log.Retain,
		Debug:  cmd.debug,
	})
	if err != nil {
		return fmt.Errorf("unable to open log file (%w)", err)
	}

	result := cmd.sync(conf, log.Console)

	if result.Failed() {
		log.Error("Job failed: " + oneline(result.Err.Error()))
	} else {
		log.Info("Job successfully completed")
	}

	if err := log.Close(); err != nil {
		return err
	}

	// ... housekeeping
	if err := joblog.Rotate(conf.Log.File, conf.Log.Retain); err != nil {
		return fmt.Errorf("error trimming log file (%w)", err)
	}

	if err := joblog.Mirror(conf.Log.File, conf.Status.File); err != nil {
		return fmt.Errorf("error updating %v (%w)", conf.Status.File, err)
	}

	return nil
}

func (cmd *Sync) sync(conf *config.Config, log *zap.Logger) progress.Result {
	ctx := context.Background()
	if conf.Sync.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, conf.Sync.Timeout)
		defer cancel()
	}

	google, gdrive, err := connect(ctx, conf.Credentials)
	if err != nil {
		return progress.Result{Err: progress.Wrap(progress.AuthError, err)}
	}

	source, err := worksheet.Open(ctx, google, gdrive, conf.Source.Spreadsheet, conf.Source.Worksheet)
	if err != nil {
		return progress.Result{Err: progress.Wrap(progress.FetchError, err)}
	}

	destination, err := worksheet.Open(ctx, google, gdrive, conf.Destination.Spreadsheet, conf.Destination.Worksheet)
	if err != nil {
		return progress.Result{Err: progress.Wrap(progress.FetchError, err)}
	}

	log.Debug("worksheets",
		zap.String("source", source.SpreadsheetID+"/"+source.Title),
		zap.String("destination", destination.SpreadsheetID+"/"+destination.Title))

	result := progress.Sync(ctx, source, destination, progress.Options{DryRun: cmd.dryrun}, log)
	if !result.Failed() {
		log.Debug("progress worksheet updated", zap.Int("callings", result.Rows))
	}

	return result
}

// Log entries must be single lines.
func oneline(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
