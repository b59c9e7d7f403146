package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/wardtools/callings-app-sheets/config"
	"github.com/wardtools/callings-app-sheets/worksheet"
)

const APP = "callings-app-sheets"

const VERSION = "v0.1.0"

type Options struct {
	Config string
	Debug  bool
}

// command holds the options shared by the commands that access Google Sheets.
// Blank values defer to the configuration file.
type command struct {
	credentials string
	debug       bool
}

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.credentials, "credentials", c.credentials, "Path for the Google credentials JSON file. Overrides the configuration file")

	return flagset
}

func (c *command) configure(args ...any) (*config.Config, error) {
	options := Options{
		Config: config.DefaultConfig,
	}

	if len(args) > 0 {
		if opt, ok := args[0].(*Options); ok && opt != nil {
			options = *opt
		}
	}

	c.debug = options.Debug

	conf := config.NewConfig()
	if err := conf.Load(options.Config); err != nil {
		return nil, fmt.Errorf("could not load configuration (%w)", err)
	}

	if strings.TrimSpace(c.credentials) != "" {
		conf.Credentials.File = c.credentials
	}

	return conf, nil
}

func connect(ctx context.Context, credentials config.Credentials) (*sheets.Service, *drive.Service, error) {
	client, err := credentials.Client(ctx, worksheet.SHEETS, worksheet.DRIVE)
	if err != nil {
		return nil, nil, fmt.Errorf("authentication/authorization error (%w)", err)
	}

	google, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create new Sheets client (%w)", err)
	}

	gdrive, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create new Drive client (%w)", err)
	}

	return google, gdrive, nil
}

func helpOptions(flagset *flag.FlagSet) {
	fmt.Println("  Options:")
	fmt.Println()

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})

	fmt.Println()
	fmt.Println("    --config <file>  Configuration file. Defaults to " + config.DefaultConfig)
	fmt.Println("    --debug          Displays internal information for diagnosing errors")
}
