package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultConfig = "callings-app-sheets.yaml"

type Config struct {
	Source      Spreadsheet `yaml:"source"`
	Destination Spreadsheet `yaml:"destination"`
	Credentials Credentials `yaml:"credentials"`
	Log         Log         `yaml:"log"`
	Status      Status      `yaml:"status"`
	Sync        Sync        `yaml:"sync"`
}

// Spreadsheet identifies a worksheet. The spreadsheet may be given as a URL, a
// spreadsheet ID or a title. A blank worksheet is the first worksheet.
type Spreadsheet struct {
	Spreadsheet string `yaml:"spreadsheet"`
	Worksheet   string `yaml:"worksheet"`
}

type Log struct {
	File   string `yaml:"file"`
	Retain int    `yaml:"retain"`
}

type Status struct {
	File string `yaml:"file"`
}

type Sync struct {
	Timeout  time.Duration `yaml:"timeout"`
	LockFile string        `yaml:"lockfile"`
}

func NewConfig() *Config {
	return &Config{
		Source: Spreadsheet{
			Spreadsheet: "2022-4-10 Provo Peak 9th Ward Calling Submission (Responses)",
		},
		Destination: Spreadsheet{
			Spreadsheet: "Calling_Approval_Progress",
		},
		Credentials: Credentials{
			Env:  "CHURCH_JSON",
			File: "church_creds.json",
		},
		Log: Log{
			File:   "log.txt",
			Retain: 20,
		},
		Status: Status{
			File: "README.md",
		},
		Sync: Sync{
			Timeout: 5 * time.Minute,
		},
	}
}

// Load overlays the YAML configuration file onto the current settings. A missing
// file is only an error if it is not the default configuration file.
func (c *Config) Load(file string) error {
	b, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) && file == DefaultConfig {
		return nil
	} else if err != nil {
		return err
	}

	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("invalid configuration file %v (%w)", file, err)
	}

	return c.validate()
}

func (c *Config) validate() error {
	if c.Source.Spreadsheet == "" {
		return fmt.Errorf("missing source spreadsheet")
	}

	if c.Destination.Spreadsheet == "" {
		return fmt.Errorf("missing destination spreadsheet")
	}

	if c.Log.File == "" {
		return fmt.Errorf("missing log file")
	}

	if c.Log.Retain < 1 {
		return fmt.Errorf("invalid log retention (%v)", c.Log.Retain)
	}

	if c.Sync.Timeout < 0 {
		return fmt.Errorf("invalid sync timeout (%v)", c.Sync.Timeout)
	}

	return nil
}
