package joblog

import (
	"errors"
	"fmt"
	"strings"
)

var ErrFormat = errors.New("invalid log entry")

// Mirror replaces the last line of the status document with a summary of the
// latest log entry. The entry
//
//	2024-01-01 10:00:00  INFO   Job successfully completed
//
// is summarised as "- 2024-01-01 10:00:00 UTC: Job successfully completed".
func Mirror(logfile, status string) error {
	logs, err := readLines(logfile)
	if err != nil {
		return err
	}

	if len(logs) == 0 {
		return fmt.Errorf("%w: log file %v is empty", ErrFormat, logfile)
	}

	update, err := summarise(logs[len(logs)-1])
	if err != nil {
		return err
	}

	lines, err := readLines(status)
	if err != nil {
		return err
	}

	if len(lines) == 0 {
		lines = []string{update}
	} else {
		lines[len(lines)-1] = update
	}

	return writeLines(status, lines)
}

func summarise(entry string) (string, error) {
	fields := strings.SplitN(strings.TrimRight(entry, "\r\n"), Separator, 3)
	if len(fields) < 2 {
		return "", fmt.Errorf("%w '%v'", ErrFormat, strings.TrimSpace(entry))
	}

	summary := []string{}
	for i, f := range fields {
		if v := strings.TrimSpace(f); i != 1 && v != "" {
			summary = append(summary, v)
		}
	}

	return "- " + strings.Join(summary, " UTC: "), nil
}
