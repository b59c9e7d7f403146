package joblog

import (
	"fmt"
)

const DefaultRetain = 20

// Rotate trims the log file to the most recent 'retain' entries. The file is
// left untouched if it is already short enough.
func Rotate(path string, retain int) error {
	if retain < 1 {
		return fmt.Errorf("invalid log retention (%v)", retain)
	}

	lines, err := readLines(path)
	if err != nil {
		return err
	}

	if len(lines) <= retain {
		return nil
	}

	return writeLines(path, lines[len(lines)-retain:])
}
