package joblog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// Separator between the timestamp, level and message of a log entry.
	Separator = "  "

	TimeFormat = "2006-01-02 15:04:05"
)

type Config struct {
	File   string
	Retain int
	Debug  bool
}

// Log is the run log. Entries are written to the log file as
//
//	<timestamp>  <LEVEL>  <message>
//
// and echoed to stderr. Console writes to stderr only and is for the detail
// of a run, so that the log file holds one entry per run.
type Log struct {
	*zap.Logger
	Console *zap.Logger
	file    *os.File
}

func Open(config Config) (*Log, error) {
	if config.File == "" {
		return nil, fmt.Errorf("missing log file")
	}

	if dir := filepath.Dir(config.File); dir != "" {
		if err := os.MkdirAll(dir, 0770); err != nil {
			return nil, err
		}
	}

	f, err := os.OpenFile(config.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	level := zapcore.InfoLevel
	if config.Debug {
		level = zapcore.DebugLevel
	}

	stderr := zapcore.NewCore(zapcore.NewConsoleEncoder(encoder()), zapcore.Lock(os.Stderr), level)
	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoder()), zapcore.AddSync(f), zapcore.InfoLevel),
		stderr,
	)

	return &Log{
		Logger:  zap.New(core),
		Console: zap.New(stderr),
		file:    f,
	}, nil
}

// Console returns a logger that only writes to stderr, in the run log format.
func Console(debug bool) *zap.Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(encoder()), zapcore.Lock(os.Stderr), level))
}

// Close flushes and closes the log file. The log file must be closed before it
// is rotated.
func (l *Log) Close() error {
	l.Sync()

	return l.file.Close()
}

func encoder() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       utc,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: Separator,
	}
}

func utc(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format(TimeFormat))
}
