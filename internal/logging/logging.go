// Package logging builds the application logger. Info and warnings go to
// stdout, errors to stderr, and when a log file is set every level is also
// appended there.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the logger's level, encoding and optional file.
type Options struct {
	Level  string
	Format string // "console" or "json"
	File   string
}

// New returns the logger and a cleanup function that flushes it and closes
// the log file.
func New(opts Options) (*zap.Logger, func(), error) {
	return build(opts, os.Stdout, os.Stderr)
}

func build(opts Options, stdout, stderr io.Writer) (*zap.Logger, func(), error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.Set(opts.Level); err != nil {
			return nil, nil, fmt.Errorf("parsing log level: %w", err)
		}
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	newEncoder := func() zapcore.Encoder { return zapcore.NewConsoleEncoder(encCfg) }
	if opts.Format == "json" {
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		newEncoder = func() zapcore.Encoder { return zapcore.NewJSONEncoder(encCfg) }
	}

	low := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= level && l < zapcore.ErrorLevel
	})
	high := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= level && l >= zapcore.ErrorLevel
	})

	cores := []zapcore.Core{
		zapcore.NewCore(newEncoder(), zapcore.AddSync(stdout), low),
		zapcore.NewCore(newEncoder(), zapcore.AddSync(stderr), high),
	}

	closeFile := func() {}
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		closeFile = func() { f.Close() }
		cores = append(cores, zapcore.NewCore(newEncoder(), zapcore.AddSync(f), level))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	cleanup := func() {
		_ = logger.Sync()
		closeFile()
	}
	return logger, cleanup, nil
}
