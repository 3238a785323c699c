// Package logging builds the zap logger shared by the loop and backends.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/san-kum/glowpend/internal/config"
)

// New builds a logger writing to console. When cfg.File is set, a JSON copy
// of every entry also goes to that file, rotated by lumberjack. The returned
// close function syncs the logger and releases the file.
func New(cfg config.LogConfig, console zapcore.WriteSyncer) (*zap.Logger, func() error, error) {
	level := zap.NewAtomicLevel()
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
		}
	}

	cores := []zapcore.Core{zapcore.NewCore(consoleEncoder(cfg.Development), console, level)}

	var file *lumberjack.Logger
	if cfg.File != "" {
		file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(jsonEncoder(), zapcore.AddSync(file), level))
	}

	opts := []zap.Option{zap.AddStacktrace(zap.ErrorLevel)}
	if cfg.Development {
		opts = append(opts, zap.AddCaller(), zap.Development())
	}
	log := zap.New(zapcore.NewTee(cores...), opts...).Named("glowpend")

	closeFn := func() error {
		// Sync on a console fd fails with EINVAL on some platforms; only
		// the file matters here.
		_ = log.Sync()
		if file != nil {
			return file.Close()
		}
		return nil
	}
	return log, closeFn, nil
}

// NewStderr is New with console output on a locked stderr.
func NewStderr(cfg config.LogConfig) (*zap.Logger, func() error, error) {
	return New(cfg, zapcore.Lock(os.Stderr))
}

// Quiet keeps only the file sink, for backends that own the terminal.
func Quiet(cfg config.LogConfig) (*zap.Logger, func() error, error) {
	if cfg.File == "" {
		return zap.NewNop(), func() error { return nil }, nil
	}
	return New(cfg, zapcore.AddSync(io.Discard))
}

func consoleEncoder(dev bool) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if !dev {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return zapcore.NewConsoleEncoder(ec)
}

func jsonEncoder() zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(ec)
}
