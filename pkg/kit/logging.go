package kit

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LogOptions struct {
	Level string
	// File enables a rotated JSON log next to stdout.
	File string
}

func NewLogger(service string) *zap.Logger {
	return NewLoggerWith(service, LogOptions{})
}

func NewLoggerWith(service string, opts LogOptions) *zap.Logger {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if opts.Level != "" {
		if lv, err := zap.ParseAtomicLevel(opts.Level); err == nil {
			level = lv
		}
	}

	if opts.File == "" {
		cfg := zap.NewProductionConfig()
		cfg.Level = level
		cfg.InitialFields = map[string]any{"service": service}
		l, err := cfg.Build()
		if err != nil {
			return zap.NewNop()
		}
		return l
	}

	rotated := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    64,
		MaxBackups: 7,
		MaxAge:     7,
	}

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(rotated), level),
		zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(os.Stdout), level),
	)
	return zap.New(core, zap.AddCaller()).With(zap.String("service", service))
}
