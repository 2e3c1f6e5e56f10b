package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log *zap.Logger

type FileConfig struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
	Compress   bool   `yaml:"compress"`
}

func Initialize(logLevel string, fileCfg FileConfig) error {
	zLevel, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	config := zap.Config{
		Encoding:         "json",
		Level:            zap.NewAtomicLevelAt(zLevel),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    encoderConfig(),
	}

	l, err := config.Build()
	if err != nil {
		return err
	}

	if fileCfg.File != "" {
		// stderr keeps working when the file sink is rotated away.
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig()),
			zapcore.AddSync(newRotatingWriter(fileCfg)),
			config.Level,
		)
		l = l.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, fileCore)
		}))
	}

	log = l
	return nil
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:   "message",
		LevelKey:     "level",
		TimeKey:      "time",
		CallerKey:    "caller",
		EncodeLevel:  zapcore.LowercaseLevelEncoder,
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}
}

func newRotatingWriter(cfg FileConfig) *lumberjack.Logger {
	maxSize := cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 100
	}

	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    maxSize, // megabytes
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays, // days
		Compress:   cfg.Compress,
	}
}

// Logger returns the process logger, or a no-op logger before Initialize.
func Logger() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

func Sync() error {
	if log == nil {
		return nil
	}
	return log.Sync()
}
