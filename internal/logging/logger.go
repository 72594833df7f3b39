package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/neurotracker/neurotracker-go/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a logger that writes each level to its own rotating JSON file
// and, optionally, everything at or above the configured level to stdout.
// The returned AtomicLevel can be adjusted at runtime.
func New(cfg config.LoggingConfig) (*zap.Logger, zap.AtomicLevel, error) {
	atom := zap.NewAtomicLevel()
	if err := SetLevel(atom, cfg.Level); err != nil {
		return nil, atom, err
	}

	if err := os.MkdirAll(cfg.Directory, 0o755); err != nil {
		return nil, atom, fmt.Errorf("creating log directory: %w", err)
	}

	encoderConfig := zapcore.EncoderConfig{
		MessageKey:   "message",
		LevelKey:     "level",
		TimeKey:      "time",
		CallerKey:    "caller",
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	levels := []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	cores := make([]zapcore.Core, 0, len(levels)+1)
	for _, lvl := range levels {
		cores = append(cores, newFileCore(cfg, lvl, atom, encoderConfig))
	}
	if cfg.Console {
		cores = append(cores, newConsoleCore(atom))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), atom, nil
}

// SetLevel parses name and applies it to atom. An empty name means info.
func SetLevel(atom zap.AtomicLevel, name string) error {
	if name == "" {
		name = "info"
	}
	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("parsing log level %q: %w", name, err)
	}
	atom.SetLevel(lvl)
	return nil
}

// newFileCore writes exactly one level to a file named like 2026-01-02-info.log.
func newFileCore(cfg config.LoggingConfig, level zapcore.Level, atom zap.AtomicLevel, encoderConfig zapcore.EncoderConfig) zapcore.Core {
	fileName := filepath.Join(cfg.Directory, fmt.Sprintf("%s-%s.log", time.Now().Format("2006-01-02"), level.String()))

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	})

	enabler := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l == level && atom.Enabled(l)
	})

	return zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), writer, enabler)
}

func newConsoleCore(atom zap.AtomicLevel) zapcore.Core {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	return zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		atom,
	)
}
