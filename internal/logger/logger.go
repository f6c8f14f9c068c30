package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	serviceName = "ziggler-bot"
	production  = "production"
)

var log *zap.Logger

// Options selects the encoder and the minimum level of the process logger.
// Level accepts the names zapcore understands (debug, info, warn, error);
// empty means debug outside production and info in it.
type Options struct {
	Env   string
	Level string
}

// New builds a logger without touching the global one. Production writes
// sampled JSON to stdout, every other env writes colored console lines.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.DebugLevel
	if opts.Env == production {
		level = zapcore.InfoLevel
	}
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		level = parsed
	}

	var cfg zap.Config
	if opts.Env == production {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "json"
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.MessageKey = "message"
		cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.Sampling = &zap.SamplingConfig{Initial: 100, Thereafter: 100}
		cfg.OutputPaths = []string{"stdout"}
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	env := opts.Env
	if env == "" {
		env = "development"
	}
	cfg.InitialFields = map[string]any{
		"service": serviceName,
		"env":     env,
	}

	return cfg.Build(zap.AddCaller())
}

// Init replaces the global logger. On error the previous logger stays.
func Init(opts Options) error {
	l, err := New(opts)
	if err != nil {
		return err
	}
	log = l
	return nil
}

// L returns the global logger, building one from APP_ENV and LOG_LEVEL on
// first use. A bad LOG_LEVEL falls back to the env default.
func L() *zap.Logger {
	if log == nil {
		opts := Options{Env: os.Getenv("APP_ENV"), Level: os.Getenv("LOG_LEVEL")}
		if err := Init(opts); err != nil {
			opts.Level = ""
			if err := Init(opts); err != nil {
				log = zap.NewNop()
			}
		}
	}
	return log
}

// Sync flushes logs.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
