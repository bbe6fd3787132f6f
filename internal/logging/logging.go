// Package logging holds the process-wide zap logger. Subsystems derive
// named children from Logger (e.g. Logger.Named("rates")) instead of
// building their own cores, and CLI commands flush it with Sync on exit.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger
var Logger *zap.Logger

// Config selects the level, encoding, and destination of log output
type Config struct {
	// Level is the minimum level that is emitted
	Level string `json:"level"`

	// Format is "console" or "json"
	Format string `json:"format"`

	// Output is "stdout", "stderr", or a file path
	Output string `json:"output"`

	// Development adds stacktraces on error-level entries
	Development bool `json:"development"`
}

// DefaultConfig logs human-readable output to stderr at info level.
// Logs stay off stdout so command output remains machine-parseable.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "console",
		Output: "stderr",
	}
}

// Initialize replaces the global logger with one built from cfg.
// An unparseable level falls back to info rather than failing; a file
// output that cannot be opened is an error.
func Initialize(cfg Config) error {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if cfg.Format == "console" {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	var sink zapcore.WriteSyncer
	switch cfg.Output {
	case "stdout":
		sink = zapcore.AddSync(os.Stdout)
	case "stderr":
		sink = zapcore.AddSync(os.Stderr)
	default:
		file, err := os.OpenFile(cfg.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		sink = zapcore.AddSync(file)
	}

	opts := []zap.Option{zap.AddCaller()}
	if cfg.Development {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.ErrorLevel))
	}

	Logger = zap.New(zapcore.NewCore(encoder, sink, level), opts...)
	return nil
}

// Sync flushes buffered entries. Safe to call whether or not Initialize
// has run.
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

func init() {
	_ = Initialize(DefaultConfig())
}
