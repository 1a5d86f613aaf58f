// Package logging builds the shell's diagnostic logger. The logger only
// ever writes to a file so it never interleaves with the terminal.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/baaaaaaaka/mysh/internal/ids"
)

// New returns a JSON debug logger appending to path, or a no-op logger when
// path is empty. The returned close func flushes and closes the file.
func New(path string) (*zap.Logger, func() error, error) {
	if path == "" {
		return zap.NewNop(), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.AddSync(f),
		zapcore.DebugLevel,
	)
	fields := []zap.Field{zap.Int("pid", os.Getpid())}
	if id, err := ids.Session(); err == nil {
		fields = append(fields, zap.String("session", id))
	}
	logger := zap.New(core).With(fields...)

	closeFn := func() error {
		_ = logger.Sync()
		return f.Close()
	}
	return logger, closeFn, nil
}
