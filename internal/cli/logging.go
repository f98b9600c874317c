package cli

import (
	"io"
	"log/slog"

	"github.com/hupe1980/symnmf"
	"gopkg.in/natefinch/lumberjack.v2"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newLogger builds the tool logger. Logs go to stderr unless cfg.File is
// set, in which case they go to a size-rotated file. The returned closer
// releases that file.
func newLogger(cfg LogConfig, stderr io.Writer) (*symnmf.Logger, io.Closer, error) {
	level, err := cfg.level()
	if err != nil {
		return nil, nil, err
	}

	var (
		w      io.Writer = stderr
		closer io.Closer = nopCloser{}
	)
	if cfg.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize, // MB
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge, // days
			Compress:   cfg.Compress,
		}
		w, closer = lj, lj
	}

	hopts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.Format == "json" {
		h = slog.NewJSONHandler(w, hopts)
	} else {
		h = slog.NewTextHandler(w, hopts)
	}
	return symnmf.NewLogger(h), closer, nil
}
