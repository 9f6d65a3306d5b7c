// Package logging configures the global gommon logger, optionally teeing
// output into a size-rotated file.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/labstack/gommon/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	HEADER = "${time_rfc3339} ${level} ${short_file}:${line}"

	MAX_SIZE_MB = 16
	MAX_BACKUPS = 3
)

var LevelStringMap = map[string]log.Lvl{
	"debug": log.DEBUG,
	"info":  log.INFO,
	"warn":  log.WARN,
	"error": log.ERROR,
	"off":   log.OFF,
}

func ParseLevel(level string) (log.Lvl, error) {
	lvl, ok := LevelStringMap[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		return log.INFO, fmt.Errorf("invalid log level %q", level)
	}
	return lvl, nil
}

// Setup applies level and header to the global logger. When file is set the
// output goes to stdout and the rotating file; the returned closer releases
// it. An invalid level falls back to info and is reported as an error.
func Setup(level, file string) (io.Closer, error) {
	lvl, err := ParseLevel(level)
	log.SetLevel(lvl)
	log.SetHeader(HEADER)

	if file == "" {
		log.SetOutput(os.Stdout)
		return nopCloser{}, err
	}

	w := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    MAX_SIZE_MB,
		MaxBackups: MAX_BACKUPS,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, w))
	return w, err
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
