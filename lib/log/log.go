// Package log builds log15 loggers shared by the key management packages.
package log

import (
	"io"
	"os"

	"github.com/inconshreveable/log15"
	"github.com/mattn/go-isatty"
)

// New returns a logger tagged with the module name. It discards records
// until a handler is set.
func New(module string, ctx ...interface{}) log15.Logger {
	logger := log15.New(append([]interface{}{"module", module}, ctx...)...)
	logger.SetHandler(log15.DiscardHandler())
	return logger
}

// Formatter returns the record format for f. "terminal" falls back to logfmt
// when stdout is not a terminal; anything unknown is JSON.
func Formatter(f string) log15.Format {
	switch f {
	case "terminal":
		if isatty.IsTerminal(os.Stdout.Fd()) {
			return log15.TerminalFormat()
		}
		return log15.LogfmtFormat()
	case "logfmt":
		return log15.LogfmtFormat()
	}
	return log15.JsonFormatEx(false, true)
}

// Handler writes to stdout, or appends to file when one is given. The
// returned closer releases the file and is nil for stdout.
func Handler(format log15.Format, file string) (log15.Handler, io.Closer, error) {
	if len(file) < 1 {
		return log15.StreamHandler(os.Stdout, format), nil, nil
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return log15.StreamHandler(f, format), f, nil
}

// ParseLevel accepts the log15 level names; an empty level is info.
func ParseLevel(level string) (log15.Lvl, error) {
	if level == "" {
		return log15.LvlInfo, nil
	}
	return log15.LvlFromString(level)
}

func SetLogger(logger log15.Logger, level log15.Lvl, handler log15.Handler) {
	logger.SetHandler(log15.LvlFilterHandler(level, handler))
}
