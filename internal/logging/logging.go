// Package logging provides the INFO/WARN/ERROR loggers shared by the commands.
package logging

import (
	"io"
	"log"

	"github.com/fatih/color"
)

// Logger groups the three levels. Each level is a plain *log.Logger and is
// safe for concurrent use.
type Logger struct {
	Info  *log.Logger
	Warn  *log.Logger
	Error *log.Logger
}

// New writes all levels to w. With quiet set, INFO is discarded; warnings and
// errors are always shown. Prefixes are coloured unless color.NoColor is set
// (it is when w is not a terminal).
func New(w io.Writer, quiet bool) *Logger {
	info := w
	if quiet {
		info = io.Discard
	}
	const flags = log.Ldate | log.Ltime
	return &Logger{
		Info:  log.New(info, color.CyanString("INFO: "), flags),
		Warn:  log.New(w, color.YellowString("WARN: "), flags),
		Error: log.New(w, color.RedString("ERROR: "), flags),
	}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return &Logger{
		Info:  log.New(io.Discard, "", 0),
		Warn:  log.New(io.Discard, "", 0),
		Error: log.New(io.Discard, "", 0),
	}
}
