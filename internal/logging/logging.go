package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Logger writes leveled messages to the console. Component, when set, tags
// every line with the layer that produced it, e.g. "[debug] s3: get state.json".
type Logger struct {
	Verbose   bool
	Debug     bool
	Component string
}

// Named returns a copy of l tagged with component.
func (l Logger) Named(component string) Logger {
	l.Component = component
	return l
}

func (l Logger) Infof(msg string, args ...any) {
	if l.Verbose || l.Debug {
		l.write(os.Stdout, color.GreenString("[info] "), msg, args...)
	}
}

func (l Logger) Debugf(msg string, args ...any) {
	if l.Debug {
		l.write(os.Stdout, color.CyanString("[debug] "), msg, args...)
	}
}

func (l Logger) Warnf(msg string, args ...any) {
	l.write(os.Stderr, color.YellowString("[warn] "), msg, args...)
}

func (l Logger) Errorf(msg string, args ...any) {
	l.write(os.Stderr, color.RedString("[error] "), msg, args...)
}

func (l Logger) write(w io.Writer, prefix, msg string, args ...any) {
	if l.Component != "" {
		prefix += l.Component + ": "
	}
	fmt.Fprintf(w, prefix+msg+"\n", args...)
}
