// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package applog provides the one diagnostic line format used by every
// stage: "error: <stage>: <message>" for configuration failures, a
// matching "warning:" variant for non-fatal notices, and a bare line for
// inspect's per-packet trace. It wraps logrus so stages share the same
// logging engine as the rest of the dependency graph this module draws
// from, rather than hand-rolling stderr writes.
package applog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// bareFormatter renders only the message, with no timestamp or level
// prefix: the stage name and severity are already baked into the message
// text by Logger's methods.
type bareFormatter struct{}

func (bareFormatter) Format(e *logrus.Entry) ([]byte, error) {
	return append([]byte(e.Message), '\n'), nil
}

// Logger emits diagnostics for a single named stage.
type Logger struct {
	stage string
	log   *logrus.Logger
}

// New returns a Logger for stage, writing to w (typically os.Stderr).
func New(stage string, w io.Writer) *Logger {
	l := logrus.New()
	l.SetFormatter(bareFormatter{})
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	return &Logger{stage: stage, log: l}
}

// NewStderr returns a Logger for stage writing to os.Stderr.
func NewStderr(stage string) *Logger { return New(stage, os.Stderr) }

// Error logs "error: <stage>: <message>", the format used for
// configuration errors.
func (l *Logger) Error(message string) {
	l.log.Error("error: " + l.stage + ": " + message)
}

// Warning logs "warning: <stage>: <message>", used for non-fatal notices
// such as wrap's "input will be treated as binary data".
func (l *Logger) Warning(message string) {
	l.log.Warn("warning: " + l.stage + ": " + message)
}

// Line logs a bare line with no stage prefix, used by inspect's
// per-packet trace.
func (l *Logger) Line(message string) {
	l.log.Info(message)
}
