// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package stage holds the boilerplate every cmd/* executable shares: option
// parsing wired to the stderr/usage/exit-code convention, and the
// stdin/stdout file descriptors every stage builds its one Source and one
// Sink from.
package stage

import (
	"os"

	"code.hybscloud.com/sdrpipe/internal/applog"
	"code.hybscloud.com/sdrpipe/opt"
)

// Harness bundles a stage's name, its stderr logger, and its argv.
type Harness struct {
	Name string
	Log  *applog.Logger
	Args []string
}

// New builds a Harness for the named stage from os.Args[1:].
func New(name string) *Harness {
	return &Harness{Name: name, Log: applog.NewStderr(name), Args: os.Args[1:]}
}

// Stdin returns stdin's raw file descriptor.
func (h *Harness) Stdin() int { return int(os.Stdin.Fd()) }

// Stdout returns stdout's raw file descriptor.
func (h *Harness) Stdout() int { return int(os.Stdout.Fd()) }

// ParseOrExit parses h.Args against positional and keyword declarations.
// Every argument it does not consume is reported as a warning. On any parse
// error it prints the per-option "error: <key>: <message>" lines, then
// usage, then exits -1.
func (h *Harness) ParseOrExit(positional, keyword []opt.Base) {
	ignored, ok := opt.ParseCollecting(positional, keyword, h.Args, func(key, message string) {
		h.Log.Line("error: " + key + ": " + message)
	})
	for _, arg := range ignored {
		h.Log.Warning("unknown argument '" + arg + "'")
	}
	if !ok {
		h.Log.Line(opt.Usage(h.Name, positional, keyword))
		os.Exit(-1)
	}
}

// FailConfig reports a stage-level configuration error (a violated
// invariant opt.Parse itself could not catch, such as a missing required
// option or impossible size arithmetic), prints usage, and exits -1.
func (h *Harness) FailConfig(message string, positional, keyword []opt.Base) {
	h.Log.Error(message)
	h.Log.Line(opt.Usage(h.Name, positional, keyword))
	os.Exit(-1)
}
