// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"io"
	"sync"

	"github.com/ulikunitz/lzma/xlog"
)

var (
	debugMu sync.RWMutex
	// debug stores a reference to a logger. It may contain nil for no
	// output.
	debug xlog.Logger
)

// debugLogger returns the current debug logger.
func debugLogger() xlog.Logger {
	debugMu.RLock()
	defer debugMu.RUnlock()
	return debug
}

// debugOn writes debug information to w. If w is nil no output will be
// written.
func debugOn(w io.Writer) {
	l := xlog.New(w, "lzma: ")
	debugMu.Lock()
	debug = l
	debugMu.Unlock()
}

// debugOff switches the debugging output off.
func debugOff() {
	debugMu.Lock()
	debug = nil
	debugMu.Unlock()
}

// SetDebugOutput directs the debug output of the package to w. A nil
// writer switches the output off. It may be called while encoders and
// decoders are running.
func SetDebugOutput(w io.Writer) {
	if w == nil {
		debugOff()
		return
	}
	debugOn(w)
}
