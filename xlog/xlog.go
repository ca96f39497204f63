// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package xlog provides a Logger interface and functions that do nothing if
the logger is nil.

The lzma package uses it for debug output that can be switched on and off
at runtime. Calling methods of a nil *log.Logger panics, so the functions
of this package test the interface value before formatting the message.
The standard *log.Logger supports the Logger interface.
*/
package xlog

import (
	"fmt"
	"io"
	"log"
)

// Logger is the interface required for the output. The log.Logger type
// supports this interface.
type Logger interface {
	Output(calldepth int, s string) error
}

// New returns a logger that writes to w using the given prefix. If w is nil
// the function returns nil, which disables the output.
func New(w io.Writer, prefix string) Logger {
	if w == nil {
		return nil
	}
	return log.New(w, prefix, 0)
}

// Print outputs the arguments using the logger. If the logger is nil nothing
// will be printed.
func Print(l Logger, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprint(v...))
	}
}

// Printf prints the arguments using the format string. If the logger argument
// is nil nothing will be printed.
func Printf(l Logger, format string, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprintf(format, v...))
	}
}

// Println prints the arguments and adds a newline. If the logger argument is
// nil nothing will be printed.
func Println(l Logger, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprintln(v...))
	}
}
