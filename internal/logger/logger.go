// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the go-sync-keeper server and client.
//
// The server logs JSON to stdout. The client logs JSON to a size-rotated
// file because its stdout belongs to command output. Request-scoped loggers
// carrying a trace_id travel in the context and are read back with
// FromContext or FromRequest.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const traceIDField = "trace_id"

// Logger embeds zerolog.Logger so the whole zerolog API is available.
type Logger struct {
	zerolog.Logger
}

// NewLogger returns the server logger, writing JSON to stdout.
func NewLogger(role string) *Logger {
	return newLogger(os.Stdout, role)
}

// NewClientLogger returns the client logger. Entries go to logPath through a
// lumberjack writer. An empty logPath places a "logs" file next to the
// executable.
func NewClientLogger(role, logPath string) *Logger {
	if logPath == "" {
		execPath, _ := os.Executable()
		logPath = filepath.Join(filepath.Dir(execPath), "logs")
	}

	return newLogger(&lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    1, // megabytes
		MaxBackups: 10,
		MaxAge:     30, // days
	}, role)
}

// newLogger emits every level with a role field, a timestamp and the calling
// function name under "func".
func newLogger(w io.Writer, role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}

	return &Logger{zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()}
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy that can gain fields without touching l.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// ContextWithTraceID returns ctx carrying a child of l tagged with traceID.
func (l *Logger) ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	child := l.With().Str(traceIDField, traceID).Logger()
	return child.WithContext(ctx)
}

// FromRequest returns the logger attached to the request context, or
// zerolog's default logger when none is attached.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
