// Package log configures the process logger.
//
// Events go to stderr through a zerolog console writer. Every event carries
// the id of the goroutine that logged it, which ties driver errors to the
// worker that hit them.
package log

import (
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// "goroutine 123 [running]:" fits easily.
	stackBufSize = 32
	// len("goroutine ")
	goroutinePrefixLen = 10
)

var (
	Logger    zerolog.Logger
	level     = zerolog.InfoLevel
	stackPool = sync.Pool{New: func() interface{} { return make([]byte, stackBufSize) }}
)

func goroutineID() string {
	buf, ok := stackPool.Get().([]byte)
	if !ok {
		return "unknown"
	}
	defer stackPool.Put(buf) //nolint:staticcheck // buf is a slice

	n := runtime.Stack(buf, false)
	i := goroutinePrefixLen
	start := i
	for i < n && buf[i] >= '0' && buf[i] <= '9' {
		i++
	}
	if i == start {
		return "unknown"
	}
	return string(buf[start:i])
}

func init() {
	SetOutput(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
}

// SetOutput rebuilds the logger on w, keeping the current level.
func SetOutput(w io.Writer) {
	Logger = zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger().
		Hook(zerolog.HookFunc(func(e *zerolog.Event, _ zerolog.Level, _ string) {
			e.Str("goid", goroutineID())
		}))

	log.Logger = Logger
}

// SetLevel parses name ("debug", "info", "warn", "error") and applies it.
// An empty name leaves the logger unchanged.
func SetLevel(name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil {
		return err
	}
	level = lvl
	Logger = Logger.Level(lvl)
	log.Logger = Logger
	return nil
}

// IsDebug reports whether debug events are emitted.
func IsDebug() bool {
	return Logger.GetLevel() <= zerolog.DebugLevel
}

func Info() *zerolog.Event  { return Logger.Info() }
func Warn() *zerolog.Event  { return Logger.Warn() }
func Error() *zerolog.Event { return Logger.Error() }
func Debug() *zerolog.Event { return Logger.Debug() }
