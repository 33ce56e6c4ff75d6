package logger

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey string

const RequestIDKey ctxKey = "request_id"

var log = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Init configures the global logger. Production emits JSON at info level,
// anything else gets the human readable console writer at debug level.
func Init(env string) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	switch strings.ToLower(env) {
	case "production", "prod":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log = zerolog.New(os.Stdout).With().Timestamp().Logger()
	case "test":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).
			With().Timestamp().Logger()
	}
}

func Debug(msg string, args ...interface{}) {
	write(log.Debug(), msg, args)
}

func Info(msg string, args ...interface{}) {
	write(log.Info(), msg, args)
}

func Warn(msg string, args ...interface{}) {
	write(log.Warn(), msg, args)
}

func Error(msg string, args ...interface{}) {
	write(log.Error(), msg, args)
}

func Fatal(msg string, args ...interface{}) {
	write(log.Fatal(), msg, args)
}

// WithRequestID stores the request id so pipeline logs can carry it.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, RequestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(RequestIDKey).(string); ok {
		return v
	}
	return ""
}

// write walks args as key/value pairs. A bare error (one not preceded by a
// key) is logged under "error".
func write(ev *zerolog.Event, msg string, args []interface{}) {
	if ev == nil {
		return
	}

	for i := 0; i < len(args); i++ {
		switch v := args[i].(type) {
		case error:
			ev = ev.Err(v)
		case string:
			if i+1 >= len(args) {
				ev = ev.Str(fmt.Sprintf("arg%d", i), v)
				continue
			}
			ev = field(ev, v, args[i+1])
			i++
		default:
			ev = ev.Interface(fmt.Sprintf("arg%d", i), v)
		}
	}

	ev.Msg(msg)
}

func field(ev *zerolog.Event, key string, val interface{}) *zerolog.Event {
	switch v := val.(type) {
	case error:
		return ev.AnErr(key, v)
	case string:
		return ev.Str(key, v)
	case int:
		return ev.Int(key, v)
	case int64:
		return ev.Int64(key, v)
	case float64:
		return ev.Float64(key, v)
	case bool:
		return ev.Bool(key, v)
	case time.Duration:
		return ev.Dur(key, v)
	case fmt.Stringer:
		return ev.Stringer(key, v)
	default:
		return ev.Interface(key, v)
	}
}
