package httpapi

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// zlog is an optional structured logger. If unset, falls back to log.Printf.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = &l }

// LogLevel controls per-request logging behavior.
type LogLevel int

const (
	LevelOff LogLevel = iota
	LevelError
	LevelInfo
	LevelDebug
)

func parseLevel(s string) LogLevel {
	switch s {
	case "off", "":
		return LevelOff
	case "error":
		return LevelError
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// global default, read once
var defaultLogLevel = parseLevel(os.Getenv("GATRACK_HTTP_LOG_LEVEL"))

func requestLogLevel(r *http.Request) LogLevel {
	// Per-request overrides
	if v := r.URL.Query().Get("log"); v != "" {
		if v == "1" {
			return LevelDebug
		}
		return parseLevel(v)
	}
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return parseLevel(v)
	}
	return defaultLogLevel
}

// logTurn reports the outcome of one UI turn at the request's log level.
// Failed turns are logged from LevelError, successful ones from LevelInfo.
func logTurn(r *http.Request, lvl LogLevel, op, uiID string, status int, calls int, start time.Time, err error) {
	if lvl == LevelOff || (err == nil && lvl < LevelInfo) {
		return
	}
	dur := time.Since(start)
	rid := middleware.GetReqID(r.Context())
	if zlog == nil {
		log.Printf("%s end ui=%s status=%d calls=%d dur=%s request_id=%s err=%v", op, uiID, status, calls, dur, rid, err)
		return
	}
	ev := zlog.Info()
	if err != nil {
		ev = zlog.Error().Err(err)
	}
	ev = ev.Str("op", op).Str("ui_id", uiID).Int("status", status).Int("calls", calls).Dur("dur", dur)
	if rid != "" {
		ev = ev.Str("request_id", rid)
	}
	if lvl >= LevelDebug {
		ev = ev.Str("path", r.URL.Path).Str("remote", r.RemoteAddr)
	}
	ev.Msg(op + " end")
}
