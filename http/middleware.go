package http

import (
	"context"
	"fmt"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"net/http"
	"runtime/debug"
	"time"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

type contextKey string

const requestIDKey contextKey = "requestID"

// RequestID retrieves the request ID from ctx
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// requestLogger returns logger annotated with the request ID of r
func requestLogger(logger log.Logger, r *http.Request) log.Logger {
	return log.With(logger, "request_id", RequestID(r.Context()))
}

// withRequestID reuses the caller's request ID or generates one
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		rw.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(rw, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// withAccessLog logs one line per request once it has been served
func withAccessLog(logger log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: rw}
		defer func(begin time.Time) {
			level.Info(requestLogger(logger, r)).Log(
				"method", r.Method,
				"path", r.URL.Path,
				"status", recorder.status(),
				"took", time.Since(begin),
			)
		}(time.Now())
		next.ServeHTTP(recorder, r)
	})
}

// withRecovery turns a panic in next into the generic internal error response.
// A response that has already started is left as it is.
func withRecovery(logger log.Logger, timestamp func() string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: rw}
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				level.Error(requestLogger(logger, r)).Log(
					"msg", "panic serving request",
					"panic", fmt.Sprintf("%v", p),
					"stack", string(debug.Stack()),
					"response_started", recorder.started(),
				)
				if !recorder.started() {
					writeError(rw, http.StatusInternalServerError, msgInternalError, timestamp())
				}
			}
		}()
		next.ServeHTTP(recorder, r)
	})
}

// statusRecorder captures the status code written through it
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (sr *statusRecorder) WriteHeader(code int) {
	if sr.code == 0 {
		sr.code = code
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.code == 0 {
		sr.code = http.StatusOK
	}
	return sr.ResponseWriter.Write(b)
}

// started reports whether a status or any body has been written
func (sr *statusRecorder) started() bool {
	return sr.code != 0
}

func (sr *statusRecorder) status() int {
	if sr.code == 0 {
		return http.StatusOK
	}
	return sr.code
}
