package logging

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestID returns the id assigned to the request carried by ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (r *statusRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }

// Middleware assigns a request id (reusing a valid incoming X-Request-ID),
// attaches a request-scoped logger to the context (see zerolog.Ctx) and logs
// every completed request.
func Middleware(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)

			reqLog := log.With().Str("request_id", id).Logger()
			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			ctx = reqLog.WithContext(ctx)

			rec := &statusRecorder{ResponseWriter: w}
			begin := time.Now()
			next.ServeHTTP(rec, r.WithContext(ctx))
			if rec.status == 0 {
				rec.status = http.StatusOK
			}

			ev := reqLog.Info()
			if rec.status >= 500 {
				ev = reqLog.Error()
			}
			ev.Str("method", r.Method).
				Str("url", r.URL.RequestURI()).
				Int("status", rec.status).
				Int("bytes", rec.bytes).
				Dur("latency", time.Since(begin)).
				Msg("Completed request")
		})
	}
}

// Recover turns a handler panic into a logged error and a call to onPanic,
// which writes the response. onPanic may be nil for a plain 500.
func Recover(onPanic func(w http.ResponseWriter, r *http.Request, rvr any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil || rvr == http.ErrAbortHandler {
					if rvr != nil {
						panic(rvr)
					}
					return
				}
				zerolog.Ctx(r.Context()).Error().
					Interface("panic", rvr).
					Str("method", r.Method).
					Str("url", r.URL.RequestURI()).
					Str("remote_addr", r.RemoteAddr).
					Str("stack_trace", string(debug.Stack())).
					Msg("Recovered from panic")

				if onPanic == nil {
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
				onPanic(w, r, rvr)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
