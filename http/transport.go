package http

import (
	"encoding/json"
	"errors"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go-change-maker/change"
	"go-change-maker/domain"
	"net/http"
	"time"
)

// Version reported by the greeting endpoint
const Version = "1.0.0"

const (
	msgInvalidInput  = "Invalid input. Please provide valid dollar and cents values."
	msgInternalError = "Internal server error"
	msgGreeting      = "Hello World! Welcome to the change maker service."
)

// Server dependencies for HTTP Server functions
type Server struct {
	Service change.Service
	Logger  log.Logger

	router  *http.ServeMux
	handler http.Handler

	// now the clock used for response timestamps
	now func() time.Time
}

// NewServer constructs a Server with its routes and middleware in place
func NewServer(s change.Service, logger log.Logger) *Server {
	server := &Server{
		Service: s,
		Logger:  logger,
		router:  http.NewServeMux(),
		now:     time.Now,
	}
	server.routes()
	return server
}

func (s *Server) routes() {
	s.router.Handle("GET /{$}", s.hello())
	s.router.Handle("GET /health", s.health())
	s.router.Handle("GET /change/{dollar}/{cents}", s.change())

	s.handler = withRequestID(withAccessLog(s.Logger, withRecovery(s.Logger, s.timestamp, s.router)))
}

func (s *Server) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(rw, r)
}

// timestamp formats the current time for response bodies
func (s *Server) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

// hello produces the greeting handler, which doubles as a liveness probe
func (s *Server) hello() http.HandlerFunc {
	type response struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
		Version   string `json:"version"`
		Message   string `json:"message"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		level.Debug(requestLogger(s.Logger, r)).Log("msg", "greeting accessed")
		ts := s.timestamp()
		_ = writeJSON(rw, http.StatusOK, response{
			Status:    "healthy",
			Timestamp: ts,
			Version:   Version,
			Message:   msgGreeting,
		}, ts)
	}
}

// health produces the handler for monitoring probes
func (s *Server) health() http.HandlerFunc {
	type response struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		ts := s.timestamp()
		_ = writeJSON(rw, http.StatusOK, response{
			Status:    "healthy",
			Timestamp: ts,
		}, ts)
	}
}

// change produces the HTTP handler for making change out of /change/{dollar}/{cents}
func (s *Server) change() http.HandlerFunc {

	// response for marshalling JSON responses to return to clients
	type response struct {
		Input     string        `json:"input"`
		Change    domain.Change `json:"change"`
		Timestamp string        `json:"timestamp"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		logger := requestLogger(s.Logger, r)
		dollar, cents := r.PathValue("dollar"), r.PathValue("cents")

		level.Info(logger).Log("msg", "make change request", "dollar", dollar, "cents", cents)

		result, err := s.makeChange(r, dollar, cents)
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			level.Info(logger).Log("msg", "invalid input", "dollar", dollar, "cents", cents, "err", err)
			writeError(rw, http.StatusBadRequest, msgInvalidInput, s.timestamp())
			return
		case err != nil:
			level.Error(logger).Log("msg", "making change failed", "dollar", dollar, "cents", cents, "err", err)
			writeError(rw, http.StatusInternalServerError, msgInternalError, s.timestamp())
			return
		}

		ts := s.timestamp()
		err = writeJSON(rw, http.StatusOK, response{
			Input:     "$" + dollar + "." + cents,
			Change:    result,
			Timestamp: ts,
		}, ts)
		if err != nil {
			level.Error(logger).Log("msg", "encoding response failed", "err", err)
		}
	}
}

func (s *Server) makeChange(r *http.Request, dollar, cents string) (domain.Change, error) {
	amount, err := domain.ParseAmount(dollar, cents)
	if err != nil {
		return nil, err
	}
	return s.Service.MakeChange(r.Context(), amount)
}

// errorResponse the body shared by every failure response
type errorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

// writeJSON encodes v before writing anything, so an encoding failure still gets
// the internal error body stamped with timestamp.
func writeJSON(rw http.ResponseWriter, status int, v interface{}, timestamp string) error {
	bytes, encErr := json.Marshal(v)
	if encErr != nil {
		status = http.StatusInternalServerError
		bytes, _ = json.Marshal(errorResponse{Error: msgInternalError, Timestamp: timestamp})
	}
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	if _, err := rw.Write(append(bytes, '\n')); err != nil {
		return err
	}
	return encErr
}

// writeError writes an errorResponse with status
func writeError(rw http.ResponseWriter, status int, message string, timestamp string) {
	_ = writeJSON(rw, status, errorResponse{Error: message, Timestamp: timestamp}, timestamp)
}
