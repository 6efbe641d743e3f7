package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/agbru/numcore/internal/backend"
	"github.com/agbru/numcore/internal/config"
	apperrors "github.com/agbru/numcore/internal/errors"
	"github.com/agbru/numcore/internal/fft"
	"github.com/agbru/numcore/internal/format"
	"github.com/agbru/numcore/internal/logging"
)

const (
	// maxInlineDigits caps the untruncated result size in a JSON
	// response; longer values are abbreviated.
	maxInlineDigits = 10000
	// maxConvolveLog2N caps the convolution length accepted over HTTP.
	maxConvolveLog2N = 22
	// shutdownGrace bounds the graceful shutdown of in-flight requests.
	shutdownGrace = 10 * time.Second
)

// Server serves the arithmetic API over HTTP.
type Server struct {
	addr     string
	timeout  time.Duration
	security SecurityConfig
	metrics  *Metrics
	logger   logging.Logger
	mux      *http.ServeMux

	defaultBackend string
	opts           backend.Options
}

// New creates a Server from the application configuration.
//
// Parameters:
//   - cfg: The application configuration (address, timeout, thresholds).
//   - logger: The structured logger for request and error reporting.
//
// Returns:
//   - *Server: A configured server, not yet listening.
func New(cfg config.AppConfig, logger logging.Logger) *Server {
	s := &Server{
		addr:     cfg.ServerAddr,
		timeout:  cfg.Timeout,
		security: DefaultSecurityConfig(),
		metrics:  NewMetrics(),
		logger:   logger,
		mux:      http.NewServeMux(),
		opts: backend.Options{
			ParallelThreshold: cfg.ParallelThreshold,
			FFTThreshold:      cfg.FFTThreshold,
		},
	}
	if names, err := cfg.BackendList(); err == nil && len(names) > 0 {
		s.defaultBackend = names[0]
	}
	s.routes()
	return s
}

// routes registers all endpoints with their middleware chain.
func (s *Server) routes() {
	wrap := func(h http.HandlerFunc) http.HandlerFunc {
		return SecurityMiddleware(s.security, s.metricsMiddleware(h))
	}
	s.mux.HandleFunc("/healthz", wrap(s.handleHealth))
	s.mux.HandleFunc("/metrics", wrap(s.handleMetrics))
	s.mux.HandleFunc("/api/v1/factorial", wrap(s.handleFactorial))
	s.mux.HandleFunc("/api/v1/power", wrap(s.handlePower))
	s.mux.HandleFunc("/api/v1/convolve", wrap(s.handleConvolve))
}

// Handler returns the server's root handler, mainly for testing.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run listens on the configured address until ctx is canceled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", logging.String("addr", s.addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		s.logger.Info("http server shutting down")
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// computationResponse is the JSON body returned by the computation
// endpoints.
type computationResponse struct {
	Operation  string  `json:"operation"`
	Input      string  `json:"input"`
	Backend    string  `json:"backend"`
	Digits     int     `json:"digits"`
	Bits       int     `json:"bits"`
	DurationMS float64 `json:"duration_ms"`
	Result     string  `json:"result"`
	Truncated  bool    `json:"truncated,omitempty"`
}

// errorResponse is the JSON body returned on request failures.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON serializes v with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encoding failed", err)
	}
}

// writeError logs and serializes a request failure.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.logger.Warn("request rejected",
		logging.String("path", r.URL.Path),
		logging.Int("status", status),
		logging.String("reason", msg))
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMetrics serves the Prometheus exposition endpoint.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// selectBackend resolves the backend named in the request, falling back
// to the configured default and then to the first registered backend.
func (s *Server) selectBackend(r *http.Request) (backend.Backend, error) {
	name := r.URL.Query().Get("backend")
	if name == "" {
		name = s.defaultBackend
	}
	if name == "" {
		all := backend.All()
		if len(all) == 0 {
			return nil, fmt.Errorf("no backends registered")
		}
		return all[0], nil
	}
	bks, err := backend.ByNames([]string{name})
	if err != nil {
		return nil, err
	}
	return bks[0], nil
}

// handleFactorial computes n! for the n query parameter.
func (s *Server) handleFactorial(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	n, err := strconv.ParseUint(r.URL.Query().Get("n"), 10, 64)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid or missing n parameter")
		return
	}
	if n > s.security.MaxNValue {
		s.writeError(w, r, http.StatusBadRequest,
			fmt.Sprintf("n exceeds the maximum of %d", s.security.MaxNValue))
		return
	}

	bk, err := s.selectBackend(r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	start := time.Now()
	result, err := bk.Factorial(ctx, backend.NopProgress, n, s.opts)
	duration := time.Since(start)

	if err != nil {
		s.metrics.CountComputation(config.OpFactorial, bk.Name(), "error")
		s.handleComputationError(w, r, err)
		return
	}
	s.metrics.CountComputation(config.OpFactorial, bk.Name(), "ok")

	resultStr := result.String()
	s.logger.Info("factorial computed",
		logging.Uint64("n", n),
		logging.String("backend", bk.Name()),
		logging.Dur("duration", duration))

	s.writeJSON(w, http.StatusOK, computationResponse{
		Operation:  config.OpFactorial,
		Input:      fmt.Sprintf("%d!", n),
		Backend:    bk.Name(),
		Digits:     format.DigitCount(resultStr),
		Bits:       result.BitLen(),
		DurationMS: float64(duration.Microseconds()) / 1000,
		Result:     format.Preview(resultStr, maxInlineDigits),
		Truncated:  len(resultStr) > maxInlineDigits,
	})
}

// handlePower computes base^exp for the base and exp query parameters.
func (s *Server) handlePower(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	base, err := strconv.ParseInt(r.URL.Query().Get("base"), 10, 64)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid or missing base parameter")
		return
	}
	exp, err := strconv.ParseUint(r.URL.Query().Get("exp"), 10, 64)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid or missing exp parameter")
		return
	}
	if exp > s.security.MaxNValue {
		s.writeError(w, r, http.StatusBadRequest,
			fmt.Sprintf("exp exceeds the maximum of %d", s.security.MaxNValue))
		return
	}

	bk, err := s.selectBackend(r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	start := time.Now()
	result, err := bk.Power(ctx, backend.NopProgress, base, exp, s.opts)
	duration := time.Since(start)

	if err != nil {
		s.metrics.CountComputation(config.OpPower, bk.Name(), "error")
		s.handleComputationError(w, r, err)
		return
	}
	s.metrics.CountComputation(config.OpPower, bk.Name(), "ok")

	resultStr := result.String()
	s.writeJSON(w, http.StatusOK, computationResponse{
		Operation:  config.OpPower,
		Input:      fmt.Sprintf("%d^%d", base, exp),
		Backend:    bk.Name(),
		Digits:     format.DigitCount(resultStr),
		Bits:       result.BitLen(),
		DurationMS: float64(duration.Microseconds()) / 1000,
		Result:     format.Preview(resultStr, maxInlineDigits),
		Truncated:  len(resultStr) > maxInlineDigits,
	})
}

// convolveRequest is the JSON body accepted by the convolve endpoint.
// Signal and kernel must have the same power-of-two length.
type convolveRequest struct {
	Signal []float64 `json:"signal"`
	Kernel []float64 `json:"kernel"`
}

// convolveResponse is the JSON body returned by the convolve endpoint.
type convolveResponse struct {
	N          int       `json:"n"`
	DurationMS float64   `json:"duration_ms"`
	Result     []float64 `json:"result"`
}

// handleConvolve computes the cyclic convolution of the posted signal
// and kernel.
func (s *Server) handleConvolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req convolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	n := len(req.Signal)
	if n != len(req.Kernel) {
		s.writeError(w, r, http.StatusBadRequest, "signal and kernel lengths differ")
		return
	}
	log2n, ok := log2OfPowerOfTwo(n)
	if !ok || log2n < 1 {
		s.writeError(w, r, http.StatusBadRequest, "length must be a power of two, at least 2")
		return
	}
	if log2n > maxConvolveLog2N {
		s.writeError(w, r, http.StatusBadRequest,
			fmt.Sprintf("length exceeds the maximum of 2^%d", maxConvolveLog2N))
		return
	}

	dst := make([]float64, n)
	scratch := fft.AcquireScratch(2 * n)
	defer fft.ReleaseScratch(scratch)

	start := time.Now()
	fft.Conv(dst, req.Signal, req.Kernel, scratch, log2n)
	duration := time.Since(start)

	s.logger.Info("convolution computed",
		logging.Int("n", n),
		logging.Dur("duration", duration))

	s.writeJSON(w, http.StatusOK, convolveResponse{
		N:          n,
		DurationMS: float64(duration.Microseconds()) / 1000,
		Result:     dst,
	})
}

// log2OfPowerOfTwo returns log2(n) when n is a positive power of two.
func log2OfPowerOfTwo(n int) (uint, bool) {
	if n <= 0 || n&(n-1) != 0 {
		return 0, false
	}
	var log2n uint
	for m := n; m > 1; m >>= 1 {
		log2n++
	}
	return log2n, true
}

// handleComputationError maps a backend failure onto an HTTP status.
func (s *Server) handleComputationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case apperrors.IsContextError(err):
		s.writeError(w, r, http.StatusGatewayTimeout, "computation timed out")
	default:
		s.writeError(w, r, http.StatusInternalServerError, err.Error())
	}
}
