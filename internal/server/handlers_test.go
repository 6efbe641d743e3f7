package server

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agbru/numcore/internal/config"
)

// newTestServer builds a fully wired server around the default
// configuration.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(config.DefaultConfig(), newTestLogger())
}

func decodeComputation(t *testing.T, rec *httptest.ResponseRecorder) computationResponse {
	t.Helper()
	var resp computationResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp
}

func TestServer_handleHealth(t *testing.T) {
	s := newTestServer(t)

	t.Run("GET returns ok", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/healthz", http.NoBody)
		rec := httptest.NewRecorder()

		s.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if !strings.Contains(rec.Body.String(), `"ok"`) {
			t.Errorf("body = %q, want it to contain %q", rec.Body.String(), `"ok"`)
		}
	})

	t.Run("POST returns method not allowed", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/healthz", http.NoBody)
		rec := httptest.NewRecorder()

		s.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
		}
	})
}

func TestServer_handleFactorial(t *testing.T) {
	s := newTestServer(t)

	t.Run("computes a small factorial", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/factorial?n=10", http.NoBody)
		rec := httptest.NewRecorder()

		s.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		resp := decodeComputation(t, rec)
		if resp.Result != "3628800" {
			t.Errorf("Result = %q, want %q", resp.Result, "3628800")
		}
		if resp.Input != "10!" {
			t.Errorf("Input = %q, want %q", resp.Input, "10!")
		}
		if resp.Digits != 7 {
			t.Errorf("Digits = %d, want 7", resp.Digits)
		}
		if resp.Backend == "" {
			t.Error("Backend should be reported")
		}
		if resp.Truncated {
			t.Error("small result should not be truncated")
		}
	})

	t.Run("missing n is rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/factorial", http.NoBody)
		rec := httptest.NewRecorder()

		s.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("n above the cap is rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/factorial?n=1000000001", http.NoBody)
		rec := httptest.NewRecorder()

		s.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
		if !strings.Contains(rec.Body.String(), "maximum") {
			t.Errorf("body = %q, want a maximum-exceeded message", rec.Body.String())
		}
	})

	t.Run("unknown backend is rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/factorial?n=10&backend=nope", http.NoBody)
		rec := httptest.NewRecorder()

		s.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestServer_handlePower(t *testing.T) {
	s := newTestServer(t)

	t.Run("computes a small power", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/power?base=3&exp=5", http.NoBody)
		rec := httptest.NewRecorder()

		s.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		resp := decodeComputation(t, rec)
		if resp.Result != "243" {
			t.Errorf("Result = %q, want %q", resp.Result, "243")
		}
		if resp.Input != "3^5" {
			t.Errorf("Input = %q, want %q", resp.Input, "3^5")
		}
	})

	t.Run("negative base is accepted", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/power?base=-2&exp=3", http.NoBody)
		rec := httptest.NewRecorder()

		s.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		resp := decodeComputation(t, rec)
		if resp.Result != "-8" {
			t.Errorf("Result = %q, want %q", resp.Result, "-8")
		}
	})

	t.Run("missing exp is rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/power?base=3", http.NoBody)
		rec := httptest.NewRecorder()

		s.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestServer_handleConvolve(t *testing.T) {
	s := newTestServer(t)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api/v1/convolve", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		return rec
	}

	t.Run("unit impulse reproduces the kernel", func(t *testing.T) {
		rec := post(`{"signal":[1,0,0,0],"kernel":[5,6,7,8]}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		var resp convolveResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		want := []float64{5, 6, 7, 8}
		if resp.N != 4 || len(resp.Result) != 4 {
			t.Fatalf("N = %d, len(Result) = %d, want 4", resp.N, len(resp.Result))
		}
		for i := range want {
			if math.Abs(resp.Result[i]-want[i]) > 1e-9 {
				t.Errorf("Result[%d] = %g, want %g", i, resp.Result[i], want[i])
			}
		}
	})

	t.Run("cyclic wraparound", func(t *testing.T) {
		rec := post(`{"signal":[1,2],"kernel":[3,4]}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		var resp convolveResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		want := []float64{11, 10}
		for i := range want {
			if math.Abs(resp.Result[i]-want[i]) > 1e-9 {
				t.Errorf("Result[%d] = %g, want %g", i, resp.Result[i], want[i])
			}
		}
	})

	t.Run("length mismatch is rejected", func(t *testing.T) {
		rec := post(`{"signal":[1,2,3,4],"kernel":[1,2]}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("non power of two length is rejected", func(t *testing.T) {
		rec := post(`{"signal":[1,2,3],"kernel":[1,2,3]}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("malformed JSON is rejected", func(t *testing.T) {
		rec := post(`{"signal":`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("GET is rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/convolve", http.NoBody)
		rec := httptest.NewRecorder()

		s.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
		}
	})
}

func TestLog2OfPowerOfTwo(t *testing.T) {
	tests := []struct {
		n    int
		want uint
		ok   bool
	}{
		{1, 0, true},
		{2, 1, true},
		{4, 2, true},
		{1024, 10, true},
		{0, 0, false},
		{-4, 0, false},
		{3, 0, false},
		{12, 0, false},
	}
	for _, tt := range tests {
		got, ok := log2OfPowerOfTwo(tt.n)
		if ok != tt.ok || got != tt.want {
			t.Errorf("log2OfPowerOfTwo(%d) = (%d, %v), want (%d, %v)",
				tt.n, got, ok, tt.want, tt.ok)
		}
	}
}
