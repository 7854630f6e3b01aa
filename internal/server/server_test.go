package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/promptveil/promptveil/internal/config"
	"github.com/promptveil/promptveil/internal/logger"
	"github.com/promptveil/promptveil/internal/privacy"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.GetDefaults()
	cfg.Cache.Enabled = false
	cfg.Audit.Enabled = false
	cfg.Security.RateLimit.Enabled = false

	s, err := New(cfg, logger.Nop())
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	return s
}

func postDetect(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/detect", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	return rr
}

func TestHandleDetect(t *testing.T) {
	s := newTestServer(t)

	t.Run("CleanText", func(t *testing.T) {
		rr := postDetect(t, s, `{"text":"what is the capital of france"}`)
		if rr.Code != http.StatusOK {
			t.Fatalf("Status = %d, want 200", rr.Code)
		}

		var result privacy.ScanResult
		if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
			t.Fatalf("Invalid response JSON: %v", err)
		}
		if result.HasSensitiveContent || result.ShouldBlock {
			t.Errorf("Clean text flagged: %+v", result)
		}
	})

	t.Run("SensitiveText", func(t *testing.T) {
		rr := postDetect(t, s, `{"text":"my ssn is 123-45-6789 and card 4111111111111111"}`)
		if rr.Code != http.StatusOK {
			t.Fatalf("Status = %d, want 200", rr.Code)
		}

		var result privacy.ScanResult
		if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
			t.Fatalf("Invalid response JSON: %v", err)
		}
		if !result.HasSensitiveContent {
			t.Error("Sensitive text not flagged")
		}
		if !result.ShouldBlock {
			t.Errorf("High-risk text not blocked, score %d", result.RiskScore)
		}
		if len(result.ComplianceTags) == 0 {
			t.Error("Compliance tags missing")
		}
	})

	t.Run("ResponseOmitsRawValues", func(t *testing.T) {
		rr := postDetect(t, s, `{"text":"reach me at jane.doe@example.com"}`)

		body := rr.Body.String()
		if strings.Contains(body, "jane.doe@example.com") {
			t.Error("Raw value leaked into response body")
		}
		if !strings.Contains(body, "j***@example.com") {
			t.Errorf("Masked display missing from response: %s", body)
		}
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		rr := postDetect(t, s, `{not json`)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want 400", rr.Code)
		}
	})

	t.Run("OversizeInput", func(t *testing.T) {
		big := strings.Repeat("a", s.config.Engine.MaxInputLength+1)
		var buf bytes.Buffer
		json.NewEncoder(&buf).Encode(DetectRequest{Text: big})

		rr := postDetect(t, s, buf.String())
		if rr.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("Status = %d, want 413", rr.Code)
		}
	})

	t.Run("MethodNotAllowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/detect", nil)
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, req)
		if rr.Code != http.StatusMethodNotAllowed {
			t.Errorf("Status = %d, want 405", rr.Code)
		}
	})
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "healthy") {
		t.Errorf("Unexpected health body: %s", rr.Body.String())
	}
}

func TestHandleInfo(t *testing.T) {
	s := newTestServer(t)

	// Run one scan so the counters move.
	postDetect(t, s, `{"text":"my ssn is 123-45-6789"}`)

	req := httptest.NewRequest(http.MethodGet, "/info", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rr.Code)
	}

	var info map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &info); err != nil {
		t.Fatalf("Invalid info JSON: %v", err)
	}
	if info["name"] != "promptveil" {
		t.Errorf("name = %v", info["name"])
	}
	if info["total_scans"].(float64) < 1 {
		t.Error("Scan counter did not advance")
	}
	if info["total_detections"].(float64) < 1 {
		t.Error("Detection counter did not advance")
	}
	if info["structured_rules"].(float64) < 30 {
		t.Errorf("structured_rules = %v", info["structured_rules"])
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	cfg := config.GetDefaults()
	cfg.Cache.Enabled = false
	cfg.Audit.Enabled = false
	cfg.Security.RateLimit.Enabled = true
	cfg.Security.RateLimit.RequestsPerMin = 60
	cfg.Security.RateLimit.Burst = 2

	s, err := New(cfg, logger.Nop())
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/detect", strings.NewReader(`{"text":"hi"}`))
		req.Header.Set("X-Real-IP", "203.0.113.7")
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("Requests within burst rejected: %v", codes)
	}
	if codes[3] != http.StatusTooManyRequests {
		t.Errorf("Request over burst not limited: %v", codes)
	}
}

func TestClientIP(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"XForwardedFor", map[string]string{"X-Forwarded-For": "198.51.100.1"}, "10.0.0.1:1234", "198.51.100.1"},
		{"XRealIP", map[string]string{"X-Real-IP": "198.51.100.2"}, "10.0.0.1:1234", "198.51.100.2"},
		{"RemoteAddrFallback", nil, "10.0.0.1:1234", "10.0.0.1:1234"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			if got := clientIP(req); got != tc.want {
				t.Errorf("clientIP = %q, want %q", got, tc.want)
			}
		})
	}
}
