package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/promptveil/promptveil/internal/audit"
	"github.com/promptveil/promptveil/internal/events"
	"github.com/promptveil/promptveil/internal/privacy"
	"go.uber.org/zap"
)

// DetectRequest is the scan request body.
type DetectRequest struct {
	Text string `json:"text"`
}

// handleDetect runs one scan: cache lookup, engine scan, cache fill,
// audit write, event broadcast, JSON response.
func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	requestID := getRequestID(r.Context())
	log := s.logger.WithRequestID(requestID)

	var req DetectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON body"}`, http.StatusBadRequest)
		return
	}

	if len(req.Text) > s.config.Engine.MaxInputLength {
		http.Error(w, `{"error":"input exceeds maximum length"}`, http.StatusRequestEntityTooLarge)
		return
	}

	atomic.AddInt64(&s.totalScans, 1)

	if s.scanCache != nil {
		if cached, hit := s.scanCache.Get(r.Context(), req.Text); hit {
			log.Debug("Scan cache hit")
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	start := time.Now()
	result := s.detector.Detect(req.Text)
	elapsed := time.Since(start)

	if s.scanCache != nil {
		if err := s.scanCache.Set(r.Context(), req.Text, &result); err != nil {
			log.Warn("Failed to cache scan result", zap.Error(err))
		}
	}

	if result.HasSensitiveContent {
		atomic.AddInt64(&s.totalDetections, 1)

		log.Info("Sensitive content detected",
			zap.Int("findings", len(result.Findings)),
			zap.Int("risk_score", result.RiskScore),
			zap.Bool("blocked", result.ShouldBlock),
		)

		s.hub.BroadcastEvent(events.Event{
			Type:      events.EventTypeDetection,
			Timestamp: time.Now(),
			RequestID: requestID,
			Data: events.DetectionEvent{
				RequestID:      requestID,
				ClientIP:       clientIP(r),
				Findings:       result.Findings,
				TotalFindings:  len(result.Findings),
				RiskScore:      result.RiskScore,
				Blocked:        result.ShouldBlock,
				ComplianceTags: result.ComplianceTags,
				ProcessingMS:   float64(elapsed.Nanoseconds()) / 1e6,
			},
		})

		s.writeAudit(requestID, len(req.Text), &result)
	}

	writeJSON(w, http.StatusOK, &result)
}

// writeAudit records a scan summary without blocking the response path.
func (s *Server) writeAudit(requestID string, inputLen int, result *privacy.ScanResult) {
	types := make([]string, 0, len(result.Findings))
	seen := make(map[string]struct{})
	for _, f := range result.Findings {
		if _, ok := seen[f.TypeID]; ok {
			continue
		}
		seen[f.TypeID] = struct{}{}
		types = append(types, f.TypeID)
	}

	rec := &audit.Record{
		RequestID:      requestID,
		RiskScore:      result.RiskScore,
		Blocked:        result.ShouldBlock,
		FindingCount:   len(result.Findings),
		FindingTypes:   strings.Join(types, ","),
		ComplianceTags: strings.Join(result.ComplianceTags, ","),
		InputLength:    inputLen,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.auditSink.Write(ctx, rec); err != nil {
			s.logger.Warn("Failed to write audit record",
				zap.String("request_id", requestID),
				zap.Error(err),
			)
		}
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","timestamp":"%s"}`, time.Now().Format(time.RFC3339))
}

// handleInfo reports engine and server statistics.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	scans, detections := s.scanCounters()

	info := map[string]interface{}{
		"name":             "promptveil",
		"uptime":           s.uptime(),
		"structured_rules": s.detector.RuleCount(),
		"keyword_rules":    s.detector.KeywordCount(),
		"block_threshold":  s.config.Engine.DetectorWeights().BlockThreshold,
		"total_scans":      scans,
		"total_detections": detections,
		"cache_enabled":    s.config.Cache.Enabled,
		"audit_enabled":    s.config.Audit.Enabled,
	}
	if s.scanCache != nil {
		info["cache_stats"] = s.scanCache.Stats()
	}

	writeJSON(w, http.StatusOK, info)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
