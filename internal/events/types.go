package events

import (
	"time"

	"github.com/promptveil/promptveil/internal/privacy"
)

// EventType represents the type of event broadcast to dashboard clients
type EventType string

const (
	// EventTypeDetection represents a sensitive-content detection event
	EventTypeDetection EventType = "detection"
	// EventTypeRequestLog represents a request logging event
	EventTypeRequestLog EventType = "request_log"
	// EventTypeSystemStatus represents a system status event
	EventTypeSystemStatus EventType = "system_status"
	// EventTypeConnection represents connection events
	EventTypeConnection EventType = "connection"
)

// Event represents an event sent to clients
type Event struct {
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
	RequestID string      `json:"request_id,omitempty"`
}

// DetectionEvent describes one scan that found sensitive content. It
// carries masked display values only; raw values never leave the engine
// boundary.
type DetectionEvent struct {
	RequestID      string            `json:"request_id"`
	ClientIP       string            `json:"client_ip"`
	Findings       []privacy.Finding `json:"findings"`
	TotalFindings  int               `json:"total_findings"`
	RiskScore      int               `json:"risk_score"`
	Blocked        bool              `json:"blocked"`
	ComplianceTags []string          `json:"compliance_tags"`
	ProcessingMS   float64           `json:"processing_ms"`
}

// RequestLogEvent represents a request logging event
type RequestLogEvent struct {
	RequestID    string        `json:"request_id"`
	Method       string        `json:"method"`
	Path         string        `json:"path"`
	StatusCode   int           `json:"status_code"`
	ClientIP     string        `json:"client_ip"`
	UserAgent    string        `json:"user_agent,omitempty"`
	Duration     time.Duration `json:"duration"`
	RequestSize  int64         `json:"request_size"`
	ResponseSize int64         `json:"response_size"`
}

// SystemStatusEvent represents system status information
type SystemStatusEvent struct {
	Status           string `json:"status"`
	Uptime           string `json:"uptime"`
	TotalScans       int64  `json:"total_scans"`
	TotalDetections  int64  `json:"total_detections"`
	ActiveRules      int    `json:"active_rules"`
	ConnectedClients int    `json:"connected_clients"`
}

// ConnectionEvent represents client connection events
type ConnectionEvent struct {
	Action   string `json:"action"` // "connected", "disconnected"
	ClientID string `json:"client_id"`
	ClientIP string `json:"client_ip"`
	Message  string `json:"message,omitempty"`
}

// ClientMessage represents messages sent from clients to server
type ClientMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// SubscriptionRequest represents a client subscription request
type SubscriptionRequest struct {
	Events []EventType `json:"events"`
}
