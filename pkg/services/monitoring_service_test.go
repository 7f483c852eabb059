package services

import (
	"testing"
	"time"
)

func TestLogRequestAndDashboardData(t *testing.T) {
	service := NewMonitoringService()

	now := time.Now()
	service.LogRequest(LogEntry{Timestamp: now, Path: "/api/v1/inventory", Method: "GET", StatusCode: 200, ResponseTime: 12 * time.Millisecond})
	service.LogRequest(LogEntry{Timestamp: now, Path: "/api/v1/inventory", Method: "POST", StatusCode: 400, ResponseTime: 8 * time.Millisecond})
	service.LogRequest(LogEntry{Timestamp: now, Path: "/api/v1/dashboard/forecast", Method: "GET", StatusCode: 500, ResponseTime: 30 * time.Millisecond})

	data := service.GetDashboardData(24)

	if data.Endpoints["/api/v1/inventory"] != 2 {
		t.Errorf("expected 2 inventory requests, got %d", data.Endpoints["/api/v1/inventory"])
	}

	// ステータスコードの分類
	counts := make(map[string]int)
	for _, entry := range data.StatusCodes {
		counts[entry["name"].(string)] = entry["value"].(int)
	}
	if counts["2xx Success"] != 1 || counts["4xx Client Error"] != 1 || counts["5xx Server Error"] != 1 {
		t.Errorf("unexpected status code counts: %v", counts)
	}

	// 5xxは直近エラーに載る
	if len(data.RecentErrors) != 1 {
		t.Fatalf("expected 1 recent error, got %d", len(data.RecentErrors))
	}
	if data.RecentErrors[0].Path != "/api/v1/dashboard/forecast" {
		t.Errorf("unexpected recent error path: %s", data.RecentErrors[0].Path)
	}
}

func TestGetDashboardDataExcludesOldLogs(t *testing.T) {
	service := NewMonitoringService()

	service.LogRequest(LogEntry{Timestamp: time.Now().Add(-48 * time.Hour), Path: "/api/v1/inventory", Method: "GET", StatusCode: 200})
	service.LogRequest(LogEntry{Timestamp: time.Now(), Path: "/api/v1/inventory", Method: "GET", StatusCode: 200})

	data := service.GetDashboardData(24)
	if data.Endpoints["/api/v1/inventory"] != 1 {
		t.Errorf("expected only the recent request, got %d", data.Endpoints["/api/v1/inventory"])
	}
}

func TestLogRequestCapsBuffer(t *testing.T) {
	service := NewMonitoringService()

	for i := 0; i < maxLogEntries+100; i++ {
		service.LogRequest(LogEntry{Timestamp: time.Now(), Path: "/api/v1/inventory", Method: "GET", StatusCode: 200})
	}

	service.mu.RLock()
	size := len(service.logs)
	service.mu.RUnlock()
	if size != maxLogEntries {
		t.Errorf("expected log buffer capped at %d, got %d", maxLogEntries, size)
	}
}
