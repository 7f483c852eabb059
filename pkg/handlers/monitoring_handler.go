package handlers

import (
	"net/http"

	"nexusinv-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// periodHours はクエリ `period` を集計時間幅へ変換する対応表
var periodHours = map[string]int{
	"1h":  1,
	"24h": 24,
	"7d":  24 * 7,
}

// MonitoringHandler リクエストログ集計のハンドラー
type MonitoringHandler struct {
	monitoring *services.MonitoringService
}

// NewMonitoringHandler 新しいモニタリングハンドラーを作成
func NewMonitoringHandler(monitoring *services.MonitoringService) *MonitoringHandler {
	return &MonitoringHandler{monitoring: monitoring}
}

// GetLogs は指定期間のリクエストログを集計して返す。不明な期間は24時間扱い。
func (h *MonitoringHandler) GetLogs(c *gin.Context) {
	period := c.DefaultQuery("period", "24h")
	hours, ok := periodHours[period]
	if !ok {
		period = "24h"
		hours = 24
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"period":  period,
		"data":    h.monitoring.GetDashboardData(hours),
	})
}
