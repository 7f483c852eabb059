package handlers

import (
	"errors"
	"net/http"

	"nexusinv-api/pkg/models"
	"nexusinv-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// DashboardHandler 画面ルーターと画面別データ取得のハンドラー
type DashboardHandler struct {
	dashboard *services.DashboardService
}

// NewDashboardHandler 新しいダッシュボードハンドラーを作成
func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// GetView は現在アクティブな画面を返す
func (h *DashboardHandler) GetView(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"view": h.dashboard.CurrentView(),
	})
}

// SelectView は画面を切り替える
func (h *DashboardHandler) SelectView(c *gin.Context) {
	var req models.ViewSelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "リクエストの解析に失敗しました: " + err.Error(),
		})
		return
	}

	if err := h.dashboard.SelectView(req.View); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "不明な画面です: " + string(req.View),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"view":    h.dashboard.CurrentView(),
	})
}

// GetForecast は市場予測画面のデータを返す。
// 認証情報が無い場合のみエラーになる（他の障害はフォールバックに吸収される）。
func (h *DashboardHandler) GetForecast(c *gin.Context) {
	forecast, err := h.dashboard.ForecastData(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrOracleUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "予測サービスが構成されていません（APIキー未設定）",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "市場予測の取得に失敗しました: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    forecast,
	})
}

// GetDemand は需要計画画面のデータ（7日予測と模擬履歴サマリー）を返す
func (h *DashboardHandler) GetDemand(c *gin.Context) {
	predictions, history, err := h.dashboard.DemandData(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "需要予測の取得に失敗しました: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"predictions":    predictions,
		"historySummary": history,
	})
}

// GetHistorical は過去実績分析画面のデータを返す
func (h *DashboardHandler) GetHistorical(c *gin.Context) {
	result, err := h.dashboard.HistoricalData(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "過去実績分析の取得に失敗しました: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}
