package handlers

import (
	"errors"
	"net/http"

	"nexusinv-api/pkg/services"
	"nexusinv-api/pkg/store"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler レポートダウンロードのハンドラー
type ReportHandler struct {
	reports  *services.ReportService
	forecast *services.ForecastService
	store    *store.CatalogStore
}

// NewReportHandler 新しいレポートハンドラーを作成
func NewReportHandler(reports *services.ReportService, forecast *services.ForecastService, catalogStore *store.CatalogStore) *ReportHandler {
	return &ReportHandler{
		reports:  reports,
		forecast: forecast,
		store:    catalogStore,
	}
}

// DownloadInventoryReport は現在のカタログのXLSXレポートを返す
func (h *ReportHandler) DownloadInventoryReport(c *gin.Context) {
	filename, content, err := h.reports.BuildInventoryReport(h.store.Snapshot(), h.store.Location())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "在庫レポートの生成に失敗しました: " + err.Error(),
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, content)
}

// DownloadForecastReport は市場予測のXLSXレポートを返す。
// オラクル障害時は予測画面と同じフォールバック内容になる。
func (h *ReportHandler) DownloadForecastReport(c *gin.Context) {
	forecast, err := h.forecast.GetMarketForecast(c.Request.Context(), h.store.Location(), h.store.Snapshot())
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

	filename, content, err := h.reports.BuildForecastReport(forecast)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "予測レポートの生成に失敗しました: " + err.Error(),
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, content)
}
