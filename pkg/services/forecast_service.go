package services

import (
	"context"
	"log"

	"nexusinv-api/pkg/models"
)

// ForecastService 市場トレンド予測サービス
type ForecastService struct {
	oracle Oracle
}

// NewForecastService 新しい市場トレンド予測サービスを作成
func NewForecastService(oracle Oracle) *ForecastService {
	return &ForecastService{oracle: oracle}
}

// GetMarketForecast は現在のカタログとロケーションから市場予測を取得する。
// 認証情報が無い場合はエラーを返す（予測画面のみエラー表示する契約）。
// オラクル呼び出しの失敗は決定的なフォールバックに置き換え、エラーにはしない。
func (fs *ForecastService) GetMarketForecast(ctx context.Context, location string, products []models.Product) (*models.ForecastResponse, error) {
	if fs.oracle == nil {
		return nil, ErrOracleUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, oracleTimeout)
	defer cancel()

	forecast, err := fs.oracle.MarketForecast(ctx, location, products)
	if err != nil {
		log.Printf("市場予測の取得に失敗（フォールバックを使用）: %v", err)
		return FallbackForecast(location, products), nil
	}

	return forecast, nil
}

// FallbackForecast はオラクル障害時の決定的な代替予測を合成する。
// カタログ先頭の最大5商品をスコア50のベースラインとして並べ、
// 末尾に固定の外部トレンド1件を付ける。
func FallbackForecast(location string, products []models.Product) *models.ForecastResponse {
	limit := len(products)
	if limit > 5 {
		limit = 5
	}

	trending := make([]models.TrendData, 0, limit+1)
	for _, p := range products[:limit] {
		trending = append(trending, models.TrendData{
			ProductName: p.Name,
			Category:    p.Category,
			DemandScore: 50,
			Reason:      "Data unavailable, estimated baseline.",
		})
	}
	trending = append(trending, models.TrendData{
		ProductName: "5G Smartphones",
		Category:    "Mobile",
		DemandScore: 90,
		Reason:      "Network expansion.",
	})

	return &models.ForecastResponse{
		Location:         location,
		MarketSummary:    "Estimated electronics trends based on seasonal analysis.",
		TrendingProducts: trending,
	}
}
