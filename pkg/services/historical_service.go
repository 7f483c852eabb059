package services

import (
	"context"
	"log"

	"nexusinv-api/pkg/models"
)

// HistoricalAnalysisService 過去実績分析サービス
type HistoricalAnalysisService struct {
	oracle Oracle
}

// NewHistoricalAnalysisService 新しい過去実績分析サービスを作成
func NewHistoricalAnalysisService(oracle Oracle) *HistoricalAnalysisService {
	return &HistoricalAnalysisService{oracle: oracle}
}

// GetHistoricalAnalysis は過去6ヶ月分の商品別実績と、全商品の月次売上合算を返す。
// オラクルが使えない・失敗した場合は空の結果（明示的な空状態）を返す。
func (hs *HistoricalAnalysisService) GetHistoricalAnalysis(ctx context.Context, products []models.Product, location string) *models.HistoricalAnalysisResult {
	empty := &models.HistoricalAnalysisResult{
		Products:  []models.HistoricalProductData{},
		Aggregate: []models.AggregatePoint{},
	}

	if hs.oracle == nil || len(products) == 0 {
		return empty
	}

	ctx, cancel := context.WithTimeout(ctx, oracleTimeout)
	defer cancel()

	data, err := hs.oracle.HistoricalAnalysis(ctx, products, location)
	if err != nil {
		log.Printf("過去実績分析の取得に失敗（空の結果を返却）: %v", err)
		return empty
	}

	return &models.HistoricalAnalysisResult{
		Products:  data,
		Aggregate: AggregateRevenue(data),
	}
}

// AggregateRevenue は全商品の売上を月ラベルごとに合算した系列を導出する。
// 先頭商品の月次履歴が正準の並びを定義し、他商品にしか無いラベルは末尾に足される。
func AggregateRevenue(data []models.HistoricalProductData) []models.AggregatePoint {
	if len(data) == 0 {
		return []models.AggregatePoint{}
	}

	order := make([]string, 0, len(data[0].MonthlyHistory))
	totals := make(map[string]float64)
	for _, m := range data[0].MonthlyHistory {
		if _, ok := totals[m.Month]; ok {
			continue
		}
		order = append(order, m.Month)
		totals[m.Month] = 0
	}

	for _, product := range data {
		for _, m := range product.MonthlyHistory {
			if _, ok := totals[m.Month]; !ok {
				order = append(order, m.Month)
			}
			totals[m.Month] += m.Revenue
		}
	}

	aggregate := make([]models.AggregatePoint, 0, len(order))
	for _, month := range order {
		aggregate = append(aggregate, models.AggregatePoint{
			Month:   month,
			Revenue: totals[month],
		})
	}
	return aggregate
}
