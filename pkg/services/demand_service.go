package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"

	"nexusinv-api/pkg/models"
)

// forecastDays は需要予測の対象日数。オラクル応答もこの日数であることを要求する。
const forecastDays = 7

// DemandPlanningService 需要計画サービス
type DemandPlanningService struct {
	oracle Oracle

	// rngMu は共有RNGを保護する。ダッシュボード側はロック外で
	// PredictDemandを呼ぶため、複数リクエストが同時に到達しうる。
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewDemandPlanningService 新しい需要計画サービスを作成
func NewDemandPlanningService(oracle Oracle, rng *rand.Rand) *DemandPlanningService {
	return &DemandPlanningService{oracle: oracle, rng: rng}
}

// GenerateHistorySummary は直近30日の販売実績の模擬サマリーを合成する。
// 商品ごとに平均日販[1,10]とトレンド（Increasing/Stable）を独立に選ぶ。
// オラクル由来ではなくローカル生成で、カタログやロケーションが変わるたびに作り直す。
func (ds *DemandPlanningService) GenerateHistorySummary(products []models.Product) string {
	var summary strings.Builder
	summary.WriteString("Simulated Past 30 Days Sales:\n")

	ds.rngMu.Lock()
	defer ds.rngMu.Unlock()

	for _, p := range products {
		avg := ds.rng.Intn(10) + 1
		trend := "Stable"
		if ds.rng.Intn(2) == 0 {
			trend = "Increasing"
		}
		summary.WriteString(fmt.Sprintf("- %s: Avg %d units/day. Trend: %s.\n", p.Name, avg, trend))
	}

	return summary.String()
}

// PredictDemand は模擬履歴を合成した上で7日分の日次販売予測を取得する。
// オラクルが使えない・失敗した・7日分でない応答を返した場合は空の結果を返し、
// 画面側は明示的な空状態を表示する（合成予測は返さない）。
// 戻り値の2つ目は画面に表示する合成履歴サマリー。
func (ds *DemandPlanningService) PredictDemand(ctx context.Context, products []models.Product, location string) ([]models.DailyPrediction, string) {
	history := ds.GenerateHistorySummary(products)

	if ds.oracle == nil {
		return []models.DailyPrediction{}, history
	}

	ctx, cancel := context.WithTimeout(ctx, oracleTimeout)
	defer cancel()

	predictions, err := ds.oracle.PredictDemand(ctx, products, location, history)
	if err != nil {
		log.Printf("需要予測の取得に失敗（空の結果を返却）: %v", err)
		return []models.DailyPrediction{}, history
	}

	if len(predictions) != forecastDays {
		log.Printf("需要予測の応答が%d日分ではありません（%d日分）。空の結果を返却", forecastDays, len(predictions))
		return []models.DailyPrediction{}, history
	}

	return predictions, history
}
