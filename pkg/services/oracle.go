package services

import (
	"context"
	"errors"
	"time"

	"nexusinv-api/pkg/models"
)

// ErrOracleUnavailable は認証情報が無くオラクルを呼び出せない場合に返される
var ErrOracleUnavailable = errors.New("generative oracle is not configured")

// Oracle は外部の生成AIサービスへの境界。リクエスト形状ごとに1メソッドを持つ。
// テストでは決定的なスタブを注入する。
type Oracle interface {
	// MarketForecast は在庫＋外部トレンドの市場予測をJSONで取得する
	MarketForecast(ctx context.Context, location string, products []models.Product) (*models.ForecastResponse, error)

	// PredictDemand は7日分の日次販売予測を取得する
	PredictDemand(ctx context.Context, products []models.Product, location, historySummary string) ([]models.DailyPrediction, error)

	// HistoricalAnalysis は過去6ヶ月分の商品別実績シミュレーションを取得する
	HistoricalAnalysis(ctx context.Context, products []models.Product, location string) ([]models.HistoricalProductData, error)

	// Converse はシステム指示＋会話履歴つきで1ターンの応答を取得する
	Converse(ctx context.Context, systemInstruction string, history []models.ChatTurn, message string) (string, error)
}

// oracleTimeout はオラクル呼び出しの上限時間。超過はオラクル障害として扱い、
// 各画面のフォールバックに切り替える。
const oracleTimeout = 30 * time.Second
