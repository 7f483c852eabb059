package models

// Product は在庫カタログ内の1商品を表す
type Product struct {
	ID       string  `json:"id"`       // 一意のID（作成後は不変）
	Name     string  `json:"name"`     // 商品名
	Category string  `json:"category"` // カテゴリ
	Price    float64 `json:"price"`    // 単価（INR、非負）
	Quantity int     `json:"quantity"` // 在庫数（非負）
	SKU      string  `json:"sku"`      // 表示・検索用キー（一意性は保証しない）
	Image    string  `json:"image"`    // 商品画像URI（任意）
}

// ProductDraft はID未割り当ての商品入力値
type ProductDraft struct {
	Name     string  `json:"name" binding:"required"`
	Category string  `json:"category" binding:"required"`
	Price    float64 `json:"price" binding:"min=0"`
	Quantity int     `json:"quantity" binding:"min=0"`
	SKU      string  `json:"sku"`
	Image    string  `json:"image"`
}

// StockAdjustRequest 在庫数増減リクエスト。
// deltaは0も正当な値（何もしない調整）なので、存在チェックはポインタで行う。
type StockAdjustRequest struct {
	Delta *int `json:"delta" binding:"required"`
}

// LocationUpdateRequest ロケーション変更リクエスト
type LocationUpdateRequest struct {
	Location string `json:"location" binding:"required"`
}

// ViewID はダッシュボードの画面識別子
type ViewID string

const (
	ViewInventory  ViewID = "inventory"
	ViewForecast   ViewID = "forecast"
	ViewDemand     ViewID = "demand"
	ViewHistorical ViewID = "historical"
)

// IsValid はViewIDが4状態のいずれかであることを確認する
func (v ViewID) IsValid() bool {
	switch v {
	case ViewInventory, ViewForecast, ViewDemand, ViewHistorical:
		return true
	}
	return false
}

// ViewSelectRequest 画面切り替えリクエスト
type ViewSelectRequest struct {
	View ViewID `json:"view" binding:"required"`
}

// TrendData 市場予測のトレンド1件
type TrendData struct {
	ProductName string `json:"productName"`
	Category    string `json:"category"`
	DemandScore int    `json:"demandScore"` // 0-100
	Reason      string `json:"reason"`
}

// ForecastResponse 市場予測オラクルの応答
type ForecastResponse struct {
	Location         string      `json:"location"`
	MarketSummary    string      `json:"marketSummary"`
	TrendingProducts []TrendData `json:"trendingProducts"`
}

// SalesPrediction 1商品の1日分の販売予測
type SalesPrediction struct {
	ProductName    string `json:"productName"`
	PredictedSales int    `json:"predictedSales"`
	Reasoning      string `json:"reasoning"`
}

// DailyPrediction 1日分の需要予測（全商品）
type DailyPrediction struct {
	Date        string            `json:"date"` // YYYY-MM-DD
	Predictions []SalesPrediction `json:"predictions"`
}

// MonthlyMetric 1商品の月次実績
type MonthlyMetric struct {
	Month        string  `json:"month"`
	UnitsSold    int     `json:"unitsSold"`
	Revenue      float64 `json:"revenue"`
	AveragePrice float64 `json:"averagePrice"`
}

// HistoricalProductData 1商品の過去6ヶ月分の分析結果
type HistoricalProductData struct {
	ProductName    string          `json:"productName"`
	TotalUnitsSold int             `json:"totalUnitsSold"`
	TotalRevenue   float64         `json:"totalRevenue"`
	Insight        string          `json:"insight"`
	MonthlyHistory []MonthlyMetric `json:"monthlyHistory"`
}

// AggregatePoint 全商品の売上を月ラベルごとに合算した1点
type AggregatePoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// HistoricalAnalysisResult 履歴分析画面に返す一式
type HistoricalAnalysisResult struct {
	Products  []HistoricalProductData `json:"products"`
	Aggregate []AggregatePoint        `json:"aggregate"`
}

// ChatTurn アシスタント会話の1ターン
type ChatTurn struct {
	ID     string `json:"id"`
	Role   string `json:"role"` // "user" or "model"
	Text   string `json:"text"`
	Hidden bool   `json:"hidden,omitempty"` // コンテキスト更新など画面に出さないターン
}

// AssistantMessageRequest アシスタントへのユーザー発話
type AssistantMessageRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// RenderRequest Markdownサブセット整形リクエスト
type RenderRequest struct {
	Text string `json:"text" binding:"required"`
}

// SpanKind インライン要素の種類
type SpanKind string

const (
	SpanText SpanKind = "text"
	SpanBold SpanKind = "bold"
)

// Span 整形済みテキストのインライン1区間
type Span struct {
	Kind SpanKind `json:"kind"`
	Text string   `json:"text"`
}

// BlockKind 行分類の結果
type BlockKind string

const (
	BlockHeading2  BlockKind = "heading2"
	BlockHeading3  BlockKind = "heading3"
	BlockBullet    BlockKind = "bullet"
	BlockNumbered  BlockKind = "numbered"
	BlockParagraph BlockKind = "paragraph"
	BlockBreak     BlockKind = "break" // 空行による段落区切り
)

// MessageBlock 整形済みメッセージの1ブロック
type MessageBlock struct {
	Kind  BlockKind `json:"kind"`
	Spans []Span    `json:"spans,omitempty"`
}
