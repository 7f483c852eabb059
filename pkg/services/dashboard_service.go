package services

import (
	"context"
	"fmt"
	"sync"

	"nexusinv-api/pkg/models"
	"nexusinv-api/pkg/store"
)

// forecastCache / demandCache / historicalCache は画面ごとの一時データ。
// 取得時点のカタログ世代を覚えておき、世代が進んだら破棄して取り直す。
type forecastCache struct {
	revision uint64
	data     *models.ForecastResponse
}

type demandCache struct {
	revision    uint64
	predictions []models.DailyPrediction
	history     string
}

type historicalCache struct {
	revision uint64
	result   *models.HistoricalAnalysisResult
}

// DashboardService は画面ルーターと、画面ごとのデータ取得の調停を担う。
// アクティブな画面のオーケストレーターだけがデータを取得し、
// 画面を離れると一時データは破棄される（再訪時に取り直す）。
type DashboardService struct {
	store      *store.CatalogStore
	forecast   *ForecastService
	demand     *DemandPlanningService
	historical *HistoricalAnalysisService

	mu             sync.Mutex
	view           models.ViewID
	forecastData   *forecastCache
	demandData     *demandCache
	historicalData *historicalCache
}

// NewDashboardService 新しいダッシュボードサービスを作成
func NewDashboardService(catalogStore *store.CatalogStore, forecast *ForecastService, demand *DemandPlanningService, historical *HistoricalAnalysisService) *DashboardService {
	return &DashboardService{
		store:      catalogStore,
		forecast:   forecast,
		demand:     demand,
		historical: historical,
		view:       models.ViewInventory,
	}
}

// CurrentView は現在アクティブな画面を返す
func (ds *DashboardService) CurrentView() models.ViewID {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return ds.view
}

// SelectView は画面を切り替える。任意の画面間の遷移を許可する。
// 離れた画面の一時データは破棄され、戻ってきたときに新しい取得が走る。
func (ds *DashboardService) SelectView(view models.ViewID) error {
	if !view.IsValid() {
		return fmt.Errorf("unknown view: %s", view)
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()

	if view == ds.view {
		return nil
	}

	ds.discardViewData(ds.view)
	ds.view = view
	return nil
}

// discardViewData は指定画面の一時データを破棄する。ロック保持中に呼ぶこと。
func (ds *DashboardService) discardViewData(view models.ViewID) {
	switch view {
	case models.ViewForecast:
		ds.forecastData = nil
	case models.ViewDemand:
		ds.demandData = nil
	case models.ViewHistorical:
		ds.historicalData = nil
	}
}

// ForecastData は市場予測画面のデータを返す。画面を暗黙に選択し、
// カタログ・ロケーションが取得時から変わっていなければキャッシュを使う。
// 取得中に世代が進んだレスポンスは保持しない（discard-stale方式）。
func (ds *DashboardService) ForecastData(ctx context.Context) (*models.ForecastResponse, error) {
	if err := ds.SelectView(models.ViewForecast); err != nil {
		return nil, err
	}

	ds.mu.Lock()
	revision := ds.store.Revision()
	if cached := ds.forecastData; cached != nil && cached.revision == revision {
		ds.mu.Unlock()
		return cached.data, nil
	}
	ds.mu.Unlock()

	// オラクル呼び出しはロック外で行う
	products := ds.store.Snapshot()
	location := ds.store.Location()
	data, err := ds.forecast.GetMarketForecast(ctx, location, products)
	if err != nil {
		return nil, err
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()
	if ds.store.Revision() == revision && ds.view == models.ViewForecast {
		ds.forecastData = &forecastCache{revision: revision, data: data}
	}
	return data, nil
}

// DemandData は需要計画画面のデータ（7日予測と合成履歴サマリー）を返す
func (ds *DashboardService) DemandData(ctx context.Context) ([]models.DailyPrediction, string, error) {
	if err := ds.SelectView(models.ViewDemand); err != nil {
		return nil, "", err
	}

	ds.mu.Lock()
	revision := ds.store.Revision()
	if cached := ds.demandData; cached != nil && cached.revision == revision {
		ds.mu.Unlock()
		return cached.predictions, cached.history, nil
	}
	ds.mu.Unlock()

	products := ds.store.Snapshot()
	location := ds.store.Location()
	predictions, history := ds.demand.PredictDemand(ctx, products, location)

	ds.mu.Lock()
	defer ds.mu.Unlock()
	if ds.store.Revision() == revision && ds.view == models.ViewDemand {
		ds.demandData = &demandCache{revision: revision, predictions: predictions, history: history}
	}
	return predictions, history, nil
}

// HistoricalData は過去実績分析画面のデータを返す
func (ds *DashboardService) HistoricalData(ctx context.Context) (*models.HistoricalAnalysisResult, error) {
	if err := ds.SelectView(models.ViewHistorical); err != nil {
		return nil, err
	}

	ds.mu.Lock()
	revision := ds.store.Revision()
	if cached := ds.historicalData; cached != nil && cached.revision == revision {
		ds.mu.Unlock()
		return cached.result, nil
	}
	ds.mu.Unlock()

	products := ds.store.Snapshot()
	location := ds.store.Location()
	result := ds.historical.GetHistoricalAnalysis(ctx, products, location)

	ds.mu.Lock()
	defer ds.mu.Unlock()
	if ds.store.Revision() == revision && ds.view == models.ViewHistorical {
		ds.historicalData = &historicalCache{revision: revision, result: result}
	}
	return result, nil
}
