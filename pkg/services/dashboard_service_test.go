package services

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"testing"

	"nexusinv-api/pkg/models"
	"nexusinv-api/pkg/store"

	"github.com/stretchr/testify/assert"
)

func newTestDashboard(t *testing.T, oracle Oracle) (*DashboardService, *store.CatalogStore) {
	t.Helper()
	catalogStore := store.NewCatalogStore(filepath.Join(t.TempDir(), "catalog.json"), "Chennai")
	dashboard := NewDashboardService(
		catalogStore,
		NewForecastService(oracle),
		NewDemandPlanningService(oracle, rand.New(rand.NewSource(1))),
		NewHistoricalAnalysisService(oracle),
	)
	return dashboard, catalogStore
}

func defaultStubOracle() *stubOracle {
	return &stubOracle{
		forecastFn: func(location string, products []models.Product) (*models.ForecastResponse, error) {
			return &models.ForecastResponse{Location: location, MarketSummary: "ok"}, nil
		},
		demandFn: func(products []models.Product, location, historySummary string) ([]models.DailyPrediction, error) {
			return sevenDays(), nil
		},
		historicalFn: func(products []models.Product, location string) ([]models.HistoricalProductData, error) {
			return []models.HistoricalProductData{{ProductName: "MacBook Pro M3"}}, nil
		},
	}
}

func TestDashboardDefaultView(t *testing.T) {
	dashboard, _ := newTestDashboard(t, defaultStubOracle())
	assert.Equal(t, models.ViewInventory, dashboard.CurrentView())
}

func TestSelectViewRejectsUnknown(t *testing.T) {
	dashboard, _ := newTestDashboard(t, defaultStubOracle())

	if err := dashboard.SelectView(models.ViewID("reports")); err == nil {
		t.Error("unknown view should be rejected")
	}
	// 失敗しても現在の画面は変わらない
	assert.Equal(t, models.ViewInventory, dashboard.CurrentView())
}

func TestSelectViewAllowsAnyTransition(t *testing.T) {
	dashboard, _ := newTestDashboard(t, defaultStubOracle())

	for _, view := range []models.ViewID{models.ViewForecast, models.ViewHistorical, models.ViewDemand, models.ViewInventory} {
		assert.NoError(t, dashboard.SelectView(view))
		assert.Equal(t, view, dashboard.CurrentView())
	}
}

func TestForecastDataCachesWhileCatalogUnchanged(t *testing.T) {
	oracle := defaultStubOracle()
	dashboard, _ := newTestDashboard(t, oracle)

	_, err := dashboard.ForecastData(context.Background())
	assert.NoError(t, err)
	_, err = dashboard.ForecastData(context.Background())
	assert.NoError(t, err)

	// カタログが変わっていなければ2回目はキャッシュ
	assert.Equal(t, 1, oracle.forecastCalls)
	assert.Equal(t, models.ViewForecast, dashboard.CurrentView())
}

func TestLeavingViewDiscardsItsData(t *testing.T) {
	oracle := defaultStubOracle()
	dashboard, _ := newTestDashboard(t, oracle)

	_, err := dashboard.ForecastData(context.Background())
	assert.NoError(t, err)

	// 需要画面へ移動すると予測画面のデータは破棄される
	_, _, err = dashboard.DemandData(context.Background())
	assert.NoError(t, err)

	_, err = dashboard.ForecastData(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, oracle.forecastCalls)
}

func TestCatalogMutationInvalidatesCache(t *testing.T) {
	oracle := defaultStubOracle()
	dashboard, catalogStore := newTestDashboard(t, oracle)

	_, err := dashboard.ForecastData(context.Background())
	assert.NoError(t, err)

	// 在庫が動いたら同じ画面でも取り直す
	products := catalogStore.Snapshot()
	catalogStore.AdjustStock(products[0].ID, -1)

	_, err = dashboard.ForecastData(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, oracle.forecastCalls)
}

func TestStaleFetchIsNotCached(t *testing.T) {
	dashboard, catalogStore := newTestDashboard(t, nil)

	// オラクル呼び出し中にカタログの世代が進むケースを再現する
	oracle := &stubOracle{
		forecastFn: func(location string, products []models.Product) (*models.ForecastResponse, error) {
			products = catalogStore.Snapshot()
			catalogStore.AdjustStock(products[0].ID, -1)
			return &models.ForecastResponse{Location: location}, nil
		},
	}
	dashboard.forecast = NewForecastService(oracle)

	_, err := dashboard.ForecastData(context.Background())
	assert.NoError(t, err)

	// 古い世代の結果は保持されない
	dashboard.mu.Lock()
	cached := dashboard.forecastData
	dashboard.mu.Unlock()
	assert.Nil(t, cached)
}

func TestForecastDataPropagatesMissingOracle(t *testing.T) {
	dashboard, _ := newTestDashboard(t, nil)

	_, err := dashboard.ForecastData(context.Background())
	if !errors.Is(err, ErrOracleUnavailable) {
		t.Errorf("expected ErrOracleUnavailable, got %v", err)
	}
}

func TestDemandDataReturnsHistoryEvenWhenEmpty(t *testing.T) {
	dashboard, _ := newTestDashboard(t, nil)

	predictions, history, err := dashboard.DemandData(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, predictions)
	assert.NotEmpty(t, history)
}

func TestHistoricalDataCaches(t *testing.T) {
	oracle := defaultStubOracle()
	dashboard, _ := newTestDashboard(t, oracle)

	_, err := dashboard.HistoricalData(context.Background())
	assert.NoError(t, err)
	_, err = dashboard.HistoricalData(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, oracle.historicalCalls)
}
