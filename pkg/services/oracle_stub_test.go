package services

import (
	"context"
	"sync"

	"nexusinv-api/pkg/models"
)

// stubOracle はテスト用の決定的オラクル。各メソッドの応答と呼び出し回数を差し替えられる。
// 並行テストから呼ばれるため、呼び出し回数はmuで保護する。
type stubOracle struct {
	forecastFn   func(location string, products []models.Product) (*models.ForecastResponse, error)
	demandFn     func(products []models.Product, location, historySummary string) ([]models.DailyPrediction, error)
	historicalFn func(products []models.Product, location string) ([]models.HistoricalProductData, error)
	converseFn   func(systemInstruction string, history []models.ChatTurn, message string) (string, error)

	mu              sync.Mutex
	forecastCalls   int
	demandCalls     int
	historicalCalls int
	converseCalls   int
}

func (s *stubOracle) MarketForecast(_ context.Context, location string, products []models.Product) (*models.ForecastResponse, error) {
	s.count(&s.forecastCalls)
	return s.forecastFn(location, products)
}

func (s *stubOracle) PredictDemand(_ context.Context, products []models.Product, location, historySummary string) ([]models.DailyPrediction, error) {
	s.count(&s.demandCalls)
	return s.demandFn(products, location, historySummary)
}

func (s *stubOracle) HistoricalAnalysis(_ context.Context, products []models.Product, location string) ([]models.HistoricalProductData, error) {
	s.count(&s.historicalCalls)
	return s.historicalFn(products, location)
}

func (s *stubOracle) Converse(_ context.Context, systemInstruction string, history []models.ChatTurn, message string) (string, error) {
	s.count(&s.converseCalls)
	return s.converseFn(systemInstruction, history, message)
}

func (s *stubOracle) count(calls *int) {
	s.mu.Lock()
	*calls++
	s.mu.Unlock()
}

// sampleProducts は各テストで共有する小さなカタログ
func sampleProducts() []models.Product {
	return []models.Product{
		{ID: "1", Name: "MacBook Pro M3", Category: "Laptops", Price: 169900, Quantity: 5, SKU: "APL-MBP-M3"},
		{ID: "2", Name: "Sony WH-1000XM5", Category: "Audio", Price: 29990, Quantity: 12, SKU: "SNY-WH5"},
		{ID: "3", Name: "Samsung Galaxy S24", Category: "Mobile", Price: 79999, Quantity: 8, SKU: "SMS-S24"},
	}
}
