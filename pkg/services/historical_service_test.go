package services

import (
	"context"
	"errors"
	"testing"

	"nexusinv-api/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestAggregateRevenue(t *testing.T) {
	data := []models.HistoricalProductData{
		{
			ProductName: "A",
			MonthlyHistory: []models.MonthlyMetric{
				{Month: "Jan", Revenue: 100},
				{Month: "Feb", Revenue: 200},
			},
		},
		{
			ProductName: "B",
			MonthlyHistory: []models.MonthlyMetric{
				{Month: "Jan", Revenue: 50},
				{Month: "Feb", Revenue: 75},
			},
		},
	}

	aggregate := AggregateRevenue(data)

	expected := []models.AggregatePoint{
		{Month: "Jan", Revenue: 150},
		{Month: "Feb", Revenue: 275},
	}
	assert.Equal(t, expected, aggregate)
}

func TestAggregateRevenueUnknownMonthAppended(t *testing.T) {
	// 先頭商品に無い月ラベルは末尾に足される
	data := []models.HistoricalProductData{
		{MonthlyHistory: []models.MonthlyMetric{{Month: "Jan", Revenue: 10}}},
		{MonthlyHistory: []models.MonthlyMetric{{Month: "Jan", Revenue: 5}, {Month: "Mar", Revenue: 30}}},
	}

	aggregate := AggregateRevenue(data)

	expected := []models.AggregatePoint{
		{Month: "Jan", Revenue: 15},
		{Month: "Mar", Revenue: 30},
	}
	assert.Equal(t, expected, aggregate)
}

func TestAggregateRevenueDuplicateMonthInFirstProduct(t *testing.T) {
	// 先頭商品が同じ月ラベルを繰り返しても、合算系列には一度だけ現れる
	data := []models.HistoricalProductData{
		{MonthlyHistory: []models.MonthlyMetric{
			{Month: "Jan", Revenue: 10},
			{Month: "Jan", Revenue: 20},
			{Month: "Feb", Revenue: 5},
		}},
		{MonthlyHistory: []models.MonthlyMetric{{Month: "Jan", Revenue: 1}}},
	}

	aggregate := AggregateRevenue(data)

	expected := []models.AggregatePoint{
		{Month: "Jan", Revenue: 31},
		{Month: "Feb", Revenue: 5},
	}
	assert.Equal(t, expected, aggregate)
}

func TestAggregateRevenueEmpty(t *testing.T) {
	assert.Empty(t, AggregateRevenue(nil))
}

func TestGetHistoricalAnalysisSuccess(t *testing.T) {
	oracle := &stubOracle{
		historicalFn: func(products []models.Product, location string) ([]models.HistoricalProductData, error) {
			return []models.HistoricalProductData{
				{
					ProductName:    "MacBook Pro M3",
					TotalUnitsSold: 120,
					TotalRevenue:   20388000,
					Insight:        "Strong back-to-school demand.",
					MonthlyHistory: []models.MonthlyMetric{{Month: "Jul", UnitsSold: 20, Revenue: 3398000, AveragePrice: 169900}},
				},
			}, nil
		},
	}

	service := NewHistoricalAnalysisService(oracle)
	result := service.GetHistoricalAnalysis(context.Background(), sampleProducts(), "Chennai")

	assert.Len(t, result.Products, 1)
	assert.Len(t, result.Aggregate, 1)
	assert.Equal(t, "Jul", result.Aggregate[0].Month)
}

func TestGetHistoricalAnalysisMissingOracle(t *testing.T) {
	service := NewHistoricalAnalysisService(nil)
	result := service.GetHistoricalAnalysis(context.Background(), sampleProducts(), "Chennai")

	if result == nil {
		t.Fatal("expected empty result, got nil")
	}
	assert.Empty(t, result.Products)
	assert.Empty(t, result.Aggregate)
}

func TestGetHistoricalAnalysisEmptyCatalog(t *testing.T) {
	oracle := &stubOracle{
		historicalFn: func(products []models.Product, location string) ([]models.HistoricalProductData, error) {
			t.Fatal("oracle should not be called for an empty catalog")
			return nil, nil
		},
	}

	service := NewHistoricalAnalysisService(oracle)
	result := service.GetHistoricalAnalysis(context.Background(), nil, "Chennai")

	assert.Empty(t, result.Products)
	assert.Equal(t, 0, oracle.historicalCalls)
}

func TestGetHistoricalAnalysisFailureReturnsEmpty(t *testing.T) {
	oracle := &stubOracle{
		historicalFn: func(products []models.Product, location string) ([]models.HistoricalProductData, error) {
			return nil, errors.New("oracle down")
		},
	}

	service := NewHistoricalAnalysisService(oracle)
	result := service.GetHistoricalAnalysis(context.Background(), sampleProducts(), "Chennai")

	assert.Empty(t, result.Products)
	assert.Empty(t, result.Aggregate)
}
