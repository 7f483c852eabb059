package services

import (
	"fmt"
	"strings"
	"time"

	"nexusinv-api/pkg/models"

	"github.com/xuri/excelize/v2"
)

// ReportService はカタログ・予測のダウンロード用レポートを生成する。
// 状態を持たず、リトライや復旧は行わない。生成失敗はそのまま呼び出し元へ返す。
type ReportService struct{}

// NewReportService 新しいレポートサービスを作成
func NewReportService() *ReportService {
	return &ReportService{}
}

// BuildInventoryReport は現在のカタログの一覧レポート（XLSX）を生成する。
// 内容: SKU・商品名・カテゴリ・在庫数・単価・在庫金額の表＋合計行＋サマリー。
// 戻り値は (ファイル名, ファイル内容, エラー)。
func (rs *ReportService) BuildInventoryReport(products []models.Product, location string) (string, []byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Inventory"
	f.SetSheetName("Sheet1", sheet)

	// タイトルとサマリー
	totalItems := 0
	totalValue := 0.0
	for _, p := range products {
		totalItems += p.Quantity
		totalValue += p.Price * float64(p.Quantity)
	}

	f.SetCellValue(sheet, "A1", "NexusInv - Electronics Inventory Report")
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Location: %s", location))
	f.SetCellValue(sheet, "A3", fmt.Sprintf("Generated on: %s", time.Now().Format("2006-01-02")))
	f.SetCellValue(sheet, "A4", fmt.Sprintf("Total SKU Count: %d", len(products)))
	f.SetCellValue(sheet, "A5", fmt.Sprintf("Total Stock Quantity: %d", totalItems))
	f.SetCellValue(sheet, "A6", fmt.Sprintf("Total Inventory Value: ₹%.2f", totalValue))

	// 表ヘッダー
	const headerRow = 8
	headers := []string{"SKU", "Product Name", "Category", "Qty", "Unit Price", "Total Value"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return "", nil, fmt.Errorf("セル名の生成に失敗: %w", err)
		}
		f.SetCellValue(sheet, cell, h)
	}

	// 商品行
	for rowIdx, p := range products {
		row := headerRow + 1 + rowIdx
		values := []interface{}{p.SKU, p.Name, p.Category, p.Quantity, p.Price, p.Price * float64(p.Quantity)}
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, row)
			if err != nil {
				return "", nil, fmt.Errorf("セル名の生成に失敗: %w", err)
			}
			f.SetCellValue(sheet, cell, v)
		}
	}

	// 合計行（数量と金額を合算）
	totalRow := headerRow + 1 + len(products)
	f.SetCellValue(sheet, fmt.Sprintf("C%d", totalRow), "TOTAL")
	f.SetCellValue(sheet, fmt.Sprintf("D%d", totalRow), totalItems)
	f.SetCellValue(sheet, fmt.Sprintf("F%d", totalRow), totalValue)

	// 見やすさのため最低限のスタイルを適用
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		f.SetCellStyle(sheet, "A1", "A1", style)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("F%d", headerRow), style)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("F%d", totalRow), style)
	}
	f.SetColWidth(sheet, "A", "F", 20)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", nil, fmt.Errorf("在庫レポートの生成に失敗: %w", err)
	}

	filename := fmt.Sprintf("electronics-inventory-%s.xlsx", time.Now().Format("2006-01-02"))
	return filename, buf.Bytes(), nil
}

// BuildForecastReport は市場予測のレポート（XLSX）を生成する。
// 内容: ロケーション見出し＋市場サマリーの文章＋トレンド表。
func (rs *ReportService) BuildForecastReport(forecast *models.ForecastResponse) (string, []byte, error) {
	if forecast == nil {
		return "", nil, fmt.Errorf("予測データがありません")
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Forecast"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Market Forecast Report: %s", forecast.Location))
	f.SetCellValue(sheet, "A2", forecast.MarketSummary)

	const headerRow = 4
	headers := []string{"Product", "Category", "Demand Score", "Reason"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return "", nil, fmt.Errorf("セル名の生成に失敗: %w", err)
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, item := range forecast.TrendingProducts {
		row := headerRow + 1 + rowIdx
		values := []interface{}{item.ProductName, item.Category, item.DemandScore, item.Reason}
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, row)
			if err != nil {
				return "", nil, fmt.Errorf("セル名の生成に失敗: %w", err)
			}
			f.SetCellValue(sheet, cell, v)
		}
	}

	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		f.SetCellStyle(sheet, "A1", "A1", style)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("D%d", headerRow), style)
	}
	f.SetColWidth(sheet, "A", "D", 28)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", nil, fmt.Errorf("予測レポートの生成に失敗: %w", err)
	}

	filename := fmt.Sprintf("forecast-%s.xlsx", slugify(forecast.Location))
	return filename, buf.Bytes(), nil
}

// slugify はロケーション名をファイル名向けに整形する（空白をハイフンに、英小文字化）
func slugify(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), "-"))
}
