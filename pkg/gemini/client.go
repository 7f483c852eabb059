package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"nexusinv-api/pkg/models"
)

// Client はGoogle Gemini APIへのクライアント。
// services.Oracle を実装し、リクエスト形状ごとに応答スキーマを固定する。
type Client struct {
	client    *genai.Client
	modelName string
}

// NewClient 新しいGeminiクライアントを作成。APIキーが無い場合はエラー。
func NewClient(ctx context.Context, apiKey, modelName string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEYが設定されていません")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("Geminiクライアントの作成に失敗: %w", err)
	}

	return &Client{
		client:    client,
		modelName: modelName,
	}, nil
}

// Close クライアントを閉じる
func (c *Client) Close() error {
	return c.client.Close()
}

// jsonModel は application/json 固定応答のモデルを構成する
func (c *Client) jsonModel(schema *genai.Schema) *genai.GenerativeModel {
	model := c.client.GenerativeModel(c.modelName)
	model.SetTemperature(0.4)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = schema
	return model
}

// MarketForecast は在庫＋外部トレンドの市場予測を取得する
func (c *Client) MarketForecast(ctx context.Context, location string, products []models.Product) (*models.ForecastResponse, error) {
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, fmt.Sprintf("%s (%s)", p.Name, p.Category))
	}
	inventoryList := strings.Join(names, ", ")
	if inventoryList == "" {
		inventoryList = "No items yet"
	}

	prompt := fmt.Sprintf(`Analyze the current RETAIL ELECTRONICS market trends specifically for the location: %s.

My Current Inventory contains these items:
%s

Task:
Generate a market forecast JSON that analyzes MY INVENTORY + EXTERNAL TRENDS.

CRITICAL RULES:
1. **MANDATORY**: You MUST include a demand analysis object for EVERY SINGLE ITEM in "My Current Inventory". Do not skip any.
2. **EXTERNAL TRENDS**: After analyzing my items, add 3-5 top trending electronics in %s that I do NOT have.
3. **SCORING**: valid electronics in my inventory should get realistic demand scores (0-100) based on their real-world popularity.

Structure:
- location: string
- marketSummary: string (Mention how well the user's current inventory matches local demand).
- trendingProducts: array of objects
  - productName: Name of the product (Use my inventory name exactly if applicable)
  - category: Category
  - demandScore: 0-100
  - reason: Why it is trending (If it's in my inventory, explicitly mention "IN STOCK: <reason>").`,
		location, inventoryList, location)

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"location":      {Type: genai.TypeString},
			"marketSummary": {Type: genai.TypeString},
			"trendingProducts": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"productName": {Type: genai.TypeString},
						"category":    {Type: genai.TypeString},
						"demandScore": {Type: genai.TypeInteger},
						"reason":      {Type: genai.TypeString},
					},
					Required: []string{"productName", "category", "demandScore", "reason"},
				},
			},
		},
		Required: []string{"location", "marketSummary", "trendingProducts"},
	}

	var forecast models.ForecastResponse
	if err := c.generateJSON(ctx, schema, prompt, &forecast); err != nil {
		return nil, err
	}
	return &forecast, nil
}

// PredictDemand は向こう7日分の商品別日次販売予測を取得する
func (c *Client) PredictDemand(ctx context.Context, products []models.Product, location, historySummary string) ([]models.DailyPrediction, error) {
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	today := time.Now().Format("2006-01-02")

	prompt := fmt.Sprintf(`You are an inventory planning AI for an Electronics store in %s.
Today is %s.

The available products in inventory are: %s.

Context:
%s

Task:
Predict the daily sales quantity for EACH of the available products for the NEXT 7 DAYS.

CRITICAL:
- If a product is NEW (no history provided), estimate sales based on its category popularity in %s.
- You MUST return predictions for ALL %d products in the list.

Return a JSON array where each item represents a day (date string) and contains a list of predictions for that day.`,
		location, today, strings.Join(names, ", "), historySummary, location, len(products))

	schema := &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"date": {Type: genai.TypeString, Description: "YYYY-MM-DD"},
				"predictions": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"productName":    {Type: genai.TypeString},
							"predictedSales": {Type: genai.TypeInteger},
							"reasoning":      {Type: genai.TypeString},
						},
						Required: []string{"productName", "predictedSales", "reasoning"},
					},
				},
			},
			Required: []string{"date", "predictions"},
		},
	}

	var days []models.DailyPrediction
	if err := c.generateJSON(ctx, schema, prompt, &days); err != nil {
		return nil, err
	}
	return days, nil
}

// HistoricalAnalysis は過去6ヶ月分の商品別実績シミュレーションを取得する
func (c *Client) HistoricalAnalysis(ctx context.Context, products []models.Product, location string) ([]models.HistoricalProductData, error) {
	infos := make([]string, 0, len(products))
	for _, p := range products {
		infos = append(infos, fmt.Sprintf("%s (₹%.0f)", p.Name, p.Price))
	}

	prompt := fmt.Sprintf(`You are a retail analytics engine for an electronics business in %s.

Current Inventory: %s.

Task:
Generate simulated historical sales data for the PAST 6 MONTHS for EACH product in the list.

Context:
- The currency is Indian Rupees (₹).
- Use realistic seasonality for %s (e.g., consider local weather, festivals like Diwali/Pongal if applicable, or back-to-school seasons).
- Generate "MonthlyMetric" objects for the last 6 months (Month name, units sold, total revenue, average price).
- **Simulate slight Price Variations**: The 'averagePrice' should fluctuate slightly month-to-month based on market conditions (discounts, festivals, etc).
- Provide a short "insight" on why the product performed that way in %s.

CRITICAL:
- Return data for ALL %d products.

Response JSON Array of HistoricalProductData.`,
		location, strings.Join(infos, ", "), location, location, len(products))

	schema := &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"productName":    {Type: genai.TypeString},
				"totalUnitsSold": {Type: genai.TypeInteger},
				"totalRevenue":   {Type: genai.TypeNumber},
				"insight":        {Type: genai.TypeString},
				"monthlyHistory": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"month":        {Type: genai.TypeString},
							"unitsSold":    {Type: genai.TypeInteger},
							"revenue":      {Type: genai.TypeNumber},
							"averagePrice": {Type: genai.TypeNumber},
						},
						Required: []string{"month", "unitsSold", "revenue", "averagePrice"},
					},
				},
			},
			Required: []string{"productName", "totalUnitsSold", "totalRevenue", "monthlyHistory", "insight"},
		},
	}

	var history []models.HistoricalProductData
	if err := c.generateJSON(ctx, schema, prompt, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// Converse はシステム指示＋会話履歴つきで1ターンの応答を取得する
func (c *Client) Converse(ctx context.Context, systemInstruction string, history []models.ChatTurn, message string) (string, error) {
	model := c.client.GenerativeModel(c.modelName)
	model.SetTemperature(0.7)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	cs := model.StartChat()
	cs.History = make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		cs.History = append(cs.History, &genai.Content{
			Role:  turn.Role,
			Parts: []genai.Part{genai.Text(turn.Text)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("チャット応答の取得に失敗: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", fmt.Errorf("応答候補がありません")
	}
	return text, nil
}

// generateJSON はJSONスキーマ固定でプロンプトを実行し、結果を out へ復元する
func (c *Client) generateJSON(ctx context.Context, schema *genai.Schema, prompt string, out interface{}) error {
	model := c.jsonModel(schema)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return fmt.Errorf("コンテンツ生成に失敗: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return fmt.Errorf("応答にデータがありません")
	}

	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("応答JSONの解析に失敗: %w", err)
	}
	return nil
}

// extractText は応答候補からテキスト部分を連結して取り出す
func extractText(resp *genai.GenerateContentResponse) string {
	var result strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if text, ok := part.(genai.Text); ok {
					result.WriteString(string(text))
				}
			}
		}
	}
	return result.String()
}
