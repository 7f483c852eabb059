package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"time"

	config "nexusinv-api/configs"
	"nexusinv-api/pkg/gemini"
	"nexusinv-api/pkg/handlers"
	"nexusinv-api/pkg/services"
	"nexusinv-api/pkg/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .envファイルを読み込み
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// 設定の読み込み
	cfg := config.LoadConfig()
	persona, err := config.LoadPersona()
	if err != nil {
		log.Printf("ペルソナ設定の読み込みに失敗（デフォルトを使用）: %v", err)
		persona = config.DefaultPersona()
	}

	// Ginルーターの初期化
	r := gin.Default()

	// カタログストアの初期化（ファイルが無ければシードカタログで開始）
	catalogStore := store.NewCatalogStore(cfg.CatalogFilePath, cfg.DefaultLocation)
	log.Printf("📦 カタログストアを初期化しました（%d商品、ロケーション: %s）", catalogStore.Size(), catalogStore.Location())

	// Geminiオラクルの初期化。APIキーが無い場合はnilのまま起動し、
	// 予測画面はエラー、他の画面はフォールバック/空状態で動く。
	var oracle services.Oracle
	if cfg.GeminiAPIKey == "" {
		log.Println("⚠️  GEMINI_API_KEYが未設定です。AI機能はフォールバック動作になります")
	} else {
		client, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("Geminiクライアントの初期化に失敗: %v", err)
		} else {
			defer client.Close()
			oracle = client
			log.Printf("✅ Geminiクライアントを初期化しました（モデル: %s）", cfg.GeminiModel)
		}
	}

	// サービスの初期化
	monitoringService := services.NewMonitoringService()
	forecastService := services.NewForecastService(oracle)
	demandService := services.NewDemandPlanningService(oracle, rand.New(rand.NewSource(time.Now().UnixNano())))
	historicalService := services.NewHistoricalAnalysisService(oracle)
	assistantService := services.NewAssistantService(oracle, persona)
	dashboardService := services.NewDashboardService(catalogStore, forecastService, demandService, historicalService)
	reportService := services.NewReportService()

	// ハンドラーの初期化
	inventoryHandler := handlers.NewInventoryHandler(catalogStore, assistantService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	chatHandler := handlers.NewChatHandler(assistantService, catalogStore)
	reportHandler := handlers.NewReportHandler(reportService, forecastService, catalogStore)
	monitoringHandler := handlers.NewMonitoringHandler(monitoringService)

	// ミドルウェアの登録
	r.Use(monitoringService.LoggingMiddleware()) // ロギングミドルウェアをグローバルに適用
	r.Use(cors.Default())

	// 認証ミドルウェア
	authMiddleware := func(apiKey string) gin.HandlerFunc {
		return func(c *gin.Context) {
			if apiKey == "" {
				c.Next()
				return
			}
			providedKey := c.GetHeader("X-API-KEY")
			if providedKey != apiKey {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			c.Next()
		}
	}

	// ヘルスチェックエンドポイント
	r.GET("/health", handlers.HealthCheck)

	// APIバージョン1のルートグループ
	v1 := r.Group("/api/v1")
	v1.Use(authMiddleware(cfg.APIKey))
	{
		// 在庫カタログAPI
		v1.GET("/inventory", inventoryHandler.ListInventory)
		v1.POST("/inventory", inventoryHandler.CreateProduct)
		v1.PUT("/inventory/:id", inventoryHandler.UpdateProduct)
		v1.DELETE("/inventory/:id", inventoryHandler.DeleteProduct)
		v1.POST("/inventory/:id/stock", inventoryHandler.AdjustStock)

		// ロケーションAPI
		v1.GET("/location", inventoryHandler.GetLocation)
		v1.PUT("/location", inventoryHandler.UpdateLocation)

		// ダッシュボードAPI
		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/view", dashboardHandler.GetView)
			dashboard.PUT("/view", dashboardHandler.SelectView)
			dashboard.GET("/forecast", dashboardHandler.GetForecast)
			dashboard.GET("/demand", dashboardHandler.GetDemand)
			dashboard.GET("/historical", dashboardHandler.GetHistorical)
		}

		// アシスタントAPI
		assistant := v1.Group("/assistant")
		{
			assistant.POST("/session", chatHandler.OpenSession)
			assistant.GET("/session/:id", chatHandler.GetTranscript)
			assistant.DELETE("/session/:id", chatHandler.CloseSession)
			assistant.POST("/message", chatHandler.SendMessage)
			assistant.POST("/render", chatHandler.RenderMessage)
		}

		// レポートAPI
		reports := v1.Group("/reports")
		{
			reports.GET("/inventory", reportHandler.DownloadInventoryReport)
			reports.GET("/forecast", reportHandler.DownloadForecastReport)
		}

		// モニタリングAPI
		monitoring := v1.Group("/monitoring")
		{
			monitoring.GET("/logs", monitoringHandler.GetLogs)
		}
	}

	// サーバーの起動
	log.Printf("🚀 NexusInv APIサーバーをポート%sで起動します", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("サーバーの起動に失敗しました: %v", err)
	}
}
