package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck は外部のヘルスチェッカー（例: ロードバランサー）からのリクエストに応答します。
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "nexusinv-api",
	})
}
