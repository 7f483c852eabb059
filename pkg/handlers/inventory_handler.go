package handlers

import (
	"errors"
	"net/http"

	"nexusinv-api/pkg/models"
	"nexusinv-api/pkg/services"
	"nexusinv-api/pkg/store"

	"github.com/gin-gonic/gin"
)

// InventoryHandler 在庫カタログ操作のハンドラー
type InventoryHandler struct {
	store     *store.CatalogStore
	assistant *services.AssistantService
}

// NewInventoryHandler 新しい在庫ハンドラーを作成
func NewInventoryHandler(catalogStore *store.CatalogStore, assistant *services.AssistantService) *InventoryHandler {
	return &InventoryHandler{
		store:     catalogStore,
		assistant: assistant,
	}
}

// ListInventory は商品一覧を返す。クエリ `q` で名前・カテゴリ・SKUを部分一致検索する。
func (h *InventoryHandler) ListInventory(c *gin.Context) {
	query := c.Query("q")
	products := h.store.Search(query)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"data":     products,
		"count":    len(products),
		"location": h.store.Location(),
	})
}

// CreateProduct は新しい商品をカタログへ追加する
func (h *InventoryHandler) CreateProduct(c *gin.Context) {
	var draft models.ProductDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "リクエストの解析に失敗しました: " + err.Error(),
		})
		return
	}

	product := h.store.Add(draft)
	h.notifyAssistant()

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    product,
	})
}

// UpdateProduct は既存商品の全フィールド（ID以外）を差し替える
func (h *InventoryHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var draft models.ProductDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "リクエストの解析に失敗しました: " + err.Error(),
		})
		return
	}

	if err := h.store.Update(id, draft); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "商品が見つかりません: " + id,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "商品の更新に失敗しました: " + err.Error(),
		})
		return
	}

	h.notifyAssistant()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteProduct は商品を削除する。存在しないIDは何もしない。
func (h *InventoryHandler) DeleteProduct(c *gin.Context) {
	h.store.Remove(c.Param("id"))
	h.notifyAssistant()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AdjustStock は在庫数を増減する。結果が負になる場合は0で止まる。
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	id := c.Param("id")

	var req models.StockAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "リクエストの解析に失敗しました: " + err.Error(),
		})
		return
	}

	h.store.AdjustStock(id, *req.Delta)
	h.notifyAssistant()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetLocation は現在のロケーションを返す
func (h *InventoryHandler) GetLocation(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"location": h.store.Location(),
	})
}

// UpdateLocation はロケーションを変更する。空白のみの値は拒否する。
func (h *InventoryHandler) UpdateLocation(c *gin.Context) {
	var req models.LocationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "リクエストの解析に失敗しました: " + err.Error(),
		})
		return
	}

	if !h.store.SetLocation(req.Location) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "ロケーションが空です",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"location": h.store.Location(),
	})
}

// notifyAssistant は開いているアシスタントセッションへ在庫変化を伝える
func (h *InventoryHandler) notifyAssistant() {
	if h.assistant != nil {
		h.assistant.NotifyCatalogChange(h.store.Snapshot())
	}
}
