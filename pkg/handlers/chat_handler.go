package handlers

import (
	"net/http"

	"nexusinv-api/pkg/models"
	"nexusinv-api/pkg/services"
	"nexusinv-api/pkg/store"

	"github.com/gin-gonic/gin"
)

// ChatHandler 会話アシスタントのハンドラー
type ChatHandler struct {
	assistant *services.AssistantService
	store     *store.CatalogStore
}

// NewChatHandler 新しいチャットハンドラーを作成
func NewChatHandler(assistant *services.AssistantService, catalogStore *store.CatalogStore) *ChatHandler {
	return &ChatHandler{
		assistant: assistant,
		store:     catalogStore,
	}
}

// OpenSession はアシスタントパネルを開き、新しい会話セッションを開始する
func (h *ChatHandler) OpenSession(c *gin.Context) {
	sessionID, greeting := h.assistant.OpenSession(h.store.Snapshot(), h.store.Location())

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"session_id": sessionID,
		"greeting":   greeting,
	})
}

// GetTranscript は画面に表示するターンの一覧を返す
func (h *ChatHandler) GetTranscript(c *gin.Context) {
	sessionID := c.Param("id")

	turns, ok := h.assistant.Transcript(sessionID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "セッションが見つかりません: " + sessionID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"turns":   turns,
	})
}

// SendMessage はユーザー発話を送り、アシスタントの応答を返す。
// 応答には表示用に整形済みのブロック列も付ける。
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req models.AssistantMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "リクエストの解析に失敗しました: " + err.Error(),
		})
		return
	}

	reply, err := h.assistant.SendMessage(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "セッションが見つかりません: " + req.SessionID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reply":   reply,
		"blocks":  services.FormatMessage(reply.Text),
	})
}

// RenderMessage はMarkdownサブセットのテキストを構造化ブロックへ整形する
func (h *ChatHandler) RenderMessage(c *gin.Context) {
	var req models.RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "リクエストの解析に失敗しました: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"blocks":  services.FormatMessage(req.Text),
	})
}

// CloseSession はセッションを破棄する
func (h *ChatHandler) CloseSession(c *gin.Context) {
	h.assistant.CloseSession(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"success": true})
}
