package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	config "nexusinv-api/configs"
	"nexusinv-api/pkg/models"

	"github.com/google/uuid"
)

// assistantErrorReply はオラクル障害時に表示する定型の応答
const assistantErrorReply = "Sorry, I encountered an error processing your request."

// assistantSession はアシスタントパネル1枚分の会話状態。
// パネルを閉じる（画面がアンマウントされる）と破棄され、リロードをまたいで残らない。
type assistantSession struct {
	systemInstruction string
	turns             []models.ChatTurn
	catalogSize       int
}

// AssistantService 会話アシスタントサービス
type AssistantService struct {
	mu       sync.Mutex
	oracle   Oracle
	persona  *config.PersonaConfig
	sessions map[string]*assistantSession
}

// NewAssistantService 新しいアシスタントサービスを作成
func NewAssistantService(oracle Oracle, persona *config.PersonaConfig) *AssistantService {
	if persona == nil {
		persona = config.DefaultPersona()
	}
	return &AssistantService{
		oracle:   oracle,
		persona:  persona,
		sessions: make(map[string]*assistantSession),
	}
}

// OpenSession はアシスタントパネルを開き、カタログ全体とロケーションを
// システム指示としてオラクルに与える新規セッションを開始する。
// 戻り値は (セッションID, 初回挨拶ターン)。
func (as *AssistantService) OpenSession(products []models.Product, location string) (string, models.ChatTurn) {
	as.mu.Lock()
	defer as.mu.Unlock()

	greeting := models.ChatTurn{
		ID:   uuid.New().String(),
		Role: "model",
		Text: fmt.Sprintf(
			"Hello! I'm %s. I see you have **%d items** in your inventory in **%s**. How can I help you manage your stock today?",
			as.persona.Assistant.Name, len(products), location),
	}

	sessionID := uuid.New().String()
	as.sessions[sessionID] = &assistantSession{
		systemInstruction: as.buildSystemInstruction(products, location),
		turns:             []models.ChatTurn{greeting},
		catalogSize:       len(products),
	}

	return sessionID, greeting
}

// CloseSession はセッションを破棄する。存在しないIDは何もしない。
func (as *AssistantService) CloseSession(sessionID string) {
	as.mu.Lock()
	defer as.mu.Unlock()
	delete(as.sessions, sessionID)
}

// Transcript は画面に表示するターンの一覧を返す（コンテキスト更新は含まない）
func (as *AssistantService) Transcript(sessionID string) ([]models.ChatTurn, bool) {
	as.mu.Lock()
	defer as.mu.Unlock()

	session, ok := as.sessions[sessionID]
	if !ok {
		return nil, false
	}

	visible := make([]models.ChatTurn, 0, len(session.turns))
	for _, turn := range session.turns {
		if !turn.Hidden {
			visible = append(visible, turn)
		}
	}
	return visible, true
}

// SendMessage はユーザー発話を楽観的にトランスクリプトへ追加してから
// オラクルの応答を取得する。失敗時は定型のエラーターンを追加する。
func (as *AssistantService) SendMessage(ctx context.Context, sessionID, message string) (models.ChatTurn, error) {
	as.mu.Lock()
	session, ok := as.sessions[sessionID]
	if !ok {
		as.mu.Unlock()
		return models.ChatTurn{}, fmt.Errorf("session not found: %s", sessionID)
	}

	// ユーザーターンを先に追加（楽観的更新）
	userTurn := models.ChatTurn{ID: uuid.New().String(), Role: "user", Text: message}
	history := make([]models.ChatTurn, len(session.turns))
	copy(history, session.turns)
	session.turns = append(session.turns, userTurn)
	systemInstruction := session.systemInstruction
	as.mu.Unlock()

	reply := as.converse(ctx, systemInstruction, history, message)

	as.mu.Lock()
	defer as.mu.Unlock()
	// 応答待ちの間にセッションが閉じられた場合は捨てる
	if session, ok = as.sessions[sessionID]; !ok {
		return reply, nil
	}
	session.turns = append(session.turns, reply)
	return reply, nil
}

// NotifyCatalogChange はパネルを開いている全セッションへ、在庫の変化を
// 非表示のコンテキスト更新ターンとして送る。fire-and-forgetであり、
// 失敗はログに残すだけで表には出さない。
func (as *AssistantService) NotifyCatalogChange(products []models.Product) {
	if len(products) == 0 {
		return
	}

	pairs := make([]string, 0, len(products))
	for _, p := range products {
		pairs = append(pairs, fmt.Sprintf("%s (%d)", p.Name, p.Quantity))
	}
	update := fmt.Sprintf("SYSTEM UPDATE: The inventory has changed. The new list is: %s.", strings.Join(pairs, ", "))

	as.mu.Lock()
	defer as.mu.Unlock()

	for sessionID, session := range as.sessions {
		if session.catalogSize == len(products) {
			continue
		}
		session.catalogSize = len(products)

		history := make([]models.ChatTurn, len(session.turns))
		copy(history, session.turns)
		session.turns = append(session.turns, models.ChatTurn{
			ID:     uuid.New().String(),
			Role:   "user",
			Text:   update,
			Hidden: true,
		})

		go func(sessionID, systemInstruction string, history []models.ChatTurn) {
			ctx, cancel := context.WithTimeout(context.Background(), oracleTimeout)
			defer cancel()

			if as.oracle == nil {
				return
			}
			reply, err := as.oracle.Converse(ctx, systemInstruction, history, update)
			if err != nil {
				log.Printf("チャットコンテキストの更新に失敗: %v", err)
				return
			}

			as.mu.Lock()
			defer as.mu.Unlock()
			if session, ok := as.sessions[sessionID]; ok {
				session.turns = append(session.turns, models.ChatTurn{
					ID:     uuid.New().String(),
					Role:   "model",
					Text:   reply,
					Hidden: true,
				})
			}
		}(sessionID, session.systemInstruction, history)
	}
}

// converse はオラクルを呼び出し、失敗時は定型エラーターンを返す
func (as *AssistantService) converse(ctx context.Context, systemInstruction string, history []models.ChatTurn, message string) models.ChatTurn {
	if as.oracle == nil {
		return models.ChatTurn{ID: uuid.New().String(), Role: "model", Text: assistantErrorReply}
	}

	ctx, cancel := context.WithTimeout(ctx, oracleTimeout)
	defer cancel()

	text, err := as.oracle.Converse(ctx, systemInstruction, history, message)
	if err != nil {
		log.Printf("アシスタント応答の取得に失敗: %v", err)
		text = assistantErrorReply
	}

	return models.ChatTurn{ID: uuid.New().String(), Role: "model", Text: text}
}

// buildSystemInstruction はペルソナ設定と現在の在庫からシステム指示を組み立てる
func (as *AssistantService) buildSystemInstruction(products []models.Product, location string) string {
	var inventory strings.Builder
	for _, p := range products {
		inventory.WriteString(fmt.Sprintf("- %s (Qty: %d, Price: ₹%.0f, Category: %s)\n", p.Name, p.Quantity, p.Price, p.Category))
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("You are %s, an %s in %s.\n\n", as.persona.Assistant.Name, as.persona.Assistant.Role, location))
	b.WriteString("CURRENT INVENTORY STATE:\n")
	b.WriteString(inventory.String())
	b.WriteString("\nYour Role:\n")
	b.WriteString("1. Answer questions about current stock levels, pricing, and value.\n")
	b.WriteString("2. Provide advice on whether to restock items based on general electronics market knowledge.\n")
	b.WriteString("3. Suggest marketing strategies for specific items in the inventory.\n")
	if as.persona.Tone.Style != "" || as.persona.Tone.Personality != "" {
		b.WriteString("\nTONE:\n")
		if as.persona.Tone.Style != "" {
			b.WriteString("- Style: " + as.persona.Tone.Style + "\n")
		}
		if as.persona.Tone.Personality != "" {
			b.WriteString("- Personality: " + as.persona.Tone.Personality + "\n")
		}
	}
	b.WriteString("\nFORMATTING RULES (Important):\n")
	for _, rule := range as.persona.FormattingRules {
		b.WriteString("- " + rule + "\n")
	}
	b.WriteString("\nBEHAVIOR:\n")
	for _, behavior := range as.persona.Behaviors {
		b.WriteString("- " + behavior + "\n")
	}
	return b.String()
}
