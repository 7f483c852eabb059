package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"nexusinv-api/pkg/models"

	"github.com/google/uuid"
)

// ErrNotFound は指定IDの商品が存在しない場合に返される
var ErrNotFound = errors.New("product not found")

// CatalogStore は商品カタログとロケーションを保持し、単一のJSONファイルに永続化する。
// 書き込みは全てこのストア経由で行い、読み取り側にはコピーのみを渡す。
type CatalogStore struct {
	mu       sync.RWMutex
	filePath string
	products []models.Product
	location string
	revision uint64
}

// NewCatalogStore はストアを生成し、永続化ファイルからカタログを読み込む。
// ファイルが存在しない、または壊れている場合は組み込みのシードカタログで開始する。
func NewCatalogStore(filePath, defaultLocation string) *CatalogStore {
	s := &CatalogStore{
		filePath: filePath,
		location: defaultLocation,
	}
	s.products = s.load()
	return s
}

// load は永続化ファイルを読み込む。失敗してもエラーは呼び出し元に返さない。
func (s *CatalogStore) load() []models.Product {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("カタログファイルの読み込みに失敗（シードを使用）: %v", err)
		}
		return seedCatalog()
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		log.Printf("カタログファイルのパースに失敗（シードを使用）: %v", err)
		return seedCatalog()
	}

	return products
}

// save はカタログを同期的に書き込む。失敗はログに残すのみで、
// メモリ上の状態が引き続き正となる。呼び出し元はロック保持済みであること。
func (s *CatalogStore) save() {
	if dir := filepath.Dir(s.filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("カタログ保存先ディレクトリの作成に失敗: %v", err)
			return
		}
	}

	data, err := json.MarshalIndent(s.products, "", "  ")
	if err != nil {
		log.Printf("カタログのJSON化に失敗: %v", err)
		return
	}

	if err := os.WriteFile(s.filePath, data, 0o644); err != nil {
		log.Printf("カタログファイルの書き込みに失敗: %v", err)
	}
}

// Snapshot はカタログの読み取り専用コピーを返す（挿入順を保持）
func (s *CatalogStore) Snapshot() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]models.Product, len(s.products))
	copy(products, s.products)
	return products
}

// Search は商品名・カテゴリ・SKUに対する大文字小文字を無視した部分一致で絞り込む
func (s *CatalogStore) Search(query string) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		products := make([]models.Product, len(s.products))
		copy(products, s.products)
		return products
	}

	results := make([]models.Product, 0)
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q) ||
			strings.Contains(strings.ToLower(p.SKU), q) {
			results = append(results, p)
		}
	}
	return results
}

// Add は新しいIDを採番して商品を末尾に追加する
func (s *CatalogStore) Add(draft models.ProductDraft) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	sku := strings.TrimSpace(draft.SKU)
	if sku == "" {
		sku = generateSKU()
	}

	product := models.Product{
		ID:       uuid.New().String(),
		Name:     draft.Name,
		Category: draft.Category,
		Price:    draft.Price,
		Quantity: draft.Quantity,
		SKU:      sku,
		Image:    draft.Image,
	}

	s.products = append(s.products, product)
	s.revision++
	s.save()
	return product
}

// Update はID以外の全フィールドを置き換える。IDが存在しない場合はErrNotFound。
func (s *CatalogStore) Update(id string, draft models.ProductDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID == id {
			s.products[i] = models.Product{
				ID:       id,
				Name:     draft.Name,
				Category: draft.Category,
				Price:    draft.Price,
				Quantity: draft.Quantity,
				SKU:      draft.SKU,
				Image:    draft.Image,
			}
			s.revision++
			s.save()
			return nil
		}
	}
	return ErrNotFound
}

// Remove はIDが一致する商品を削除する。存在しない場合は何もしない。
func (s *CatalogStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			s.revision++
			s.save()
			return
		}
	}
}

// AdjustStock は在庫数にdeltaを加算する。結果は0未満にならない。
// IDが存在しない場合は何もしない。
func (s *CatalogStore) AdjustStock(id string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID == id {
			newQuantity := p.Quantity + delta
			if newQuantity < 0 {
				newQuantity = 0
			}
			s.products[i].Quantity = newQuantity
			s.revision++
			s.save()
			return
		}
	}
}

// Location は現在のロケーション文字列を返す
func (s *CatalogStore) Location() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.location
}

// SetLocation はロケーションを更新する。空白のみの入力は拒否し、前の値を保持する。
// 受理された場合にtrueを返す。
func (s *CatalogStore) SetLocation(location string) bool {
	if strings.TrimSpace(location) == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.location = location
	s.revision++
	return true
}

// Revision はカタログ・ロケーションの変更のたびに増える世代番号を返す。
// 取得系サービスはこの値でレスポンスの鮮度を判定する。
func (s *CatalogStore) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Size は現在の商品数を返す
func (s *CatalogStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// generateSKU はSKU未指定時の表示用キーを生成する
func generateSKU() string {
	return fmt.Sprintf("ELC-%04d", rand.Intn(10000))
}
