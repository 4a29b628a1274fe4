package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/andresuchdata/mealchain/internal/cache"
	"github.com/andresuchdata/mealchain/internal/domain"
	"github.com/andresuchdata/mealchain/internal/storage"
)

type fakeLedger struct {
	batches  []domain.ProductionBatch
	err      error
	calls    int
	from, to time.Time
}

func (f *fakeLedger) GetBatches(ctx context.Context, from, to time.Time) ([]domain.ProductionBatch, error) {
	f.calls++
	f.from, f.to = from, to
	return f.batches, f.err
}

type fakeInventory struct {
	items     []domain.InventoryItem
	lots      map[string][]domain.InventoryLot
	itemsErr  error
	lotsErr   error
	requested []string
	lotIDs    []string
}

func (f *fakeInventory) GetItems(ctx context.Context, ids []string) ([]domain.InventoryItem, error) {
	f.requested = ids
	if f.itemsErr != nil {
		return nil, f.itemsErr
	}
	if len(ids) == 0 {
		return f.items, nil
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []domain.InventoryItem
	for _, item := range f.items {
		if want[item.ID] {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeInventory) GetAvailableLots(ctx context.Context, itemIDs []string) (map[string][]domain.InventoryLot, error) {
	f.lotIDs = itemIDs
	return f.lots, f.lotsErr
}

type fakeRecipes struct {
	recipes map[string]domain.Recipe
}

func (f *fakeRecipes) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	recipe, ok := f.recipes[id]
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	return &recipe, nil
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]*domain.ForecastResponse
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]*domain.ForecastResponse)}
}

func cacheID(key cache.ForecastKey) string {
	return fmt.Sprintf("%s|%d|%t|%v|%s", key.Day.Format("2006-01-02"), key.PredictionPeriod,
		key.IncludeSeasonality, key.AlertThreshold, strings.Join(key.TargetItems, ","))
}

func (m *memoryCache) Get(ctx context.Context, key cache.ForecastKey) (*domain.ForecastResponse, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	resp, ok := m.entries[cacheID(key)]
	return resp, ok, nil
}

func (m *memoryCache) Set(ctx context.Context, key cache.ForecastKey, resp *domain.ForecastResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.entries[cacheID(key)] = resp
	return nil
}

func (m *memoryCache) InvalidateAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*domain.ForecastResponse)
	return nil
}

type memoryStorage struct {
	objects map[string][]byte
}

func (m *memoryStorage) GetObject(ctx context.Context, key string) ([]byte, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, storage.ErrObjectNotFound)
	}
	return data, nil
}

func (m *memoryStorage) ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	var out []storage.ObjectInfo
	for key, data := range m.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, storage.ObjectInfo{Key: key, Size: int64(len(data))})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *memoryStorage) UploadObject(ctx context.Context, key string, data []byte) error {
	if m.objects == nil {
		m.objects = make(map[string][]byte)
	}
	m.objects[key] = data
	return nil
}
