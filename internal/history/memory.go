package history

import (
	"sort"
	"sync"

	"PriceProphet/internal/model"
)

// MemoryStore is an in-memory Store used in tests and when no database
// path is configured.
type MemoryStore struct {
	mu   sync.Mutex
	bars map[string]model.OHLCV
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{bars: make(map[string]model.OHLCV)}
}

func (m *MemoryStore) Load() ([]model.OHLCV, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bars := make([]model.OHLCV, 0, len(m.bars))
	for _, b := range m.bars {
		bars = append(bars, b)
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

func (m *MemoryStore) Upsert(bar model.OHLCV) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bars[bar.Date.Format(dateLayout)] = bar
	return nil
}

func (m *MemoryStore) ReplaceAll(bars []model.OHLCV) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bars = make(map[string]model.OHLCV, len(bars))
	for _, b := range bars {
		m.bars[b.Date.Format(dateLayout)] = b
	}
	return nil
}

func (m *MemoryStore) Close() error { return nil }
