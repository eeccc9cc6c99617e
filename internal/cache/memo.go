package cache

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"sync"

	"TradePulse/internal/model"
)

// SeriesHash fingerprints a bar series with FNV-1a over the raw field
// bits. Two series hash equal exactly when every timestamp and every
// price/volume value matches.
func SeriesHash(bars []model.OHLCV) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	write := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	write(uint64(len(bars)))
	for _, b := range bars {
		write(uint64(b.Time.UnixNano()))
		write(math.Float64bits(b.Open))
		write(math.Float64bits(b.High))
		write(math.Float64bits(b.Low))
		write(math.Float64bits(b.Close))
		write(math.Float64bits(b.Volume))
	}
	return h.Sum64()
}

// Memo caches the most recent readings per (symbol, params). The
// engine itself stays stateless; whoever calls it owns the memo and
// decides when to consult it. One entry is kept per key, so the memo
// stays bounded by watchlist size. Returned slices are shared and must
// be treated as read-only.
type Memo struct {
	mu      sync.Mutex
	entries map[string]memoEntry
}

type memoEntry struct {
	hash     uint64
	readings []model.IndicatorReading
}

// NewMemo returns an empty memo.
func NewMemo() *Memo {
	return &Memo{entries: make(map[string]memoEntry)}
}

// Get returns the cached readings for symbol+params when the stored
// series hash matches.
func (m *Memo) Get(symbol, params string, hash uint64) ([]model.IndicatorReading, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[symbol+"|"+params]
	if !ok || e.hash != hash {
		return nil, false
	}
	return e.readings, true
}

// Put stores readings for symbol+params, replacing any previous entry.
func (m *Memo) Put(symbol, params string, hash uint64, readings []model.IndicatorReading) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[symbol+"|"+params] = memoEntry{hash: hash, readings: readings}
}

// Len reports the number of cached entries.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
