package storagemgr

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/axiomesh/hold-token/internal/storage/kv"
)

var (
	kvCacheHitCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hold_token",
		Subsystem: "storage",
		Name:      "kv_cache_hit_counter",
		Help:      "The total number of kv cache hit",
	})

	kvCacheMissCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hold_token",
		Subsystem: "storage",
		Name:      "kv_cache_miss_counter",
		Help:      "The total number of kv cache miss",
	})
)

func init() {
	prometheus.MustRegister(kvCacheHitCounter)
	prometheus.MustRegister(kvCacheMissCounter)
}

// CachedStorage keeps the most recently used values in front of a kv.Storage.
// A cached nil marks a key known to be absent.
type CachedStorage struct {
	kv.Storage
	cache *lru.Cache
}

func NewCachedStorage(s kv.Storage, entries int) (kv.Storage, error) {
	if entries <= 0 {
		entries = 4096
	}
	cache, err := lru.New(entries)
	if err != nil {
		return nil, err
	}
	return &CachedStorage{
		Storage: s,
		cache:   cache,
	}, nil
}

func (c *CachedStorage) Get(key []byte) []byte {
	if value, ok := c.cache.Get(string(key)); ok {
		kvCacheHitCounter.Inc()
		return value.([]byte)
	}
	kvCacheMissCounter.Inc()
	v := c.Storage.Get(key)
	c.cache.Add(string(key), v)
	return v
}

func (c *CachedStorage) Has(key []byte) bool {
	return c.Get(key) != nil
}

func (c *CachedStorage) Put(key, value []byte) {
	if value == nil {
		value = []byte{}
	}
	c.Storage.Put(key, value)
	c.cache.Add(string(key), value)
}

func (c *CachedStorage) Delete(key []byte) {
	c.cache.Add(string(key), []byte(nil))
	c.Storage.Delete(key)
}

func (c *CachedStorage) Close() error {
	c.cache.Purge()
	return c.Storage.Close()
}

func (c *CachedStorage) NewBatch() kv.Batch {
	return &BatchWrapper{
		Batch:      c.Storage.NewBatch(),
		cache:      c.cache,
		finalState: make(map[string][]byte),
	}
}

type BatchWrapper struct {
	kv.Batch
	cache      *lru.Cache
	finalState map[string][]byte
}

func (w *BatchWrapper) Put(key, value []byte) {
	if value == nil {
		value = []byte{}
	}
	w.finalState[string(key)] = value
	w.Batch.Put(key, value)
}

func (w *BatchWrapper) Delete(key []byte) {
	w.finalState[string(key)] = nil
	w.Batch.Delete(key)
}

func (w *BatchWrapper) Commit() {
	w.Batch.Commit()
	for k, v := range w.finalState {
		w.cache.Add(k, v)
	}
}

func (w *BatchWrapper) Reset() {
	w.Batch.Reset()
	w.finalState = make(map[string][]byte)
}
