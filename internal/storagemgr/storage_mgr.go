package storagemgr

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	pebbledb "github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/bloom"

	"github.com/axiomesh/hold-token/internal/storage/kv"
	"github.com/axiomesh/hold-token/pkg/loggers"
	"github.com/axiomesh/hold-token/pkg/repo"
)

const (
	Ledger   = "ledger"
	Receipts = "receipts"
)

var globalStorageMgr = &storageMgr{
	storageBuilderMap: make(map[string]func(p string) (kv.Storage, error)),
	storages:          make(map[string]kv.Storage),
	lock:              new(sync.Mutex),
}

func init() {
	memoryBuilder := func(p string) (kv.Storage, error) {
		return kv.NewMemory(), nil
	}

	// only for test
	globalStorageMgr.storageBuilderMap[repo.KVStorageTypeLeveldb] = memoryBuilder
	globalStorageMgr.storageBuilderMap[repo.KVStorageTypePebble] = memoryBuilder
	globalStorageMgr.storageBuilderMap[repo.KVStorageTypeBolt] = memoryBuilder
	globalStorageMgr.storageBuilderMap[repo.KVStorageTypeMemory] = memoryBuilder
	globalStorageMgr.storageBuilderMap[""] = memoryBuilder
}

type storageMgr struct {
	storageBuilderMap map[string]func(p string) (kv.Storage, error)
	storages          map[string]kv.Storage
	defaultKVType     string
	lock              *sync.Mutex
}

func defaultPebbleOptions(cacheSizeMB int) *pebbledb.Options {
	return &pebbledb.Options{
		Cache: pebbledb.NewCache(int64(cacheSizeMB * 1024 * 1024)),
		// The size of single memory table
		MemTableSize: cacheSizeMB * 1024 * 1024 / 4,

		// MemTableStopWritesThreshold is max number of the existent MemTables(including the frozen one).
		MemTableStopWritesThreshold: 2,

		MaxConcurrentCompactions: func() int { return runtime.NumCPU() },

		Levels: []pebbledb.LevelOptions{
			{TargetFileSize: 2 * 1024 * 1024, BlockSize: 32 * 1024, FilterPolicy: bloom.FilterPolicy(10)},
			{TargetFileSize: 4 * 1024 * 1024, BlockSize: 32 * 1024, FilterPolicy: bloom.FilterPolicy(10)},
			{TargetFileSize: 8 * 1024 * 1024, BlockSize: 32 * 1024, FilterPolicy: bloom.FilterPolicy(10)},
		},
	}
}

func (m *storageMgr) open(typ string, p string) (kv.Storage, error) {
	builder, ok := m.storageBuilderMap[typ]
	if !ok {
		return nil, fmt.Errorf("unknow kv type %s, expect leveldb, pebble, bolt or memory", typ)
	}
	return builder(p)
}

func Initialize(defaultKVType string, defaultKvCacheSize int, sync bool) error {
	globalStorageMgr.lock.Lock()
	defer globalStorageMgr.lock.Unlock()

	globalStorageMgr.storageBuilderMap[repo.KVStorageTypeLeveldb] = func(p string) (kv.Storage, error) {
		return kv.NewLevelDB(p, defaultKvCacheSize, sync)
	}
	globalStorageMgr.storageBuilderMap[repo.KVStorageTypePebble] = func(p string) (kv.Storage, error) {
		wo := pebbledb.NoSync
		if sync {
			wo = pebbledb.Sync
		}
		return kv.NewPebble(p, defaultPebbleOptions(defaultKvCacheSize), wo, loggers.Logger(loggers.Storage))
	}
	globalStorageMgr.storageBuilderMap[repo.KVStorageTypeBolt] = func(p string) (kv.Storage, error) {
		return kv.NewBolt(p, sync)
	}
	_, ok := globalStorageMgr.storageBuilderMap[defaultKVType]
	if !ok {
		return fmt.Errorf("unknow kv type %s, expect leveldb, pebble, bolt or memory", defaultKVType)
	}
	globalStorageMgr.defaultKVType = defaultKVType
	return nil
}

func Open(p string) (kv.Storage, error) {
	return OpenSpecifyType(globalStorageMgr.defaultKVType, p)
}

// OpenSpecifyType returns the storage already opened at p, or opens a new one
func OpenSpecifyType(typ string, p string) (kv.Storage, error) {
	globalStorageMgr.lock.Lock()
	defer globalStorageMgr.lock.Unlock()
	s, ok := globalStorageMgr.storages[p]
	if !ok {
		var err error
		s, err = globalStorageMgr.open(typ, p)
		if err != nil {
			return nil, err
		}
		loggers.Logger(loggers.Storage).WithFields(map[string]any{"type": typ, "path": p}).Info("Open storage")
		globalStorageMgr.storages[p] = s
	}
	return s, nil
}

// Close closes p and forgets it, so the next Open reopens from disk
func Close(p string) error {
	globalStorageMgr.lock.Lock()
	defer globalStorageMgr.lock.Unlock()
	s, ok := globalStorageMgr.storages[p]
	if !ok {
		return nil
	}
	delete(globalStorageMgr.storages, p)
	return s.Close()
}

// Forget drops p from the registry without closing it, for owners that close the storage themselves
func Forget(p string) {
	globalStorageMgr.lock.Lock()
	defer globalStorageMgr.lock.Unlock()
	delete(globalStorageMgr.storages, p)
}

func GetLedgerComponentPath(rep *repo.Repo, component string) string {
	return filepath.Join(repo.GetStoragePath(rep.RepoRoot), component)
}
