package kv

import (
	"sync"
)

type memory struct {
	lock sync.RWMutex
	db   map[string][]byte
}

func NewMemory() Storage {
	return &memory{
		db: make(map[string][]byte),
	}
}

func (m *memory) Get(key []byte) []byte {
	m.lock.RLock()
	defer m.lock.RUnlock()
	v, ok := m.db[string(key)]
	if !ok {
		return nil
	}
	return copyBytes(v)
}

func (m *memory) Has(key []byte) bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	_, ok := m.db[string(key)]
	return ok
}

func (m *memory) Put(key, value []byte) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.db[string(key)] = copyBytes(value)
}

func (m *memory) Delete(key []byte) {
	m.lock.Lock()
	defer m.lock.Unlock()
	delete(m.db, string(key))
}

func (m *memory) NewBatch() Batch {
	return &memoryBatch{m: m}
}

func (m *memory) Close() error {
	return nil
}

type memoryOp struct {
	key    string
	value  []byte
	delete bool
}

type memoryBatch struct {
	m    *memory
	ops  []memoryOp
	size int
}

func (b *memoryBatch) Put(key, value []byte) {
	b.ops = append(b.ops, memoryOp{key: string(key), value: copyBytes(value)})
	b.size += len(key) + len(value)
}

func (b *memoryBatch) Delete(key []byte) {
	b.ops = append(b.ops, memoryOp{key: string(key), delete: true})
	b.size += len(key)
}

func (b *memoryBatch) Commit() {
	b.m.lock.Lock()
	defer b.m.lock.Unlock()
	for _, op := range b.ops {
		if op.delete {
			delete(b.m.db, op.key)
		} else {
			b.m.db[op.key] = op.value
		}
	}
}

func (b *memoryBatch) Reset() {
	b.ops = b.ops[:0]
	b.size = 0
}

func (b *memoryBatch) Size() int {
	return b.size
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
