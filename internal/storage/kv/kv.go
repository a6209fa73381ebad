package kv

// Storage is a flat byte keyed store. Backend failures on the write path are
// unrecoverable for a ledger node, so implementations panic on them.
type Storage interface {
	Get(key []byte) []byte
	Has(key []byte) bool
	Put(key, value []byte)
	Delete(key []byte)
	NewBatch() Batch
	Close() error
}

// Batch buffers writes until Commit, which applies all of them atomically.
type Batch interface {
	Put(key, value []byte)
	Delete(key []byte)
	Commit()
	Reset()
	Size() int
}
