package kv

import (
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
)

var boltBucket = []byte("kv")

type bdb struct {
	db *bolt.DB
}

// NewBolt opens (or creates) a single bucket bolt file inside dir.
func NewBolt(dir string, sync bool) (Storage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "create bolt dir %s", dir)
	}
	path := filepath.Join(dir, "data.db")
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open bolt %s", path)
	}
	db.NoSync = !sync
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create bolt bucket")
	}
	return &bdb{db: db}, nil
}

func (b *bdb) Get(key []byte) []byte {
	var ret []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(boltBucket).Get(key)
		if v != nil {
			// v is only valid inside the transaction
			ret = make([]byte, len(v))
			copy(ret, v)
		}
		return nil
	})
	if err != nil {
		panic(err)
	}
	return ret
}

func (b *bdb) Has(key []byte) bool {
	return b.Get(key) != nil
}

func (b *bdb) Put(key, value []byte) {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Put(key, nonNil(value))
	})
	if err != nil {
		panic(err)
	}
}

func (b *bdb) Delete(key []byte) {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Delete(key)
	})
	if err != nil {
		panic(err)
	}
}

func (b *bdb) NewBatch() Batch {
	return &boltBatch{db: b.db}
}

func (b *bdb) Close() error {
	return b.db.Close()
}

type boltBatch struct {
	db   *bolt.DB
	ops  []memoryOp
	size int
}

func (b *boltBatch) Put(key, value []byte) {
	b.ops = append(b.ops, memoryOp{key: string(key), value: copyBytes(value)})
	b.size += len(key) + len(value)
}

func (b *boltBatch) Delete(key []byte) {
	b.ops = append(b.ops, memoryOp{key: string(key), delete: true})
	b.size += len(key)
}

func (b *boltBatch) Commit() {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(boltBucket)
		for _, op := range b.ops {
			var err error
			if op.delete {
				err = bucket.Delete([]byte(op.key))
			} else {
				err = bucket.Put([]byte(op.key), op.value)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		panic(err)
	}
}

func (b *boltBatch) Reset() {
	b.ops = b.ops[:0]
	b.size = 0
}

func (b *boltBatch) Size() int {
	return b.size
}

func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
