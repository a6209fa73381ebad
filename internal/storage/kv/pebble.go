package kv

import (
	"github.com/cockroachdb/pebble"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type pdb struct {
	db     *pebble.DB
	wo     *pebble.WriteOptions
	logger logrus.FieldLogger
}

// NewPebble opens (or creates) a pebble database at path.
func NewPebble(path string, opts *pebble.Options, wo *pebble.WriteOptions, logger logrus.FieldLogger) (Storage, error) {
	if opts == nil {
		opts = &pebble.Options{}
	}
	if wo == nil {
		wo = pebble.Sync
	}
	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open pebble %s", path)
	}
	logger.WithField("path", path).Debug("Open pebble storage")
	return &pdb{
		db:     db,
		wo:     wo,
		logger: logger,
	}, nil
}

func (p *pdb) Get(key []byte) []byte {
	val, closer, err := p.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil
		}
		panic(err)
	}
	// val is only valid until closer is closed
	ret := make([]byte, len(val))
	copy(ret, val)
	if err := closer.Close(); err != nil {
		panic(err)
	}
	return ret
}

func (p *pdb) Has(key []byte) bool {
	_, closer, err := p.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return false
		}
		panic(err)
	}
	if err := closer.Close(); err != nil {
		panic(err)
	}
	return true
}

func (p *pdb) Put(key, value []byte) {
	if err := p.db.Set(key, value, p.wo); err != nil {
		panic(err)
	}
}

func (p *pdb) Delete(key []byte) {
	if err := p.db.Delete(key, p.wo); err != nil {
		panic(err)
	}
}

func (p *pdb) NewBatch() Batch {
	return &pebbleBatch{
		batch: p.db.NewBatch(),
		wo:    p.wo,
	}
}

func (p *pdb) Close() error {
	if err := p.db.Flush(); err != nil {
		p.logger.WithField("err", err).Warn("Flush pebble storage failed")
	}
	return p.db.Close()
}

type pebbleBatch struct {
	batch *pebble.Batch
	wo    *pebble.WriteOptions
}

func (b *pebbleBatch) Put(key, value []byte) {
	if err := b.batch.Set(key, value, nil); err != nil {
		panic(err)
	}
}

func (b *pebbleBatch) Delete(key []byte) {
	if err := b.batch.Delete(key, nil); err != nil {
		panic(err)
	}
}

func (b *pebbleBatch) Commit() {
	if err := b.batch.Commit(b.wo); err != nil {
		panic(err)
	}
}

func (b *pebbleBatch) Reset() {
	b.batch.Reset()
}

func (b *pebbleBatch) Size() int {
	return b.batch.Len()
}
