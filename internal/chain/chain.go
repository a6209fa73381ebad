package chain

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/hold-token/pkg/types"
)

var ErrNotNextBlock = errors.New("block is not the next block")

// Chain tracks the latest sealed header and decides the header, and so the
// commit timestamp, of the next block. Every transaction is sealed in its own block.
type Chain struct {
	lock   sync.RWMutex
	clock  Clock
	logger logrus.FieldLogger

	latest *types.BlockHeader

	// seconds added on top of the clock
	offset uint64
}

func New(clock Clock, latest *types.BlockHeader, logger logrus.FieldLogger) *Chain {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Chain{
		clock:  clock,
		logger: logger,
		latest: latest,
	}
}

// GenesisHeader is block 0, timestamp zero means the current clock time
func GenesisHeader(clock Clock, timestamp uint64) *types.BlockHeader {
	if timestamp == 0 {
		timestamp = uint64(clock.Now().Unix())
	}
	return &types.BlockHeader{
		Number:    0,
		Timestamp: timestamp,
	}
}

func (c *Chain) Latest() *types.BlockHeader {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.latest
}

func (c *Chain) now() uint64 {
	now := c.clock.Now().Unix()
	if now < 0 {
		now = 0
	}
	return uint64(now) + c.offset
}

// NextHeader returns the header the next block would be sealed with.
// Timestamps never go backwards.
func (c *Chain) NextHeader() *types.BlockHeader {
	c.lock.RLock()
	defer c.lock.RUnlock()

	header := &types.BlockHeader{
		Timestamp: c.now(),
	}
	if c.latest != nil {
		header.Number = c.latest.Number + 1
		if header.Timestamp < c.latest.Timestamp {
			header.Timestamp = c.latest.Timestamp
		}
	}
	return header
}

// Verify checks header can be sealed on top of the latest block
func (c *Chain) Verify(header *types.BlockHeader) error {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.verify(header)
}

func (c *Chain) verify(header *types.BlockHeader) error {
	if c.latest != nil && header.Number != c.latest.Number+1 {
		return errors.Wrapf(ErrNotNextBlock, "seal %d on top of %d", header.Number, c.latest.Number)
	}
	if c.latest != nil && header.Timestamp < c.latest.Timestamp {
		return errors.Errorf("block %d timestamp %d is before parent %d", header.Number, header.Timestamp, c.latest.Timestamp)
	}
	return nil
}

// Seal makes header the latest block
func (c *Chain) Seal(header *types.BlockHeader) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if err := c.verify(header); err != nil {
		return err
	}
	c.latest = header
	c.logger.WithFields(logrus.Fields{
		"height":    header.Number,
		"timestamp": header.Timestamp,
		"txs":       len(header.TxHashes),
	}).Info("Seal block")
	return nil
}

// IncreaseTime moves the chain time forward by seconds and returns the total offset
func (c *Chain) IncreaseTime(seconds uint64) uint64 {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.offset += seconds
	c.logger.WithFields(logrus.Fields{
		"seconds": seconds,
		"offset":  c.offset,
	}).Info("Increase chain time")
	return c.offset
}

func (c *Chain) Offset() uint64 {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.offset
}
