package ledger

import (
	"encoding/json"
	"sync"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/hold-token/internal/storage/kv"
	"github.com/axiomesh/hold-token/pkg/types"
)

var _ ChainLedger = (*ChainLedgerImpl)(nil)

type ChainLedgerImpl struct {
	blockchainStore kv.Storage
	logger          logrus.FieldLogger

	chainMutex sync.RWMutex
	chainMeta  *types.BlockHeader
}

func NewChainLedgerImpl(blockchainStore kv.Storage, logger logrus.FieldLogger) (*ChainLedgerImpl, error) {
	c := &ChainLedgerImpl{
		blockchainStore: blockchainStore,
		logger:          logger,
	}

	chainMeta, err := c.LoadChainMeta()
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, errors.Wrap(err, "load chain meta failed")
	}
	c.chainMeta = chainMeta
	if chainMeta != nil {
		blockHeightMetric.Set(float64(chainMeta.Number))
	}
	return c, nil
}

func (l *ChainLedgerImpl) GetBlockHeader(height uint64) (*types.BlockHeader, error) {
	data := l.blockchainStore.Get(compositeKey(blockKey, height))
	if data == nil {
		return nil, ErrNotFound
	}
	header := &types.BlockHeader{}
	if err := json.Unmarshal(data, header); err != nil {
		return nil, errors.Wrapf(err, "unmarshal block header %d", height)
	}
	return header, nil
}

func (l *ChainLedgerImpl) GetReceipt(hash ethcommon.Hash) (*types.Receipt, error) {
	getReceiptCounter.Inc()
	data := l.blockchainStore.Get(compositeKey(receiptKey, hash.Hex()))
	if data == nil {
		return nil, ErrNotFound
	}
	r := &types.Receipt{}
	if err := json.Unmarshal(data, r); err != nil {
		return nil, errors.Wrapf(err, "unmarshal receipt %s", hash)
	}
	return r, nil
}

func (l *ChainLedgerImpl) PersistExecutionResult(header *types.BlockHeader, receipts []*types.Receipt) error {
	current := time.Now()
	if header == nil {
		return errors.New("empty block header")
	}
	if meta := l.GetChainMeta(); meta != nil && header.Number != meta.Number+1 {
		return errors.Errorf("persist block %d, but current height is %d", header.Number, meta.Number)
	}

	batch := l.blockchainStore.NewBatch()
	for _, r := range receipts {
		data, err := json.Marshal(r)
		if err != nil {
			return errors.Wrapf(err, "marshal receipt %s", r.TxHash)
		}
		batch.Put(compositeKey(receiptKey, r.TxHash.Hex()), data)
	}

	headerData, err := json.Marshal(header)
	if err != nil {
		return errors.Wrap(err, "marshal block header")
	}
	batch.Put(compositeKey(blockKey, header.Number), headerData)
	batch.Put([]byte(chainMetaKey), headerData)
	batch.Commit()

	l.chainMutex.Lock()
	l.chainMeta = header
	l.chainMutex.Unlock()

	persistBlockDuration.Observe(float64(time.Since(current)) / float64(time.Second))
	blockHeightMetric.Set(float64(header.Number))
	l.logger.WithFields(logrus.Fields{
		"height":    header.Number,
		"timestamp": header.Timestamp,
		"txs":       len(receipts),
	}).Debug("Persist block")
	return nil
}

// RollbackBlock drops the latest block and its receipts, its parent becomes the chain meta
func (l *ChainLedgerImpl) RollbackBlock() error {
	meta := l.GetChainMeta()
	if meta == nil {
		return ErrNotFound
	}
	if meta.Number == 0 {
		return errors.New("cannot roll back the genesis block")
	}
	parent, err := l.GetBlockHeader(meta.Number - 1)
	if err != nil {
		return errors.Wrapf(err, "load block %d", meta.Number-1)
	}
	parentData, err := json.Marshal(parent)
	if err != nil {
		return errors.Wrap(err, "marshal block header")
	}

	batch := l.blockchainStore.NewBatch()
	for _, hash := range meta.TxHashes {
		batch.Delete(compositeKey(receiptKey, hash.Hex()))
	}
	batch.Delete(compositeKey(blockKey, meta.Number))
	batch.Put([]byte(chainMetaKey), parentData)
	batch.Commit()

	l.chainMutex.Lock()
	l.chainMeta = parent
	l.chainMutex.Unlock()

	blockHeightMetric.Set(float64(parent.Number))
	l.logger.WithFields(logrus.Fields{
		"height": meta.Number,
		"txs":    len(meta.TxHashes),
	}).Warn("Roll back block")
	return nil
}

func (l *ChainLedgerImpl) GetChainMeta() *types.BlockHeader {
	l.chainMutex.RLock()
	defer l.chainMutex.RUnlock()
	return l.chainMeta
}

func (l *ChainLedgerImpl) LoadChainMeta() (*types.BlockHeader, error) {
	data := l.blockchainStore.Get([]byte(chainMetaKey))
	if data == nil {
		return nil, ErrNotFound
	}
	header := &types.BlockHeader{}
	if err := json.Unmarshal(data, header); err != nil {
		return nil, errors.Wrap(err, "unmarshal chain meta")
	}
	return header, nil
}

func (l *ChainLedgerImpl) Close() {
	if err := l.blockchainStore.Close(); err != nil {
		l.logger.WithField("err", err).Warn("Close blockchain storage failed")
	}
}
