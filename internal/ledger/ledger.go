package ledger

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/hold-token/internal/storage/kv"
	"github.com/axiomesh/hold-token/internal/storagemgr"
	"github.com/axiomesh/hold-token/pkg/loggers"
	"github.com/axiomesh/hold-token/pkg/repo"
	"github.com/axiomesh/hold-token/pkg/types"
)

var (
	ErrNotFound = errors.New("not found in DB")
)

//go:generate mockgen -destination mock_ledger/mock_ledger.go -package mock_ledger -source ledger.go -exclude_interfaces ChainLedger,IAccount
type ChainLedger interface {
	// GetBlockHeader get the sealed block header with height
	GetBlockHeader(height uint64) (*types.BlockHeader, error)

	// GetReceipt get the transaction receipt
	GetReceipt(hash ethcommon.Hash) (*types.Receipt, error)

	// PersistExecutionResult persist the block header and the receipts sealed in it
	PersistExecutionResult(header *types.BlockHeader, receipts []*types.Receipt) error

	// GetChainMeta get the latest sealed block header
	GetChainMeta() *types.BlockHeader

	// LoadChainMeta read the latest sealed block header from DB
	LoadChainMeta() (*types.BlockHeader, error)

	// RollbackBlock drops the latest block, used when its state was not committed
	RollbackBlock() error

	Close()
}

type StateLedger interface {
	StateAccessor

	// Snapshot returns an identifier of the current state journal position
	Snapshot() int

	// RevertToSnapshot undoes every change made after the snapshot was taken
	RevertToSnapshot(int)

	// Commit flushes all dirty state into DB as the state of block height
	Commit(height uint64) error

	// Version is the height of the latest committed state
	Version() uint64

	Close()
}

// StateAccessor manipulates the state data
type StateAccessor interface {
	GetOrCreateAccount(ethcommon.Address) IAccount

	GetState(ethcommon.Address, []byte) (bool, []byte)

	SetState(ethcommon.Address, []byte, []byte)

	GetNonce(ethcommon.Address) uint64

	SetNonce(ethcommon.Address, uint64)
}

type IAccount interface {
	GetAddress() ethcommon.Address

	GetState(key []byte) (bool, []byte)

	SetState(key []byte, value []byte)

	GetNonce() uint64

	SetNonce(nonce uint64)
}

type Ledger struct {
	ChainLedger
	StateLedger

	storagePaths []string
}

func NewLedgerWithStores(rep *repo.Repo, blockchainStore kv.Storage, stateStore kv.Storage, logger logrus.FieldLogger) (*Ledger, error) {
	chainLedger, err := NewChainLedgerImpl(blockchainStore, logger)
	if err != nil {
		return nil, errors.Wrap(err, "init chain ledger failed")
	}

	stateLedger, err := NewStateLedgerImpl(stateStore, rep.Config.Ledger.StateCacheSize, logger)
	if err != nil {
		return nil, errors.Wrap(err, "init state ledger failed")
	}

	meta := chainLedger.GetChainMeta()
	// a block is persisted before its state, so the chain may be one block ahead
	if meta != nil && meta.Number == stateLedger.Version()+1 {
		if err := chainLedger.RollbackBlock(); err != nil {
			return nil, errors.Wrap(err, "roll back uncommitted block failed")
		}
		meta = chainLedger.GetChainMeta()
	}
	if meta != nil && stateLedger.Version() != meta.Number {
		return nil, errors.Errorf("state version %d does not match chain height %d", stateLedger.Version(), meta.Number)
	}

	return &Ledger{
		ChainLedger: chainLedger,
		StateLedger: stateLedger,
	}, nil
}

// NewLedger opens the chain and state storages under the repo root
func NewLedger(rep *repo.Repo) (*Ledger, error) {
	blockchainStore, err := storagemgr.Open(storagemgr.GetLedgerComponentPath(rep, storagemgr.Receipts))
	if err != nil {
		return nil, errors.Wrap(err, "create blockchain storage failed")
	}
	stateStore, err := storagemgr.Open(storagemgr.GetLedgerComponentPath(rep, storagemgr.Ledger))
	if err != nil {
		return nil, errors.Wrap(err, "create state storage failed")
	}
	l, err := NewLedgerWithStores(rep, blockchainStore, stateStore, loggers.Logger(loggers.Ledger))
	if err != nil {
		return nil, err
	}
	l.storagePaths = []string{
		storagemgr.GetLedgerComponentPath(rep, storagemgr.Receipts),
		storagemgr.GetLedgerComponentPath(rep, storagemgr.Ledger),
	}
	return l, nil
}

// Initialized reports whether genesis has been committed
func (l *Ledger) Initialized() bool {
	return l.ChainLedger.GetChainMeta() != nil
}

func (l *Ledger) Close() {
	l.ChainLedger.Close()
	l.StateLedger.Close()
	for _, p := range l.storagePaths {
		storagemgr.Forget(p)
	}
}
