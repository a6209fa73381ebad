package executor

import (
	"context"
	"sync"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/hold-token/internal/chain"
	"github.com/axiomesh/hold-token/internal/executor/system"
	"github.com/axiomesh/hold-token/internal/executor/system/token"
	"github.com/axiomesh/hold-token/internal/ledger"
	"github.com/axiomesh/hold-token/pkg/events"
	"github.com/axiomesh/hold-token/pkg/types"
)

var (
	ErrInvalidNonce      = errors.New("invalid nonce")
	ErrNotSystemContract = errors.New("target is not a system contract")
)

var _ Executor = (*BlockExecutor)(nil)

// BlockExecutor executes every transaction in a block of its own.
// Writers are serialized, a rejected transaction leaves no trace in the ledger.
type BlockExecutor struct {
	ledger    *ledger.Ledger
	chain     *chain.Chain
	nvm       *system.NativeVM
	logger    logrus.FieldLogger
	blockFeed event.Feed
	ctx       context.Context
	cancel    context.CancelFunc

	lock sync.RWMutex
}

// New creates executor instance on top of an initialized ledger
func New(lg *ledger.Ledger, c *chain.Chain, logger logrus.FieldLogger) (*BlockExecutor, error) {
	if !lg.Initialized() {
		return nil, errors.New("ledger is not initialized")
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &BlockExecutor{
		ledger: lg,
		chain:  c,
		nvm:    system.NewWithLogger(logger),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

func (exec *BlockExecutor) Start() error {
	header := exec.CurrentHeader()
	exec.logger.WithFields(logrus.Fields{
		"height":    header.Number,
		"timestamp": header.Timestamp,
	}).Info("BlockExecutor started")
	return nil
}

func (exec *BlockExecutor) Stop() error {
	exec.cancel()
	exec.logger.Info("BlockExecutor stopped")
	return nil
}

func (exec *BlockExecutor) ApplyTransaction(tx *types.Transaction) (*types.Receipt, error) {
	exec.lock.Lock()
	defer exec.lock.Unlock()

	current := time.Now()
	from, err := types.Sender(tx)
	if err != nil {
		return nil, err
	}
	if !exec.nvm.IsSystemContract(tx.To) {
		return nil, errors.Wrapf(ErrNotSystemContract, "%s", tx.To)
	}
	sl := exec.ledger.StateLedger
	nonce := sl.GetNonce(from)
	if tx.Nonce != nonce {
		return nil, errors.Wrapf(ErrInvalidNonce, "expect %d, got %d", nonce, tx.Nonce)
	}

	header := exec.chain.NextHeader()
	receipt := &types.Receipt{
		TxHash:    tx.Hash(),
		From:      from,
		To:        tx.To,
		Nonce:     tx.Nonce,
		Timestamp: header.Timestamp,
		Logs:      []*types.Log{},
	}

	snapshot := sl.Snapshot()
	exec.nvm.Reset(header.Number, header.Timestamp, sl, from, &tx.To)
	ret, execErr := exec.nvm.Run(tx.Data)
	applyTxDuration.Observe(float64(time.Since(current)) / float64(time.Second))
	if execErr != nil {
		sl.RevertToSnapshot(snapshot)
		receipt.Status = types.ReceiptStatusFailed
		receipt.Err = execErr.Error()
		receipt.ErrKind = errKind(execErr)
		txCounter.WithLabelValues("reverted").Inc()
		exec.logger.WithFields(logrus.Fields{
			"hash":  receipt.TxHash.String(),
			"from":  from.String(),
			"nonce": tx.Nonce,
			"err":   execErr,
		}).Info("Transaction reverted")
		return receipt, nil
	}

	sl.SetNonce(from, nonce+1)
	receipt.Status = types.ReceiptStatusSuccessful
	receipt.Ret = ret
	receipt.BlockNumber = header.Number
	receipt.Logs = append(receipt.Logs, exec.nvm.Logs()...)
	header.TxHashes = []ethcommon.Hash{receipt.TxHash}

	if err := exec.seal(header, []*types.Receipt{receipt}); err != nil {
		sl.RevertToSnapshot(snapshot)
		return nil, err
	}
	txCounter.WithLabelValues("successful").Inc()
	exec.logger.WithFields(logrus.Fields{
		"hash":   receipt.TxHash.String(),
		"from":   from.String(),
		"height": header.Number,
		"elapse": time.Since(current),
	}).Debug("Executed transaction")
	return receipt, nil
}

func (exec *BlockExecutor) Call(from ethcommon.Address, to ethcommon.Address, data []byte) ([]byte, error) {
	exec.lock.Lock()
	defer exec.lock.Unlock()

	callCounter.Inc()
	if !exec.nvm.IsSystemContract(to) {
		return nil, errors.Wrapf(ErrNotSystemContract, "%s", to)
	}
	header := exec.chain.NextHeader()
	sl := exec.ledger.StateLedger
	snapshot := sl.Snapshot()
	defer sl.RevertToSnapshot(snapshot)

	exec.nvm.Reset(header.Number, header.Timestamp, sl, from, &to)
	return exec.nvm.Run(data)
}

func (exec *BlockExecutor) Mine() (*types.BlockHeader, error) {
	exec.lock.Lock()
	defer exec.lock.Unlock()

	header := exec.chain.NextHeader()
	if err := exec.seal(header, nil); err != nil {
		return nil, err
	}
	return header, nil
}

func (exec *BlockExecutor) IncreaseTime(seconds uint64) uint64 {
	return exec.chain.IncreaseTime(seconds)
}

func (exec *BlockExecutor) CurrentHeader() *types.BlockHeader {
	return exec.chain.Latest()
}

func (exec *BlockExecutor) NextHeader() *types.BlockHeader {
	return exec.chain.NextHeader()
}

func (exec *BlockExecutor) GetReceipt(hash ethcommon.Hash) (*types.Receipt, error) {
	return exec.ledger.GetReceipt(hash)
}

// GetNonce takes the writer lock, loading an account is not safe for concurrent readers
func (exec *BlockExecutor) GetNonce(addr ethcommon.Address) uint64 {
	exec.lock.Lock()
	defer exec.lock.Unlock()
	return exec.ledger.StateLedger.GetNonce(addr)
}

// SubscribeBlockEvent registers a subscription of ExecutedEvent.
func (exec *BlockExecutor) SubscribeBlockEvent(ch chan<- events.ExecutedEvent) event.Subscription {
	return exec.blockFeed.Subscribe(ch)
}

// seal persists header and its receipts, commits the state, then moves the chain forward.
// The block is written first: a block without committed state is rolled back on reopen.
func (exec *BlockExecutor) seal(header *types.BlockHeader, receipts []*types.Receipt) error {
	if err := exec.chain.Verify(header); err != nil {
		return err
	}
	if err := exec.ledger.PersistExecutionResult(header, receipts); err != nil {
		return errors.Wrap(err, "persist execution result failed")
	}
	if err := exec.ledger.StateLedger.Commit(header.Number); err != nil {
		if rbErr := exec.ledger.RollbackBlock(); rbErr != nil {
			exec.logger.WithFields(logrus.Fields{
				"height": header.Number,
				"err":    rbErr,
			}).Error("Roll back block failed")
		}
		return errors.Wrap(err, "commit state ledger failed")
	}
	if err := exec.chain.Seal(header); err != nil {
		return err
	}
	exec.postBlockEvent(header, receipts)
	return nil
}

func (exec *BlockExecutor) postBlockEvent(header *types.BlockHeader, receipts []*types.Receipt) {
	if exec.ctx.Err() != nil {
		return
	}
	exec.blockFeed.Send(*events.NewExecutedEvent(header, receipts))
}

func errKind(err error) string {
	switch {
	case token.IsAuthorizationError(err):
		return types.ErrKindAuthorization
	case token.IsTransferError(err):
		return types.ErrKindTransfer
	default:
		return ""
	}
}
