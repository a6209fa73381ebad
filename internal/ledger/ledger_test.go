package ledger

import (
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiomesh/hold-token/internal/storage/kv"
	"github.com/axiomesh/hold-token/internal/storagemgr"
	"github.com/axiomesh/hold-token/pkg/repo"
	"github.com/axiomesh/hold-token/pkg/types"
)

var (
	addr1 = ethcommon.HexToAddress("0x1000000000000000000000000000000000000001")
	addr2 = ethcommon.HexToAddress("0x1000000000000000000000000000000000000002")
)

func newTestStateLedger(t *testing.T, store kv.Storage) *StateLedgerImpl {
	sl, err := NewStateLedgerImpl(store, 16, logrus.New())
	require.Nil(t, err)
	return sl
}

func TestStateLedger_SetGetCommit(t *testing.T) {
	store := kv.NewMemory()
	sl := newTestStateLedger(t, store)

	exist, val := sl.GetState(addr1, []byte("k"))
	require.False(t, exist)
	require.Nil(t, val)

	sl.SetState(addr1, []byte("k"), []byte("v"))
	sl.SetNonce(addr1, 3)
	exist, val = sl.GetState(addr1, []byte("k"))
	require.True(t, exist)
	require.Equal(t, []byte("v"), val)

	// not visible in DB before commit
	require.Nil(t, store.Get(compositeStorageKey(addr1, []byte("k"))))

	require.Nil(t, sl.Commit(0))
	require.Equal(t, []byte("v"), store.Get(compositeStorageKey(addr1, []byte("k"))))

	// a fresh ledger on the same DB sees committed state
	sl2 := newTestStateLedger(t, store)
	exist, val = sl2.GetState(addr1, []byte("k"))
	require.True(t, exist)
	require.Equal(t, []byte("v"), val)
	require.Equal(t, uint64(3), sl2.GetNonce(addr1))
	require.Equal(t, uint64(0), sl2.GetNonce(addr2))
}

func TestStateLedger_Snapshot(t *testing.T) {
	sl := newTestStateLedger(t, kv.NewMemory())
	sl.SetState(addr1, []byte("k"), []byte("v1"))
	require.Nil(t, sl.Commit(0))

	snap := sl.Snapshot()
	sl.SetState(addr1, []byte("k"), []byte("v2"))
	sl.SetState(addr2, []byte("k"), []byte("x"))
	sl.SetNonce(addr1, 1)

	inner := sl.Snapshot()
	sl.SetState(addr1, []byte("k"), []byte("v3"))
	sl.RevertToSnapshot(inner)
	_, val := sl.GetState(addr1, []byte("k"))
	assert.Equal(t, []byte("v2"), val)

	sl.RevertToSnapshot(snap)
	_, val = sl.GetState(addr1, []byte("k"))
	assert.Equal(t, []byte("v1"), val)
	exist, _ := sl.GetState(addr2, []byte("k"))
	assert.False(t, exist)
	assert.Equal(t, uint64(0), sl.GetNonce(addr1))

	require.Nil(t, sl.Commit(1))
	_, val = sl.GetState(addr1, []byte("k"))
	assert.Equal(t, []byte("v1"), val)
}

func TestStateLedger_DeleteState(t *testing.T) {
	store := kv.NewMemory()
	sl := newTestStateLedger(t, store)
	sl.SetState(addr1, []byte("k"), []byte("v"))
	require.Nil(t, sl.Commit(0))

	sl.SetState(addr1, []byte("k"), nil)
	require.Nil(t, sl.Commit(1))
	require.False(t, store.Has(compositeStorageKey(addr1, []byte("k"))))
	exist, _ := sl.GetState(addr1, []byte("k"))
	require.False(t, exist)
}

func TestStateLedger_CommitVersion(t *testing.T) {
	store := kv.NewMemory()
	sl := newTestStateLedger(t, store)
	require.Nil(t, sl.Commit(0))
	require.Nil(t, sl.Commit(1))
	require.Equal(t, uint64(1), sl.Version())

	err := sl.Commit(3)
	require.NotNil(t, err)

	sl2 := newTestStateLedger(t, store)
	require.Equal(t, uint64(1), sl2.Version())
}

func TestChainLedger(t *testing.T) {
	store := kv.NewMemory()
	cl, err := NewChainLedgerImpl(store, logrus.New())
	require.Nil(t, err)
	require.Nil(t, cl.GetChainMeta())

	_, err = cl.GetReceipt(ethcommon.Hash{1})
	require.ErrorIs(t, err, ErrNotFound)

	receipt := &types.Receipt{
		TxHash:      ethcommon.Hash{1},
		From:        addr1,
		To:          addr2,
		BlockNumber: 0,
		Timestamp:   100,
		Status:      types.ReceiptStatusSuccessful,
	}
	err = cl.PersistExecutionResult(&types.BlockHeader{Number: 0, Timestamp: 100, TxHashes: []ethcommon.Hash{{1}}}, []*types.Receipt{receipt})
	require.Nil(t, err)
	require.Equal(t, uint64(0), cl.GetChainMeta().Number)

	got, err := cl.GetReceipt(ethcommon.Hash{1})
	require.Nil(t, err)
	require.Equal(t, receipt.From, got.From)
	require.True(t, got.Successful())

	// heights must be contiguous
	err = cl.PersistExecutionResult(&types.BlockHeader{Number: 5, Timestamp: 101}, nil)
	require.NotNil(t, err)
	require.Nil(t, cl.PersistExecutionResult(&types.BlockHeader{Number: 1, Timestamp: 101}, nil))

	header, err := cl.GetBlockHeader(1)
	require.Nil(t, err)
	require.Equal(t, uint64(101), header.Timestamp)

	cl2, err := NewChainLedgerImpl(store, logrus.New())
	require.Nil(t, err)
	require.Equal(t, uint64(1), cl2.GetChainMeta().Number)
}

func TestNewLedger(t *testing.T) {
	require.Nil(t, storagemgr.Initialize(repo.KVStorageTypeLeveldb, repo.KVStorageCacheSize, false))
	rep := repo.Default(t.TempDir())

	l, err := NewLedger(rep)
	require.Nil(t, err)
	require.False(t, l.Initialized())

	l.SetState(addr1, []byte("k"), []byte("v"))
	require.Nil(t, l.StateLedger.Commit(0))
	require.Nil(t, l.PersistExecutionResult(&types.BlockHeader{Number: 0, Timestamp: 1}, nil))
	l.Close()

	l, err = NewLedger(rep)
	require.Nil(t, err)
	defer l.Close()
	require.True(t, l.Initialized())
	_, val := l.GetState(addr1, []byte("k"))
	require.Equal(t, []byte("v"), val)
}

func TestStateLedger_GetNonceDoesNotLoadAccount(t *testing.T) {
	store := kv.NewMemory()
	sl := newTestStateLedger(t, store)
	sl.SetNonce(addr1, 7)
	require.Nil(t, sl.Commit(0))

	snapshot := sl.Snapshot()
	require.Equal(t, uint64(7), sl.GetNonce(addr1))
	require.Equal(t, uint64(0), sl.GetNonce(addr2))
	require.Equal(t, snapshot, sl.Snapshot())
	require.Empty(t, sl.accounts)

	sl.SetNonce(addr1, 8)
	require.Equal(t, uint64(8), sl.GetNonce(addr1))
}

func TestNewLedger_RollbackUncommittedBlock(t *testing.T) {
	rep := repo.Default(t.TempDir())
	chainStore, stateStore := kv.NewMemory(), kv.NewMemory()

	l, err := NewLedgerWithStores(rep, chainStore, stateStore, logrus.New())
	require.Nil(t, err)
	require.Nil(t, l.StateLedger.Commit(0))
	require.Nil(t, l.PersistExecutionResult(&types.BlockHeader{Number: 0, Timestamp: 1}, nil))

	// block 1 is persisted but its state never committed
	receipt := &types.Receipt{TxHash: ethcommon.Hash{1}, BlockNumber: 1, Status: types.ReceiptStatusSuccessful}
	require.Nil(t, l.PersistExecutionResult(&types.BlockHeader{Number: 1, Timestamp: 2, TxHashes: []ethcommon.Hash{{1}}}, []*types.Receipt{receipt}))

	l, err = NewLedgerWithStores(rep, chainStore, stateStore, logrus.New())
	require.Nil(t, err)
	assert.Equal(t, uint64(0), l.GetChainMeta().Number)
	_, err = l.GetReceipt(ethcommon.Hash{1})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = l.GetBlockHeader(1)
	assert.ErrorIs(t, err, ErrNotFound)

	meta, err := l.LoadChainMeta()
	require.Nil(t, err)
	assert.Equal(t, uint64(0), meta.Number)

	// the next block reuses height 1
	require.Nil(t, l.PersistExecutionResult(&types.BlockHeader{Number: 1, Timestamp: 3}, nil))
	require.Nil(t, l.StateLedger.Commit(1))
}

func TestChainLedger_RollbackGenesis(t *testing.T) {
	cl, err := NewChainLedgerImpl(kv.NewMemory(), logrus.New())
	require.Nil(t, err)
	require.ErrorIs(t, cl.RollbackBlock(), ErrNotFound)
	require.Nil(t, cl.PersistExecutionResult(&types.BlockHeader{Number: 0, Timestamp: 1}, nil))
	require.NotNil(t, cl.RollbackBlock())
	require.Equal(t, uint64(0), cl.GetChainMeta().Number)
}
