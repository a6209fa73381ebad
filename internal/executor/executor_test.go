package executor

import (
	"crypto/ecdsa"
	"math/big"
	"sync"
	"testing"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiomesh/hold-token/internal/chain"
	"github.com/axiomesh/hold-token/internal/executor/system/common"
	"github.com/axiomesh/hold-token/internal/executor/system/token"
	"github.com/axiomesh/hold-token/internal/genesis"
	"github.com/axiomesh/hold-token/internal/ledger"
	"github.com/axiomesh/hold-token/pkg/events"
	"github.com/axiomesh/hold-token/pkg/repo"
	"github.com/axiomesh/hold-token/pkg/types"
)

const (
	t0       = 1_700_000_000
	holdTime = 60 * 1000
)

var tokenAddr = ethcommon.HexToAddress(common.TokenContractAddr)

type testEnv struct {
	exec  *BlockExecutor
	clock *chain.ManualClock
	lg    *ledger.Ledger
	keys  []*ecdsa.PrivateKey
	addrs []ethcommon.Address
}

func newTestEnv(t *testing.T) *testEnv {
	rep := repo.MockRepo(t)
	lg, err := ledger.NewLedger(rep)
	require.Nil(t, err)
	t.Cleanup(lg.Close)

	clock := chain.NewManualClock(time.Unix(t0, 0))
	header, err := genesis.Initialize(rep.GenesisConfig, lg, clock, logrus.New())
	require.Nil(t, err)

	exec, err := New(lg, chain.New(clock, header, logrus.New()), logrus.New())
	require.Nil(t, err)
	require.Nil(t, exec.Start())
	t.Cleanup(func() {
		_ = exec.Stop()
	})

	env := &testEnv{exec: exec, clock: clock, lg: lg}
	for _, k := range repo.DefaultAccountKeys {
		key, err := repo.ParseKey(k)
		require.Nil(t, err)
		env.keys = append(env.keys, key)
		env.addrs = append(env.addrs, ethcommon.HexToAddress(repo.KeyToAddress(key)))
	}
	return env
}

func (env *testEnv) signedTx(t *testing.T, signer int, method string, args ...any) *types.Transaction {
	data, err := common.PackCall(token.ABI(), method, args...)
	require.Nil(t, err)
	nonce := env.exec.GetNonce(env.addrs[signer])
	tx, err := types.SignTx(types.NewTransaction(nonce, tokenAddr, data), env.keys[signer])
	require.Nil(t, err)
	return tx
}

func (env *testEnv) send(t *testing.T, signer int, method string, args ...any) *types.Receipt {
	receipt, err := env.exec.ApplyTransaction(env.signedTx(t, signer, method, args...))
	require.Nil(t, err)
	return receipt
}

func (env *testEnv) view(t *testing.T, method string, args ...any) any {
	data, err := common.PackCall(token.ABI(), method, args...)
	require.Nil(t, err)
	ret, err := env.exec.Call(ethcommon.Address{}, tokenAddr, data)
	require.Nil(t, err)
	out, err := token.ABI().Unpack(method, ret)
	require.Nil(t, err)
	require.Len(t, out, 1)
	return out[0]
}

func (env *testEnv) balance(t *testing.T, i int) string {
	return env.view(t, token.BalanceOfMethod, env.addrs[i]).(*big.Int).String()
}

func (env *testEnv) totalSupply(t *testing.T) string {
	return env.view(t, token.TotalSupplyMethod).(*big.Int).String()
}

func TestMintBurn(t *testing.T) {
	env := newTestEnv(t)

	receipt := env.send(t, 0, token.MintMethod, env.addrs[1], big.NewInt(500))
	require.True(t, receipt.Successful(), receipt.Err)
	assert.Equal(t, uint64(1), receipt.BlockNumber)
	assert.Len(t, receipt.Logs, 1)
	assert.Equal(t, "500", env.balance(t, 1))
	assert.Equal(t, "500", env.totalSupply(t))

	receipt = env.send(t, 0, token.BurnMethod, env.addrs[1])
	require.True(t, receipt.Successful(), receipt.Err)
	assert.Equal(t, "0", env.balance(t, 1))
	assert.Equal(t, "0", env.totalSupply(t))
	assert.Equal(t, uint64(2), env.exec.CurrentHeader().Number)
	assert.Equal(t, uint64(2), env.exec.GetNonce(env.addrs[0]))
}

func TestHoldThenTransfer(t *testing.T) {
	env := newTestEnv(t)

	require.True(t, env.send(t, 0, token.MintMethod, env.addrs[1], big.NewInt(500)).Successful())
	receipt := env.send(t, 0, token.HoldMethod, env.addrs[1], uint64(holdTime))
	require.True(t, receipt.Successful(), receipt.Err)
	assert.Equal(t, uint64(t0), receipt.Timestamp)
	assert.Equal(t, uint64(t0+holdTime), env.view(t, token.HeldMethod, env.addrs[1]).(uint64))

	height := env.exec.CurrentHeader().Number
	receipt = env.send(t, 1, token.TransferMethod, env.addrs[2], big.NewInt(500))
	assert.False(t, receipt.Successful())
	assert.Equal(t, types.ErrKindTransfer, receipt.ErrKind)
	assert.Contains(t, receipt.Err, token.ErrHeld.Error())
	assert.Equal(t, height, env.exec.CurrentHeader().Number)
	assert.Equal(t, uint64(0), env.exec.GetNonce(env.addrs[1]))
	assert.Equal(t, "500", env.balance(t, 1))

	_, err := env.exec.GetReceipt(receipt.TxHash)
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	// exactly at the expiry
	assert.Equal(t, uint64(holdTime), env.exec.IncreaseTime(holdTime))
	receipt = env.send(t, 1, token.TransferMethod, env.addrs[2], big.NewInt(500))
	require.True(t, receipt.Successful(), receipt.Err)
	assert.Equal(t, uint64(t0+holdTime), receipt.Timestamp)
	assert.Equal(t, "0", env.balance(t, 1))
	assert.Equal(t, "500", env.balance(t, 2))

	stored, err := env.exec.GetReceipt(receipt.TxHash)
	require.Nil(t, err)
	assert.Equal(t, receipt.BlockNumber, stored.BlockNumber)
}

func TestUnauthorizedLeavesLedgerUnchanged(t *testing.T) {
	env := newTestEnv(t)
	require.True(t, env.send(t, 0, token.MintMethod, env.addrs[1], big.NewInt(100)).Successful())
	height := env.exec.CurrentHeader().Number

	for _, tc := range []struct {
		method string
		args   []any
	}{
		{token.MintMethod, []any{env.addrs[1], big.NewInt(1)}},
		{token.BurnMethod, []any{env.addrs[1]}},
		{token.HoldMethod, []any{env.addrs[2], uint64(10)}},
		{token.AllowAndTransferMethod, []any{env.addrs[2]}},
	} {
		t.Run(tc.method, func(t *testing.T) {
			receipt := env.send(t, 1, tc.method, tc.args...)
			assert.False(t, receipt.Successful())
			assert.Equal(t, types.ErrKindAuthorization, receipt.ErrKind)
			assert.Equal(t, "100", env.balance(t, 1))
			assert.Equal(t, "100", env.totalSupply(t))
			assert.Equal(t, uint64(0), env.view(t, token.HeldMethod, env.addrs[2]).(uint64))
			assert.Equal(t, height, env.exec.CurrentHeader().Number)
		})
	}
}

func TestAllowAndTransfer(t *testing.T) {
	env := newTestEnv(t)
	require.True(t, env.send(t, 0, token.MintMethod, env.addrs[1], big.NewInt(300)).Successful())
	require.True(t, env.send(t, 1, token.ApproveMethod, env.addrs[2], big.NewInt(120)).Successful())
	assert.Equal(t, "120", env.view(t, token.AllowanceMethod, env.addrs[1], env.addrs[2]).(*big.Int).String())

	receipt := env.send(t, 2, token.AllowAndTransferMethod, env.addrs[1])
	require.True(t, receipt.Successful(), receipt.Err)
	assert.Equal(t, "180", env.balance(t, 1))
	assert.Equal(t, "120", env.balance(t, 2))
	assert.Equal(t, "0", env.view(t, token.AllowanceMethod, env.addrs[1], env.addrs[2]).(*big.Int).String())

	receipt = env.send(t, 2, token.AllowAndTransferMethod, env.addrs[1])
	assert.False(t, receipt.Successful())
	assert.Contains(t, receipt.Err, token.ErrNotEnoughAllowance.Error())
}

func TestApplyTransactionRejected(t *testing.T) {
	env := newTestEnv(t)
	data, err := common.PackCall(token.ABI(), token.TotalSupplyMethod)
	require.Nil(t, err)

	t.Run("invalid nonce", func(t *testing.T) {
		tx, err := types.SignTx(types.NewTransaction(5, tokenAddr, data), env.keys[0])
		require.Nil(t, err)
		_, err = env.exec.ApplyTransaction(tx)
		assert.ErrorIs(t, err, ErrInvalidNonce)
	})

	t.Run("not system contract", func(t *testing.T) {
		tx, err := types.SignTx(types.NewTransaction(0, env.addrs[1], data), env.keys[0])
		require.Nil(t, err)
		_, err = env.exec.ApplyTransaction(tx)
		assert.ErrorIs(t, err, ErrNotSystemContract)
	})

	t.Run("unsigned", func(t *testing.T) {
		_, err := env.exec.ApplyTransaction(types.NewTransaction(0, tokenAddr, data))
		assert.ErrorIs(t, err, types.ErrUnsignedTx)
	})

	t.Run("bad call data", func(t *testing.T) {
		tx, err := types.SignTx(types.NewTransaction(0, tokenAddr, []byte{1, 2, 3, 4}), env.keys[0])
		require.Nil(t, err)
		receipt, err := env.exec.ApplyTransaction(tx)
		require.Nil(t, err)
		assert.False(t, receipt.Successful())
		assert.Equal(t, "", receipt.ErrKind)
	})

	assert.Equal(t, uint64(0), env.exec.CurrentHeader().Number)
}

func TestCallNeverCommits(t *testing.T) {
	env := newTestEnv(t)
	data, err := common.PackCall(token.ABI(), token.MintMethod, env.addrs[1], big.NewInt(10))
	require.Nil(t, err)

	_, err = env.exec.Call(env.addrs[0], tokenAddr, data)
	require.Nil(t, err)
	assert.Equal(t, "0", env.balance(t, 1))
	assert.Equal(t, uint64(0), env.exec.GetNonce(env.addrs[0]))

	_, err = env.exec.Call(env.addrs[0], env.addrs[1], data)
	assert.ErrorIs(t, err, ErrNotSystemContract)
}

func TestMineAndBlockEvent(t *testing.T) {
	env := newTestEnv(t)
	ch := make(chan events.ExecutedEvent, 8)
	sub := env.exec.SubscribeBlockEvent(ch)
	defer sub.Unsubscribe()

	env.clock.Advance(10 * time.Second)
	header, err := env.exec.Mine()
	require.Nil(t, err)
	assert.Equal(t, uint64(1), header.Number)
	assert.Equal(t, uint64(t0+10), header.Timestamp)

	ev := <-ch
	assert.Equal(t, header.Number, ev.Header.Number)
	assert.Len(t, ev.Receipts, 0)

	receipt := env.send(t, 0, token.MintMethod, env.addrs[1], big.NewInt(1))
	require.True(t, receipt.Successful())
	ev = <-ch
	assert.Equal(t, uint64(2), ev.Header.Number)
	require.Len(t, ev.TxPointerList, 1)
	assert.Equal(t, receipt.TxHash, ev.TxPointerList[0].Hash)

	stored, err := env.lg.GetBlockHeader(2)
	require.Nil(t, err)
	assert.Equal(t, []ethcommon.Hash{receipt.TxHash}, stored.TxHashes)
	assert.Equal(t, uint64(2), env.lg.StateLedger.Version())
}

func TestGetNonceConcurrentReaders(t *testing.T) {
	env := newTestEnv(t)
	fresh := ethcommon.HexToAddress("0x2000000000000000000000000000000000000002")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.Equal(t, uint64(0), env.exec.GetNonce(fresh))
				_ = env.exec.GetNonce(env.addrs[0])
			}
		}()
	}
	for i := 0; i < 5; i++ {
		receipt := env.send(t, 0, token.MintMethod, env.addrs[1], big.NewInt(1))
		require.True(t, receipt.Successful(), receipt.Err)
	}
	wg.Wait()
	assert.Equal(t, uint64(5), env.exec.GetNonce(env.addrs[0]))
}

func TestSealFailureLeavesLedgerUnchanged(t *testing.T) {
	env := newTestEnv(t)
	receipt := env.send(t, 0, token.MintMethod, env.addrs[1], big.NewInt(100))
	require.True(t, receipt.Successful(), receipt.Err)

	// state moves ahead of the chain, the next commit at height 2 is refused
	require.Nil(t, env.lg.StateLedger.Commit(2))

	tx := env.signedTx(t, 0, token.MintMethod, env.addrs[1], big.NewInt(50))
	_, err := env.exec.ApplyTransaction(tx)
	require.NotNil(t, err)

	assert.Equal(t, uint64(1), env.lg.GetChainMeta().Number)
	assert.Equal(t, uint64(1), env.exec.CurrentHeader().Number)
	_, err = env.exec.GetReceipt(tx.Hash())
	assert.ErrorIs(t, err, ledger.ErrNotFound)
	_, err = env.lg.GetBlockHeader(2)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
	assert.Equal(t, uint64(1), env.exec.GetNonce(env.addrs[0]))
	assert.Equal(t, "100", env.balance(t, 1))
}
