package httpapi

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiomesh/hold-token/internal/chain"
	"github.com/axiomesh/hold-token/internal/executor"
	"github.com/axiomesh/hold-token/internal/executor/system/common"
	"github.com/axiomesh/hold-token/internal/executor/system/token"
	"github.com/axiomesh/hold-token/internal/genesis"
	"github.com/axiomesh/hold-token/internal/ledger"
	"github.com/axiomesh/hold-token/pkg/repo"
	"github.com/axiomesh/hold-token/pkg/types"
)

const t0 = 1_700_000_000

type testNode struct {
	client *Client
	url    string
	keys   []*ecdsa.PrivateKey
	addrs  []ethcommon.Address
}

func newTestNode(t *testing.T, modify func(rep *repo.Repo)) *testNode {
	rep := repo.MockRepo(t)
	if modify != nil {
		modify(rep)
	}
	lg, err := ledger.NewLedger(rep)
	require.Nil(t, err)
	t.Cleanup(lg.Close)

	clock := chain.NewManualClock(time.Unix(t0, 0))
	header, err := genesis.Initialize(rep.GenesisConfig, lg, clock, logrus.New())
	require.Nil(t, err)
	exec, err := executor.New(lg, chain.New(clock, header, logrus.New()), logrus.New())
	require.Nil(t, err)

	ts := httptest.NewServer(New(rep, exec, logrus.New()).Handler())
	t.Cleanup(ts.Close)

	node := &testNode{client: NewClient(ts.URL, 5*time.Second), url: ts.URL}
	for _, k := range repo.DefaultAccountKeys {
		key, err := repo.ParseKey(k)
		require.Nil(t, err)
		node.keys = append(node.keys, key)
		node.addrs = append(node.addrs, ethcommon.HexToAddress(repo.KeyToAddress(key)))
	}
	return node
}

func (n *testNode) send(t *testing.T, signer int, method string, args ...any) *types.Receipt {
	ctx := context.Background()
	data, err := common.PackCall(token.ABI(), method, args...)
	require.Nil(t, err)
	nonce, err := n.client.Nonce(ctx, n.addrs[signer])
	require.Nil(t, err)
	tx, err := types.SignTx(types.NewTransaction(nonce, ethcommon.HexToAddress(common.TokenContractAddr), data), n.keys[signer])
	require.Nil(t, err)
	receipt, err := n.client.SendTransaction(ctx, tx)
	require.Nil(t, err)
	return receipt
}

func TestServer_HoldTransfer(t *testing.T) {
	n := newTestNode(t, nil)
	ctx := context.Background()

	info, err := n.client.Token(ctx)
	require.Nil(t, err)
	assert.Equal(t, "TTK", info.Symbol)
	assert.Equal(t, n.addrs[0], info.Owner)
	assert.Equal(t, "0", info.TotalSupply)

	require.True(t, n.send(t, 0, token.MintMethod, n.addrs[1], big.NewInt(500)).Successful())
	require.True(t, n.send(t, 0, token.HoldMethod, n.addrs[1], uint64(60000)).Successful())

	held, err := n.client.Held(ctx, n.addrs[1])
	require.Nil(t, err)
	assert.Equal(t, uint64(t0+60000), held.HeldUntil)
	assert.True(t, held.Held)

	receipt := n.send(t, 1, token.TransferMethod, n.addrs[2], big.NewInt(500))
	assert.False(t, receipt.Successful())
	assert.Equal(t, types.ErrKindTransfer, receipt.ErrKind)
	_, err = n.client.Receipt(ctx, receipt.TxHash)
	assert.NotNil(t, err)

	offset, err := n.client.IncreaseTime(ctx, 60000)
	require.Nil(t, err)
	assert.Equal(t, uint64(60000), offset)

	// the time offset counts before any block is mined
	held, err = n.client.Held(ctx, n.addrs[1])
	require.Nil(t, err)
	assert.False(t, held.Held)
	assert.Equal(t, held.HeldUntil, held.AsOf)

	receipt = n.send(t, 1, token.TransferMethod, n.addrs[2], big.NewInt(500))
	require.True(t, receipt.Successful(), receipt.Err)
	stored, err := n.client.Receipt(ctx, receipt.TxHash)
	require.Nil(t, err)
	assert.Equal(t, receipt.BlockNumber, stored.BlockNumber)

	balance, err := n.client.Balance(ctx, n.addrs[2])
	require.Nil(t, err)
	assert.Equal(t, "500", balance.Balance)

	header, err := n.client.Mine(ctx)
	require.Nil(t, err)
	latest, err := n.client.Header(ctx)
	require.Nil(t, err)
	assert.Equal(t, header.Number, latest.Number)

	held, err = n.client.Held(ctx, n.addrs[1])
	require.Nil(t, err)
	assert.False(t, held.Held)
}

func TestServer_Allowance(t *testing.T) {
	n := newTestNode(t, nil)
	ctx := context.Background()

	require.True(t, n.send(t, 0, token.MintMethod, n.addrs[1], big.NewInt(100)).Successful())
	require.True(t, n.send(t, 1, token.ApproveMethod, n.addrs[2], big.NewInt(40)).Successful())

	res, err := n.client.Allowance(ctx, n.addrs[1], n.addrs[2])
	require.Nil(t, err)
	assert.Equal(t, "40", res.Allowance)

	require.True(t, n.send(t, 2, token.AllowAndTransferMethod, n.addrs[1]).Successful())
	res, err = n.client.Allowance(ctx, n.addrs[1], n.addrs[2])
	require.Nil(t, err)
	assert.Equal(t, "0", res.Allowance)

	data, err := common.PackCall(token.ABI(), token.BalanceOfMethod, n.addrs[2])
	require.Nil(t, err)
	ret, err := n.client.Call(ctx, ethcommon.Address{}, data)
	require.Nil(t, err)
	out, err := token.ABI().Unpack(token.BalanceOfMethod, ret)
	require.Nil(t, err)
	assert.Equal(t, big.NewInt(40), out[0])
}

func TestServer_BadRequests(t *testing.T) {
	n := newTestNode(t, nil)
	ctx := context.Background()

	_, err := n.client.Balance(ctx, ethcommon.Address{})
	require.Nil(t, err)

	resp, err := http.Get(n.url + "/balance/not-an-address")
	require.Nil(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))

	resp, err = http.Post(n.url+"/tx", "application/json", strings.NewReader(`{"raw":"0x01"}`))
	require.Nil(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// wrong nonce is refused before execution
	data, err := common.PackCall(token.ABI(), token.TotalSupplyMethod)
	require.Nil(t, err)
	tx, err := types.SignTx(types.NewTransaction(9, ethcommon.HexToAddress(common.TokenContractAddr), data), n.keys[0])
	require.Nil(t, err)
	_, err = n.client.SendTransaction(ctx, tx)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), executor.ErrInvalidNonce.Error())
}

func TestServer_RequestID(t *testing.T) {
	n := newTestNode(t, nil)
	req, err := http.NewRequest(http.MethodGet, n.url+"/header", nil)
	require.Nil(t, err)
	req.Header.Set(requestIDHeader, "abc")
	req.Header.Set("Origin", "http://example.com")
	resp, err := http.DefaultClient.Do(req)
	require.Nil(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc", resp.Header.Get(requestIDHeader))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServer_WriteLimiter(t *testing.T) {
	n := newTestNode(t, func(rep *repo.Repo) {
		rep.Config.API.WriteLimiter = repo.JLimiter{
			Interval: repo.Duration(time.Hour),
			Quantum:  1,
			Capacity: 1,
			Enable:   true,
		}
	})
	ctx := context.Background()
	_, err := n.client.Mine(ctx)
	require.Nil(t, err)
	_, err = n.client.Mine(ctx)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "write limit exceeded")

	// reads are not limited
	_, err = n.client.Header(ctx)
	require.Nil(t, err)
}

func TestServer_DevDisabled(t *testing.T) {
	n := newTestNode(t, func(rep *repo.Repo) {
		rep.Config.API.EnableDev = false
	})
	_, err := n.client.Mine(context.Background())
	require.NotNil(t, err)

	resp, err := http.Get(n.url + "/metrics")
	require.Nil(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
