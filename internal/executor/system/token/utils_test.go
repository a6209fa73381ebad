package token

import (
	"math/big"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/axiomesh/hold-token/internal/executor/system/common"
	"github.com/axiomesh/hold-token/internal/ledger"
	"github.com/axiomesh/hold-token/internal/ledger/mock_ledger"
	"github.com/axiomesh/hold-token/pkg/repo"
)

var (
	owner = ethcommon.HexToAddress(repo.DefaultAccountAddrs[0])
	user1 = ethcommon.HexToAddress(repo.DefaultAccountAddrs[1])
	user2 = ethcommon.HexToAddress(repo.DefaultAccountAddrs[2])
	user3 = ethcommon.HexToAddress(repo.DefaultAccountAddrs[3])
)

const (
	tokensAmount1 = 100
	tokensAmount2 = 500
	tokensAmount3 = 10000
	holdTime      = 60 * 1000
	t0            = 1_700_000_000
)

type mockLedger struct {
	*mock_ledger.MockStateLedger
	accountDb map[ethcommon.Address]ledger.IAccount
}

type mockAccount struct {
	addr    ethcommon.Address
	nonce   uint64
	stateDb map[string][]byte
}

func newMockAccount(addr ethcommon.Address) *mockAccount {
	return &mockAccount{
		addr:    addr,
		stateDb: make(map[string][]byte),
	}
}

func (ma *mockAccount) GetAddress() ethcommon.Address {
	return ma.addr
}

func (ma *mockAccount) SetState(key []byte, value []byte) {
	ma.stateDb[string(key)] = value
}

func (ma *mockAccount) GetState(key []byte) (bool, []byte) {
	v, ok := ma.stateDb[string(key)]
	return ok && v != nil, v
}

func (ma *mockAccount) GetNonce() uint64 {
	return ma.nonce
}

func (ma *mockAccount) SetNonce(nonce uint64) {
	ma.nonce = nonce
}

func newMockMinLedger(t *testing.T) *mockLedger {
	mockLg := &mockLedger{
		accountDb: make(map[ethcommon.Address]ledger.IAccount),
	}
	ctrl := gomock.NewController(t)
	mockLg.MockStateLedger = mock_ledger.NewMockStateLedger(ctrl)

	mockLg.EXPECT().GetOrCreateAccount(gomock.Any()).DoAndReturn(func(address ethcommon.Address) ledger.IAccount {
		if mockLg.accountDb[address] == nil {
			mockLg.accountDb[address] = newMockAccount(address)
		}
		return mockLg.accountDb[address]
	}).AnyTimes()

	return mockLg
}

// newTestToken creates a token owned by owner on a real in-memory state ledger
func newTestToken(t *testing.T) (*Token, ledger.StateLedger) {
	lg := common.NewTestStateLedger(t)
	tk, err := Create(lg, logrus.New(), owner, "TEST TOKEN", "TTK", 0)
	require.Nil(t, err)
	return tk, lg
}

// callAs returns a token bound to a call context of caller at timestamp now
func callAs(lg ledger.StateLedger, caller ethcommon.Address, now uint64) *Token {
	tk := New(&common.SystemContractConfig{Logger: logrus.New()})
	tk.SetContext(common.NewVMContext(lg, 1, now, caller))
	return tk
}

func balanceString(tk *Token, account ethcommon.Address) string {
	return tk.BalanceOf(account).String()
}

func amount(v int64) *big.Int {
	return big.NewInt(v)
}
