package common

import (
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/axiomesh/hold-token/internal/ledger"
	"github.com/axiomesh/hold-token/internal/storage/kv"
)

// NewTestStateLedger returns a state ledger backed by memory
func NewTestStateLedger(t testing.TB) ledger.StateLedger {
	sl, err := ledger.NewStateLedgerImpl(kv.NewMemory(), 128, logrus.New())
	require.Nil(t, err)
	return sl
}

// NewTestVMContext builds a context at height 1 for caller from
func NewTestVMContext(t testing.TB, from ethcommon.Address, timestamp uint64) *VMContext {
	return NewVMContext(NewTestStateLedger(t), 1, timestamp, from)
}
