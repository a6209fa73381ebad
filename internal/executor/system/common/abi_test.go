package common

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

const testABIData = `[
	{"type":"function","name":"transfer","stateMutability":"nonpayable",
	 "inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view",
	 "inputs":[{"name":"account","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"totalSupply","stateMutability":"view",
	 "inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`

type testTransferArgs struct {
	To    ethcommon.Address
	Value *big.Int
}

type testBalanceOfArgs struct {
	Account ethcommon.Address
}

type testTotalSupplyArgs struct{}

func TestParseContractCallArgs(t *testing.T) {
	testABI, err := abi.JSON(strings.NewReader(testABIData))
	require.Nil(t, err)

	constructors := map[string]func() any{
		"transfer(address,uint256)": func() any { return &testTransferArgs{} },
		"balanceOf(address)":        func() any { return &testBalanceOfArgs{} },
		"totalSupply()":             func() any { return &testTotalSupplyArgs{} },
	}
	to := ethcommon.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")

	data, err := PackCall(&testABI, "transfer", to, big.NewInt(7))
	require.Nil(t, err)
	args, method, err := ParseContractCallArgs(&testABI, data, constructors)
	require.Nil(t, err)
	require.Equal(t, "transfer", method.Name)
	require.Equal(t, to, args.(*testTransferArgs).To)
	require.Equal(t, int64(7), args.(*testTransferArgs).Value.Int64())

	data, err = PackCall(&testABI, "balanceOf", to)
	require.Nil(t, err)
	args, _, err = ParseContractCallArgs(&testABI, data, constructors)
	require.Nil(t, err)
	require.Equal(t, to, args.(*testBalanceOfArgs).Account)

	data, err = PackCall(&testABI, "totalSupply")
	require.Nil(t, err)
	args, _, err = ParseContractCallArgs(&testABI, data, constructors)
	require.Nil(t, err)
	require.IsType(t, &testTotalSupplyArgs{}, args)

	_, _, err = ParseContractCallArgs(&testABI, []byte{1, 2}, constructors)
	require.ErrorIs(t, err, ErrInvalidData)

	_, _, err = ParseContractCallArgs(&testABI, []byte{1, 2, 3, 4}, constructors)
	require.ErrorIs(t, err, ErrMethodNotFound)

	// selector is known but the arguments are truncated
	data, err = PackCall(&testABI, "transfer", to, big.NewInt(7))
	require.Nil(t, err)
	_, _, err = ParseContractCallArgs(&testABI, data[:20], constructors)
	require.ErrorIs(t, err, ErrInvalidData)

	delete(constructors, "balanceOf(address)")
	data, err = PackCall(&testABI, "balanceOf", to)
	require.Nil(t, err)
	_, _, err = ParseContractCallArgs(&testABI, data, constructors)
	require.ErrorIs(t, err, ErrMethodNotFound)
}
