package packer

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiomesh/hold-token/pkg/types"
)

type EventTest struct {
	User   common.Address
	Amount *big.Int
}

func (_event *EventTest) Pack(abi abi.ABI) (*types.Log, error) {
	return PackEvent(_event, abi.Events["Test"])
}

const testABI = `[{"anonymous":false,"inputs":[{"indexed":true,"name":"user","type":"address"},{"indexed":false,"name":"amount","type":"uint256"}],"name":"Test","type":"event"}]`

func TestPackEvent(t *testing.T) {
	innerABI, err := abi.JSON(strings.NewReader(testABI))
	require.Nil(t, err)
	input := EventTest{
		User:   common.HexToAddress("0x0000000000000000000000000000000000001000"),
		Amount: big.NewInt(100),
	}
	log, err := input.Pack(innerABI)
	require.Nil(t, err)
	assert.Equal(t, innerABI.Events["Test"].ID, log.Topics[0])
	data, err := innerABI.Events["Test"].Inputs.Unpack(log.Data)
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(100), data[0])

	parsed := &EventTest{}
	require.Nil(t, UnpackEvent(parsed, innerABI.Events["Test"], log))
	assert.Equal(t, input.User, parsed.User)
	assert.Equal(t, input.Amount, parsed.Amount)

	other := innerABI.Events["Test"]
	other.ID = common.Hash{1}
	assert.NotNil(t, UnpackEvent(parsed, other, log))
}

func TestPackEventMissingField(t *testing.T) {
	innerABI, err := abi.JSON(strings.NewReader(testABI))
	require.Nil(t, err)
	_, err = PackEvent(&struct{ User common.Address }{}, innerABI.Events["Test"])
	assert.NotNil(t, err)

	_, err = PackEvent(nil, innerABI.Events["Test"])
	assert.NotNil(t, err)
}
