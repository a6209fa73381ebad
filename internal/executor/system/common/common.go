package common

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/hold-token/internal/ledger"
	"github.com/axiomesh/hold-token/pkg/types"
)

const (
	// ZeroAddress is a special address, no one has control
	ZeroAddress = "0x0000000000000000000000000000000000000000"

	// system contract address range 0x1000-0xffff
	SystemContractStartAddr = "0x0000000000000000000000000000000000001000"

	// TokenContractAddr holds the restricted token state
	TokenContractAddr = "0x0000000000000000000000000000000000001002"

	SystemContractEndAddr = "0x000000000000000000000000000000000000ffff"
)

type SystemContractConfig struct {
	Logger logrus.FieldLogger
}

// VMContext is the execution environment of one call. Caller and commit
// time are supplied by the executor, contracts never sample them.
type VMContext struct {
	StateLedger      ledger.StateLedger
	CurrentHeight    uint64
	CurrentTimestamp uint64
	CurrentLogs      *[]*types.Log
	CurrentUser      *ethcommon.Address
}

func NewVMContext(stateLedger ledger.StateLedger, height uint64, timestamp uint64, from ethcommon.Address) *VMContext {
	return &VMContext{
		StateLedger:      stateLedger,
		CurrentHeight:    height,
		CurrentTimestamp: timestamp,
		CurrentLogs:      new([]*types.Log),
		CurrentUser:      &from,
	}
}

// Logs returns the logs emitted so far, nil safe
func (c *VMContext) Logs() []*types.Log {
	if c == nil || c.CurrentLogs == nil {
		return nil
	}
	return *c.CurrentLogs
}

// SystemContract must be implemented by all system contract
type SystemContract interface {
	SetContext(*VMContext)

	// Run executes abi encoded call data, a returned error means the call reverted
	Run(data []byte) ([]byte, error)
}

func IsSystemContract(addr ethcommon.Address) bool {
	start := ethcommon.HexToAddress(SystemContractStartAddr).Big()
	end := ethcommon.HexToAddress(SystemContractEndAddr).Big()
	v := addr.Big()
	return v.Cmp(start) >= 0 && v.Cmp(end) <= 0
}
