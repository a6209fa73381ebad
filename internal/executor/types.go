package executor

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"

	"github.com/axiomesh/hold-token/pkg/events"
	"github.com/axiomesh/hold-token/pkg/types"
)

type Executor interface {
	Start() error

	Stop() error

	// ApplyTransaction executes tx in a block of its own. A reverted call is
	// reported through the receipt, the returned error means tx was not executable.
	ApplyTransaction(tx *types.Transaction) (*types.Receipt, error)

	// Call executes data at the next block header and discards every change
	Call(from ethcommon.Address, to ethcommon.Address, data []byte) ([]byte, error)

	// Mine seals an empty block
	Mine() (*types.BlockHeader, error)

	// IncreaseTime moves the chain time forward and returns the total offset
	IncreaseTime(seconds uint64) uint64

	CurrentHeader() *types.BlockHeader

	// NextHeader is the header a transaction submitted now would commit in
	NextHeader() *types.BlockHeader

	GetReceipt(hash ethcommon.Hash) (*types.Receipt, error)

	GetNonce(addr ethcommon.Address) uint64

	SubscribeBlockEvent(chan<- events.ExecutedEvent) event.Subscription
}
