package types

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const (
	ReceiptStatusFailed     = uint64(0)
	ReceiptStatusSuccessful = uint64(1)
)

const (
	ErrKindAuthorization = "authorization"
	ErrKindTransfer      = "transfer"
)

// Log is an event emitted by a system contract during execution.
type Log struct {
	Address ethcommon.Address `json:"address"`
	Topics  []ethcommon.Hash  `json:"topics"`
	Data    hexutil.Bytes     `json:"data"`
}

// Receipt is the outcome of a transaction. A failed receipt is never committed.
type Receipt struct {
	TxHash      ethcommon.Hash    `json:"tx_hash"`
	From        ethcommon.Address `json:"from"`
	To          ethcommon.Address `json:"to"`
	Nonce       uint64            `json:"nonce"`
	BlockNumber uint64            `json:"block_number"`
	Timestamp   uint64            `json:"timestamp"`
	Status      uint64            `json:"status"`
	Ret         hexutil.Bytes     `json:"ret,omitempty"`
	Err         string            `json:"err,omitempty"`
	ErrKind     string            `json:"err_kind,omitempty"`
	Logs        []*Log            `json:"logs"`
}

func (r *Receipt) Successful() bool {
	return r.Status == ReceiptStatusSuccessful
}

// BlockHeader carries the commit context of a block: its height and the timestamp
// every operation in the block observes.
type BlockHeader struct {
	Number    uint64           `json:"number"`
	Timestamp uint64           `json:"timestamp"`
	TxHashes  []ethcommon.Hash `json:"tx_hashes,omitempty"`
}
