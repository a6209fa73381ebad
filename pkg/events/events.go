package events

import (
	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/axiomesh/hold-token/pkg/types"
)

// ExecutedEvent is emitted once a block has been sealed
type ExecutedEvent struct {
	Header        *types.BlockHeader `json:"header"`
	Receipts      []*types.Receipt   `json:"receipts"`
	TxPointerList []*TxPointer       `json:"tx_pointers"`
}

type TxPointer struct {
	Hash    ethcommon.Hash    `json:"hash"`
	Account ethcommon.Address `json:"account"`
	Nonce   uint64            `json:"nonce"`
}

func NewExecutedEvent(header *types.BlockHeader, receipts []*types.Receipt) *ExecutedEvent {
	pointers := make([]*TxPointer, 0, len(receipts))
	for _, r := range receipts {
		pointers = append(pointers, &TxPointer{
			Hash:    r.TxHash,
			Account: r.From,
			Nonce:   r.Nonce,
		})
	}
	return &ExecutedEvent{
		Header:        header,
		Receipts:      receipts,
		TxPointerList: pointers,
	}
}
