package ledger

import (
	"fmt"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

const (
	blockKey     = "block-"
	receiptKey   = "receipt-"
	chainMetaKey = "chain-meta"
	stateKey     = "s-"
	nonceKey     = "n-"
	versionKey   = "state-version"
)

func compositeKey(prefix string, value any) []byte {
	return append([]byte(prefix), []byte(fmt.Sprintf("%v", value))...)
}

func compositeStorageKey(addr ethcommon.Address, key []byte) []byte {
	k := make([]byte, 0, len(stateKey)+ethcommon.AddressLength+len(key))
	k = append(k, stateKey...)
	k = append(k, addr.Bytes()...)
	return append(k, key...)
}

func compositeNonceKey(addr ethcommon.Address) []byte {
	return append([]byte(nonceKey), addr.Bytes()...)
}
