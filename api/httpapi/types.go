package httpapi

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

type SendTransactionRequest struct {
	Raw hexutil.Bytes `json:"raw"`
}

type CallRequest struct {
	From ethcommon.Address  `json:"from"`
	To   *ethcommon.Address `json:"to,omitempty"`
	Data hexutil.Bytes      `json:"data"`
}

type CallResponse struct {
	Ret hexutil.Bytes `json:"ret"`
}

type NonceResponse struct {
	Account ethcommon.Address `json:"account"`
	Nonce   uint64            `json:"nonce"`
}

// amounts are decimal strings of the smallest unit
type TokenResponse struct {
	Name        string            `json:"name"`
	Symbol      string            `json:"symbol"`
	Decimals    uint8             `json:"decimals"`
	Owner       ethcommon.Address `json:"owner"`
	TotalSupply string            `json:"total_supply"`
}

type BalanceResponse struct {
	Account ethcommon.Address `json:"account"`
	Balance string            `json:"balance"`
}

type HeldResponse struct {
	Account   ethcommon.Address `json:"account"`
	HeldUntil uint64            `json:"held_until"`
	// Held is evaluated at AsOf, the timestamp the next transaction commits with
	Held bool   `json:"held"`
	AsOf uint64 `json:"as_of"`
}

type AllowanceResponse struct {
	Holder    ethcommon.Address `json:"holder"`
	Spender   ethcommon.Address `json:"spender"`
	Allowance string            `json:"allowance"`
}

type IncreaseTimeRequest struct {
	Seconds uint64 `json:"seconds"`
}

type IncreaseTimeResponse struct {
	Offset uint64 `json:"offset"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
