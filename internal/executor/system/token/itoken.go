package token

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// IToken is a restricted ownable token. Caller and commit time are always
// explicit, a failed call leaves the state untouched.
type IToken interface {
	// Name Returns the name of the token
	Name() string

	// Symbol Returns the symbol of the token
	Symbol() string

	// Decimals Number of decimal this token has
	Decimals() uint8

	// Owner Returns the account allowed to mint, burn and hold
	Owner() ethcommon.Address

	// TotalSupply Returns the amount of tokens in existence
	TotalSupply() *big.Int

	// BalanceOf Returns the balance of the account
	BalanceOf(account ethcommon.Address) *big.Int

	// Held Returns the unix second until which the account can not transfer, zero if never held
	Held(account ethcommon.Address) uint64

	// Mint creates `amount` tokens for `recipient`, owner only
	Mint(caller, recipient ethcommon.Address, amount *big.Int) error

	// Burn destroys the whole balance of `target`, owner only
	Burn(caller, target ethcommon.Address) error

	// Hold locks `target` until now + duration, owner only. Overwrites any previous hold.
	Hold(caller, target ethcommon.Address, duration uint64, now uint64) error

	// Transfer moves `amount` from caller to `recipient` once the caller is no longer held
	Transfer(caller, recipient ethcommon.Address, amount *big.Int, now uint64) error

	// Allowance Returns the amount which `spender` is still allowed to withdraw from `holder`
	Allowance(holder, spender ethcommon.Address) *big.Int

	// Approve Sets `amount` as the allowance of `spender` over the caller's tokens
	Approve(caller, spender ethcommon.Address, amount *big.Int) error

	// TransferFrom moves `amount` from `from` to `recipient` and deducts it from the caller's allowance
	TransferFrom(caller, from, recipient ethcommon.Address, amount *big.Int, now uint64) error

	// AllowAndTransfer moves the whole allowance granted by `holder` to the caller and clears it
	AllowAndTransfer(caller, holder ethcommon.Address, now uint64) error
}
