package token

import (
	"fmt"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/axiomesh/hold-token/pkg/repo"
)

type Config struct {
	Name            string
	Symbol          string
	Decimals        uint8
	Owner           ethcommon.Address
	InitialAccounts []*InitialAccount
}

type InitialAccount struct {
	Address ethcommon.Address
	Balance *big.Int
}

// Metadata is fixed at creation
type Metadata struct {
	Name     string            `json:"name"`
	Symbol   string            `json:"symbol"`
	Decimals uint8             `json:"decimals"`
	Owner    ethcommon.Address `json:"owner"`
}

var (
	// authorization errors
	ErrNotOwner           = errors.New("caller is not the owner")
	ErrNotEnoughAllowance = errors.New("not enough allowance")

	// transfer eligibility errors
	ErrInsufficientBalance = errors.New("value exceeds balance")
	ErrHeld                = errors.New("account is held")

	ErrValue              = errors.New("input value below zero")
	ErrEmptyAccount       = errors.New("account is empty")
	ErrOverflow           = errors.New("value overflows uint256")
	ErrTotalSupply        = errors.New("total supply below zero")
	ErrNotInitialized     = errors.New("token is not created")
	ErrAlreadyInitialized = errors.New("token already created")
)

// IsAuthorizationError reports whether the caller lacked the right to perform the operation
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrNotOwner) || errors.Is(err, ErrNotEnoughAllowance)
}

// IsTransferError reports whether the payer could not pay at the given time
func IsTransferError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance) || errors.Is(err, ErrHeld)
}

const (
	MetadataKey    = "metadata"
	TotalSupplyKey = "totalSupplyKey"
	BalanceKey     = "balanceKey"
	HeldKey        = "heldKey"
	AllowancesKey  = "allowancesKey"
)

func checkValue(value *big.Int) error {
	if value == nil || value.Sign() < 0 {
		return ErrValue
	}
	if value.Cmp(math.MaxBig256) > 0 {
		return ErrOverflow
	}
	return nil
}

func getBalanceKey(account ethcommon.Address) []byte {
	return []byte(fmt.Sprintf("%s-%s", BalanceKey, account.String()))
}

func getAllowancesKey(pair [2]ethcommon.Address) string {
	return fmt.Sprintf("%s-%s", pair[0].String(), pair[1].String())
}

// GenerateConfig builds the token config from the genesis file
func GenerateConfig(genesis *repo.GenesisConfig) (Config, error) {
	if !ethcommon.IsHexAddress(genesis.Token.Owner) {
		return Config{}, errors.Errorf("invalid owner address: %s", genesis.Token.Owner)
	}

	var err error
	initialAccounts := lo.Map(genesis.Accounts, func(ac *repo.Account, _ int) *InitialAccount {
		balance, ok := new(big.Int).SetString(ac.Balance, 10)
		if !ok || checkValue(balance) != nil {
			err = errors.Errorf("invalid balance: %s", ac.Balance)
		}
		if !ethcommon.IsHexAddress(ac.Address) {
			err = errors.Errorf("invalid account address: %s", ac.Address)
		}
		return &InitialAccount{
			Address: ethcommon.HexToAddress(ac.Address),
			Balance: balance,
		}
	})
	if err != nil {
		return Config{}, err
	}

	total := big.NewInt(0)
	lo.ForEach(initialAccounts, func(ac *InitialAccount, _ int) {
		total.Add(total, ac.Balance)
	})
	if total.Cmp(math.MaxBig256) > 0 {
		return Config{}, ErrOverflow
	}

	return Config{
		Name:            genesis.Token.Name,
		Symbol:          genesis.Token.Symbol,
		Decimals:        genesis.Token.Decimals,
		Owner:           ethcommon.HexToAddress(genesis.Token.Owner),
		InitialAccounts: initialAccounts,
	}, nil
}
