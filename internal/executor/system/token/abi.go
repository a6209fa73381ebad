package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/axiomesh/hold-token/pkg/packer"
	"github.com/axiomesh/hold-token/pkg/types"
)

const (
	NameMethod             = "name"
	SymbolMethod           = "symbol"
	DecimalsMethod         = "decimals"
	OwnerMethod            = "owner"
	TotalSupplyMethod      = "totalSupply"
	BalanceOfMethod        = "balanceOf"
	HeldMethod             = "held"
	AllowanceMethod        = "allowance"
	MintMethod             = "mint"
	BurnMethod             = "burn"
	HoldMethod             = "hold"
	TransferMethod         = "transfer"
	ApproveMethod          = "approve"
	TransferFromMethod     = "transferFrom"
	AllowAndTransferMethod = "allowAndTransfer"

	TransferEvent = "Transfer"
	ApprovalEvent = "Approval"
	HoldEvent     = "Hold"
)

const abiData = `[
	{"type":"function","name":"name","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"symbol","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
	{"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"totalSupply","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"held","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint64"}]},
	{"type":"function","name":"allowance","stateMutability":"view","inputs":[{"name":"holder","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"mint","stateMutability":"nonpayable","inputs":[{"name":"recipient","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"burn","stateMutability":"nonpayable","inputs":[{"name":"target","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"hold","stateMutability":"nonpayable","inputs":[{"name":"target","type":"address"},{"name":"duration","type":"uint64"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"transfer","stateMutability":"nonpayable","inputs":[{"name":"recipient","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"transferFrom","stateMutability":"nonpayable","inputs":[{"name":"from","type":"address"},{"name":"recipient","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"allowAndTransfer","stateMutability":"nonpayable","inputs":[{"name":"holder","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"event","name":"Transfer","anonymous":false,"inputs":[{"indexed":true,"name":"from","type":"address"},{"indexed":true,"name":"to","type":"address"},{"indexed":false,"name":"value","type":"uint256"}]},
	{"type":"event","name":"Approval","anonymous":false,"inputs":[{"indexed":true,"name":"owner","type":"address"},{"indexed":true,"name":"spender","type":"address"},{"indexed":false,"name":"value","type":"uint256"}]},
	{"type":"event","name":"Hold","anonymous":false,"inputs":[{"indexed":true,"name":"account","type":"address"},{"indexed":false,"name":"until","type":"uint64"}]}
]`

type nameArgs struct{}

type symbolArgs struct{}

type decimalsArgs struct{}

type ownerArgs struct{}

type totalSupplyArgs struct{}

type balanceOfArgs struct {
	Account ethcommon.Address
}

type heldArgs struct {
	Account ethcommon.Address
}

type allowanceArgs struct {
	Holder  ethcommon.Address
	Spender ethcommon.Address
}

type mintArgs struct {
	Recipient ethcommon.Address
	Amount    *big.Int
}

type burnArgs struct {
	Target ethcommon.Address
}

type holdArgs struct {
	Target   ethcommon.Address
	Duration uint64
}

type transferArgs struct {
	Recipient ethcommon.Address
	Amount    *big.Int
}

type approveArgs struct {
	Spender ethcommon.Address
	Amount  *big.Int
}

type transferFromArgs struct {
	From      ethcommon.Address
	Recipient ethcommon.Address
	Amount    *big.Int
}

type allowAndTransferArgs struct {
	Holder ethcommon.Address
}

var methodSig2ArgsReceiverConstructor = map[string]func() any{
	"name()":                                func() any { return &nameArgs{} },
	"symbol()":                              func() any { return &symbolArgs{} },
	"decimals()":                            func() any { return &decimalsArgs{} },
	"owner()":                               func() any { return &ownerArgs{} },
	"totalSupply()":                         func() any { return &totalSupplyArgs{} },
	"balanceOf(address)":                    func() any { return &balanceOfArgs{} },
	"held(address)":                         func() any { return &heldArgs{} },
	"allowance(address,address)":            func() any { return &allowanceArgs{} },
	"mint(address,uint256)":                 func() any { return &mintArgs{} },
	"burn(address)":                         func() any { return &burnArgs{} },
	"hold(address,uint64)":                  func() any { return &holdArgs{} },
	"transfer(address,uint256)":             func() any { return &transferArgs{} },
	"approve(address,uint256)":              func() any { return &approveArgs{} },
	"transferFrom(address,address,uint256)": func() any { return &transferFromArgs{} },
	"allowAndTransfer(address)":             func() any { return &allowAndTransferArgs{} },
}

type EventTransfer struct {
	From  ethcommon.Address
	To    ethcommon.Address
	Value *big.Int
}

func (e *EventTransfer) Pack(abi abi.ABI) (*types.Log, error) {
	return packer.PackEvent(e, abi.Events[TransferEvent])
}

type EventApproval struct {
	Owner   ethcommon.Address
	Spender ethcommon.Address
	Value   *big.Int
}

func (e *EventApproval) Pack(abi abi.ABI) (*types.Log, error) {
	return packer.PackEvent(e, abi.Events[ApprovalEvent])
}

type EventHold struct {
	Account ethcommon.Address
	Until   uint64
}

func (e *EventHold) Pack(abi abi.ABI) (*types.Log, error) {
	return packer.PackEvent(e, abi.Events[HoldEvent])
}
