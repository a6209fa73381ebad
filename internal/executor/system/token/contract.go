package token

import (
	"github.com/pkg/errors"

	"github.com/axiomesh/hold-token/internal/executor/system/common"
)

var ErrNoCaller = errors.New("call without caller")

// Run decodes the call data and executes it with the caller and timestamp of the current context
func (t *Token) Run(data []byte) ([]byte, error) {
	if t.ctx == nil || t.ctx.CurrentUser == nil {
		return nil, ErrNoCaller
	}
	caller := *t.ctx.CurrentUser
	now := t.ctx.CurrentTimestamp

	args, method, err := common.ParseContractCallArgs(tokenABI, data, methodSig2ArgsReceiverConstructor)
	if err != nil {
		return nil, err
	}
	switch a := args.(type) {
	case *nameArgs:
		return method.Outputs.Pack(t.Name())
	case *symbolArgs:
		return method.Outputs.Pack(t.Symbol())
	case *decimalsArgs:
		return method.Outputs.Pack(t.Decimals())
	case *ownerArgs:
		return method.Outputs.Pack(t.Owner())
	case *totalSupplyArgs:
		return method.Outputs.Pack(t.TotalSupply())
	case *balanceOfArgs:
		return method.Outputs.Pack(t.BalanceOf(a.Account))
	case *heldArgs:
		return method.Outputs.Pack(t.Held(a.Account))
	case *allowanceArgs:
		return method.Outputs.Pack(t.Allowance(a.Holder, a.Spender))
	case *mintArgs:
		if err := t.Mint(caller, a.Recipient, a.Amount); err != nil {
			return nil, err
		}
		return method.Outputs.Pack(true)
	case *burnArgs:
		if err := t.Burn(caller, a.Target); err != nil {
			return nil, err
		}
		return method.Outputs.Pack(true)
	case *holdArgs:
		if err := t.Hold(caller, a.Target, a.Duration, now); err != nil {
			return nil, err
		}
		return method.Outputs.Pack(true)
	case *transferArgs:
		if err := t.Transfer(caller, a.Recipient, a.Amount, now); err != nil {
			return nil, err
		}
		return method.Outputs.Pack(true)
	case *approveArgs:
		if err := t.Approve(caller, a.Spender, a.Amount); err != nil {
			return nil, err
		}
		return method.Outputs.Pack(true)
	case *transferFromArgs:
		if err := t.TransferFrom(caller, a.From, a.Recipient, a.Amount, now); err != nil {
			return nil, err
		}
		return method.Outputs.Pack(true)
	case *allowAndTransferArgs:
		if err := t.AllowAndTransfer(caller, a.Holder, now); err != nil {
			return nil, err
		}
		return method.Outputs.Pack(true)
	default:
		return nil, errors.Wrapf(common.ErrMethodNotFound, "%s", method.Sig)
	}
}

// IsReadOnly reports whether data calls a view method
func IsReadOnly(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	method, err := tokenABI.MethodById(data[:4])
	if err != nil {
		return false
	}
	return method.IsConstant()
}
