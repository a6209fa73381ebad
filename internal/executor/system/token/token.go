package token

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/hold-token/internal/executor/system/common"
	"github.com/axiomesh/hold-token/internal/ledger"
	"github.com/axiomesh/hold-token/pkg/packer"
)

var _ IToken = (*Token)(nil)
var _ common.SystemContract = (*Token)(nil)

var (
	tokenABI *abi.ABI

	zeroAddress = ethcommon.HexToAddress(common.ZeroAddress)
)

func init() {
	a, err := abi.JSON(strings.NewReader(abiData))
	if err != nil {
		panic(err)
	}
	tokenABI = &a
}

// ABI returns the call and event encoding of the token contract
func ABI() *abi.ABI {
	return tokenABI
}

type Token struct {
	logger  logrus.FieldLogger
	ctx     *common.VMContext
	account ledger.IAccount

	meta       *common.VMSlot[Metadata]
	held       *common.VMMap[ethcommon.Address, uint64]
	allowances *common.VMMap[[2]ethcommon.Address, *big.Int]
}

func New(cfg *common.SystemContractConfig) *Token {
	return &Token{
		logger: cfg.Logger,
	}
}

func (t *Token) SetContext(ctx *common.VMContext) {
	t.ctx = ctx
	t.account = ctx.StateLedger.GetOrCreateAccount(ethcommon.HexToAddress(common.TokenContractAddr))
	t.meta = common.NewVMSlot[Metadata](t.account, MetadataKey)
	t.held = common.NewVMMap[ethcommon.Address, uint64](t.account, HeldKey, func(key ethcommon.Address) string {
		return key.String()
	})
	t.allowances = common.NewVMMap[[2]ethcommon.Address, *big.Int](t.account, AllowancesKey, getAllowancesKey)
}

// Create writes the token metadata with creator as the owner, all balances,
// holds and the supply start at zero.
func Create(lg ledger.StateLedger, logger logrus.FieldLogger, creator ethcommon.Address, name, symbol string, decimals uint8) (*Token, error) {
	t := New(&common.SystemContractConfig{Logger: logger})
	t.SetContext(&common.VMContext{StateLedger: lg})
	if t.meta.Has() {
		return nil, ErrAlreadyInitialized
	}
	if creator == zeroAddress {
		return nil, errors.Wrap(ErrEmptyAccount, "creator")
	}
	if err := t.meta.Put(Metadata{
		Name:     name,
		Symbol:   symbol,
		Decimals: decimals,
		Owner:    creator,
	}); err != nil {
		return nil, err
	}
	t.setTotalSupply(big.NewInt(0))
	return t, nil
}

// Init creates the token and mints the genesis balances as the owner
func Init(lg ledger.StateLedger, logger logrus.FieldLogger, config Config) error {
	t, err := Create(lg, logger, config.Owner, config.Name, config.Symbol, config.Decimals)
	if err != nil {
		return err
	}

	lo.ForEach(config.InitialAccounts, func(ac *InitialAccount, _ int) {
		if err != nil {
			return
		}
		err = t.Mint(config.Owner, ac.Address, ac.Balance)
	})
	if err != nil {
		return errors.Wrap(err, "mint genesis balance failed")
	}
	logger.WithFields(logrus.Fields{
		"name":         config.Name,
		"symbol":       config.Symbol,
		"owner":        config.Owner,
		"total_supply": t.TotalSupply(),
	}).Info("Create token")
	return nil
}

func (t *Token) metadata() Metadata {
	_, meta, err := t.meta.Get()
	if err != nil {
		t.logger.WithField("err", err).Error("Read token metadata failed")
	}
	return meta
}

func (t *Token) Name() string {
	return t.metadata().Name
}

func (t *Token) Symbol() string {
	return t.metadata().Symbol
}

func (t *Token) Decimals() uint8 {
	return t.metadata().Decimals
}

func (t *Token) Owner() ethcommon.Address {
	return t.metadata().Owner
}

func (t *Token) TotalSupply() *big.Int {
	ok, totalSupply := t.account.GetState([]byte(TotalSupplyKey))
	if !ok {
		return big.NewInt(0)
	}
	return new(big.Int).SetBytes(totalSupply)
}

func (t *Token) setTotalSupply(value *big.Int) {
	t.account.SetState([]byte(TotalSupplyKey), value.Bytes())
}

func (t *Token) BalanceOf(account ethcommon.Address) *big.Int {
	ok, balance := t.account.GetState(getBalanceKey(account))
	if !ok {
		return big.NewInt(0)
	}
	return new(big.Int).SetBytes(balance)
}

func (t *Token) setBalance(account ethcommon.Address, value *big.Int) {
	if value.Sign() == 0 {
		t.account.SetState(getBalanceKey(account), nil)
		return
	}
	t.account.SetState(getBalanceKey(account), value.Bytes())
}

func (t *Token) Held(account ethcommon.Address) uint64 {
	until, err := t.held.GetOrDefault(account, 0)
	if err != nil {
		t.logger.WithFields(logrus.Fields{"account": account, "err": err}).Error("Read held failed")
	}
	return until
}

func (t *Token) Allowance(holder, spender ethcommon.Address) *big.Int {
	allowance, err := t.allowances.GetOrDefault([2]ethcommon.Address{holder, spender}, nil)
	if err != nil {
		t.logger.WithFields(logrus.Fields{"holder": holder, "spender": spender, "err": err}).Error("Read allowance failed")
	}
	if allowance == nil {
		return big.NewInt(0)
	}
	return allowance
}

func (t *Token) setAllowance(holder, spender ethcommon.Address, value *big.Int) error {
	key := [2]ethcommon.Address{holder, spender}
	if value.Sign() == 0 {
		t.allowances.Delete(key)
		return nil
	}
	return t.allowances.Put(key, value)
}

func (t *Token) checkOwner(caller ethcommon.Address) error {
	if !t.meta.Has() {
		return ErrNotInitialized
	}
	if caller != t.Owner() {
		return errors.Wrapf(ErrNotOwner, "caller %s", caller)
	}
	return nil
}

// checkPayable verifies the payer is out of its hold window and can pay amount
func (t *Token) checkPayable(payer ethcommon.Address, amount *big.Int, now uint64) error {
	// the hold boundary belongs to the unlocked side
	if until := t.Held(payer); now < until {
		return errors.Wrapf(ErrHeld, "%s until %d, now %d", payer, until, now)
	}
	if t.BalanceOf(payer).Cmp(amount) < 0 {
		return errors.Wrapf(ErrInsufficientBalance, "%s", payer)
	}
	return nil
}

func (t *Token) move(from, to ethcommon.Address, amount *big.Int) {
	t.setBalance(from, new(big.Int).Sub(t.BalanceOf(from), amount))
	t.setBalance(to, new(big.Int).Add(t.BalanceOf(to), amount))
	t.recordLog(&EventTransfer{From: from, To: to, Value: amount})
}

func (t *Token) Mint(caller, recipient ethcommon.Address, amount *big.Int) error {
	if err := t.checkOwner(caller); err != nil {
		return err
	}
	if err := checkValue(amount); err != nil {
		return err
	}
	if recipient == zeroAddress {
		return errors.Wrap(ErrEmptyAccount, "mint to the zero address")
	}
	newSupply := new(big.Int).Add(t.TotalSupply(), amount)
	if newSupply.Cmp(math.MaxBig256) > 0 {
		return ErrOverflow
	}

	t.setTotalSupply(newSupply)
	t.setBalance(recipient, new(big.Int).Add(t.BalanceOf(recipient), amount))
	t.recordLog(&EventTransfer{From: zeroAddress, To: recipient, Value: amount})
	return nil
}

func (t *Token) Burn(caller, target ethcommon.Address) error {
	if err := t.checkOwner(caller); err != nil {
		return err
	}
	balance := t.BalanceOf(target)
	newSupply := new(big.Int).Sub(t.TotalSupply(), balance)
	if newSupply.Sign() < 0 {
		return ErrTotalSupply
	}

	t.setTotalSupply(newSupply)
	t.setBalance(target, big.NewInt(0))
	t.recordLog(&EventTransfer{From: target, To: zeroAddress, Value: balance})
	return nil
}

func (t *Token) Hold(caller, target ethcommon.Address, duration uint64, now uint64) error {
	if err := t.checkOwner(caller); err != nil {
		return err
	}
	until := now + duration
	if until < now {
		return errors.Wrapf(ErrOverflow, "hold %d seconds from %d", duration, now)
	}

	if err := t.held.Put(target, until); err != nil {
		return err
	}
	t.recordLog(&EventHold{Account: target, Until: until})
	return nil
}

func (t *Token) Transfer(caller, recipient ethcommon.Address, amount *big.Int, now uint64) error {
	if err := checkValue(amount); err != nil {
		return err
	}
	if recipient == zeroAddress {
		return errors.Wrap(ErrEmptyAccount, "transfer to the zero address")
	}
	if err := t.checkPayable(caller, amount, now); err != nil {
		return err
	}

	t.move(caller, recipient, amount)
	return nil
}

func (t *Token) Approve(caller, spender ethcommon.Address, amount *big.Int) error {
	if err := checkValue(amount); err != nil {
		return err
	}
	if spender == zeroAddress {
		return errors.Wrap(ErrEmptyAccount, "approve to the zero address")
	}

	if err := t.setAllowance(caller, spender, amount); err != nil {
		return err
	}
	t.recordLog(&EventApproval{Owner: caller, Spender: spender, Value: amount})
	return nil
}

func (t *Token) TransferFrom(caller, from, recipient ethcommon.Address, amount *big.Int, now uint64) error {
	if err := checkValue(amount); err != nil {
		return err
	}
	allowance := t.Allowance(from, caller)
	if allowance.Cmp(amount) < 0 {
		return errors.Wrapf(ErrNotEnoughAllowance, "%s for %s", caller, from)
	}
	if recipient == zeroAddress {
		return errors.Wrap(ErrEmptyAccount, "transfer to the zero address")
	}
	if err := t.checkPayable(from, amount, now); err != nil {
		return err
	}

	if err := t.setAllowance(from, caller, new(big.Int).Sub(allowance, amount)); err != nil {
		return err
	}
	t.move(from, recipient, amount)
	return nil
}

func (t *Token) AllowAndTransfer(caller, holder ethcommon.Address, now uint64) error {
	allowance := t.Allowance(holder, caller)
	if allowance.Sign() == 0 {
		return errors.Wrapf(ErrNotEnoughAllowance, "%s for %s", caller, holder)
	}
	if err := t.checkPayable(holder, allowance, now); err != nil {
		return err
	}

	if err := t.setAllowance(holder, caller, big.NewInt(0)); err != nil {
		return err
	}
	t.recordLog(&EventApproval{Owner: holder, Spender: caller, Value: big.NewInt(0)})
	t.move(holder, caller, allowance)
	return nil
}

// recordLog appends an event to the current call, a nil log buffer means logs are not collected
func (t *Token) recordLog(ev packer.Event) {
	if t.ctx == nil || t.ctx.CurrentLogs == nil {
		return
	}
	log, err := ev.Pack(*tokenABI)
	if err != nil {
		t.logger.WithFields(logrus.Fields{"event": fmt.Sprintf("%T", ev), "err": err}).Error("Pack event failed")
		return
	}
	log.Address = ethcommon.HexToAddress(common.TokenContractAddr)
	*t.ctx.CurrentLogs = append(*t.ctx.CurrentLogs, log)
}
