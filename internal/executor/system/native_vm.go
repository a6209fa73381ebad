package system

import (
	"fmt"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/hold-token/internal/executor/system/common"
	"github.com/axiomesh/hold-token/internal/executor/system/token"
	"github.com/axiomesh/hold-token/internal/ledger"
	"github.com/axiomesh/hold-token/pkg/loggers"
	"github.com/axiomesh/hold-token/pkg/repo"
	"github.com/axiomesh/hold-token/pkg/types"
)

var (
	ErrNotExistSystemContract  = errors.New("not exist this system contract")
	ErrNotDeploySystemContract = errors.New("not deploy this system contract")
)

// NativeVM routes calls to the system contract deployed at the target address
type NativeVM struct {
	logger           logrus.FieldLogger
	stateLedger      ledger.StateLedger
	currentLogs      []*types.Log
	currentHeight    uint64
	currentTimestamp uint64
	from             ethcommon.Address
	to               *ethcommon.Address

	// contract address mapping to contact instance
	contract2Instance map[ethcommon.Address]common.SystemContract
}

func New() *NativeVM {
	return NewWithLogger(loggers.Logger(loggers.Token))
}

func NewWithLogger(logger logrus.FieldLogger) *NativeVM {
	nvm := &NativeVM{
		logger:            logger,
		contract2Instance: make(map[ethcommon.Address]common.SystemContract),
	}

	cfg := &common.SystemContractConfig{
		Logger: nvm.logger,
	}

	// deploy all system contract
	nvm.Deploy(common.TokenContractAddr, token.New(cfg))
	return nvm
}

func (nvm *NativeVM) Deploy(addr string, instance common.SystemContract) {
	contractAddr := ethcommon.HexToAddress(addr)
	if !common.IsSystemContract(contractAddr) {
		panic(fmt.Sprintf("this system contract %s is out of range", addr))
	}

	if _, ok := nvm.contract2Instance[contractAddr]; ok {
		panic("deploy system contract repeated")
	}
	nvm.contract2Instance[contractAddr] = instance
}

func (nvm *NativeVM) IsSystemContract(addr ethcommon.Address) bool {
	_, ok := nvm.contract2Instance[addr]
	return ok
}

// Reset binds the vm to the environment of the next call
func (nvm *NativeVM) Reset(currentHeight uint64, currentTimestamp uint64, stateLedger ledger.StateLedger, from ethcommon.Address, to *ethcommon.Address) {
	nvm.stateLedger = stateLedger
	nvm.currentHeight = currentHeight
	nvm.currentTimestamp = currentTimestamp
	nvm.currentLogs = make([]*types.Log, 0)
	nvm.from = from
	nvm.to = to
}

// Run executes data against the reset target, a panic inside the contract is reported as an error
func (nvm *NativeVM) Run(data []byte) (execResult []byte, execErr error) {
	defer func() {
		if err := recover(); err != nil {
			nvm.logger.WithField("err", err).Error("System contract panic")
			execErr = fmt.Errorf("%s", err)
		}
	}()

	if nvm.to == nil {
		return nil, ErrNotExistSystemContract
	}
	contractInstance, ok := nvm.contract2Instance[*nvm.to]
	if !ok {
		return nil, ErrNotDeploySystemContract
	}

	// set context first
	contractInstance.SetContext(&common.VMContext{
		StateLedger:      nvm.stateLedger,
		CurrentHeight:    nvm.currentHeight,
		CurrentTimestamp: nvm.currentTimestamp,
		CurrentLogs:      &nvm.currentLogs,
		CurrentUser:      &nvm.from,
	})

	ret, err := contractInstance.Run(data)
	nvm.logger.WithFields(logrus.Fields{
		"contract": nvm.to.Hex(),
		"from":     nvm.from.Hex(),
		"height":   nvm.currentHeight,
		"err":      err,
	}).Debug("Run system contract")
	return ret, err
}

// Logs returns the events of the last Run
func (nvm *NativeVM) Logs() []*types.Log {
	return nvm.currentLogs
}

// GenesisInit creates the token described by the genesis config
func GenesisInit(genesis *repo.GenesisConfig, lg ledger.StateLedger, logger logrus.FieldLogger) error {
	conf, err := token.GenerateConfig(genesis)
	if err != nil {
		return errors.Wrap(err, "generate token config failed")
	}
	return token.Init(lg, logger, conf)
}
