package genesis

import (
	"encoding/json"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/hold-token/internal/chain"
	"github.com/axiomesh/hold-token/internal/executor/system"
	"github.com/axiomesh/hold-token/internal/executor/system/common"
	"github.com/axiomesh/hold-token/internal/ledger"
	"github.com/axiomesh/hold-token/pkg/repo"
	"github.com/axiomesh/hold-token/pkg/types"
)

var (
	genesisConfigKey = []byte("genesis_cfg")
)

// Initialize creates the token and commits it as block 0
func Initialize(genesis *repo.GenesisConfig, lg *ledger.Ledger, clock chain.Clock, logger logrus.FieldLogger) (*types.BlockHeader, error) {
	if lg.Initialized() {
		return nil, errors.New("ledger is already initialized")
	}

	if err := initializeGenesisConfig(genesis, lg.StateLedger); err != nil {
		return nil, err
	}

	if err := system.GenesisInit(genesis, lg.StateLedger, logger); err != nil {
		return nil, err
	}

	if err := lg.StateLedger.Commit(0); err != nil {
		return nil, errors.Wrap(err, "commit genesis state failed")
	}

	header := chain.GenesisHeader(clock, genesis.Timestamp)
	if err := lg.PersistExecutionResult(header, nil); err != nil {
		return nil, errors.Wrap(err, "persist genesis block failed")
	}

	logger.WithFields(logrus.Fields{
		"name":      genesis.Token.Name,
		"symbol":    genesis.Token.Symbol,
		"owner":     genesis.Token.Owner,
		"accounts":  len(genesis.Accounts),
		"timestamp": header.Timestamp,
	}).Info("Initialize genesis")
	return header, nil
}

func IsInitialized(lg *ledger.Ledger) bool {
	exists, _ := lg.StateLedger.GetState(ethcommon.HexToAddress(common.ZeroAddress), genesisConfigKey)
	return exists
}

func initializeGenesisConfig(genesis *repo.GenesisConfig, lg ledger.StateLedger) error {
	genesisCfg, err := json.Marshal(genesis)
	if err != nil {
		return err
	}
	lg.SetState(ethcommon.HexToAddress(common.ZeroAddress), genesisConfigKey, genesisCfg)
	return nil
}

// GetGenesisConfig retrieves the genesis configuration from the given ledger.
func GetGenesisConfig(lg ledger.StateAccessor) (*repo.GenesisConfig, error) {
	exists, data := lg.GetState(ethcommon.HexToAddress(common.ZeroAddress), genesisConfigKey)
	if !exists {
		return nil, nil
	}

	genesis := &repo.GenesisConfig{}
	if err := json.Unmarshal(data, genesis); err != nil {
		return nil, err
	}
	return genesis, nil
}
