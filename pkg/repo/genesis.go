package repo

import (
	"os"
	"path"

	"github.com/pkg/errors"
)

type GenesisConfig struct {
	// Timestamp of the genesis block, zero means the time the node first starts
	Timestamp uint64     `mapstructure:"timestamp" toml:"timestamp"`
	Token     Token      `mapstructure:"token" toml:"token"`
	Accounts  []*Account `mapstructure:"accounts" toml:"accounts"`
}

type Token struct {
	Name     string `mapstructure:"name" toml:"name"`
	Symbol   string `mapstructure:"symbol" toml:"symbol"`
	Decimals uint8  `mapstructure:"decimals" toml:"decimals"`
	Owner    string `mapstructure:"owner" toml:"owner"`
}

// Account is minted by the owner in the genesis block
type Account struct {
	Address string `mapstructure:"address" toml:"address"`
	Balance string `mapstructure:"balance" toml:"balance"`
}

func DefaultGenesisConfig() *GenesisConfig {
	return &GenesisConfig{
		Timestamp: 0,
		Token: Token{
			Name:     "TEST TOKEN",
			Symbol:   "TTK",
			Decimals: 0,
			Owner:    DefaultAccountAddrs[0],
		},
		Accounts: []*Account{},
	}
}

func LoadGenesisConfig(repoRoot string) (*GenesisConfig, error) {
	genesis, err := func() (*GenesisConfig, error) {
		genesis := DefaultGenesisConfig()
		cfgPath := path.Join(repoRoot, genesisCfgFileName)
		if !fileExist(cfgPath) {
			err := os.MkdirAll(repoRoot, 0755)
			if err != nil {
				return nil, errors.Wrap(err, "failed to build default genesis config")
			}

			if err := writeConfigWithEnv(cfgPath, genesis); err != nil {
				return nil, errors.Wrap(err, "failed to build default genesis config")
			}
		} else {
			if err := readConfigFromFile(cfgPath, genesis); err != nil {
				return nil, err
			}
		}
		return genesis, nil
	}()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load genesis config")
	}
	return genesis, nil
}
