package genesis

import (
	"encoding/json"
	"math/big"
	"testing"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/axiomesh/hold-token/internal/chain"
	"github.com/axiomesh/hold-token/internal/executor/system/common"
	"github.com/axiomesh/hold-token/internal/executor/system/token"
	"github.com/axiomesh/hold-token/internal/ledger"
	"github.com/axiomesh/hold-token/internal/ledger/mock_ledger"
	"github.com/axiomesh/hold-token/pkg/repo"
)

func TestInitialize(t *testing.T) {
	rep := repo.MockRepo(t)
	lg, err := ledger.NewLedger(rep)
	require.Nil(t, err)
	defer lg.Close()

	genesisConfig := repo.DefaultGenesisConfig()
	genesisConfig.Accounts = []*repo.Account{
		{Address: repo.DefaultAccountAddrs[1], Balance: "1000"},
	}
	clock := chain.NewManualClock(time.Unix(1700000000, 0))
	header, err := Initialize(genesisConfig, lg, clock, logrus.New())
	require.Nil(t, err)
	assert.Equal(t, uint64(0), header.Number)
	assert.Equal(t, uint64(1700000000), header.Timestamp)
	assert.True(t, lg.Initialized())
	assert.True(t, IsInitialized(lg))

	tk := token.New(&common.SystemContractConfig{Logger: logrus.New()})
	tk.SetContext(common.NewVMContext(lg.StateLedger, 0, header.Timestamp, ethcommon.Address{}))
	assert.Equal(t, big.NewInt(1000), tk.TotalSupply())
	assert.Equal(t, ethcommon.HexToAddress(repo.DefaultAccountAddrs[0]), tk.Owner())

	stored, err := GetGenesisConfig(lg.StateLedger)
	require.Nil(t, err)
	assert.Equal(t, genesisConfig.Token, stored.Token)

	_, err = Initialize(genesisConfig, lg, clock, logrus.New())
	assert.NotNil(t, err)
}

func TestGetGenesisConfig(t *testing.T) {
	mockCtl := gomock.NewController(t)
	stateLedger := mock_ledger.NewMockStateLedger(mockCtl)

	stateLedger.EXPECT().GetState(gomock.Any(), genesisConfigKey).Return(false, nil).Times(1)
	cfg, err := GetGenesisConfig(stateLedger)
	assert.Nil(t, err)
	assert.Nil(t, cfg)

	data, err := json.Marshal(repo.DefaultGenesisConfig())
	require.Nil(t, err)
	stateLedger.EXPECT().GetState(gomock.Any(), genesisConfigKey).Return(true, data).Times(1)
	cfg, err = GetGenesisConfig(stateLedger)
	assert.Nil(t, err)
	assert.Equal(t, "TTK", cfg.Token.Symbol)

	stateLedger.EXPECT().GetState(gomock.Any(), genesisConfigKey).Return(true, []byte{}).Times(1)
	_, err = GetGenesisConfig(stateLedger)
	assert.NotNil(t, err)
}
