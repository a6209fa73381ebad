package app

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/hold-token/api/httpapi"
	"github.com/axiomesh/hold-token/internal/chain"
	"github.com/axiomesh/hold-token/internal/components/status"
	"github.com/axiomesh/hold-token/internal/events"
	"github.com/axiomesh/hold-token/internal/events/kafka"
	"github.com/axiomesh/hold-token/internal/executor"
	"github.com/axiomesh/hold-token/internal/genesis"
	"github.com/axiomesh/hold-token/internal/ledger"
	"github.com/axiomesh/hold-token/internal/storagemgr"
	"github.com/axiomesh/hold-token/pkg/loggers"
	"github.com/axiomesh/hold-token/pkg/repo"
)

var ErrAlreadyStarted = errors.New("node already started")

type HoldToken struct {
	Ctx           context.Context
	Cancel        context.CancelFunc
	Repo          *repo.Repo
	logger        logrus.FieldLogger
	Ledger        *ledger.Ledger
	Chain         *chain.Chain
	BlockExecutor executor.Executor
	Publisher     events.Publisher
	API           *httpapi.Server

	status status.Set
}

func PrepareHoldToken(rep *repo.Repo) error {
	if err := storagemgr.Initialize(rep.Config.Storage.KvType, rep.Config.Storage.KvCacheSize, rep.Config.Storage.Sync); err != nil {
		return fmt.Errorf("storagemgr initialize: %w", err)
	}
	return nil
}

func NewHoldToken(rep *repo.Repo, ctx context.Context, cancel context.CancelFunc) (*HoldToken, error) {
	return NewHoldTokenWithClock(rep, chain.SystemClock{}, ctx, cancel)
}

func NewHoldTokenWithClock(rep *repo.Repo, clock chain.Clock, ctx context.Context, cancel context.CancelFunc) (*HoldToken, error) {
	if err := PrepareHoldToken(rep); err != nil {
		return nil, err
	}

	logger := loggers.Logger(loggers.App)

	// 0. load ledger
	lg, err := ledger.NewLedger(rep)
	if err != nil {
		return nil, fmt.Errorf("create ledger: %w", err)
	}

	// 1. init genesis on first start, otherwise the stored genesis wins
	if !lg.Initialized() {
		if _, err := genesis.Initialize(rep.GenesisConfig, lg, clock, logger); err != nil {
			lg.Close()
			return nil, fmt.Errorf("initialize genesis: %w", err)
		}
	} else {
		genesisCfg, err := genesis.GetGenesisConfig(lg.StateLedger)
		if err != nil {
			lg.Close()
			return nil, fmt.Errorf("load genesis config: %w", err)
		}
		if genesisCfg != nil {
			rep.GenesisConfig = genesisCfg
		}
	}

	c := chain.New(clock, lg.GetChainMeta(), loggers.Logger(loggers.Chain))
	txExec, err := executor.New(lg, c, loggers.Logger(loggers.Executor))
	if err != nil {
		lg.Close()
		return nil, fmt.Errorf("create BlockExecutor: %w", err)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if rep.Config.Events.Enable {
		publisher, err = kafka.NewPublisher(rep.Config.Events.KafkaBrokers, rep.Config.Events.Topic,
			rep.Config.Events.WriteTimeout.ToDuration(), loggers.Logger(loggers.Events))
		if err != nil {
			lg.Close()
			return nil, fmt.Errorf("create event publisher: %w", err)
		}
	}

	return &HoldToken{
		Ctx:           ctx,
		Cancel:        cancel,
		Repo:          rep,
		logger:        logger,
		Ledger:        lg,
		Chain:         c,
		BlockExecutor: txExec,
		Publisher:     publisher,
		API:           httpapi.New(rep, txExec, loggers.Logger(loggers.API)),
	}, nil
}

func (ht *HoldToken) Start() error {
	if ht.status.Has(status.Stopped) || !ht.status.TurnOn(status.Started) {
		return ErrAlreadyStarted
	}
	if err := ht.BlockExecutor.Start(); err != nil {
		return fmt.Errorf("block executor start: %w", err)
	}

	ht.start()
	if ht.Repo.Config.Events.Enable {
		ht.status.On(status.Publishing)
	}

	if err := ht.API.Start(); err != nil {
		return fmt.Errorf("api start: %w", err)
	}
	ht.status.On(status.Serving)

	latest := ht.Chain.Latest()
	ht.logger.WithFields(logrus.Fields{
		"height":    latest.Number,
		"timestamp": latest.Timestamp,
		"token":     ht.Repo.GenesisConfig.Token.Symbol,
		"owner":     ht.Repo.GenesisConfig.Token.Owner,
		"status":    ht.status.Names(),
	}).Infof("%s is ready", repo.AppName)
	return nil
}

// Stop releases the node, calling it again is a no-op
func (ht *HoldToken) Stop() error {
	if !ht.status.TurnOn(status.Stopped) {
		return nil
	}
	if ht.status.Has(status.Serving) {
		if err := ht.API.Stop(); err != nil {
			return fmt.Errorf("api stop: %w", err)
		}
	}
	if ht.status.Has(status.Started) {
		if err := ht.BlockExecutor.Stop(); err != nil {
			return fmt.Errorf("block executor stop: %w", err)
		}
	}
	ht.status.Off(status.Started, status.Serving, status.Publishing)
	ht.Cancel()
	if err := ht.Publisher.Close(); err != nil {
		ht.logger.WithField("err", err).Warn("Close event publisher failed")
	}
	ht.Ledger.Close()

	ht.logger.Infof("%s stopped", repo.AppName)
	return nil
}
