package main

import (
	"fmt"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"

	"github.com/axiomesh/hold-token/cmd/hold-token/common"
	"github.com/axiomesh/hold-token/internal/ledger"
	"github.com/axiomesh/hold-token/pkg/types"
)

var ledgerGetBlockArgs = struct {
	Number uint64
}{}

var ledgerGetTxArgs = struct {
	Hash string
}{}

var ledgerCMD = &cli.Command{
	Name:  "ledger",
	Usage: "The ledger manage commands, the node must be stopped",
	Subcommands: []*cli.Command{
		{
			Name:   "block",
			Usage:  "Get block header by number, the latest one by default",
			Action: getBlock,
			Flags: []cli.Flag{
				&cli.Uint64Flag{
					Name:        "number",
					Usage:       "block number",
					Destination: &ledgerGetBlockArgs.Number,
					Required:    false,
				},
			},
		},
		{
			Name:   "tx",
			Usage:  "Get transaction receipt by hash",
			Action: getTx,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:        "hash",
					Usage:       "transaction hash",
					Destination: &ledgerGetTxArgs.Hash,
					Required:    true,
				},
			},
		},
		{
			Name:   "chain-meta",
			Usage:  "Get latest chain meta info",
			Action: getLatestChainMeta,
		},
	},
}

func openLedger(ctx *cli.Context) (*ledger.Ledger, error) {
	r, err := common.PrepareRepo(ctx)
	if err != nil {
		return nil, err
	}
	lg, err := ledger.NewLedger(r)
	if err != nil {
		return nil, fmt.Errorf("init ledger failed: %w", err)
	}
	return lg, nil
}

func getBlock(ctx *cli.Context) error {
	lg, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer lg.Close()

	var header *types.BlockHeader
	if ctx.IsSet("number") {
		header, err = lg.GetBlockHeader(ledgerGetBlockArgs.Number)
		if err != nil {
			return err
		}
	} else {
		header = lg.GetChainMeta()
		if header == nil {
			return ledger.ErrNotFound
		}
	}
	return common.Pretty(header)
}

func getTx(ctx *cli.Context) error {
	lg, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer lg.Close()

	receipt, err := lg.GetReceipt(ethcommon.HexToHash(ledgerGetTxArgs.Hash))
	if err != nil {
		return err
	}
	return common.Pretty(receipt)
}

func getLatestChainMeta(ctx *cli.Context) error {
	lg, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer lg.Close()

	meta := lg.GetChainMeta()
	if meta == nil {
		return ledger.ErrNotFound
	}
	return common.Pretty(map[string]any{
		"height":        meta.Number,
		"timestamp":     meta.Timestamp,
		"state_version": lg.StateLedger.Version(),
	})
}
