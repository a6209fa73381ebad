package main

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/cheynewallace/tabby"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/urfave/cli/v2"

	"github.com/axiomesh/hold-token/api/httpapi"
	"github.com/axiomesh/hold-token/internal/executor/system/common"
	"github.com/axiomesh/hold-token/internal/executor/system/token"
	"github.com/axiomesh/hold-token/pkg/repo"
	"github.com/axiomesh/hold-token/pkg/types"
)

const defaultAPI = "http://127.0.0.1:8881"

func apiFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "api",
		Usage:   "node api address",
		EnvVars: []string{"HOLD_TOKEN_API"},
		Value:   defaultAPI,
	}
}

func keyFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "key",
		Usage:    "hex encoded secp256k1 private key of the caller",
		EnvVars:  []string{"HOLD_TOKEN_KEY"},
		Required: true,
	}
}

func timeoutFlag() *cli.DurationFlag {
	return &cli.DurationFlag{
		Name:  "timeout",
		Usage: "api request timeout",
		Value: 10 * time.Second,
	}
}

func newClient(ctx *cli.Context) *httpapi.Client {
	return httpapi.NewClient(ctx.String("api"), ctx.Duration("timeout"))
}

func parseAddress(s string) (ethcommon.Address, error) {
	if !ethcommon.IsHexAddress(s) {
		return ethcommon.Address{}, errors.Errorf("invalid address %q", s)
	}
	return ethcommon.HexToAddress(s), nil
}

func argAddress(ctx *cli.Context, i int, name string) (ethcommon.Address, error) {
	if ctx.NArg() <= i {
		return ethcommon.Address{}, errors.Errorf("missing argument <%s>", name)
	}
	return parseAddress(ctx.Args().Get(i))
}

func argUint64(ctx *cli.Context, i int, name string) (uint64, error) {
	if ctx.NArg() <= i {
		return 0, errors.Errorf("missing argument <%s>", name)
	}
	v, err := cast.ToUint64E(ctx.Args().Get(i))
	if err != nil {
		return 0, errors.Wrapf(err, "invalid <%s>", name)
	}
	return v, nil
}

// parseAmount turns a human readable amount into the smallest unit
func parseAmount(s string, decimals uint8) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid amount %q", s)
	}
	if d.IsNegative() {
		return nil, errors.Errorf("negative amount %q", s)
	}
	shifted := d.Shift(int32(decimals))
	if !shifted.Equal(shifted.Truncate(0)) {
		return nil, errors.Errorf("amount %q has more than %d decimals", s, decimals)
	}
	return shifted.BigInt(), nil
}

func formatAmount(raw string, decimals uint8) string {
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return raw
	}
	return decimal.NewFromBigInt(v, -int32(decimals)).String()
}

func argAmount(ctx *cli.Context, i int, decimals uint8) (*big.Int, error) {
	if ctx.NArg() <= i {
		return nil, errors.New("missing argument <amount>")
	}
	return parseAmount(ctx.Args().Get(i), decimals)
}

func loadKey(ctx *cli.Context) (*ecdsa.PrivateKey, ethcommon.Address, error) {
	key, err := repo.ParseKey(ctx.String("key"))
	if err != nil {
		return nil, ethcommon.Address{}, errors.Wrap(err, "invalid key")
	}
	return key, ethcommon.HexToAddress(repo.KeyToAddress(key)), nil
}

// sendCall signs a token call with --key and waits for the receipt
func sendCall(ctx *cli.Context, method string, args ...any) error {
	key, from, err := loadKey(ctx)
	if err != nil {
		return err
	}
	data, err := common.PackCall(token.ABI(), method, args...)
	if err != nil {
		return err
	}

	client := newClient(ctx)
	nonce, err := client.Nonce(ctx.Context, from)
	if err != nil {
		return err
	}
	tx, err := types.SignTx(types.NewTransaction(nonce, ethcommon.HexToAddress(common.TokenContractAddr), data), key)
	if err != nil {
		return err
	}
	receipt, err := client.SendTransaction(ctx.Context, tx)
	if err != nil {
		return err
	}
	printReceipt(receipt)
	if !receipt.Successful() {
		return cli.Exit("", 1)
	}
	return nil
}

func printReceipt(r *types.Receipt) {
	t := tabby.New()
	t.AddLine("tx hash", r.TxHash.String())
	t.AddLine("from", r.From.String())
	t.AddLine("nonce", r.Nonce)
	t.AddLine("timestamp", r.Timestamp)
	if r.Successful() {
		t.AddLine("status", color.GreenString("success"))
		t.AddLine("block", r.BlockNumber)
		t.AddLine("events", len(r.Logs))
	} else {
		t.AddLine("status", color.RedString("rejected"))
		if r.ErrKind != "" {
			t.AddLine("kind", color.YellowString(r.ErrKind))
		}
		t.AddLine("error", r.Err)
	}
	t.Print()
}

func warn(format string, a ...any) {
	_, _ = color.New(color.FgYellow).Fprintf(os.Stderr, format+"\n", a...)
}

func tokenDecimals(ctx *cli.Context) (uint8, error) {
	info, err := newClient(ctx).Token(ctx.Context)
	if err != nil {
		return 0, err
	}
	return info.Decimals, nil
}

func printHeld(res *httpapi.HeldResponse) {
	t := tabby.New()
	t.AddLine("account", res.Account.String())
	t.AddLine("held until", fmt.Sprintf("%d (%s)", res.HeldUntil, time.Unix(int64(res.HeldUntil), 0).UTC().Format(time.RFC3339)))
	t.AddLine("as of", fmt.Sprintf("%d", res.AsOf))
	if res.Held {
		t.AddLine("status", color.YellowString("held"))
	} else {
		t.AddLine("status", color.GreenString("unlocked"))
	}
	t.Print()
}
