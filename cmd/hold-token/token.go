package main

import (
	"github.com/cheynewallace/tabby"
	"github.com/urfave/cli/v2"

	"github.com/axiomesh/hold-token/internal/executor/system/token"
)

func readFlags() []cli.Flag {
	return []cli.Flag{apiFlag(), timeoutFlag()}
}

func writeFlags() []cli.Flag {
	return []cli.Flag{apiFlag(), timeoutFlag(), keyFlag()}
}

var tokenCMD = &cli.Command{
	Name:  "token",
	Usage: "The token query and transaction commands",
	Subcommands: []*cli.Command{
		{
			Name:   "info",
			Usage:  "Show token metadata and total supply",
			Flags:  readFlags(),
			Action: tokenInfo,
		},
		{
			Name:      "balance",
			Usage:     "Show the balance of an account",
			ArgsUsage: "<account>",
			Flags:     readFlags(),
			Action:    tokenBalance,
		},
		{
			Name:      "held",
			Usage:     "Show the hold expiry of an account",
			ArgsUsage: "<account>",
			Flags:     readFlags(),
			Action:    tokenHeld,
		},
		{
			Name:      "allowance",
			Usage:     "Show the allowance granted by holder to spender",
			ArgsUsage: "<holder> <spender>",
			Flags:     readFlags(),
			Action:    tokenAllowance,
		},
		{
			Name:      "mint",
			Usage:     "Mint tokens to an account, owner only",
			ArgsUsage: "<recipient> <amount>",
			Flags:     writeFlags(),
			Action:    tokenMint,
		},
		{
			Name:      "burn",
			Usage:     "Burn the whole balance of an account, owner only",
			ArgsUsage: "<target>",
			Flags:     writeFlags(),
			Action:    tokenBurn,
		},
		{
			Name:      "hold",
			Usage:     "Lock an account for a number of seconds from now, owner only",
			ArgsUsage: "<target> <seconds>",
			Flags:     writeFlags(),
			Action:    tokenHold,
		},
		{
			Name:      "transfer",
			Usage:     "Transfer tokens from the caller",
			ArgsUsage: "<recipient> <amount>",
			Flags:     writeFlags(),
			Action:    tokenTransfer,
		},
		{
			Name:      "approve",
			Usage:     "Grant an allowance to a spender",
			ArgsUsage: "<spender> <amount>",
			Flags:     writeFlags(),
			Action:    tokenApprove,
		},
		{
			Name:      "transfer-from",
			Usage:     "Spend part of an allowance",
			ArgsUsage: "<from> <recipient> <amount>",
			Flags:     writeFlags(),
			Action:    tokenTransferFrom,
		},
		{
			Name:      "allow-and-transfer",
			Usage:     "Move the whole allowance granted by holder to the caller",
			ArgsUsage: "<holder>",
			Flags:     writeFlags(),
			Action:    tokenAllowAndTransfer,
		},
	},
}

func tokenInfo(ctx *cli.Context) error {
	info, err := newClient(ctx).Token(ctx.Context)
	if err != nil {
		return err
	}
	t := tabby.New()
	t.AddLine("name", info.Name)
	t.AddLine("symbol", info.Symbol)
	t.AddLine("decimals", info.Decimals)
	t.AddLine("owner", info.Owner.String())
	t.AddLine("total supply", formatAmount(info.TotalSupply, info.Decimals))
	t.Print()
	return nil
}

func tokenBalance(ctx *cli.Context) error {
	account, err := argAddress(ctx, 0, "account")
	if err != nil {
		return err
	}
	decimals, err := tokenDecimals(ctx)
	if err != nil {
		return err
	}
	res, err := newClient(ctx).Balance(ctx.Context, account)
	if err != nil {
		return err
	}
	t := tabby.New()
	t.AddHeader("account", "balance")
	t.AddLine(res.Account.String(), formatAmount(res.Balance, decimals))
	t.Print()
	return nil
}

func tokenHeld(ctx *cli.Context) error {
	account, err := argAddress(ctx, 0, "account")
	if err != nil {
		return err
	}
	res, err := newClient(ctx).Held(ctx.Context, account)
	if err != nil {
		return err
	}
	printHeld(res)
	return nil
}

func tokenAllowance(ctx *cli.Context) error {
	holder, err := argAddress(ctx, 0, "holder")
	if err != nil {
		return err
	}
	spender, err := argAddress(ctx, 1, "spender")
	if err != nil {
		return err
	}
	decimals, err := tokenDecimals(ctx)
	if err != nil {
		return err
	}
	res, err := newClient(ctx).Allowance(ctx.Context, holder, spender)
	if err != nil {
		return err
	}
	t := tabby.New()
	t.AddHeader("holder", "spender", "allowance")
	t.AddLine(res.Holder.String(), res.Spender.String(), formatAmount(res.Allowance, decimals))
	t.Print()
	return nil
}

func tokenMint(ctx *cli.Context) error {
	recipient, err := argAddress(ctx, 0, "recipient")
	if err != nil {
		return err
	}
	decimals, err := tokenDecimals(ctx)
	if err != nil {
		return err
	}
	amount, err := argAmount(ctx, 1, decimals)
	if err != nil {
		return err
	}
	return sendCall(ctx, token.MintMethod, recipient, amount)
}

func tokenBurn(ctx *cli.Context) error {
	target, err := argAddress(ctx, 0, "target")
	if err != nil {
		return err
	}
	return sendCall(ctx, token.BurnMethod, target)
}

func tokenHold(ctx *cli.Context) error {
	target, err := argAddress(ctx, 0, "target")
	if err != nil {
		return err
	}
	seconds, err := argUint64(ctx, 1, "seconds")
	if err != nil {
		return err
	}
	if seconds == 0 {
		warn("hold with zero seconds releases the account at the commit time")
	}
	return sendCall(ctx, token.HoldMethod, target, seconds)
}

func tokenTransfer(ctx *cli.Context) error {
	recipient, err := argAddress(ctx, 0, "recipient")
	if err != nil {
		return err
	}
	decimals, err := tokenDecimals(ctx)
	if err != nil {
		return err
	}
	amount, err := argAmount(ctx, 1, decimals)
	if err != nil {
		return err
	}
	return sendCall(ctx, token.TransferMethod, recipient, amount)
}

func tokenApprove(ctx *cli.Context) error {
	spender, err := argAddress(ctx, 0, "spender")
	if err != nil {
		return err
	}
	decimals, err := tokenDecimals(ctx)
	if err != nil {
		return err
	}
	amount, err := argAmount(ctx, 1, decimals)
	if err != nil {
		return err
	}
	return sendCall(ctx, token.ApproveMethod, spender, amount)
}

func tokenTransferFrom(ctx *cli.Context) error {
	from, err := argAddress(ctx, 0, "from")
	if err != nil {
		return err
	}
	recipient, err := argAddress(ctx, 1, "recipient")
	if err != nil {
		return err
	}
	decimals, err := tokenDecimals(ctx)
	if err != nil {
		return err
	}
	amount, err := argAmount(ctx, 2, decimals)
	if err != nil {
		return err
	}
	return sendCall(ctx, token.TransferFromMethod, from, recipient, amount)
}

func tokenAllowAndTransfer(ctx *cli.Context) error {
	holder, err := argAddress(ctx, 0, "holder")
	if err != nil {
		return err
	}
	return sendCall(ctx, token.AllowAndTransferMethod, holder)
}
