package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var devCMD = &cli.Command{
	Name:  "dev",
	Usage: "Chain time commands, only served when api.enable_dev is on",
	Subcommands: []*cli.Command{
		{
			Name:      "increase-time",
			Usage:     "Move the chain time forward",
			ArgsUsage: "<seconds>",
			Flags:     readFlags(),
			Action:    devIncreaseTime,
		},
		{
			Name:   "mine",
			Usage:  "Seal an empty block",
			Flags:  readFlags(),
			Action: devMine,
		},
	},
}

func devIncreaseTime(ctx *cli.Context) error {
	seconds, err := argUint64(ctx, 0, "seconds")
	if err != nil {
		return err
	}
	offset, err := newClient(ctx).IncreaseTime(ctx.Context, seconds)
	if err != nil {
		return err
	}
	fmt.Printf("chain time offset: %ds\n", offset)
	return nil
}

func devMine(ctx *cli.Context) error {
	header, err := newClient(ctx).Mine(ctx.Context)
	if err != nil {
		return err
	}
	fmt.Printf("mined block %d at %d\n", header.Number, header.Timestamp)
	return nil
}
