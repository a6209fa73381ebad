package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/axiomesh/hold-token/cmd/hold-token/common"
	"github.com/axiomesh/hold-token/pkg/repo"
)

var configCMD = &cli.Command{
	Name:  "config",
	Usage: "The config manage commands",
	Subcommands: []*cli.Command{
		{
			Name:   "generate",
			Usage:  "Generate default config and genesis",
			Action: generate,
		},
		{
			Name:   "show",
			Usage:  "Show the complete config processed by the environment variable",
			Action: show,
		},
		{
			Name:   "show-genesis",
			Usage:  "Show the complete genesis config processed by the environment variable",
			Action: showGenesis,
		},
		{
			Name:   "check",
			Usage:  "Check if the config file is valid",
			Action: check,
		},
	},
}

func generate(ctx *cli.Context) error {
	p, err := common.GetRootPath(ctx)
	if err != nil {
		return err
	}
	if common.FileExist(filepath.Join(p, repo.CfgFileName)) {
		fmt.Println("hold-token repo already exists")
		return nil
	}

	if !common.FileExist(p) {
		if err := os.MkdirAll(p, 0755); err != nil {
			return err
		}
	}

	if err := repo.Default(p).Flush(); err != nil {
		return err
	}
	fmt.Printf("config successfully generated in %s\n", p)
	return nil
}

func loadRepo(ctx *cli.Context) (*repo.Repo, error) {
	p, err := common.GetRootPath(ctx)
	if err != nil {
		return nil, err
	}
	if !common.FileExist(filepath.Join(p, repo.CfgFileName)) {
		return nil, nil
	}
	return repo.Load(p)
}

func show(ctx *cli.Context) error {
	r, err := loadRepo(ctx)
	if err != nil {
		return err
	}
	if r == nil {
		fmt.Println("hold-token repo not exist")
		return nil
	}
	str, err := repo.MarshalConfig(r.Config)
	if err != nil {
		return err
	}
	fmt.Println(str)
	return nil
}

func showGenesis(ctx *cli.Context) error {
	r, err := loadRepo(ctx)
	if err != nil {
		return err
	}
	if r == nil {
		fmt.Println("hold-token repo not exist")
		return nil
	}
	str, err := repo.MarshalConfig(r.GenesisConfig)
	if err != nil {
		return err
	}
	fmt.Println(str)
	return nil
}

func check(ctx *cli.Context) error {
	r, err := loadRepo(ctx)
	if err != nil {
		fmt.Println("config file format error, please check:", err)
		os.Exit(1)
		return nil
	}
	if r == nil {
		fmt.Println("hold-token repo not exist")
		return nil
	}
	fmt.Println("config is valid")
	return nil
}
