package common

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/axiomesh/hold-token/internal/app"
	"github.com/axiomesh/hold-token/pkg/loggers"
	"github.com/axiomesh/hold-token/pkg/repo"
)

func Pretty(d any) error {
	res, err := json.MarshalIndent(d, "", "\t")
	if err != nil {
		return err
	}
	fmt.Println(string(res))
	return nil
}

func FileExist(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func GetRootPath(ctx *cli.Context) (string, error) {
	return repo.LoadRepoRootFromEnv(ctx.String("repo"))
}

// PrepareRepo loads an existing repo for offline commands
func PrepareRepo(ctx *cli.Context) (*repo.Repo, error) {
	p, err := GetRootPath(ctx)
	if err != nil {
		return nil, err
	}
	if !FileExist(filepath.Join(p, repo.CfgFileName)) {
		return nil, errors.New("hold-token repo not exist")
	}

	r, err := repo.Load(p)
	if err != nil {
		return nil, err
	}

	// close monitor in offline mode
	r.Config.Monitor.Enable = false

	fmt.Printf("%s-repo: %s\n", repo.AppName, r.RepoRoot)

	if err := loggers.Initialize(ctx.Context, r, false); err != nil {
		return nil, err
	}

	if err := app.PrepareHoldToken(r); err != nil {
		return nil, fmt.Errorf("prepare hold-token failed: %w", err)
	}
	return r, nil
}
