package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/axiomesh/hold-token/cmd/hold-token/common"
	"github.com/axiomesh/hold-token/internal/app"
	"github.com/axiomesh/hold-token/pkg/loggers"
	"github.com/axiomesh/hold-token/pkg/repo"
)

func start(ctx *cli.Context) error {
	p, err := common.GetRootPath(ctx)
	if err != nil {
		return err
	}

	if !common.FileExist(filepath.Join(p, repo.CfgFileName)) {
		fmt.Println("hold-token is not initialized, please execute 'hold-token config generate' first")
		return nil
	}

	r, err := repo.Load(p)
	if err != nil {
		return err
	}

	appCtx, cancel := context.WithCancel(ctx.Context)
	if err := loggers.Initialize(appCtx, r, true); err != nil {
		cancel()
		return err
	}
	defer cancel()

	log := loggers.Logger(loggers.App)
	printVersion(func(c string) {
		log.Info(c)
	})
	r.PrintNodeInfo(func(c string) {
		log.Info(c)
	})

	var wg sync.WaitGroup
	err = func() error {
		if err := repo.WritePid(r.RepoRoot); err != nil {
			return fmt.Errorf("write pid error: %s", err)
		}

		ht, err := app.NewHoldToken(r, appCtx, cancel)
		if err != nil {
			return fmt.Errorf("init hold-token failed: %w", err)
		}

		wg.Add(1)
		handleShutdown(ht, &wg)

		if err := ht.Start(); err != nil {
			return fmt.Errorf("start hold-token failed: %w", err)
		}
		return nil
	}()
	if err != nil {
		log.WithField("err", err).Error("Startup failed")
		return err
	}

	wg.Wait()

	if err := repo.RemovePID(r.RepoRoot); err != nil {
		log.WithField("err", err).Error("Remove pid failed")
		return fmt.Errorf("remove pid file error: %s", err)
	}
	return nil
}

func printVersion(writer func(c string)) {
	writer(fmt.Sprintf("%s version: %s-%s", repo.AppName, repo.BuildVersion, repo.BuildCommit))
	writer(fmt.Sprintf("App build date: %s", repo.BuildDate))
	writer(fmt.Sprintf("System version: %s/%s", runtime.GOOS, runtime.GOARCH))
	writer(fmt.Sprintf("Golang version: %s", runtime.Version()))
}

func handleShutdown(node *app.HoldToken, wg *sync.WaitGroup) {
	var stop = make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGTERM)
	signal.Notify(stop, syscall.SIGINT)

	go func() {
		<-stop
		fmt.Println("received interrupt signal, shutting down...")
		if err := node.Stop(); err != nil {
			panic(err)
		}
		wg.Done()
	}()
}
