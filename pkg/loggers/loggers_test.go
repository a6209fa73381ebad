package loggers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/axiomesh/hold-token/pkg/repo"
)

func TestInitialize(t *testing.T) {
	rep := repo.Default(t.TempDir())
	rep.Config.Log.Module.Token = "debug"
	rep.Config.Log.Module.API = "bad-level"
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := Initialize(ctx, rep, true)
	require.Nil(t, err)

	tokenLogger := Logger(Token).(*logrus.Entry)
	require.Equal(t, logrus.DebugLevel, tokenLogger.Logger.GetLevel())
	require.Equal(t, Token, tokenLogger.Data["module"])
	require.Equal(t, logrus.InfoLevel, Logger(API).(*logrus.Entry).Logger.GetLevel())

	Logger(Token).Info("persisted")
	entries, err := os.ReadDir(filepath.Join(rep.RepoRoot, repo.LogsDirName))
	require.Nil(t, err)
	require.NotEmpty(t, entries)
}

func TestLoggerDefault(t *testing.T) {
	for _, name := range []string{App, API, Executor, Storage, Ledger, Chain, Token, Events} {
		require.NotNil(t, Logger(name))
	}
}
