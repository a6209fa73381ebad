package repo

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// MockRepo returns a repo rooted in a temp dir backed by in-memory storage.
func MockRepo(t testing.TB) *Repo {
	repoRoot := t.TempDir()
	rep := Default(repoRoot)
	rep.Config.Storage.KvType = KVStorageTypeMemory
	rep.Config.Monitor.Enable = false
	rep.Config.Port.API = 0
	require.Nil(t, rep.Flush())
	return rep
}

func writeRaw(p string, content string) error {
	return os.WriteFile(p, []byte(content), 0644)
}
