package repo

const (
	AppName = "HoldToken"

	// CfgFileName is the default config name
	CfgFileName = "config.toml"

	genesisCfgFileName = "genesis.toml"

	// defaultRepoRoot is the path to the default config dir location.
	defaultRepoRoot = "~/.hold-token"

	// rootPathEnvVar is the environment variable used to change the path root.
	rootPathEnvVar = "HOLD_TOKEN_PATH"

	envPrefix        = "HOLD_TOKEN"
	genesisEnvPrefix = "HOLD_TOKEN_GENESIS"

	pidFileName = "running.pid"

	LogsDirName = "logs"

	StorageDirName = "storage"
)

const (
	KVStorageTypeLeveldb = "leveldb"
	KVStorageTypePebble  = "pebble"
	KVStorageTypeBolt    = "bolt"
	KVStorageTypeMemory  = "memory"
	KVStorageCacheSize   = 16
	KVStorageSync        = true
)

var (
	BuildVersion = "dev"
	BuildCommit  = ""
	BuildDate    = ""
	BuildGoVer   = ""
)
