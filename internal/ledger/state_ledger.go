package ledger

import (
	"encoding/binary"
	"sync"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/hold-token/internal/storage/kv"
	"github.com/axiomesh/hold-token/internal/storagemgr"
)

var _ StateLedger = (*StateLedgerImpl)(nil)

type StateLedgerImpl struct {
	logger   logrus.FieldLogger
	cachedDB kv.Storage

	lock     sync.RWMutex
	accounts map[ethcommon.Address]*SimpleAccount
	changer  *stateChanger
	version  uint64
}

func NewStateLedgerImpl(stateStore kv.Storage, cacheSize int, logger logrus.FieldLogger) (*StateLedgerImpl, error) {
	cachedDB, err := storagemgr.NewCachedStorage(stateStore, cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "create state cache failed")
	}

	l := &StateLedgerImpl{
		logger:   logger,
		cachedDB: cachedDB,
		accounts: make(map[ethcommon.Address]*SimpleAccount),
		changer:  newChanger(),
	}
	if data := cachedDB.Get([]byte(versionKey)); len(data) == 8 {
		l.version = binary.BigEndian.Uint64(data)
	}
	return l, nil
}

func (l *StateLedgerImpl) GetOrCreateAccount(addr ethcommon.Address) IAccount {
	return l.getOrCreateAccount(addr)
}

func (l *StateLedgerImpl) getOrCreateAccount(addr ethcommon.Address) *SimpleAccount {
	l.lock.Lock()
	defer l.lock.Unlock()
	if account, ok := l.accounts[addr]; ok {
		return account
	}
	account := NewAccount(l.cachedDB, addr, l.changer, l.logger)
	l.accounts[addr] = account
	l.changer.append(createObjectChange{account: &account.Addr})
	return account
}

func (l *StateLedgerImpl) GetState(addr ethcommon.Address, key []byte) (bool, []byte) {
	return l.getOrCreateAccount(addr).GetState(key)
}

func (l *StateLedgerImpl) SetState(addr ethcommon.Address, key []byte, value []byte) {
	l.getOrCreateAccount(addr).SetState(key, value)
}

// GetNonce reads through a loaded account, or straight from DB without loading one
func (l *StateLedgerImpl) GetNonce(addr ethcommon.Address) uint64 {
	l.lock.RLock()
	account, ok := l.accounts[addr]
	l.lock.RUnlock()
	if ok {
		return account.GetNonce()
	}
	return loadNonce(l.cachedDB, addr)
}

func (l *StateLedgerImpl) SetNonce(addr ethcommon.Address, nonce uint64) {
	l.getOrCreateAccount(addr).SetNonce(nonce)
}

func (l *StateLedgerImpl) Snapshot() int {
	return l.changer.length()
}

func (l *StateLedgerImpl) RevertToSnapshot(snapshot int) {
	l.changer.revert(l, snapshot)
}

func (l *StateLedgerImpl) Commit(height uint64) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if height != l.version+1 && !(height == 0 && l.version == 0) {
		return errors.Errorf("commit state of height %d, but current version is %d", height, l.version)
	}

	start := time.Now()
	batch := l.cachedDB.NewBatch()
	count := 0
	for _, account := range l.accounts {
		count += account.flush(batch)
	}
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, height)
	batch.Put([]byte(versionKey), data)
	batch.Commit()
	flushDirtyWorldStateDuration.Observe(float64(time.Since(start)) / float64(time.Second))

	l.accounts = make(map[ethcommon.Address]*SimpleAccount)
	l.changer.reset()
	l.version = height

	l.logger.WithFields(logrus.Fields{
		"height":  height,
		"changes": count,
		"elapse":  time.Since(start),
	}).Debug("Commit state")
	return nil
}

func (l *StateLedgerImpl) Version() uint64 {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return l.version
}

func (l *StateLedgerImpl) Close() {
	if err := l.cachedDB.Close(); err != nil {
		l.logger.WithField("err", err).Warn("Close state storage failed")
	}
}
