package ledger

import (
	"encoding/binary"
	"fmt"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/hold-token/internal/storage/kv"
)

var _ IAccount = (*SimpleAccount)(nil)

// SimpleAccount is the in block view of an address: origin values read from DB
// and dirty values written since the last commit.
type SimpleAccount struct {
	logger logrus.FieldLogger
	Addr   ethcommon.Address

	originState map[string][]byte
	dirtyState  map[string][]byte

	originNonce *uint64
	dirtyNonce  *uint64

	ldb     kv.Storage
	changer *stateChanger
}

func NewAccount(ldb kv.Storage, addr ethcommon.Address, changer *stateChanger, logger logrus.FieldLogger) *SimpleAccount {
	return &SimpleAccount{
		logger:      logger,
		Addr:        addr,
		originState: make(map[string][]byte),
		dirtyState:  make(map[string][]byte),
		ldb:         ldb,
		changer:     changer,
	}
}

func (o *SimpleAccount) String() string {
	return fmt.Sprintf("{address: %v, nonce: %d}", o.Addr, o.GetNonce())
}

func (o *SimpleAccount) GetAddress() ethcommon.Address {
	return o.Addr
}

// GetState Get state from local cache, if not found, then get it from DB
func (o *SimpleAccount) GetState(key []byte) (bool, []byte) {
	if value, exist := o.dirtyState[string(key)]; exist {
		o.logger.Debugf("[GetState] get from dirty, addr: %v, key: %s, state: %s", o.Addr, key, hexutil.Encode(value))
		return value != nil, value
	}

	if value, exist := o.originState[string(key)]; exist {
		return value != nil, value
	}

	start := time.Now()
	val := o.ldb.Get(compositeStorageKey(o.Addr, key))
	stateReadDuration.Observe(float64(time.Since(start)) / float64(time.Second))

	o.originState[string(key)] = val
	o.logger.Debugf("[GetState] get from db, addr: %v, key: %s, state: %s", o.Addr, key, hexutil.Encode(val))
	return val != nil, val
}

func (o *SimpleAccount) SetState(key []byte, value []byte) {
	_, prev := o.GetState(key)
	o.changer.append(storageChange{
		account:  &o.Addr,
		key:      key,
		prevalue: prev,
	})
	o.logger.Debugf("[SetState] addr: %v, key: %s, before state: %s, after state: %s", o.Addr, key, hexutil.Encode(prev), hexutil.Encode(value))
	o.setState(key, value)
}

func (o *SimpleAccount) setState(key []byte, value []byte) {
	o.dirtyState[string(key)] = value
}

func (o *SimpleAccount) GetNonce() uint64 {
	if o.dirtyNonce != nil {
		return *o.dirtyNonce
	}
	if o.originNonce == nil {
		nonce := loadNonce(o.ldb, o.Addr)
		o.originNonce = &nonce
	}
	return *o.originNonce
}

func (o *SimpleAccount) SetNonce(nonce uint64) {
	o.changer.append(nonceChange{
		account: &o.Addr,
		prev:    o.GetNonce(),
	})
	o.setNonce(nonce)
}

func (o *SimpleAccount) setNonce(nonce uint64) {
	o.dirtyNonce = &nonce
}

// flush writes dirty values that differ from origin into batch
func (o *SimpleAccount) flush(batch kv.Batch) int {
	count := 0
	for key, value := range o.dirtyState {
		if origin, ok := o.originState[key]; ok && string(origin) == string(value) && (origin == nil) == (value == nil) {
			continue
		}
		if value == nil {
			batch.Delete(compositeStorageKey(o.Addr, []byte(key)))
		} else {
			batch.Put(compositeStorageKey(o.Addr, []byte(key)), value)
		}
		count++
	}
	if o.dirtyNonce != nil && *o.dirtyNonce != o.GetOriginNonce() {
		data := make([]byte, 8)
		binary.BigEndian.PutUint64(data, *o.dirtyNonce)
		batch.Put(compositeNonceKey(o.Addr), data)
		count++
	}
	return count
}

func (o *SimpleAccount) GetOriginNonce() uint64 {
	dirty := o.dirtyNonce
	o.dirtyNonce = nil
	nonce := o.GetNonce()
	o.dirtyNonce = dirty
	return nonce
}

func loadNonce(db kv.Storage, addr ethcommon.Address) uint64 {
	if data := db.Get(compositeNonceKey(addr)); len(data) == 8 {
		return binary.BigEndian.Uint64(data)
	}
	return 0
}
