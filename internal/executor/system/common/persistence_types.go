package common

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/axiomesh/hold-token/internal/ledger"
)

// VMMap stores json encoded values under "<mapName>_<key>" of a contract account
type VMMap[K, V any] struct {
	contractAccount ledger.IAccount
	mapName         string
	keyToString     func(key K) string
}

func NewVMMap[K, V any](contractAccount ledger.IAccount, mapName string, keyToString func(key K) string) *VMMap[K, V] {
	return &VMMap[K, V]{
		contractAccount: contractAccount,
		mapName:         mapName,
		keyToString:     keyToString,
	}
}

func (m *VMMap[K, V]) stateKey(key K) []byte {
	return []byte(fmt.Sprintf("%s_%s", m.mapName, m.keyToString(key)))
}

func (m *VMMap[K, V]) Get(k K) (exist bool, v V, err error) {
	exist, data := m.contractAccount.GetState(m.stateKey(k))
	if !exist || len(data) == 0 {
		return false, v, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return false, v, errors.Wrapf(err, "decode map[%s] key[%s]", m.mapName, m.keyToString(k))
	}
	return true, v, nil
}

// GetOrDefault returns def when k was never put or was deleted
func (m *VMMap[K, V]) GetOrDefault(k K, def V) (V, error) {
	exist, v, err := m.Get(k)
	if err != nil {
		return v, err
	}
	if !exist {
		return def, nil
	}
	return v, nil
}

func (m *VMMap[K, V]) MustGet(k K) (v V, err error) {
	exist, v, err := m.Get(k)
	if err != nil {
		return v, err
	}
	if !exist {
		return v, errors.Errorf("system contract[%s] map[%s] key[%s] not exist", m.contractAccount.GetAddress(), m.mapName, m.keyToString(k))
	}
	return v, nil
}

func (m *VMMap[K, V]) Has(k K) bool {
	exist, data := m.contractAccount.GetState(m.stateKey(k))
	return exist && len(data) != 0
}

func (m *VMMap[K, V]) Put(k K, v V) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	m.contractAccount.SetState(m.stateKey(k), data)
	return nil
}

func (m *VMMap[K, V]) Delete(k K) {
	m.contractAccount.SetState(m.stateKey(k), nil)
}

// VMSlot is a single json encoded value of a contract account
type VMSlot[V any] struct {
	contractAccount ledger.IAccount
	slotName        string
}

func NewVMSlot[V any](contractAccount ledger.IAccount, slotName string) *VMSlot[V] {
	return &VMSlot[V]{
		contractAccount: contractAccount,
		slotName:        slotName,
	}
}

func (s *VMSlot[V]) Get() (exist bool, v V, err error) {
	exist, data := s.contractAccount.GetState([]byte(s.slotName))
	if !exist || len(data) == 0 {
		return false, v, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return false, v, errors.Wrapf(err, "decode slot[%s]", s.slotName)
	}
	return true, v, nil
}

func (s *VMSlot[V]) MustGet() (v V, err error) {
	exist, v, err := s.Get()
	if err != nil {
		return v, err
	}
	if !exist {
		return v, errors.Errorf("system contract[%s] slot[%s] not exist", s.contractAccount.GetAddress(), s.slotName)
	}
	return v, nil
}

func (s *VMSlot[V]) Has() bool {
	exist, data := s.contractAccount.GetState([]byte(s.slotName))
	return exist && len(data) != 0
}

func (s *VMSlot[V]) Put(v V) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	s.contractAccount.SetState([]byte(s.slotName), data)
	return nil
}

func (s *VMSlot[V]) Delete() {
	s.contractAccount.SetState([]byte(s.slotName), nil)
}
