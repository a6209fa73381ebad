package common

import (
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVMMap(t *testing.T) {
	type Value struct {
		Name string
		Desc string
	}

	account := NewTestStateLedger(t).GetOrCreateAccount(ethcommon.HexToAddress(TokenContractAddr))
	vmMap := NewVMMap[string, Value](account, "test", func(key string) string { return key })

	assert.False(t, vmMap.Has("test"))
	exist, v, err := vmMap.Get("test")
	assert.Nil(t, err)
	assert.Empty(t, v)
	assert.False(t, exist)
	_, err = vmMap.MustGet("test")
	assert.NotNil(t, err)

	def, err := vmMap.GetOrDefault("test", Value{Name: "default"})
	assert.Nil(t, err)
	assert.Equal(t, "default", def.Name)

	old := Value{Name: "name", Desc: "desc"}
	err = vmMap.Put("test", old)
	assert.Nil(t, err)

	exist, v, err = vmMap.Get("test")
	assert.Nil(t, err)
	assert.Equal(t, old, v)
	assert.True(t, exist)

	newValue := Value{Name: "new name", Desc: "new desc"}
	err = vmMap.Put("test", newValue)
	assert.Nil(t, err)
	v, err = vmMap.MustGet("test")
	assert.Nil(t, err)
	assert.Equal(t, newValue, v)

	vmMap.Delete("test")
	assert.False(t, vmMap.Has("test"))

	account.SetState([]byte("test_broken"), []byte("{"))
	_, _, err = vmMap.Get("broken")
	assert.NotNil(t, err)
}

func TestVMSlot(t *testing.T) {
	account := NewTestStateLedger(t).GetOrCreateAccount(ethcommon.HexToAddress(TokenContractAddr))
	slot := NewVMSlot[uint64](account, "slot")

	assert.False(t, slot.Has())
	_, err := slot.MustGet()
	assert.NotNil(t, err)

	require.Nil(t, slot.Put(42))
	exist, v, err := slot.Get()
	assert.Nil(t, err)
	assert.True(t, exist)
	assert.Equal(t, uint64(42), v)

	slot.Delete()
	assert.False(t, slot.Has())
}

func TestIsSystemContract(t *testing.T) {
	assert.True(t, IsSystemContract(ethcommon.HexToAddress(TokenContractAddr)))
	assert.False(t, IsSystemContract(ethcommon.HexToAddress(ZeroAddress)))
	assert.False(t, IsSystemContract(ethcommon.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")))
}
