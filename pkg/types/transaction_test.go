package types

import (
	"math/big"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func TestSignTx(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.Nil(t, err)
	to := ethcommon.HexToAddress("0x0000000000000000000000000000000000001002")

	tx, err := SignTx(NewTransaction(3, to, []byte{1, 2, 3}), key)
	require.Nil(t, err)

	from, err := Sender(tx)
	require.Nil(t, err)
	require.Equal(t, ethcrypto.PubkeyToAddress(key.PublicKey), from)

	t.Run("round trip keeps sender", func(t *testing.T) {
		raw, err := tx.MarshalBinary()
		require.Nil(t, err)
		decoded := &Transaction{}
		require.Nil(t, decoded.UnmarshalBinary(raw))
		require.Equal(t, tx.Hash(), decoded.Hash())
		require.Equal(t, uint64(3), decoded.Nonce)

		decodedFrom, err := Sender(decoded)
		require.Nil(t, err)
		require.Equal(t, from, decodedFrom)
	})

	t.Run("tampered data changes sender", func(t *testing.T) {
		tampered := *tx
		tampered.Data = []byte{1, 2, 4}
		other, err := Sender(&tampered)
		if err == nil {
			require.NotEqual(t, from, other)
		}
	})

	t.Run("unsigned", func(t *testing.T) {
		_, err := Sender(NewTransaction(0, to, nil))
		require.ErrorIs(t, err, ErrUnsignedTx)
	})

	t.Run("bad v", func(t *testing.T) {
		bad := *tx
		bad.V = big.NewInt(27)
		_, err := Sender(&bad)
		require.ErrorIs(t, err, ErrInvalidSig)
	})
}

func TestUnmarshalBinary(t *testing.T) {
	tx := &Transaction{}
	require.ErrorIs(t, tx.UnmarshalBinary(nil), ErrEmptyRawTx)
	err := tx.UnmarshalBinary([]byte{0xff, 0x01})
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ErrDecodeRawTx.Error())
}
