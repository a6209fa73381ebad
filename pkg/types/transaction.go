package types

import (
	"crypto/ecdsa"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

var (
	ErrInvalidSig  = errors.New("invalid transaction v, r, s values")
	ErrUnsignedTx  = errors.New("transaction is not signed")
	ErrEmptyRawTx  = errors.New("raw transaction is empty")
	ErrDecodeRawTx = errors.New("failed to decode raw transaction")
)

// Transaction is a signed call into a system contract.
// The sender is never carried on the wire, it is recovered from the signature.
type Transaction struct {
	Nonce uint64
	To    ethcommon.Address
	Data  []byte

	V *big.Int
	R *big.Int
	S *big.Int
}

func NewTransaction(nonce uint64, to ethcommon.Address, data []byte) *Transaction {
	return &Transaction{
		Nonce: nonce,
		To:    to,
		Data:  ethcommon.CopyBytes(data),
	}
}

// SigHash returns the hash to be signed by the sender.
func (tx *Transaction) SigHash() ethcommon.Hash {
	return rlpHash([]any{tx.Nonce, tx.To, tx.Data})
}

// Hash returns the hash of the signed transaction.
func (tx *Transaction) Hash() ethcommon.Hash {
	return rlpHash(tx)
}

func (tx *Transaction) MarshalBinary() ([]byte, error) {
	return rlp.EncodeToBytes(tx)
}

func (tx *Transaction) UnmarshalBinary(raw []byte) error {
	if len(raw) == 0 {
		return ErrEmptyRawTx
	}
	if err := rlp.DecodeBytes(raw, tx); err != nil {
		return errors.Wrap(ErrDecodeRawTx, err.Error())
	}
	return nil
}

// SignTx signs the transaction in place and returns it.
func SignTx(tx *Transaction, key *ecdsa.PrivateKey) (*Transaction, error) {
	h := tx.SigHash()
	sig, err := ethcrypto.Sign(h[:], key)
	if err != nil {
		return nil, errors.Wrap(err, "sign transaction failed")
	}
	tx.R = new(big.Int).SetBytes(sig[:32])
	tx.S = new(big.Int).SetBytes(sig[32:64])
	tx.V = new(big.Int).SetUint64(uint64(sig[64]))
	return tx, nil
}

// Sender recovers the address that signed the transaction.
func Sender(tx *Transaction) (ethcommon.Address, error) {
	if tx.V == nil || tx.R == nil || tx.S == nil {
		return ethcommon.Address{}, ErrUnsignedTx
	}
	if !tx.V.IsUint64() || tx.V.Uint64() > 1 {
		return ethcommon.Address{}, ErrInvalidSig
	}
	v := byte(tx.V.Uint64())
	if !ethcrypto.ValidateSignatureValues(v, tx.R, tx.S, true) {
		return ethcommon.Address{}, ErrInvalidSig
	}

	sig := make([]byte, ethcrypto.SignatureLength)
	tx.R.FillBytes(sig[:32])
	tx.S.FillBytes(sig[32:64])
	sig[64] = v

	h := tx.SigHash()
	pub, err := ethcrypto.SigToPub(h[:], sig)
	if err != nil {
		return ethcommon.Address{}, errors.Wrap(ErrInvalidSig, err.Error())
	}
	return ethcrypto.PubkeyToAddress(*pub), nil
}

func rlpHash(x any) ethcommon.Hash {
	enc, err := rlp.EncodeToBytes(x)
	if err != nil {
		panic(err)
	}
	return ethcrypto.Keccak256Hash(enc)
}
