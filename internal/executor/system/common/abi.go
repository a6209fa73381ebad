package common

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/pkg/errors"
)

var (
	ErrMethodNotFound = errors.New("method not found")
	ErrInvalidData    = errors.New("invalid call data")
)

// ParseContractCallArgs looks up the method by the 4 bytes selector and unpacks
// the arguments into the receiver built by methodSig2ArgsReceiverConstructor.
func ParseContractCallArgs(contractABI *abi.ABI, data []byte, methodSig2ArgsReceiverConstructor map[string]func() any) (any, *abi.Method, error) {
	if len(data) < 4 {
		return nil, nil, ErrInvalidData
	}

	method, err := contractABI.MethodById(data[:4])
	if err != nil {
		return nil, nil, errors.Wrapf(ErrMethodNotFound, "selector %x", data[:4])
	}
	constructor, ok := methodSig2ArgsReceiverConstructor[method.Sig]
	if !ok {
		return nil, nil, errors.Wrapf(ErrMethodNotFound, "%s", method.Sig)
	}
	receiver := constructor()

	values, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, nil, errors.Wrapf(ErrInvalidData, "unpack %s: %v", method.Name, err)
	}
	if len(values) != 0 {
		if err := method.Inputs.Copy(receiver, values); err != nil {
			return nil, nil, errors.Wrapf(ErrInvalidData, "copy %s: %v", method.Name, err)
		}
	}
	return receiver, method, nil
}

// PackCall encodes a call, used by clients and tests
func PackCall(contractABI *abi.ABI, name string, args ...any) ([]byte, error) {
	data, err := contractABI.Pack(name, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "pack %s", name)
	}
	return data, nil
}
