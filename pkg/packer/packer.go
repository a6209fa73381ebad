package packer

import (
	"reflect"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/axiomesh/hold-token/pkg/types"
)

type Event interface {
	Pack(abi abi.ABI) (*types.Log, error)
}

// PackEvent encodes eventStruct as a log, struct fields are matched to the
// event inputs by their camel case name
func PackEvent(eventStruct any, event abi.Event) (*types.Log, error) {
	if eventStruct == nil {
		return nil, errors.New("event struct is nil")
	}
	var noIndexedArgs []any
	topicArgs := [][]any{
		{event.ID},
	}
	v := reflect.ValueOf(eventStruct).Elem()
	for _, input := range event.Inputs {
		field := v.FieldByName(abi.ToCamelCase(input.Name))
		if !field.IsValid() {
			return nil, errors.Errorf("event %s missing field %s", event.Name, abi.ToCamelCase(input.Name))
		}
		if !input.Indexed {
			noIndexedArgs = append(noIndexedArgs, field.Interface())
		} else {
			topicArgs = append(topicArgs, []any{field.Interface()})
		}
	}

	topics, err := abi.MakeTopics(topicArgs...)
	if err != nil {
		return nil, errors.Wrapf(err, "event %s make topics error", event.Name)
	}

	packedData, err := event.Inputs.NonIndexed().Pack(noIndexedArgs...)
	if err != nil {
		return nil, errors.Wrapf(err, "event %s pack args error", event.Name)
	}

	return &types.Log{
		Topics: lo.Map(topics, func(t []common.Hash, i int) common.Hash {
			return t[0]
		}),
		Data: packedData,
	}, nil
}

// UnpackEvent decodes log into the event struct out
func UnpackEvent(out any, event abi.Event, log *types.Log) error {
	if len(log.Topics) == 0 || log.Topics[0] != event.ID {
		return errors.Errorf("log is not event %s", event.Name)
	}
	if len(log.Data) > 0 {
		values, err := event.Inputs.NonIndexed().Unpack(log.Data)
		if err != nil {
			return errors.Wrapf(err, "event %s unpack data error", event.Name)
		}
		v := reflect.ValueOf(out).Elem()
		for i, input := range event.Inputs.NonIndexed() {
			field := v.FieldByName(abi.ToCamelCase(input.Name))
			value := reflect.ValueOf(values[i])
			if !field.IsValid() || !value.Type().AssignableTo(field.Type()) {
				return errors.Errorf("event %s cannot set field %s", event.Name, abi.ToCamelCase(input.Name))
			}
			field.Set(value)
		}
	}
	var indexed abi.Arguments
	for _, input := range event.Inputs {
		if input.Indexed {
			indexed = append(indexed, input)
		}
	}
	if err := abi.ParseTopics(out, indexed, log.Topics[1:]); err != nil {
		return errors.Wrapf(err, "event %s parse topics error", event.Name)
	}
	return nil
}
