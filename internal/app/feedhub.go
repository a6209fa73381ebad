package app

import (
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/hold-token/pkg/events"
)

const blockChanNumber = 1024

func (ht *HoldToken) start() {
	blockCh := make(chan events.ExecutedEvent, blockChanNumber)
	blockSub := ht.BlockExecutor.SubscribeBlockEvent(blockCh)
	go ht.listenPublishBlock(blockCh, blockSub.Err(), blockSub.Unsubscribe)
}

func (ht *HoldToken) listenPublishBlock(blockCh <-chan events.ExecutedEvent, errCh <-chan error, unsubscribe func()) {
	defer unsubscribe()
	for {
		select {
		case <-ht.Ctx.Done():
			return
		case <-errCh:
			return
		case ev := <-blockCh:
			ht.publishBlock(ev)
		}
	}
}

func (ht *HoldToken) publishBlock(ev events.ExecutedEvent) {
	if err := ht.Publisher.Publish(ht.Ctx, &ev); err != nil {
		ht.logger.WithFields(logrus.Fields{
			"height": ev.Header.Number,
			"err":    err,
		}).Warn("Publish block failed")
	}
}
