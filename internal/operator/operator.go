package operator

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/resell-server/internal/logging"
	"github.com/carson-networks/resell-server/internal/operator/actions"
	"github.com/carson-networks/resell-server/internal/storage"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage *storage.Storage
	queue   chan ActionItem
	log     *logrus.Logger
}

func NewOperator(s *storage.Storage, queue chan ActionItem, log *logrus.Logger) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
		log:     log,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

// processItem runs one action inside its own write transaction. The action's
// effects are committed together or rolled back together.
func (o *Operator) processItem(item ActionItem) {
	// The caller gave up while the item was queued.
	if err := item.ctx.Err(); err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	name := fmt.Sprintf("%T", item.action)
	stopTimer := logging.GetLogData(item.ctx).AddToExistingTiming("operatorMs")
	defer stopTimer()

	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		o.log.WithError(err).WithField("action", name).Error("Operator.processItem.BeginWrite")
		item.response <- ActionItemResponse{err: err}
		return
	}

	err = item.action.Perform(item.ctx, writer)
	if err != nil {
		if rbErr := writer.Rollback(); rbErr != nil {
			o.log.WithError(rbErr).WithField("action", name).Error("Operator.processItem.Rollback")
		}
		o.log.WithError(err).WithField("action", name).Debug("Operator.processItem.Rejected")
		item.response <- ActionItemResponse{err: err}
		return
	}

	if err = writer.Commit(); err != nil {
		o.log.WithError(err).WithField("action", name).Error("Operator.processItem.Commit")
		item.response <- ActionItemResponse{err: err}
		return
	}

	item.response <- ActionItemResponse{}
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
