// Package notify delivers budget alerts raised by a sync.
package notify

import (
	"context"
	"errors"

	"momopress/internal/amqp"
	"momopress/internal/budget"
	"momopress/internal/logger"
)

// Notifier delivers the alerts of one account.
type Notifier interface {
	BudgetAlerts(ctx context.Context, phone string, alerts []budget.Alert) error
}

// Log writes each alert to the structured log.
type Log struct{}

func (Log) BudgetAlerts(_ context.Context, phone string, alerts []budget.Alert) error {
	log := logger.For(logger.ComponentNotify)
	for _, a := range alerts {
		log.Warnw("Budget limit exceeded",
			"phone", phone,
			"label", a.Label,
			"limit", a.Limit,
			"spent", a.Spent,
			"exceeded", a.Exceeded,
		)
	}
	return nil
}

// Publisher is the part of amqp.Client used for delivery.
type Publisher interface {
	PublishBudgetAlerts(ctx context.Context, msg *amqp.BudgetAlertMessage) error
}

// Queue publishes one message per sync to a broker.
type Queue struct {
	pub Publisher
}

func NewQueue(pub Publisher) *Queue {
	return &Queue{pub: pub}
}

func (q *Queue) BudgetAlerts(ctx context.Context, phone string, alerts []budget.Alert) error {
	if len(alerts) == 0 {
		return nil
	}
	return q.pub.PublishBudgetAlerts(ctx, amqp.NewBudgetAlertMessage(phone, alerts))
}

// Multi fans alerts out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) BudgetAlerts(ctx context.Context, phone string, alerts []budget.Alert) error {
	var errs []error
	for _, n := range m {
		if err := n.BudgetAlerts(ctx, phone, alerts); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
