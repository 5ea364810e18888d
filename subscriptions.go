package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aureus/models"
	"aureus/pkg/logger"
)

// AddSubscription registers a recurring payment. When payNow is true the
// first cycle is charged to the selected wallet immediately and the next due
// date advances one cycle past the start date.
func (r *Registry) AddSubscription(name string, amount int64, cycleDays int, startDate time.Time, payNow bool) (models.Subscription, *models.Transaction, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Subscription{}, nil, fmt.Errorf("subscription name is required")
	}
	if amount <= 0 {
		return models.Subscription{}, nil, fmt.Errorf("amount must be greater than zero")
	}
	if cycleDays <= 0 {
		return models.Subscription{}, nil, fmt.Errorf("cycle days must be greater than zero")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sub := models.Subscription{
		ID:              uuid.NewString(),
		Name:            name,
		Amount:          amount,
		StartDate:       startDate,
		CycleDays:       cycleDays,
		NextPaymentDate: startDate,
		Color:           subscriptionColors[len(r.subscriptions)%len(subscriptionColors)],
	}

	var first *models.Transaction
	if payNow {
		if r.selectedID == "" {
			return models.Subscription{}, nil, fmt.Errorf("no wallet to charge")
		}
		t := r.renewalTx(sub, r.now())
		r.transactions = append([]models.Transaction{t}, r.transactions...)
		first = &t
		sub.NextPaymentDate = sub.NextPaymentDate.AddDate(0, 0, cycleDays)
	}

	r.subscriptions = append(r.subscriptions, sub)
	r.recalc()
	return sub, first, r.save()
}

func (r *Registry) DeleteSubscription(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.subscriptions {
		if s.ID == id {
			r.subscriptions = append(r.subscriptions[:i], r.subscriptions[i+1:]...)
			return r.save()
		}
	}
	return fmt.Errorf("subscription not found")
}

// RenewDue charges every subscription whose next payment date is not in the
// future. The next due date always advances by one cycle from the previous
// due date, never from now, so the schedule stays fixed. Under the single
// policy each stale subscription produces one charge and advances one cycle
// per check; under backfill every missed cycle is charged at once, each
// dated at its own due date. Called at startup and after subscription
// mutations.
func (r *Registry) RenewDue() []models.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	if r.selectedID == "" {
		return nil
	}

	var created []models.Transaction
	for i := range r.subscriptions {
		sub := &r.subscriptions[i]
		for !sub.NextPaymentDate.After(now) {
			due := sub.NextPaymentDate
			date := now
			if r.policy == CatchupBackfill {
				date = due
			}
			t := r.renewalTx(*sub, date)
			r.transactions = append([]models.Transaction{t}, r.transactions...)
			created = append(created, t)
			sub.NextPaymentDate = due.AddDate(0, 0, sub.CycleDays)
			if r.policy != CatchupBackfill {
				break
			}
		}
	}

	if len(created) > 0 {
		logger.Info("subscription renewals charged", zap.Int("count", len(created)))
		r.recalc()
		if err := r.save(); err != nil {
			logger.Error("persisting renewals failed", zap.Error(err))
		}
	}
	return created
}

func (r *Registry) renewalTx(sub models.Subscription, date time.Time) models.Transaction {
	return models.Transaction{
		ID:          uuid.NewString(),
		Kind:        models.TxExpense,
		Amount:      sub.Amount,
		Category:    models.SubscriptionCategory,
		Description: renewalDescription(sub.Name),
		Date:        date,
		WalletID:    r.selectedID,
	}
}

func renewalDescription(name string) string {
	return "Perpanjangan: " + name
}
