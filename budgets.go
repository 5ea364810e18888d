package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"aureus/models"
	"aureus/pkg/ledger"
)

// AddBudget caps one expense category for one calendar month. One budget per
// category per month; setting a new cap means deleting the old one first.
func (r *Registry) AddBudget(category string, amount int64, month time.Month, year int) (models.Budget, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return models.Budget{}, fmt.Errorf("budget category is required")
	}
	if amount <= 0 {
		return models.Budget{}, fmt.Errorf("amount must be greater than zero")
	}
	if month < time.January || month > time.December {
		return models.Budget{}, fmt.Errorf("month must be 1-12")
	}
	if year < 1970 {
		return models.Budget{}, fmt.Errorf("invalid year")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.budgets {
		if b.Month == int(month) && b.Year == year && strings.EqualFold(b.Category, category) {
			return models.Budget{}, fmt.Errorf("budget for %q already set this month", category)
		}
	}
	b := models.Budget{
		ID:       uuid.NewString(),
		Category: category,
		Amount:   amount,
		Month:    int(month),
		Year:     year,
	}
	r.budgets = append(r.budgets, b)
	return b, r.save()
}

func (r *Registry) DeleteBudget(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, b := range r.budgets {
		if b.ID == id {
			r.budgets = append(r.budgets[:i], r.budgets[i+1:]...)
			return r.save()
		}
	}
	return fmt.Errorf("budget not found")
}

// BudgetStatuses derives the month's budgets against its expense spend.
func (r *Registry) BudgetStatuses(month time.Month, year int) []ledger.BudgetStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ledger.BudgetStatuses(r.budgets, r.transactions, month, year)
}
