package models

import "time"

// SubscriptionCategory is the category assigned to auto-generated renewal
// expenses.
const SubscriptionCategory = "Langganan"

// Subscription is a recurring-payment definition. Renewal advances
// NextPaymentDate by CycleDays from the previous due date, never from "now",
// so the schedule stays fixed even when the app was closed over a due date.
type Subscription struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Amount          int64     `json:"amount"`
	StartDate       time.Time `json:"startDate"`
	CycleDays       int       `json:"cycleDays"`
	NextPaymentDate time.Time `json:"nextPaymentDate"`
	Color           string    `json:"color"`
}
