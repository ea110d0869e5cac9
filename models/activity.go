package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ActivityType string

const (
	ActivityTransaction ActivityType = "transaction"
	ActivityPayment     ActivityType = "payment"
	ActivitySystem      ActivityType = "system"
)

func (t ActivityType) Valid() bool {
	switch t {
	case ActivityTransaction, ActivityPayment, ActivitySystem:
		return true
	}
	return false
}

// ActivityItem is one row of the combined timeline. It is derived, never persisted.
type ActivityItem struct {
	ID            string           `json:"id"`
	Type          ActivityType     `json:"type"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	DisplayAmount string           `json:"display_amount,omitempty"`
	Direction     string           `json:"direction,omitempty"`
	Date          time.Time        `json:"date"`
	Category      string           `json:"category,omitempty"`
	Status        string           `json:"status,omitempty"`
}

// SystemEvent is a synthetic timeline entry produced by the dashboard itself
// (login, sync, account linked...).
type SystemEvent struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	At          time.Time `json:"at"`
}

// ActivityFilter selects timeline items. Empty Types means all types.
type ActivityFilter struct {
	Types []ActivityType
	Query string
	From  *Date
	To    *Date
}

type DayGroup struct {
	Day   string         `json:"day"`
	Items []ActivityItem `json:"items"`
}
