package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentMissed  PaymentStatus = "missed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentMissed:
		return true
	}
	return false
}

type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiweekly  Frequency = "biweekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyAnnually  Frequency = "annually"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly, FrequencyQuarterly, FrequencyAnnually:
		return true
	}
	return false
}

// Payment is a scheduled bill. JSON keys follow the backend's camelCase fields.
type Payment struct {
	ID          int64           `json:"id"`
	Recipient   string          `json:"recipient"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     Date            `json:"dueDate"`
	PaidDate    *Date           `json:"paidDate"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Status      PaymentStatus   `json:"status"`
	IsRecurring bool            `json:"isRecurring"`
	Frequency   Frequency       `json:"frequency"`
	CreatedAt   *time.Time      `json:"created_at,omitempty"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

type CreatePaymentRequest struct {
	Recipient   string          `json:"recipient"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"dueDate"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Status      PaymentStatus   `json:"status,omitempty"`
	IsRecurring bool            `json:"isRecurring"`
	Frequency   Frequency       `json:"frequency,omitempty"`
}

// UpdatePaymentRequest is sent as a PATCH; nil fields are omitted.
type UpdatePaymentRequest struct {
	Status   *PaymentStatus   `json:"status,omitempty"`
	PaidDate *string          `json:"paidDate,omitempty"`
	DueDate  *string          `json:"dueDate,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
}
