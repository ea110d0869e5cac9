package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a linked bank account as returned by GET /api/accounts/.
type Account struct {
	ID               int64            `json:"id"`
	InstitutionName  string           `json:"institution_name"`
	AccountName      string           `json:"account_name"`
	AccountType      string           `json:"account_type"`
	Mask             string           `json:"mask"`
	CurrentBalance   decimal.Decimal  `json:"current_balance"`
	AvailableBalance decimal.Decimal  `json:"available_balance"`
	Limit            *decimal.Decimal `json:"limit,omitempty"`
	LastSynced       *time.Time       `json:"last_synced,omitempty"`
	CreatedAt        *time.Time       `json:"created_at,omitempty"`
}

// Transaction is a synced bank transaction.
// Amount sign: positive = spending (outflow), negative = income (inflow).
type Transaction struct {
	ID              int64           `json:"id"`
	TransactionID   string          `json:"transaction_id"`
	PlaidAccount    int64           `json:"plaid_account"`
	InstitutionName string          `json:"institution_name"`
	Amount          decimal.Decimal `json:"amount"`
	Date            Date            `json:"date"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	PaymentChannel  string          `json:"payment_channel"`
}

func (t Transaction) IsSpending() bool {
	return t.Amount.IsPositive()
}

func (t Transaction) IsIncome() bool {
	return t.Amount.IsNegative()
}

// TransactionFilter narrows the wallet transaction list. Zero values match everything;
// date bounds are inclusive.
type TransactionFilter struct {
	AccountID int64
	Category  string
	From      *Date
	To        *Date
	Query     string
}

// ============================================================================
// LINKING
// ============================================================================

type LinkTokenResponse struct {
	LinkToken  string `json:"link_token"`
	Expiration string `json:"expiration,omitempty"`
}

type ExchangeTokenRequest struct {
	PublicToken string `json:"public_token" binding:"required"`
}

type ExchangeTokenResponse struct {
	ItemID string `json:"item_id"`
}

type LinkResult struct {
	ItemID       string        `json:"item_id,omitempty"`
	Accounts     []Account     `json:"accounts"`
	Transactions []Transaction `json:"transactions"`
}
