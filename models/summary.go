package models

import (
	"github.com/shopspring/decimal"
)

// CategoryTotal is a category bucket of a transaction grouping.
type CategoryTotal struct {
	Category      string          `json:"category"`
	Total         decimal.Decimal `json:"total"`
	DisplayAmount string          `json:"display_amount"`
	Count         int             `json:"count"`
}

type FinancialSummary struct {
	TotalBalance       decimal.Decimal `json:"total_balance"`
	TotalSpending      decimal.Decimal `json:"total_spending"`
	TotalIncome        decimal.Decimal `json:"total_income"`
	Net                decimal.Decimal `json:"net"`
	TopCategories      []CategoryTotal `json:"top_categories"`
	RecentTransactions []Transaction   `json:"recent_transactions"`

	DisplayBalance  string `json:"display_balance"`
	DisplaySpending string `json:"display_spending"`
	DisplayIncome   string `json:"display_income"`
}

// ============================================================================
// PAGE VIEWS
// ============================================================================

type DashboardView struct {
	Summary  FinancialSummary `json:"summary"`
	Accounts []Account        `json:"accounts"`
}

type AccountSummary struct {
	Account      Account         `json:"account"`
	Spending     decimal.Decimal `json:"spending"`
	Income       decimal.Decimal `json:"income"`
	Transactions int             `json:"transactions"`
}

type WalletView struct {
	Accounts     []AccountSummary `json:"accounts"`
	Transactions []Transaction    `json:"transactions"`
	Categories   []string         `json:"categories"`
	Summary      FinancialSummary `json:"summary"`
}

// PaymentLine is a payment decorated with its due-date position relative to today.
type PaymentLine struct {
	Payment
	DaysUntilDue  int    `json:"days_until_due"`
	Priority      bool   `json:"priority"`
	Overdue       bool   `json:"overdue"`
	DisplayAmount string `json:"display_amount"`
}

type PaymentOverview struct {
	UpcomingTotal  decimal.Decimal `json:"upcoming_total"`
	UpcomingCount  int             `json:"upcoming_count"`
	DueThisWeek    int             `json:"due_this_week"`
	OverdueCount   int             `json:"overdue_count"`
	PaidThisMonth  decimal.Decimal `json:"paid_this_month"`
	RecurringCount int             `json:"recurring_count"`
}

type PaymentsView struct {
	Today    string          `json:"today"`
	Upcoming []PaymentLine   `json:"upcoming"`
	History  []PaymentLine   `json:"history"`
	Overview PaymentOverview `json:"overview"`
}

type ActivityView struct {
	Total int        `json:"total"`
	Days  []DayGroup `json:"days"`
}
