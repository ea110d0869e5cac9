package services

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/LovationAdmin/budget-dashboard/models"
	"github.com/LovationAdmin/budget-dashboard/utils"
)

const Uncategorized = "Uncategorized"

// Summarize computes the dashboard totals. Spending is the sum of positive
// amounts, income the sum of the absolute negative amounts.
func Summarize(accounts []models.Account, txns []models.Transaction, topN, recentN int) models.FinancialSummary {
	var balance, spending, income decimal.Decimal
	for _, a := range accounts {
		balance = balance.Add(a.CurrentBalance)
	}
	for _, t := range txns {
		switch {
		case t.IsSpending():
			spending = spending.Add(t.Amount)
		case t.IsIncome():
			income = income.Add(t.Amount.Abs())
		}
	}

	return models.FinancialSummary{
		TotalBalance:       balance,
		TotalSpending:      spending,
		TotalIncome:        income,
		Net:                spending.Sub(income),
		TopCategories:      TopSpendingCategories(txns, topN),
		RecentTransactions: RecentTransactions(txns, recentN),
		DisplayBalance:     utils.FormatAmount(balance),
		DisplaySpending:    utils.FormatAmount(spending),
		DisplayIncome:      utils.FormatAmount(income),
	}
}

// TopSpendingCategories groups spending by category and returns the n largest,
// ties broken by name.
func TopSpendingCategories(txns []models.Transaction, n int) []models.CategoryTotal {
	spending := make([]models.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.IsSpending() {
			spending = append(spending, t)
		}
	}

	totals := GroupByCategory(spending)
	sort.SliceStable(totals, func(i, j int) bool {
		if c := totals[i].Total.Cmp(totals[j].Total); c != 0 {
			return c > 0
		}
		return totals[i].Category < totals[j].Category
	})
	if n >= 0 && len(totals) > n {
		totals = totals[:n]
	}
	return totals
}

// GroupByCategory buckets transactions by category, summing every member's
// amount. Transactions without a category go to "Uncategorized". Buckets are
// returned in name order.
func GroupByCategory(txns []models.Transaction) []models.CategoryTotal {
	byName := make(map[string]*models.CategoryTotal)
	for _, t := range txns {
		name := categoryOf(t)
		bucket, ok := byName[name]
		if !ok {
			bucket = &models.CategoryTotal{Category: name}
			byName[name] = bucket
		}
		bucket.Total = bucket.Total.Add(t.Amount)
		bucket.Count++
	}

	out := make([]models.CategoryTotal, 0, len(byName))
	for _, bucket := range byName {
		bucket.DisplayAmount = utils.FormatAmount(bucket.Total)
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

func categoryOf(t models.Transaction) string {
	if strings.TrimSpace(t.Category) == "" {
		return Uncategorized
	}
	return t.Category
}

// RecentTransactions returns the n most recent transactions, newest first.
// The input is not reordered.
func RecentTransactions(txns []models.Transaction, n int) []models.Transaction {
	out := SortTransactions(txns)
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// SortTransactions returns a copy ordered by date descending, then ID
// descending.
func SortTransactions(txns []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, len(txns))
	copy(out, txns)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// FilterTransactions applies the wallet filters. Date bounds are inclusive and
// the query matches the name case-insensitively.
func FilterTransactions(txns []models.Transaction, f models.TransactionFilter) []models.Transaction {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]models.Transaction, 0, len(txns))
	for _, t := range txns {
		if f.AccountID != 0 && t.PlaidAccount != f.AccountID {
			continue
		}
		if f.Category != "" && !strings.EqualFold(categoryOf(t), f.Category) {
			continue
		}
		day := calendarDay(t.Date.Time)
		if f.From != nil && day.Before(calendarDay(f.From.Time)) {
			continue
		}
		if f.To != nil && day.After(calendarDay(f.To.Time)) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(t.Name), query) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Categories lists the distinct categories present, for the wallet filter.
func Categories(txns []models.Transaction) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range txns {
		name := categoryOf(t)
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// SummarizeAccounts attaches per-account spending and income.
func SummarizeAccounts(accounts []models.Account, txns []models.Transaction) []models.AccountSummary {
	index := make(map[int64]int, len(accounts))
	out := make([]models.AccountSummary, len(accounts))
	for i, a := range accounts {
		out[i] = models.AccountSummary{Account: a}
		index[a.ID] = i
	}

	for _, t := range txns {
		i, ok := index[t.PlaidAccount]
		if !ok {
			continue
		}
		switch {
		case t.IsSpending():
			out[i].Spending = out[i].Spending.Add(t.Amount)
		case t.IsIncome():
			out[i].Income = out[i].Income.Add(t.Amount.Abs())
		}
		out[i].Transactions++
	}
	return out
}
