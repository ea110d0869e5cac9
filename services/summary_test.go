package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LovationAdmin/budget-dashboard/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func txn(id int64, amount string, day int, category, name string) models.Transaction {
	return models.Transaction{
		ID:           id,
		PlaidAccount: 1,
		Amount:       dec(amount),
		Date:         models.NewDate(2026, 3, day),
		Category:     category,
		Name:         name,
	}
}

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		txn(1, "12.50", 1, "Food", "Coffee Shop"),
		txn(2, "-2000", 2, "Income", "Payroll"),
		txn(3, "80", 3, "Travel", "Uber"),
		txn(4, "40", 3, "Food", "Grocery"),
		txn(5, "-25", 4, "", "Refund"),
		txn(6, "7.5", 5, "", "Parking"),
	}
}

func TestSummarize(t *testing.T) {
	accounts := []models.Account{
		{ID: 1, CurrentBalance: dec("1000.10")},
		{ID: 2, CurrentBalance: dec("-200")},
	}
	txns := sampleTransactions()

	s := Summarize(accounts, txns, 2, 3)

	assert.True(t, s.TotalBalance.Equal(dec("800.10")))
	assert.True(t, s.TotalSpending.Equal(dec("140")))
	assert.True(t, s.TotalIncome.Equal(dec("2025")))
	assert.True(t, s.Net.Equal(dec("-1885")))
	assert.Equal(t, "$2,025.00", s.DisplayIncome)

	require.Len(t, s.TopCategories, 2)
	assert.Equal(t, "Travel", s.TopCategories[0].Category)
	assert.Equal(t, "Food", s.TopCategories[1].Category)
	assert.True(t, s.TopCategories[1].Total.Equal(dec("52.50")))

	require.Len(t, s.RecentTransactions, 3)
	assert.Equal(t, []int64{6, 5, 4}, ids(s.RecentTransactions))
}

func TestSummarizeNetEqualsSumOfAmounts(t *testing.T) {
	txns := sampleTransactions()
	sum := decimal.Zero
	for _, tx := range txns {
		sum = sum.Add(tx.Amount)
	}
	s := Summarize(nil, txns, 5, 5)
	assert.True(t, s.Net.Equal(sum))
	assert.True(t, s.TotalBalance.IsZero())
}

func TestSummarizeDoesNotMutateInput(t *testing.T) {
	txns := sampleTransactions()
	before := ids(txns)
	Summarize(nil, txns, 5, 5)
	assert.Equal(t, before, ids(txns))
}

func TestTopSpendingCategoriesTieBreak(t *testing.T) {
	txns := []models.Transaction{
		txn(1, "10", 1, "Bravo", "b"),
		txn(2, "10", 1, "Alpha", "a"),
		txn(3, "5", 1, "Charlie", "c"),
	}
	top := TopSpendingCategories(txns, 5)
	require.Len(t, top, 3)
	assert.Equal(t, "Alpha", top[0].Category)
	assert.Equal(t, "Bravo", top[1].Category)
	assert.Equal(t, "Charlie", top[2].Category)
}

func TestGroupByCategory(t *testing.T) {
	groups := GroupByCategory(sampleTransactions())

	byName := map[string]models.CategoryTotal{}
	count := 0
	for _, g := range groups {
		byName[g.Category] = g
		count += g.Count
	}

	assert.Equal(t, len(sampleTransactions()), count)
	require.Contains(t, byName, Uncategorized)
	assert.True(t, byName[Uncategorized].Total.Equal(dec("-17.5")))
	assert.Equal(t, 2, byName[Uncategorized].Count)
	assert.True(t, byName["Food"].Total.Equal(dec("52.5")))
	assert.NotContains(t, byName, "")
}

func TestRecentTransactionsIDTieBreak(t *testing.T) {
	txns := []models.Transaction{
		txn(1, "1", 3, "", ""),
		txn(3, "1", 3, "", ""),
		txn(2, "1", 3, "", ""),
	}
	assert.Equal(t, []int64{3, 2, 1}, ids(RecentTransactions(txns, 10)))
	assert.Equal(t, []int64{1, 3, 2}, ids(txns))
}

func TestFilterTransactions(t *testing.T) {
	txns := sampleTransactions()
	txns[2].PlaidAccount = 2

	from := models.NewDate(2026, 3, 2)
	to := models.NewDate(2026, 3, 3)

	tests := []struct {
		name   string
		filter models.TransactionFilter
		want   []int64
	}{
		{"no filter", models.TransactionFilter{}, []int64{1, 2, 3, 4, 5, 6}},
		{"account", models.TransactionFilter{AccountID: 2}, []int64{3}},
		{"category case-insensitive", models.TransactionFilter{Category: "food"}, []int64{1, 4}},
		{"uncategorized", models.TransactionFilter{Category: Uncategorized}, []int64{5, 6}},
		{"inclusive dates", models.TransactionFilter{From: &from, To: &to}, []int64{2, 3, 4}},
		{"query", models.TransactionFilter{Query: "  GROC "}, []int64{4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterTransactions(txns, tt.filter)))
		})
	}
}

func TestFilterTransactionsKeepsTimestampOnBoundDay(t *testing.T) {
	afternoon, err := models.ParseDate("2026-03-10T15:00:00Z")
	require.NoError(t, err)
	txns := []models.Transaction{{ID: 1, Date: afternoon}}

	day := models.NewDate(2026, 3, 10)
	assert.Equal(t, []int64{1}, ids(FilterTransactions(txns, models.TransactionFilter{From: &day, To: &day})))

	before := models.NewDate(2026, 3, 9)
	assert.Empty(t, FilterTransactions(txns, models.TransactionFilter{To: &before}))
}

func TestSummarizeAccounts(t *testing.T) {
	accounts := []models.Account{{ID: 1}, {ID: 9}}
	out := SummarizeAccounts(accounts, sampleTransactions())

	require.Len(t, out, 2)
	assert.True(t, out[0].Spending.Equal(dec("140")))
	assert.True(t, out[0].Income.Equal(dec("2025")))
	assert.Equal(t, 6, out[0].Transactions)
	assert.Equal(t, 0, out[1].Transactions)
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"Food", "Income", "Travel", Uncategorized}, Categories(sampleTransactions()))
}

func ids(txns []models.Transaction) []int64 {
	out := make([]int64, len(txns))
	for i, tx := range txns {
		out[i] = tx.ID
	}
	return out
}
