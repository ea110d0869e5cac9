package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LovationAdmin/budget-dashboard/models"
)

func timelineFixture() ([]models.Transaction, []models.Payment, []models.SystemEvent) {
	txns := []models.Transaction{
		txn(1, "12.50", 1, "Food", "Coffee Shop"),
		txn(2, "-2000", 3, "Income", "Payroll"),
	}

	paidOn := models.NewDate(2026, 3, 4)
	rent := payment(10, 1, models.PaymentPaid)
	rent.Recipient = "Landlord"
	rent.Description = "March rent"
	rent.PaidDate = &paidOn

	phone := payment(11, 2, models.PaymentPending)
	phone.Recipient = "Phone Co"

	events := []models.SystemEvent{
		{ID: "e1", Kind: "transactions_synced", Title: "Transactions synced", At: time.Date(2026, 3, 3, 18, 0, 0, 0, time.UTC)},
	}
	return txns, []models.Payment{rent, phone}, events
}

func itemIDs(items []models.ActivityItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestBuildTimeline(t *testing.T) {
	txns, payments, events := timelineFixture()

	items := BuildTimeline(txns, payments, events)

	// Rent is placed at its paid date (4th), the pending phone bill at its due date (2nd).
	assert.Equal(t, []string{"pay-10", "sys-e1", "txn-2", "pay-11", "txn-1"}, itemIDs(items))

	byID := map[string]models.ActivityItem{}
	for _, it := range items {
		byID[it.ID] = it
	}
	assert.Equal(t, models.ActivityPayment, byID["pay-10"].Type)
	assert.Equal(t, "Payment to Landlord", byID["pay-10"].Title)
	assert.Equal(t, "March rent", byID["pay-10"].Description)
	assert.Equal(t, "Bills", byID["pay-11"].Description)
	assert.Equal(t, "$2,000.00", byID["txn-2"].DisplayAmount)
	assert.Equal(t, "credit", byID["txn-2"].Direction)
	assert.Equal(t, models.ActivitySystem, byID["sys-e1"].Type)
	assert.Nil(t, byID["sys-e1"].Amount)
}

func TestFilterActivity(t *testing.T) {
	items := BuildTimeline(timelineFixture())

	from := models.NewDate(2026, 3, 2)
	to := models.NewDate(2026, 3, 3)

	tests := []struct {
		name   string
		filter models.ActivityFilter
		want   []string
	}{
		{"all", models.ActivityFilter{}, []string{"pay-10", "sys-e1", "txn-2", "pay-11", "txn-1"}},
		{"payments only", models.ActivityFilter{Types: []models.ActivityType{models.ActivityPayment}}, []string{"pay-10", "pay-11"}},
		{"title query", models.ActivityFilter{Query: "payroll"}, []string{"txn-2"}},
		{"description query", models.ActivityFilter{Query: "MARCH"}, []string{"pay-10"}},
		{"inclusive day bounds", models.ActivityFilter{From: &from, To: &to}, []string{"sys-e1", "txn-2", "pay-11"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, itemIDs(FilterActivity(items, tt.filter)))
		})
	}
}

func TestGroupByDay(t *testing.T) {
	items := BuildTimeline(timelineFixture())

	groups := GroupByDay(items)

	require.Len(t, groups, 4)
	assert.Equal(t, []string{"2026-03-04", "2026-03-03", "2026-03-02", "2026-03-01"},
		[]string{groups[0].Day, groups[1].Day, groups[2].Day, groups[3].Day})
	assert.Equal(t, []string{"sys-e1", "txn-2"}, itemIDs(groups[1].Items))

	total := 0
	for _, g := range groups {
		for _, it := range g.Items {
			assert.Equal(t, g.Day, it.Date.Format(models.DateLayout))
		}
		total += len(g.Items)
	}
	assert.Equal(t, len(items), total)
}

func TestGroupByDayEmpty(t *testing.T) {
	groups := GroupByDay(nil)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}
