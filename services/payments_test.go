package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LovationAdmin/budget-dashboard/models"
)

var paymentsToday = time.Date(2026, 3, 10, 15, 30, 0, 0, time.FixedZone("EST", -5*3600))

func payment(id int64, day int, status models.PaymentStatus) models.Payment {
	return models.Payment{
		ID:        id,
		Recipient: "Recipient",
		Amount:    dec("100"),
		DueDate:   models.NewDate(2026, 3, day),
		Status:    status,
		Category:  "Bills",
	}
}

func lineIDs(lines []models.PaymentLine) []int64 {
	out := make([]int64, len(lines))
	for i, l := range lines {
		out[i] = l.ID
	}
	return out
}

func TestDaysUntilDue(t *testing.T) {
	assert.Equal(t, 0, DaysUntilDue(models.NewDate(2026, 3, 10), paymentsToday))
	assert.Equal(t, 3, DaysUntilDue(models.NewDate(2026, 3, 13), paymentsToday))
	assert.Equal(t, -1, DaysUntilDue(models.NewDate(2026, 3, 9), paymentsToday))
	assert.Equal(t, 22, DaysUntilDue(models.NewDate(2026, 4, 1), paymentsToday))
}

func TestPartitionPayments(t *testing.T) {
	payments := []models.Payment{
		payment(1, 20, models.PaymentPending),
		payment(2, 10, models.PaymentPending),
		payment(3, 5, models.PaymentPending),
		payment(4, 25, models.PaymentPaid),
		payment(5, 12, models.PaymentMissed),
		payment(6, 1, models.PaymentPaid),
	}

	upcoming, history := PartitionPayments(payments, paymentsToday, DefaultPriorityDays)

	assert.Equal(t, []int64{2, 5, 1}, lineIDs(upcoming))
	assert.Equal(t, []int64{4, 3, 6}, lineIDs(history))
	assert.Equal(t, len(payments), len(upcoming)+len(history))

	for _, l := range upcoming {
		assert.NotEqual(t, models.PaymentPaid, l.Status)
		assert.GreaterOrEqual(t, l.DaysUntilDue, 0)
	}
	for _, l := range history {
		assert.True(t, l.Status == models.PaymentPaid || l.DaysUntilDue < 0)
	}
}

func TestPartitionPaymentsFlags(t *testing.T) {
	payments := []models.Payment{
		payment(1, 10, models.PaymentPending),
		payment(2, 13, models.PaymentPending),
		payment(3, 14, models.PaymentPending),
		payment(4, 9, models.PaymentPending),
		payment(5, 11, models.PaymentPaid),
	}
	upcoming, history := PartitionPayments(payments, paymentsToday, 3)

	byID := map[int64]models.PaymentLine{}
	for _, l := range append(upcoming, history...) {
		byID[l.ID] = l
	}

	assert.True(t, byID[1].Priority)
	assert.True(t, byID[2].Priority)
	assert.False(t, byID[3].Priority)
	assert.True(t, byID[4].Overdue)
	assert.False(t, byID[4].Priority)
	assert.False(t, byID[5].Priority)
	assert.False(t, byID[5].Overdue)
	assert.Equal(t, "$100.00", byID[1].DisplayAmount)
}

func TestPartitionPaymentsEmpty(t *testing.T) {
	upcoming, history := PartitionPayments(nil, paymentsToday, 3)
	assert.NotNil(t, upcoming)
	assert.NotNil(t, history)
	assert.Empty(t, upcoming)
	assert.Empty(t, history)
}

func TestSummarizePayments(t *testing.T) {
	paidThisMonth := models.NewDate(2026, 3, 2)
	paidLastMonth := models.NewDate(2026, 2, 27)

	recurring := payment(1, 12, models.PaymentPending)
	recurring.IsRecurring = true
	recurring.Frequency = models.FrequencyMonthly

	later := payment(2, 30, models.PaymentPending)
	later.Amount = dec("49.99")

	overdue := payment(3, 1, models.PaymentMissed)

	paid := payment(4, 2, models.PaymentPaid)
	paid.PaidDate = &paidThisMonth

	oldPaid := payment(5, 27, models.PaymentPaid)
	oldPaid.DueDate = models.NewDate(2026, 2, 27)
	oldPaid.PaidDate = &paidLastMonth

	o := SummarizePayments([]models.Payment{recurring, later, overdue, paid, oldPaid}, paymentsToday)

	assert.Equal(t, 2, o.UpcomingCount)
	assert.True(t, o.UpcomingTotal.Equal(dec("149.99")))
	assert.Equal(t, 1, o.DueThisWeek)
	assert.Equal(t, 1, o.OverdueCount)
	assert.True(t, o.PaidThisMonth.Equal(dec("100")))
	assert.Equal(t, 1, o.RecurringCount)
}

func TestValidatePayment(t *testing.T) {
	valid := models.CreatePaymentRequest{
		Recipient: "Landlord",
		Amount:    dec("1200"),
		DueDate:   "2026-04-01",
		Category:  "Rent",
		Status:    models.PaymentPending,
	}
	require.NoError(t, ValidatePayment(valid))

	invalid := valid
	invalid.Recipient = " "
	invalid.Amount = dec("-5")
	invalid.DueDate = "04/01/2026"
	invalid.Frequency = "daily"

	err := ValidatePayment(invalid)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPayment))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{
		"amount: Amount must be a positive number",
		"dueDate: Date must be in YYYY-MM-DD format",
		`frequency: "daily" is not a valid choice.`,
		"recipient: This field is required.",
	}, verr.Messages())
}

func TestValidatePaymentRecurringNeedsFrequency(t *testing.T) {
	err := ValidatePayment(models.CreatePaymentRequest{
		Recipient:   "Gym",
		Amount:      dec("30"),
		DueDate:     "2026-04-01",
		Category:    "Health",
		IsRecurring: true,
	})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "frequency")
}
