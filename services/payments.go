package services

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/LovationAdmin/budget-dashboard/models"
	"github.com/LovationAdmin/budget-dashboard/utils"
)

const (
	DefaultPriorityDays = 3
	dueSoonDays         = 7
)

// calendarDay truncates t to midnight UTC of its own calendar date, so that
// day arithmetic is immune to offsets and DST.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysUntilDue is the number of calendar days from today to the due date.
// Negative means the date has passed.
func DaysUntilDue(due models.Date, today time.Time) int {
	return int(calendarDay(due.Time).Sub(calendarDay(today)).Hours() / 24)
}

// PartitionPayments splits payments into upcoming (not paid, due today or
// later, soonest first) and history (paid or past due, latest first). A paid
// payment is always history.
func PartitionPayments(payments []models.Payment, today time.Time, priorityDays int) (upcoming, history []models.PaymentLine) {
	upcoming = []models.PaymentLine{}
	history = []models.PaymentLine{}

	for _, p := range payments {
		line := paymentLine(p, today, priorityDays)
		if p.Status != models.PaymentPaid && line.DaysUntilDue >= 0 {
			upcoming = append(upcoming, line)
		} else {
			history = append(history, line)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DueDate.Before(upcoming[j].DueDate.Time)
	})
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].DueDate.After(history[j].DueDate.Time)
	})
	return upcoming, history
}

func paymentLine(p models.Payment, today time.Time, priorityDays int) models.PaymentLine {
	days := DaysUntilDue(p.DueDate, today)
	paid := p.Status == models.PaymentPaid
	return models.PaymentLine{
		Payment:       p,
		DaysUntilDue:  days,
		Priority:      !paid && days >= 0 && days <= priorityDays,
		Overdue:       !paid && days < 0,
		DisplayAmount: utils.FormatAmount(p.Amount),
	}
}

// SummarizePayments computes the payments page header figures.
func SummarizePayments(payments []models.Payment, today time.Time) models.PaymentOverview {
	var overview models.PaymentOverview
	ty, tm, _ := today.Date()

	for _, p := range payments {
		days := DaysUntilDue(p.DueDate, today)
		paid := p.Status == models.PaymentPaid

		if p.IsRecurring {
			overview.RecurringCount++
		}
		switch {
		case paid:
			if p.PaidDate != nil {
				py, pm, _ := p.PaidDate.Date()
				if py == ty && pm == tm {
					overview.PaidThisMonth = overview.PaidThisMonth.Add(p.Amount)
				}
			}
		case days < 0:
			overview.OverdueCount++
		default:
			overview.UpcomingCount++
			overview.UpcomingTotal = overview.UpcomingTotal.Add(p.Amount)
			if days <= dueSoonDays {
				overview.DueThisWeek++
			}
		}
	}
	return overview
}

// ValidatePayment checks a new payment before it is sent, producing the same
// field messages the backend would.
func ValidatePayment(req models.CreatePaymentRequest) error {
	verr := &ValidationError{}

	if strings.TrimSpace(req.Recipient) == "" {
		verr.add("recipient", "This field is required.")
	}
	if !req.Amount.GreaterThan(decimal.Zero) {
		verr.add("amount", "Amount must be a positive number")
	}
	if strings.TrimSpace(req.DueDate) == "" {
		verr.add("dueDate", "This field is required.")
	} else if _, err := time.Parse(models.DateLayout, req.DueDate); err != nil {
		verr.add("dueDate", "Date must be in YYYY-MM-DD format")
	}
	if strings.TrimSpace(req.Category) == "" {
		verr.add("category", "This field is required.")
	}
	if req.Status != "" && !req.Status.Valid() {
		verr.add("status", `"`+string(req.Status)+`" is not a valid choice.`)
	}
	if req.Frequency != "" && !req.Frequency.Valid() {
		verr.add("frequency", `"`+string(req.Frequency)+`" is not a valid choice.`)
	}
	if req.IsRecurring && req.Frequency == "" {
		verr.add("frequency", "Recurring payments need a frequency.")
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}
