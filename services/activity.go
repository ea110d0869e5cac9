package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/LovationAdmin/budget-dashboard/models"
	"github.com/LovationAdmin/budget-dashboard/utils"
)

// BuildTimeline merges transactions, payments and system events into one list,
// newest first. A paid payment is placed at its paid date, any other payment at
// its due date.
func BuildTimeline(txns []models.Transaction, payments []models.Payment, events []models.SystemEvent) []models.ActivityItem {
	items := make([]models.ActivityItem, 0, len(txns)+len(payments)+len(events))

	for _, t := range txns {
		amount := t.Amount
		items = append(items, models.ActivityItem{
			ID:            fmt.Sprintf("txn-%d", t.ID),
			Type:          models.ActivityTransaction,
			Title:         t.Name,
			Description:   transactionDescription(t),
			Amount:        &amount,
			DisplayAmount: utils.FormatAmount(amount),
			Direction:     utils.Direction(amount),
			Date:          t.Date.Time,
			Category:      categoryOf(t),
		})
	}

	for _, p := range payments {
		amount := p.Amount
		date := p.DueDate
		if p.Status == models.PaymentPaid && p.PaidDate != nil && !p.PaidDate.IsZero() {
			date = *p.PaidDate
		}
		description := p.Description
		if description == "" {
			description = p.Category
		}
		items = append(items, models.ActivityItem{
			ID:            fmt.Sprintf("pay-%d", p.ID),
			Type:          models.ActivityPayment,
			Title:         "Payment to " + p.Recipient,
			Description:   description,
			Amount:        &amount,
			DisplayAmount: utils.FormatAmount(amount),
			Direction:     utils.DirectionDebit,
			Date:          date.Time,
			Category:      p.Category,
			Status:        string(p.Status),
		})
	}

	for _, e := range events {
		items = append(items, models.ActivityItem{
			ID:          "sys-" + e.ID,
			Type:        models.ActivitySystem,
			Title:       e.Title,
			Description: e.Description,
			Date:        e.At,
			Category:    e.Kind,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].ID < items[j].ID
	})
	return items
}

func transactionDescription(t models.Transaction) string {
	parts := make([]string, 0, 2)
	if t.Category != "" {
		parts = append(parts, t.Category)
	}
	if t.InstitutionName != "" {
		parts = append(parts, t.InstitutionName)
	}
	return strings.Join(parts, " · ")
}

// FilterActivity keeps items of the requested types whose title or description
// contains the query, within the inclusive day bounds.
func FilterActivity(items []models.ActivityItem, f models.ActivityFilter) []models.ActivityItem {
	var types map[models.ActivityType]bool
	if len(f.Types) > 0 {
		types = make(map[models.ActivityType]bool, len(f.Types))
		for _, t := range f.Types {
			types[t] = true
		}
	}
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]models.ActivityItem, 0, len(items))
	for _, item := range items {
		if types != nil && !types[item.Type] {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(item.Title), query) &&
			!strings.Contains(strings.ToLower(item.Description), query) {
			continue
		}
		day := calendarDay(item.Date)
		if f.From != nil && day.Before(calendarDay(f.From.Time)) {
			continue
		}
		if f.To != nil && day.After(calendarDay(f.To.Time)) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// GroupByDay buckets items by their YYYY-MM-DD date, newest day first. Items
// keep their relative order inside a day.
func GroupByDay(items []models.ActivityItem) []models.DayGroup {
	index := make(map[string]int)
	groups := []models.DayGroup{}

	for _, item := range items {
		key := item.Date.Format(models.DateLayout)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.DayGroup{Day: key})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Day > groups[j].Day })
	return groups
}
