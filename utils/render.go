package utils

import (
	"fmt"
	"strings"

	"github.com/kr/text"

	"github.com/LovationAdmin/budget-dashboard/models"
)

const nameWidth = 32

// RenderDashboardText renders the dashboard view as plain text for terminals
// and e-mail digests.
func RenderDashboardText(view models.DashboardView) string {
	var b strings.Builder

	b.WriteString("My Finances\n")
	var totals strings.Builder
	fmt.Fprintf(&totals, "%-16s %s\n", "Total balance", FormatAmount(view.Summary.TotalBalance))
	fmt.Fprintf(&totals, "%-16s %s\n", "Spending", FormatAmount(view.Summary.TotalSpending))
	fmt.Fprintf(&totals, "%-16s %s\n", "Income", FormatAmount(view.Summary.TotalIncome))
	b.WriteString(text.Indent(totals.String(), "  "))

	if len(view.Accounts) > 0 {
		b.WriteString("\nAccounts\n")
		var accounts strings.Builder
		for _, a := range view.Accounts {
			label := a.InstitutionName
			if a.AccountName != "" {
				label += " " + a.AccountName
			}
			if a.Mask != "" {
				label += " ••" + a.Mask
			}
			writeRow(&accounts, label, FormatAmount(a.CurrentBalance))
		}
		b.WriteString(text.Indent(accounts.String(), "  "))
	}

	if len(view.Summary.TopCategories) > 0 {
		b.WriteString("\nTop categories\n")
		var cats strings.Builder
		for _, c := range view.Summary.TopCategories {
			writeRow(&cats, c.Category, FormatAmount(c.Total))
		}
		b.WriteString(text.Indent(cats.String(), "  "))
	}

	if len(view.Summary.RecentTransactions) > 0 {
		b.WriteString("\nRecent transactions\n")
		var recent strings.Builder
		for _, t := range view.Summary.RecentTransactions {
			amount := FormatAmount(t.Amount)
			if dir := Direction(t.Amount); dir != "" {
				amount += " " + dir
			}
			writeRow(&recent, t.Date.Day()+"  "+t.Name, amount)
		}
		b.WriteString(text.Indent(recent.String(), "  "))
	}

	return b.String()
}

// writeRow wraps long labels; continuation lines are indented under the label.
func writeRow(b *strings.Builder, label, value string) {
	lines := strings.Split(text.Wrap(label, nameWidth), "\n")
	fmt.Fprintf(b, "%-*s %s\n", nameWidth, lines[0], value)
	for _, l := range lines[1:] {
		b.WriteString(text.Indent(l, "  ") + "\n")
	}
}
