// Package report renders the pro-tier monthly PDF report.
package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"fintrack-server/src/models"
)

// BuildMonthlyReport renders a one-page summary for a month: header, totals
// box, and the most recent transactions.
func BuildMonthlyReport(userName string, summary models.DashboardSummary) ([]byte, error) {
	pdf := fpdf.New("P", "in", "Letter", "")
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(0x1e, 0x3a, 0x8a)
	pdf.Text(1, 1, "Budget Planner Report")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(1, 1.4, "Month: "+summary.Month)
	pdf.Text(1, 1.6, "Generated for: "+userName)

	// Summary box
	y := 2.2
	pdf.SetFillColor(0xf3, 0xf4, 0xf6)
	pdf.Rect(0.8, y, 6.4, 1.5, "F")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(1, y+0.3, "Monthly Summary")

	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(1, y+0.6, fmt.Sprintf("Total Income: $%.2f", summary.TotalIncome))
	pdf.Text(1, y+0.85, fmt.Sprintf("Total Expenses: $%.2f", summary.TotalExpenses))
	pdf.Text(1, y+1.1, fmt.Sprintf("Balance: $%.2f", summary.Balance))

	if summary.Balance >= 0 {
		pdf.SetTextColor(0x10, 0xb9, 0x81)
	} else {
		pdf.SetTextColor(0xef, 0x44, 0x44)
	}
	pdf.Text(4, y+0.6, fmt.Sprintf("Budget Used: %.1f%%", summary.BudgetUsedPercent))

	// Recent transactions
	y += 2
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(1, y, "Recent Transactions")

	pdf.SetFont("Helvetica", "", 10)
	y += 0.3
	for i, t := range summary.RecentTransactions {
		if i == 5 {
			break
		}
		sign := "-"
		if t.Type == models.TransactionTypeIncome {
			sign = "+"
			pdf.SetTextColor(0x10, 0xb9, 0x81)
		} else {
			pdf.SetTextColor(0xef, 0x44, 0x44)
		}
		pdf.Text(1, y, fmt.Sprintf("%s | %s | %s$%.2f", t.Date, t.Category, sign, t.Amount))
		y += 0.25
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}
