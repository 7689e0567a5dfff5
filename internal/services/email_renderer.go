package services

import (
	"fmt"
	"html"
	"strings"

	"github.com/rocjay1/savings-goal/internal/models"
	"github.com/shopspring/decimal"
)

// nbsp separates digit groups and the currency sign, as in Finnish euro formatting.
const nbsp = "\u00a0"

// FormatCurrency renders an amount as euros, e.g. "1 234,56 €".
func FormatCurrency(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteString(nbsp)
		}
		grouped.WriteRune(digit)
	}

	sign := ""
	if amount.Round(2).IsNegative() {
		sign = "-"
	}
	return sign + grouped.String() + "," + frac + nbsp + "€"
}

// RenderErrorSection renders the list of rejected rows.
func RenderErrorSection(rowErrors []string) string {
	if len(rowErrors) == 0 {
		return ""
	}

	var items strings.Builder
	for _, e := range rowErrors {
		items.WriteString(fmt.Sprintf("<li>%s</li>", html.EscapeString(e)))
	}

	return fmt.Sprintf(`
		<div style="background-color: #fff4f4; border-left: 5px solid #d13438; padding: 15px; margin-bottom: 20px;">
			<h3 style="color: #d13438; margin-top: 0; font-size: 18px;">Some rows were skipped</h3>
			<ul style="margin-bottom: 0; padding-left: 20px;">
				%s
			</ul>
		</div>
	`, items.String())
}

// RenderPlanTable renders one table row per computed goal.
func RenderPlanTable(lines []models.PlanLine) string {
	if len(lines) == 0 {
		return "<p>No goals could be planned from this file.</p>"
	}

	var rows strings.Builder
	for _, line := range lines {
		rows.WriteString(fmt.Sprintf(
			`<tr><td style="padding: 6px;">%s</td><td style="padding: 6px; text-align: right;">%s</td><td style="padding: 6px; text-align: right;">%d</td><td style="padding: 6px; text-align: right;"><b>%s</b></td></tr>`,
			html.EscapeString(line.Name),
			FormatCurrency(line.Result.AmountNeeded),
			line.Result.MonthsRemaining,
			FormatCurrency(line.Result.MonthlySaving),
		))
	}

	return fmt.Sprintf(`
		<table style="width: 100%%; border-collapse: collapse;">
			<tr style="background-color: #eef6ee;">
				<th style="padding: 6px; text-align: left;">Goal</th>
				<th style="padding: 6px; text-align: right;">Amount Needed</th>
				<th style="padding: 6px; text-align: right;">Months</th>
				<th style="padding: 6px; text-align: right;">Monthly Saving</th>
			</tr>
			%s
		</table>
	`, rows.String())
}

// RenderPlanBody renders the full HTML body of a batch plan email.
func RenderPlanBody(filename string, lines []models.PlanLine, rowErrors []string) string {
	return fmt.Sprintf(`
		<html>
		<body style="font-family: 'Segoe UI', sans-serif; color: #333; line-height: 1.6; background-color: #f4f4f4; margin: 0; padding: 20px;">
			<div style="max-width: 600px; margin: 0 auto; background: white; border-radius: 8px; overflow: hidden; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
				<div style="background-color: #2e7d32; padding: 20px; text-align: center; color: white;">
					<h2 style="margin: 0;">Savings Plan</h2>
				</div>
				<div style="padding: 20px;">
					<p>Monthly savings required for the goals in <b>%s</b>:</p>
					%s
					%s
				</div>
			</div>
		</body>
		</html>
	`, html.EscapeString(filename), RenderErrorSection(rowErrors), RenderPlanTable(lines))
}
