package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const apiTimeout = 5 * time.Second

// FormatMoney renders an amount with thousands separators and no cents.
func FormatMoney(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)

	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg, s = true, s[1:]
	}

	out := make([]byte, 0, len(s)+len(s)/3)
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}

		out = append(out, s[i])
	}

	if neg {
		return "-$" + string(out)
	}

	return "$" + string(out)
}

// FormatRange renders a valuation range, "?" standing in for a missing bound.
func FormatRange(lo, hi decimal.NullDecimal) string {
	if !lo.Valid && !hi.Valid {
		return "-"
	}

	bound := func(n decimal.NullDecimal) string {
		if !n.Valid {
			return "?"
		}

		return FormatMoney(n.Decimal)
	}

	return fmt.Sprintf("%s - %s", bound(lo), bound(hi))
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// APICtx returns a context with a standard timeout for API calls.
func APICtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), apiTimeout)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func errorStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(s)
}

func newTable(columns []table.Column, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func boxed(s string) string {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(s)
}
