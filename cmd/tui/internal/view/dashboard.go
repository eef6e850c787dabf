package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/dealboard/internal/api"
	"github.com/MrJamesThe3rd/dealboard/internal/client"
	"github.com/MrJamesThe3rd/dealboard/internal/deal"
)

type DashboardModel struct {
	CommonModel
	client *client.Client

	summary *api.Summary
	err     error
}

func NewDashboardModel(c *client.Client) DashboardModel {
	return DashboardModel{client: c}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardMsg:
		m.summary, m.err = msg.summary, msg.err
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	if m.summary == nil {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	return lipgloss.NewStyle().Padding(1).Render(RenderSummary(m.summary))
}

var kpiStyle = lipgloss.NewStyle().
	Padding(0, 2).
	MarginRight(1).
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63"))

// RenderSummary lays out the dashboard KPIs and the per-stage breakdown.
func RenderSummary(s *api.Summary) string {
	kpi := func(label, value string) string {
		return kpiStyle.Render(lipgloss.NewStyle().Faint(true).Render(label) + "\n" + lipgloss.NewStyle().Bold(true).Render(value))
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		kpi("Pipeline value", FormatMoney(s.TotalPipelineValue)),
		kpi("Active deals", fmt.Sprintf("%d", s.ActiveDeals)),
		kpi("Avg deal size", FormatMoney(s.AverageDealSize)),
		kpi("Conversion", s.ConversionRate.StringFixed(1)+"%"),
		kpi("Avg days in stage", s.AverageAgeInStage.StringFixed(1)),
	)

	var sb strings.Builder

	for _, st := range deal.Stages {
		fmt.Fprintf(&sb, "%-16s %3d  %s\n", st.Label(), s.DealsByStage[st], FormatMoney(s.RevenueByStage[st]))
	}

	return lipgloss.JoinVertical(lipgloss.Left, cards, "", "By stage", sb.String())
}

type dashboardMsg struct {
	summary *api.Summary
	err     error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		s, err := m.client.Dashboard(ctx)

		return dashboardMsg{summary: s, err: err}
	}
}
